package components

import (
	"encoding/json"
	"html/template"

	"lawyer_landing_go/logger"
	"lawyer_landing_go/models"

	"go.uber.org/zap"
)

// JSON marshals an object to a JSON string, returning "{}" on error
func JSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		logger.Error("Error marshaling JSON", zap.Error(err))
		return "{}"
	}
	return string(b)
}

type postalAddress struct {
	Type           string `json:"@type"`
	AddressRegion  string `json:"addressRegion"`
	AddressCountry string `json:"addressCountry"`
}

type attorneyLD struct {
	Context     string        `json:"@context"`
	Type        string        `json:"@type"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url"`
	Image       string        `json:"image,omitempty"`
	Telephone   string        `json:"telephone"`
	Email       string        `json:"email"`
	Address     postalAddress `json:"address"`
	AreaServed  string        `json:"areaServed"`
	KnowsAbout  []string      `json:"knowsAbout,omitempty"`
	SameAs      []string      `json:"sameAs,omitempty"`
}

// AttorneyJSONLD returns the schema.org Attorney block for the page head
func AttorneyJSONLD(site *models.Site, seo *models.SEO) template.JS {
	knows := make([]string, 0, len(site.Services))
	for _, s := range site.Services {
		knows = append(knows, s.Title)
	}
	ld := attorneyLD{
		Context:     "https://schema.org",
		Type:        "Attorney",
		Name:        site.Attorney.FullName,
		Description: seo.Description,
		URL:         seo.Canonical,
		Image:       seo.Image,
		Telephone:   "+" + site.Contact.WhatsAppNumber,
		Email:       site.Contact.Email,
		Address:     postalAddress{Type: "PostalAddress", AddressRegion: "SP", AddressCountry: "BR"},
		AreaServed:  "BR",
		KnowsAbout:  knows,
		SameAs:      []string{site.Contact.InstagramURL},
	}
	// json.Marshal escapes <, > and & so the block cannot close its script tag
	return template.JS(JSON(ld))
}
