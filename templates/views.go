package templates

import (
	"html/template"
	"time"

	"lawyer_landing_go/models"
)

// Page compositions
const (
	VariantFull    = "full"
	VariantProfile = "profile"
)

// PageData is everything a full page render needs
type PageData struct {
	Site       *models.Site
	SEO        *models.SEO
	JSONLD     template.JS
	Variant    string
	RevealMode string
	Nonce      string
	CSRFToken  string
	FAQ        []FAQItemView
	Form       ContactFormView
	// Success replaces the form while the confirmation is showing
	Success *ContactSuccessView
}

// ContactFormView is the lead form with its current values
type ContactFormView struct {
	Values   models.LeadInput
	Errors   map[string]string
	Subjects []models.SubjectOption
	Failed   bool
	// Notice is a short warning shown above the form
	Notice           string
	CSRFToken        string
	TurnstileSiteKey string
}

// NewContactFormView builds the form view with the standard subject list
func NewContactFormView(values models.LeadInput, csrfToken, turnstileSiteKey string) ContactFormView {
	return ContactFormView{
		Values:           values,
		Subjects:         models.SubjectOptions,
		CSRFToken:        csrfToken,
		TurnstileSiteKey: turnstileSiteKey,
	}
}

type ContactSuccessView struct {
	DisplaySeconds int
	CSRFToken      string
}

// NewContactSuccessView converts the confirmation duration into the hx-trigger delay
func NewContactSuccessView(display time.Duration, csrfToken string) ContactSuccessView {
	return ContactSuccessView{DisplaySeconds: displaySeconds(display), CSRFToken: csrfToken}
}

type FAQItemView struct {
	Index     int
	Entry     models.FAQEntry
	Open      bool
	CSRFToken string
	// Variant is the composition a plain post re-renders
	Variant string
}

// FAQItems pairs every entry with its open state
func FAQItems(entries []models.FAQEntry, open []bool, csrfToken, variant string) []FAQItemView {
	items := make([]FAQItemView, len(entries))
	for i, e := range entries {
		items[i] = FAQItemView{
			Index:     i,
			Entry:     e,
			Open:      i < len(open) && open[i],
			CSRFToken: csrfToken,
			Variant:   variant,
		}
	}
	return items
}
