package models

import "html/template"

// Site holds the static content of the landing page
type Site struct {
	Attorney  Attorney       `yaml:"attorney"`
	Contact   ContactLinks   `yaml:"contact"`
	Hero      Hero           `yaml:"hero"`
	Services  []ServiceCard  `yaml:"services"`
	About     About          `yaml:"about"`
	FAQ       []FAQEntry     `yaml:"faq"`
	Footer    Footer         `yaml:"footer"`
	Nav       []NavItem      `yaml:"nav"`
	Portrait  Image          `yaml:"portrait"`
	Instagram InstagramBlock `yaml:"instagram"`
}

type Attorney struct {
	Name     string `yaml:"name"`
	FullName string `yaml:"full_name"`
	Title    string `yaml:"title"`
	OAB      string `yaml:"oab"`
}

// ContactLinks are the outbound channels; all static strings
type ContactLinks struct {
	WhatsAppNumber  string `yaml:"whatsapp_number"`
	WhatsAppDisplay string `yaml:"whatsapp_display"`
	Email           string `yaml:"email"`
	InstagramHandle string `yaml:"instagram_handle"`
	InstagramURL    string `yaml:"instagram_url"`
}

// WhatsAppURL returns the wa.me deep link for the configured number
func (c ContactLinks) WhatsAppURL() string {
	return "https://wa.me/" + c.WhatsAppNumber
}

// MailtoURL returns the mailto link for the professional e-mail
func (c ContactLinks) MailtoURL() string {
	return "mailto:" + c.Email
}

type Hero struct {
	Badge    string `yaml:"badge"`
	Headline string `yaml:"headline"`
	Tagline  string `yaml:"tagline"`
	Lead     string `yaml:"lead"`
	CTA      string `yaml:"cta"`

	LeadHTML template.HTML `yaml:"-"`
}

type ServiceCard struct {
	Icon        string   `yaml:"icon"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Points      []string `yaml:"points"`
}

type About struct {
	Kicker     string          `yaml:"kicker"`
	Heading    string          `yaml:"heading"`
	Paragraphs []string        `yaml:"paragraphs"`
	Quote      string          `yaml:"quote"`
	Commitment string          `yaml:"commitment"`
	Rendered   []template.HTML `yaml:"-"`
}

// FAQEntry is a static question/answer pair; Answer is Markdown
type FAQEntry struct {
	Question   string        `yaml:"question"`
	Answer     string        `yaml:"answer"`
	AnswerHTML template.HTML `yaml:"-"`
}

type Footer struct {
	Tagline   string `yaml:"tagline"`
	Copyright string `yaml:"copyright"`
}

type NavItem struct {
	Label  string `yaml:"label"`
	Anchor string `yaml:"anchor"`
}

type Image struct {
	Src string `yaml:"src"`
	Alt string `yaml:"alt"`
}

type InstagramBlock struct {
	Heading string `yaml:"heading"`
}
