package models

// SEO is the head metadata for one page composition
type SEO struct {
	Title       string
	Description string
	Keywords    string
	Canonical   string
	// Social cards reuse Title/Description unless these are set
	ShareTitle       string
	ShareDescription string
	Image            string
	ImageAlt         string
	OGType           string // website or profile
	TwitterCard      string
	Locale           string
	// Staging and preview deployments must not be indexed
	Private bool
}

// NewSEO returns page metadata for a pt_BR page with a large share card
func NewSEO(title, description string) *SEO {
	return &SEO{
		Title:       title,
		Description: description,
		OGType:      "website",
		TwitterCard: "summary_large_image",
		Locale:      "pt_BR",
	}
}

// ForPage returns a copy bound to a concrete URL and share image
func (s SEO) ForPage(canonical, image string, private bool) *SEO {
	s.Canonical = canonical
	s.Image = image
	s.Private = private
	return &s
}

// Robots is the robots meta directive
func (s *SEO) Robots() string {
	if s.Private {
		return "noindex, nofollow"
	}
	return "index, follow"
}

func (s *SEO) CardTitle() string {
	if s.ShareTitle != "" {
		return s.ShareTitle
	}
	return s.Title
}

func (s *SEO) CardDescription() string {
	if s.ShareDescription != "" {
		return s.ShareDescription
	}
	return s.Description
}
