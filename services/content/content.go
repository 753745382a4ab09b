package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"lawyer_landing_go/models"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var siteYAML []byte

var (
	site     *models.Site
	siteErr  error
	siteOnce sync.Once
	md       = goldmark.New()
	policy   = bluemonday.UGCPolicy()
)

// Load parses the embedded site content once and returns it.
// Markdown fields are rendered to sanitized HTML.
func Load() (*models.Site, error) {
	siteOnce.Do(func() {
		site, siteErr = Parse(siteYAML)
	})
	return site, siteErr
}

// MustLoad is Load for startup code paths
func MustLoad() *models.Site {
	s, err := Load()
	if err != nil {
		panic(err)
	}
	return s
}

// Parse decodes site content from YAML and renders its Markdown fields
func Parse(raw []byte) (*models.Site, error) {
	var s models.Site
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to parse site content: %w", err)
	}

	if s.Contact.WhatsAppNumber == "" || s.Contact.Email == "" {
		return nil, fmt.Errorf("site content is missing contact channels")
	}
	if len(s.FAQ) == 0 {
		return nil, fmt.Errorf("site content has no FAQ entries")
	}

	lead, err := RenderMarkdown(s.Hero.Lead)
	if err != nil {
		return nil, fmt.Errorf("hero: %w", err)
	}
	s.Hero.LeadHTML = lead

	for i := range s.FAQ {
		html, err := RenderMarkdown(s.FAQ[i].Answer)
		if err != nil {
			return nil, fmt.Errorf("faq %d: %w", i, err)
		}
		s.FAQ[i].AnswerHTML = html
	}

	s.About.Rendered = make([]template.HTML, 0, len(s.About.Paragraphs))
	for i, p := range s.About.Paragraphs {
		html, err := RenderMarkdown(p)
		if err != nil {
			return nil, fmt.Errorf("about paragraph %d: %w", i, err)
		}
		s.About.Rendered = append(s.About.Rendered, html)
	}

	return &s, nil
}

// RenderMarkdown converts Markdown to sanitized HTML
func RenderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(strings.TrimSpace(src)), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(policy.Sanitize(buf.String())), nil
}
