package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadBeforeCreate(t *testing.T) {
	lead := &Lead{}
	assert.NoError(t, lead.BeforeCreate(nil))
	assert.Len(t, lead.ID, 36)

	fixed := &Lead{ID: "keep-me"}
	assert.NoError(t, fixed.BeforeCreate(nil))
	assert.Equal(t, "keep-me", fixed.ID)
}

func TestLeadInputTrimmed(t *testing.T) {
	in := LeadInput{Name: "  Maria ", Email: "maria@example.com\n", Phone: " 1 ", Subject: " Família", Message: "\tOi "}
	out := in.Trimmed()
	assert.Equal(t, LeadInput{Name: "Maria", Email: "maria@example.com", Phone: "1", Subject: "Família", Message: "Oi"}, out)
}

func TestEmptyLeadInput(t *testing.T) {
	in := EmptyLeadInput()
	assert.Equal(t, DefaultSubject, in.Subject)
	assert.Empty(t, in.Name)
	assert.Empty(t, in.Message)
}

func TestIsValidSubject(t *testing.T) {
	assert.True(t, IsValidSubject("Sucessão"))
	assert.True(t, IsValidSubject(SubjectOther))
	assert.False(t, IsValidSubject("Trabalhista"))
	assert.False(t, IsValidSubject(""))
}

func TestContactLinks(t *testing.T) {
	c := ContactLinks{WhatsAppNumber: "5517992116720", Email: "a@b.c"}
	assert.Equal(t, "https://wa.me/5517992116720", c.WhatsAppURL())
	assert.Equal(t, "mailto:a@b.c", c.MailtoURL())
}

func TestSEOForPage(t *testing.T) {
	base := NewSEO("Title", "Desc")
	page := base.ForPage("https://x/", "https://x/og.svg", true)

	assert.Equal(t, "Title", page.CardTitle())
	assert.Equal(t, "Desc", page.CardDescription())
	assert.Equal(t, "noindex, nofollow", page.Robots())
	assert.Equal(t, "pt_BR", page.Locale)
	assert.Equal(t, "https://x/og.svg", page.Image)
	assert.Empty(t, base.Canonical)
	assert.Equal(t, "index, follow", base.Robots())

	page.ShareTitle = "OG"
	page.ShareDescription = "Card"
	assert.Equal(t, "OG", page.CardTitle())
	assert.Equal(t, "Card", page.CardDescription())
}
