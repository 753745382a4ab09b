package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"lawyer_landing_go/models"
	"lawyer_landing_go/services/content"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func testPageData(t *testing.T, variant string) PageData {
	t.Helper()
	site, err := content.Load()
	require.NoError(t, err)
	return PageData{
		Site:       site,
		SEO:        models.NewSEO("Aline Santesso | Advogada", "Direito Imobiliário e de Família"),
		JSONLD:     `{"@type":"Attorney"}`,
		Variant:    variant,
		RevealMode: "once",
		Nonce:      "n0nce",
		CSRFToken:  "tok",
		FAQ:        FAQItems(site.FAQ, nil, "tok", VariantFull),
		Form:       NewContactFormView(models.EmptyLeadInput(), "tok", ""),
	}
}

func TestLandingPage(t *testing.T) {
	html := render(t, LandingPage(testPageData(t, VariantFull)))

	assert.Contains(t, html, `data-reveal-mode="once"`)
	assert.Contains(t, html, `nonce="n0nce"`)
	assert.Contains(t, html, `<title>Aline Santesso | Advogada</title>`)
	assert.Contains(t, html, `{"@type":"Attorney"}`)
	assert.Contains(t, html, `hx-post="/contato"`)
	assert.Contains(t, html, "Perguntas Frequentes")
	assert.Contains(t, html, "Siga-me no Instagram!")
	assert.Contains(t, html, "Atendimento prioritário via WhatsApp")
	assert.Contains(t, html, "alinesantesso@adv.oabsp.org.br")
	assert.NotContains(t, html, "challenges.cloudflare.com/turnstile")

	// Section order: expertise before about, instagram before contact
	assert.Less(t, strings.Index(html, `id="expertise"`), strings.Index(html, `id="sobre"`))
	assert.Less(t, strings.Index(html, `id="instagram"`), strings.Index(html, `id="contato"`))
}

func TestLandingPageShowsConfirmation(t *testing.T) {
	data := testPageData(t, VariantFull)
	success := NewContactSuccessView(5*time.Second, "tok")
	data.Success = &success

	html := render(t, LandingPage(data))
	assert.Contains(t, html, "Mensagem Enviada!")
	assert.NotContains(t, html, `hx-post="/contato"`)
}

func TestProfilePage(t *testing.T) {
	html := render(t, ProfilePage(testPageData(t, VariantProfile)))

	assert.Contains(t, html, `src="/static/images/portrait.svg"`)
	assert.Contains(t, html, `aria-labelledby="about-title"`)
	assert.Contains(t, html, "OAB/SP 497.122")
	assert.NotContains(t, html, `hx-post="/contato"`, "profile has no lead form")
	assert.NotContains(t, html, `id="instagram"`)
	assert.Less(t, strings.Index(html, `id="sobre"`), strings.Index(html, `id="expertise"`))
}

func TestPageDispatch(t *testing.T) {
	html := render(t, Page(testPageData(t, VariantProfile)))
	assert.Contains(t, html, "page--profile")

	html = render(t, Page(testPageData(t, VariantFull)))
	assert.Contains(t, html, "page--full")
}

func TestContactFormPreservesValues(t *testing.T) {
	v := NewContactFormView(models.LeadInput{
		Name:    "Maria <Silva>",
		Email:   "maria@example.com",
		Phone:   "17999998888",
		Subject: models.SubjectFamily,
		Message: "Preciso de ajuda com divórcio",
	}, "tok", "site-key")
	v.Failed = true

	html := render(t, ContactForm(v))
	assert.Contains(t, html, `value="Maria &lt;Silva&gt;"`)
	assert.Contains(t, html, `<option value="Família" selected>`)
	assert.Contains(t, html, "Preciso de ajuda com divórcio</textarea>")
	assert.Contains(t, html, `role="alert"`)
	assert.Contains(t, html, "tente novamente via")
	assert.Contains(t, html, `data-sitekey="site-key"`)
	assert.Contains(t, html, `name="_csrf" value="tok"`)
}

func TestContactFormErrors(t *testing.T) {
	v := NewContactFormView(models.EmptyLeadInput(), "tok", "")
	v.Errors = map[string]string{"email": "Informe um e-mail válido"}

	html := render(t, ContactForm(v))
	assert.Contains(t, html, "Informe um e-mail válido")
	assert.Contains(t, html, `aria-describedby="lead-email-error"`)
	assert.NotContains(t, html, `role="alert"`)
	assert.Contains(t, html, `<option value="Imobiliário" selected>`)
}

func TestContactFormNotice(t *testing.T) {
	v := NewContactFormView(models.EmptyLeadInput(), "tok", "")
	v.Notice = "Confirme a verificação"

	html := render(t, ContactForm(v))
	assert.Contains(t, html, "form-alert--warning")
	assert.Contains(t, html, "Confirme a verificação")
}

func TestContactSuccess(t *testing.T) {
	html := render(t, ContactSuccess(NewContactSuccessView(5*time.Second, "tok")))
	assert.Contains(t, html, `hx-trigger="load delay:5s"`)
	assert.Contains(t, html, `hx-get="/contato/form"`)
	assert.Contains(t, html, "Enviar outra mensagem")
}

func TestDisplaySeconds(t *testing.T) {
	assert.Equal(t, 5, displaySeconds(5*time.Second))
	assert.Equal(t, 2, displaySeconds(1500*time.Millisecond))
	assert.Equal(t, 1, displaySeconds(0))
}

func TestFAQItem(t *testing.T) {
	entry := models.FAQEntry{Question: "O que é?", AnswerHTML: "<p>Resposta</p>"}

	closed := render(t, FAQItem(FAQItemView{Index: 2, Entry: entry}))
	assert.Contains(t, closed, `aria-expanded="false"`)
	assert.Contains(t, closed, `hx-post="/faq/2/toggle"`)
	assert.Contains(t, closed, " hidden>")

	open := render(t, FAQItem(FAQItemView{Index: 2, Entry: entry, Open: true}))
	assert.Contains(t, open, `aria-expanded="true"`)
	assert.Contains(t, open, "<p>Resposta</p>")
	assert.NotContains(t, open, " hidden>")
}

func TestFAQItems(t *testing.T) {
	entries := []models.FAQEntry{{Question: "a"}, {Question: "b"}, {Question: "c"}}
	items := FAQItems(entries, []bool{false, true}, "tok", VariantProfile)

	require.Len(t, items, 3)
	assert.False(t, items[0].Open)
	assert.True(t, items[1].Open)
	assert.False(t, items[2].Open)
	assert.Equal(t, 2, items[2].Index)
	assert.Equal(t, VariantProfile, items[0].Variant)

	html := render(t, FAQItem(items[1]))
	assert.Contains(t, html, `<input type="hidden" name="variant" value="profile">`)
}

func TestUnknownViewPanics(t *testing.T) {
	assert.Panics(t, func() { component("missing", nil) })
}
