package templates

import (
	"embed"
	"html/template"
	"strings"
	"time"

	"lawyer_landing_go/middleware"

	"github.com/a-h/templ"
)

//go:embed html/*.html
var htmlFS embed.FS

var funcs = template.FuncMap{
	"asset": middleware.AssetURL,
	"upper": strings.ToUpper,
}

var views = template.Must(template.New("views").Funcs(funcs).ParseFS(htmlFS, "html/*.html"))

// component wraps one named html/template as a templ.Component
func component(name string, data interface{}) templ.Component {
	t := views.Lookup(name)
	if t == nil {
		panic("templates: unknown view " + name)
	}
	return templ.FromGoHTML(t, data)
}

// LandingPage renders the full composition
func LandingPage(data PageData) templ.Component {
	return component("landing", data)
}

// ProfilePage renders the profile composition
func ProfilePage(data PageData) templ.Component {
	return component("profile", data)
}

// Page renders the composition named by data.Variant
func Page(data PageData) templ.Component {
	if data.Variant == VariantProfile {
		return ProfilePage(data)
	}
	return LandingPage(data)
}

// ContactForm renders the lead form partial
func ContactForm(v ContactFormView) templ.Component {
	return component("contact-form", v)
}

// ContactSuccess renders the confirmation that replaces the form
func ContactSuccess(v ContactSuccessView) templ.Component {
	return component("contact-success", v)
}

// FAQItem renders one accordion entry
func FAQItem(v FAQItemView) templ.Component {
	return component("faq-item", v)
}

// displaySeconds rounds d up to whole seconds for hx-trigger delays
func displaySeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
