package handlers

import (
	"net/http"

	"lawyer_landing_go/metrics"
	"lawyer_landing_go/middleware"
	"lawyer_landing_go/services"
	"lawyer_landing_go/templates"
	"lawyer_landing_go/templates/components"

	"github.com/labstack/echo/v4"
)

// LandingHandler renders the default composition. A page load collapses the
// visitor's FAQ; a pending confirmation or error notice survives it so that
// plain form posts can show their result after the redirect.
func (h *Handlers) LandingHandler(c echo.Context) error {
	cfg := getConfig(c)
	id := middleware.GetVisitorID(c)

	sess := h.Visitors.Get(id)
	if sess.Form.State() == services.FormIdle {
		h.Visitors.Reset(id)
		sess = h.Visitors.Get(id)
	} else {
		sess.FAQ.Reset()
	}

	variant := templates.VariantFull
	if cfg.PageVariant == templates.VariantProfile {
		variant = templates.VariantProfile
	}
	return h.renderPage(c, variant, sess, http.StatusOK)
}

// ProfileHandler renders the profile composition
func (h *Handlers) ProfileHandler(c echo.Context) error {
	id := middleware.GetVisitorID(c)
	sess := h.Visitors.Get(id)
	sess.FAQ.Reset()
	return h.renderPage(c, templates.VariantProfile, sess, http.StatusOK)
}

func (h *Handlers) renderPage(c echo.Context, variant string, sess *services.VisitorSession, status int) error {
	data := h.pageData(c, variant, sess)
	metrics.PageViews.WithLabelValues(variant).Inc()
	return render(c, status, templates.Page(data))
}

// pageData assembles a full page render for the visitor
func (h *Handlers) pageData(c echo.Context, variant string, sess *services.VisitorSession) templates.PageData {
	cfg := getConfig(c)
	csrfToken := middleware.GetCSRFToken(c)
	seo := GetSEO(variant, cfg)

	data := templates.PageData{
		Site:       h.Site,
		SEO:        seo,
		JSONLD:     components.AttorneyJSONLD(h.Site, seo),
		Variant:    variant,
		RevealMode: cfg.RevealMode,
		Nonce:      middleware.GetNonce(c.Request().Context()),
		CSRFToken:  csrfToken,
		FAQ:        templates.FAQItems(h.Site.FAQ, sess.FAQ.Snapshot(), csrfToken, variant),
	}

	if variant == templates.VariantFull {
		data.Form = h.formView(c, sess.Form)
		if sess.Form.State() == services.FormSuccess {
			success := templates.NewContactSuccessView(cfg.SuccessDisplay, csrfToken)
			data.Success = &success
		}
	}
	return data
}
