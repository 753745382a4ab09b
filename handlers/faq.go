package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"lawyer_landing_go/metrics"
	"lawyer_landing_go/middleware"
	"lawyer_landing_go/services"
	"lawyer_landing_go/templates"

	"github.com/labstack/echo/v4"
)

// ToggleFAQHandler expands or collapses one FAQ entry for the visitor
func (h *Handlers) ToggleFAQHandler(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Pergunta não encontrada")
	}

	sess := h.session(c)
	open, err := sess.FAQ.Toggle(index)
	if errors.Is(err, services.ErrFAQIndex) {
		return echo.NewHTTPError(http.StatusNotFound, "Pergunta não encontrada")
	}
	if err != nil {
		return err
	}
	metrics.FAQToggles.Inc()

	variant := templates.VariantFull
	if c.FormValue("variant") == templates.VariantProfile {
		variant = templates.VariantProfile
	}

	// Without htmx the page the visitor was on comes back with the entry's new state
	if !isHTMX(c) {
		return h.renderPage(c, variant, sess, http.StatusOK)
	}

	return render(c, http.StatusOK, templates.FAQItem(templates.FAQItemView{
		Index:     index,
		Entry:     h.Site.FAQ[index],
		Open:      open,
		CSRFToken: middleware.GetCSRFToken(c),
		Variant:   variant,
	}))
}
