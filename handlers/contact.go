package handlers

import (
	"errors"
	"net/http"

	"lawyer_landing_go/logger"
	"lawyer_landing_go/middleware"
	"lawyer_landing_go/models"
	"lawyer_landing_go/services"
	"lawyer_landing_go/templates"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	leadSource    = "landing"
	captchaNotice = "Não foi possível confirmar a verificação de segurança. Tente novamente."
)

// formView builds the lead form partial from the visitor's form state
func (h *Handlers) formView(c echo.Context, form *services.ContactForm) templates.ContactFormView {
	return h.formViewWith(c, form.Fields(), form.State() == services.FormError)
}

func (h *Handlers) formViewWith(c echo.Context, values models.LeadInput, failed bool) templates.ContactFormView {
	view := templates.NewContactFormView(values, middleware.GetCSRFToken(c), getConfig(c).TurnstileSiteKey)
	view.Failed = failed
	return view
}

// SubmitContactHandler submits the lead form.
//
// htmx requests get a partial: the confirmation on success, the form with
// field errors (422), or the form with its values and an error notice (502).
// A submission already in flight answers 204 so htmx leaves the page alone.
func (h *Handlers) SubmitContactHandler(c echo.Context) error {
	var in models.LeadInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Formulário inválido")
	}

	sess := h.session(c)
	sub := services.Submission{
		Input:        in,
		CaptchaToken: c.FormValue("cf-turnstile-response"),
		Meta: services.LeadMeta{
			IPAddress: c.RealIP(),
			UserAgent: c.Request().UserAgent(),
			Source:    leadSource,
		},
	}

	_, err := h.Leads.Submit(c.Request().Context(), sess.Form, sub)
	hx := isHTMX(c)

	var verr *services.ValidationError
	switch {
	case err == nil:
		if !hx {
			return redirectToContact(c)
		}
		cfg := getConfig(c)
		return render(c, http.StatusOK, templates.ContactSuccess(
			templates.NewContactSuccessView(cfg.SuccessDisplay, middleware.GetCSRFToken(c)),
		))

	case errors.Is(err, services.ErrSubmissionInFlight):
		if !hx {
			return redirectToContact(c)
		}
		return c.NoContent(http.StatusNoContent)

	case errors.As(err, &verr):
		view := h.formViewWith(c, in, false)
		view.Errors = verr.Fields
		if !hx {
			data := h.pageData(c, templates.VariantFull, sess)
			data.Form = view
			return render(c, http.StatusUnprocessableEntity, templates.LandingPage(data))
		}
		return render(c, http.StatusUnprocessableEntity, templates.ContactForm(view))

	case errors.Is(err, services.ErrCaptchaFailed):
		view := h.formViewWith(c, in, false)
		view.Notice = captchaNotice
		if !hx {
			data := h.pageData(c, templates.VariantFull, sess)
			data.Form = view
			return render(c, http.StatusUnprocessableEntity, templates.LandingPage(data))
		}
		return render(c, http.StatusUnprocessableEntity, templates.ContactForm(view))

	default:
		logger.Warn("Lead form submission failed", zap.String("visitor_ip", c.RealIP()), zap.Error(err))
		if !hx {
			return redirectToContact(c)
		}
		c.Response().Header().Set("HX-Trigger", "lead-error")
		return render(c, http.StatusBadGateway, templates.ContactForm(h.formViewWith(c, sess.Form.Fields(), true)))
	}
}

// ContactFormHandler returns the form partial once the confirmation has been shown
func (h *Handlers) ContactFormHandler(c echo.Context) error {
	sess := h.session(c)
	if sess.Form.State() == services.FormSuccess {
		sess.Form.Dismiss()
	}
	return render(c, http.StatusOK, templates.ContactForm(h.formView(c, sess.Form)))
}

// DismissContactHandler closes the confirmation or error notice
func (h *Handlers) DismissContactHandler(c echo.Context) error {
	sess := h.session(c)
	sess.Form.Dismiss()
	if !isHTMX(c) {
		return redirectToContact(c)
	}
	return render(c, http.StatusOK, templates.ContactForm(h.formView(c, sess.Form)))
}
