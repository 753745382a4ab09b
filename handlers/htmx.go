package handlers

import (
	"net/http"

	"lawyer_landing_go/config"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// isHTMX reports whether the request was issued by htmx
func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// render writes a component with the given status
func render(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// getConfig returns the config set on the context by the server
func getConfig(c echo.Context) *config.Config {
	if cfg, ok := c.Get("config").(*config.Config); ok {
		return cfg
	}
	return &config.Config{RevealMode: config.RevealOnce, PageVariant: "full"}
}

// redirectToContact sends non-htmx form posts back to the contact section
func redirectToContact(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/#contato")
}
