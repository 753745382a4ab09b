package handlers

import (
	"net/http"

	"lawyer_landing_go/logger"
	"lawyer_landing_go/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// WhatsAppRedirectHandler counts the click and sends the visitor to the WhatsApp deep link
func (h *Handlers) WhatsAppRedirectHandler(c echo.Context) error {
	metrics.OutboundClicks.WithLabelValues("whatsapp").Inc()
	logger.Debug("Outbound click", zap.String("channel", "whatsapp"), zap.String("from", c.QueryParam("from")))
	return c.Redirect(http.StatusFound, h.Site.Contact.WhatsAppURL())
}
