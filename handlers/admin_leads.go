package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"lawyer_landing_go/logger"
	"lawyer_landing_go/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	defaultLeadListLimit = 100
	maxLeadListLimit     = 1000
	// Export ignores the list limit and takes everything up to this bound
	maxLeadExportRows = 10000
)

// ListLeadsHandler returns the most recent leads as JSON
func (h *Handlers) ListLeadsHandler(c echo.Context) error {
	if h.Lister == nil {
		return echo.NewHTTPError(http.StatusNotFound, "lead listing requires the database store")
	}

	limit := defaultLeadListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = min(n, maxLeadListLimit)
	}

	leads, err := h.Lister.List(c.Request().Context(), limit)
	if err != nil {
		logger.Error("Failed to list leads", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list leads")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"leads": leads,
		"count": len(leads),
	})
}

// ExportLeadsHandler downloads the leads as an XLSX workbook
func (h *Handlers) ExportLeadsHandler(c echo.Context) error {
	if h.Lister == nil {
		return echo.NewHTTPError(http.StatusNotFound, "lead export requires the database store")
	}

	leads, err := h.Lister.List(c.Request().Context(), maxLeadExportRows)
	if err != nil {
		logger.Error("Failed to list leads for export", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to export leads")
	}

	buf, err := services.BuildLeadWorkbook(leads)
	if err != nil {
		logger.Error("Failed to build lead workbook", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to export leads")
	}

	filename := fmt.Sprintf("contatos-%s.xlsx", h.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	logger.Info("Leads exported", zap.Int("count", len(leads)), zap.String("ip", c.RealIP()))
	return c.Blob(http.StatusOK, services.XLSXContentType, buf.Bytes())
}
