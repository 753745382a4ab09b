package handlers

import (
	"time"

	"lawyer_landing_go/middleware"
	"lawyer_landing_go/models"
	"lawyer_landing_go/services"

	"github.com/labstack/echo/v4"
)

// Handlers holds the collaborators shared by the HTTP handlers
type Handlers struct {
	Site     *models.Site
	Visitors *services.VisitorStore
	Leads    *services.LeadService
	// StoreKind names the lead store backend for /health
	StoreKind string
	// Lister is set only when the lead store can read leads back
	Lister services.LeadLister
	Now    func() time.Time
}

// New creates the handler set
func New(site *models.Site, visitors *services.VisitorStore, leads *services.LeadService, store services.LeadStore) *Handlers {
	h := &Handlers{
		Site:      site,
		Visitors:  visitors,
		Leads:     leads,
		StoreKind: store.Kind(),
		Now:       time.Now,
	}
	if lister, ok := store.(services.LeadLister); ok {
		h.Lister = lister
	}
	return h
}

// session returns the visitor's UI state
func (h *Handlers) session(c echo.Context) *services.VisitorSession {
	return h.Visitors.Get(middleware.GetVisitorID(c))
}
