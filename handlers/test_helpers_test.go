package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"lawyer_landing_go/config"
	"lawyer_landing_go/middleware"
	"lawyer_landing_go/models"
	"lawyer_landing_go/services"
	"lawyer_landing_go/services/content"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testVisitorID = "5f0c8a3e-4a55-4e43-9b8e-1f1d2c3b4a59"
	testCSRFToken = "test-csrf-token"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	require.NoError(t, err)

	err = testDB.AutoMigrate(&models.Lead{})
	assert.NoError(t, err)
	return testDB
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:      "test",
		AppURL:           "https://example.com",
		PageVariant:      "full",
		RevealMode:       config.RevealOnce,
		SuccessDisplay:   5 * time.Second,
		ContactRateLimit: 10,
	}
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", testConfig())
	c.Set(middleware.ContextKeyVisitor, testVisitorID)
	c.Set(middleware.CSRFContextKey, testCSRFToken)

	return e, c, rec
}

// setupForm builds a form post, optionally issued by htmx
func setupForm(path string, values url.Values, hx bool) (echo.Context, *httptest.ResponseRecorder) {
	_, c, rec := setupEcho("POST", path, strings.NewReader(values.Encode()))
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if hx {
		c.Request().Header.Set("HX-Request", "true")
	}
	return c, rec
}

func leadValues(in models.LeadInput) url.Values {
	return url.Values{
		"name":    {in.Name},
		"email":   {in.Email},
		"phone":   {in.Phone},
		"subject": {in.Subject},
		"message": {in.Message},
	}
}

func mariaSilva() models.LeadInput {
	return models.LeadInput{
		Name:    "Maria Silva",
		Email:   "maria@example.com",
		Phone:   "17999998888",
		Subject: models.SubjectFamily,
		Message: "Preciso de ajuda com divórcio",
	}
}

// memoryStore is a LeadStore and LeadLister kept in a slice
type memoryStore struct {
	mu      sync.Mutex
	leads   []models.Lead
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (s *memoryStore) Kind() string { return "memory" }

func (s *memoryStore) Insert(ctx context.Context, lead *models.Lead) error {
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	s.leads = append(s.leads, *lead)
	return nil
}

func (s *memoryStore) List(ctx context.Context, limit int) ([]models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Lead, 0, len(s.leads))
	for i := len(s.leads) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.leads[i])
	}
	return out, nil
}

func (s *memoryStore) inserted() []models.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Lead(nil), s.leads...)
}

func newTestHandlers(t *testing.T, store services.LeadStore, captcha services.CaptchaVerifier) *Handlers {
	t.Helper()
	site, err := content.Load()
	require.NoError(t, err)

	visitors := services.NewVisitorStore(time.Hour, func() *services.VisitorSession {
		return &services.VisitorSession{
			Form: services.NewContactForm(store, services.ContactFormConfig{}),
			FAQ:  services.NewFAQAccordion(len(site.FAQ)),
		}
	})
	return New(site, visitors, services.NewLeadService(nil, captcha), store)
}
