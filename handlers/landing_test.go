package handlers

import (
	"net/http"
	"testing"

	"lawyer_landing_go/templates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLandingHandler(t *testing.T) {
	h := newTestHandlers(t, &memoryStore{}, nil)

	_, c, rec := setupEcho(http.MethodGet, "/", nil)
	require.NoError(t, h.LandingHandler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `hx-post="/contato"`)
	assert.Contains(t, body, `<link rel="canonical" href="https://example.com/">`)
	assert.Contains(t, body, `"@type":"Attorney"`)
	assert.Contains(t, body, testCSRFToken)
	assert.Contains(t, body, `data-reveal-mode="once"`)
}

func TestLandingHandlerResetsFAQ(t *testing.T) {
	h := newTestHandlers(t, &memoryStore{}, nil)
	sess := h.Visitors.Get(testVisitorID)
	_, err := sess.FAQ.Toggle(1)
	require.NoError(t, err)

	_, c, _ := setupEcho(http.MethodGet, "/", nil)
	require.NoError(t, h.LandingHandler(c))

	for i, open := range h.Visitors.Get(testVisitorID).FAQ.Snapshot() {
		assert.False(t, open, "entry %d", i)
	}
}

func TestLandingHandlerKeepsConfirmation(t *testing.T) {
	h := newTestHandlers(t, &memoryStore{}, nil)
	c, _ := setupForm("/contato", leadValues(mariaSilva()), false)
	require.NoError(t, h.SubmitContactHandler(c))

	_, c, rec := setupEcho(http.MethodGet, "/", nil)
	require.NoError(t, h.LandingHandler(c))
	assert.Contains(t, rec.Body.String(), "Mensagem Enviada!")
}

func TestLandingHandlerPageVariant(t *testing.T) {
	h := newTestHandlers(t, &memoryStore{}, nil)

	_, c, rec := setupEcho(http.MethodGet, "/", nil)
	cfg := testConfig()
	cfg.PageVariant = templates.VariantProfile
	c.Set("config", cfg)

	require.NoError(t, h.LandingHandler(c))
	assert.Contains(t, rec.Body.String(), "page--profile")
}

func TestProfileHandler(t *testing.T) {
	h := newTestHandlers(t, &memoryStore{}, nil)

	_, c, rec := setupEcho(http.MethodGet, "/apresentacao", nil)
	require.NoError(t, h.ProfileHandler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "page--profile")
	assert.Contains(t, body, `href="https://example.com/apresentacao"`)
	assert.NotContains(t, body, `hx-post="/contato"`)
}
