package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNonceIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n, err := GenerateNonce()
		require.NoError(t, err)
		assert.Len(t, n, 22)
		assert.False(t, seen[n])
		seen[n] = true
	}
}

func runCSP(t *testing.T, cfg CSPConfig) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, CSPNonce(cfg)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c))
	return c, rec
}

func TestCSPNonceHeaderMatchesPageNonce(t *testing.T) {
	c, rec := runCSP(t, CSPConfig{})

	nonce := GetNonce(c.Request().Context())
	require.NotEmpty(t, nonce)
	assert.Equal(t, nonce, c.Get(string(NonceKey)))

	csp := rec.Header().Get(echo.HeaderContentSecurityPolicy)
	assert.Contains(t, csp, "'nonce-"+nonce+"'")
	assert.Contains(t, csp, "https://unpkg.com")
	assert.NotContains(t, csp, "unsafe-eval")
	assert.Empty(t, rec.Header().Get(echo.HeaderContentSecurityPolicyReportOnly))
}

func TestCSPNonceReportOnly(t *testing.T) {
	_, rec := runCSP(t, CSPConfig{ReportOnly: true})
	assert.Empty(t, rec.Header().Get(echo.HeaderContentSecurityPolicy))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentSecurityPolicyReportOnly), "script-src")
}

func TestContentSecurityPolicyImageOrigins(t *testing.T) {
	csp := ContentSecurityPolicy("abc", CSPConfig{ImageOrigins: []string{"https://cdn.example.com"}})
	assert.Contains(t, csp, "img-src 'self' data: https://cdn.example.com")
	assert.Contains(t, csp, "frame-ancestors 'none'")
	assert.Contains(t, csp, "object-src 'none'")
}

func TestGetNonceMissing(t *testing.T) {
	assert.Equal(t, "", GetNonce(context.Background()))
}
