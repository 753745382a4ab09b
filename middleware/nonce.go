package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"lawyer_landing_go/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type contextKey string

const NonceKey contextKey = "csp_nonce"

// CSPConfig lists the extra origins a deployment needs beyond the built-in ones
type CSPConfig struct {
	// ImageOrigins hosts the share image or artifact bucket when not served locally
	ImageOrigins []string
	// ReportOnly sends Content-Security-Policy-Report-Only instead of enforcing
	ReportOnly bool
}

// GenerateNonce returns 128 random bits, URL-safe base64 encoded
func GenerateNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ContentSecurityPolicy allows our own assets, htmx from unpkg and the Turnstile widget
func ContentSecurityPolicy(nonce string, cfg CSPConfig) string {
	img := append([]string{"'self'", "data:"}, cfg.ImageOrigins...)
	directives := []string{
		"default-src 'self'",
		"script-src 'self' 'nonce-" + nonce + "' https://unpkg.com https://challenges.cloudflare.com",
		"style-src 'self' 'unsafe-inline'",
		"img-src " + strings.Join(img, " "),
		"connect-src 'self' https://challenges.cloudflare.com",
		"frame-src https://challenges.cloudflare.com",
		"form-action 'self'",
		"base-uri 'self'",
		"object-src 'none'",
		"frame-ancestors 'none'",
	}
	return strings.Join(directives, "; ")
}

// CSPNonce issues a per-request script nonce and the matching policy header.
// A request is refused rather than served with a guessable nonce.
func CSPNonce(cfg CSPConfig) echo.MiddlewareFunc {
	header := echo.HeaderContentSecurityPolicy
	if cfg.ReportOnly {
		header = echo.HeaderContentSecurityPolicyReportOnly
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			nonce, err := GenerateNonce()
			if err != nil {
				logger.Error("Failed to generate nonce", zap.Error(err))
				return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(fmt.Errorf("csp nonce: %w", err))
			}

			c.Set(string(NonceKey), nonce)
			ctx := context.WithValue(c.Request().Context(), NonceKey, nonce)
			c.SetRequest(c.Request().WithContext(ctx))

			c.Response().Header().Set(header, ContentSecurityPolicy(nonce, cfg))
			return next(c)
		}
	}
}

// GetNonce retrieves the nonce from the context
func GetNonce(ctx context.Context) string {
	if val, ok := ctx.Value(NonceKey).(string); ok {
		return val
	}
	return ""
}
