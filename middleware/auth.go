package middleware

import (
	"net/http"
	"time"

	"lawyer_landing_go/config"
	"lawyer_landing_go/logger"
	"lawyer_landing_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const (
	// VisitorCookieName is the name of the visitor cookie
	VisitorCookieName = "visitor_id"
	// ContextKeyVisitor is the context key for the visitor id
	ContextKeyVisitor = "visitor_id"
	// visitorCookieMaxAge outlives the server-side session; an unknown id just starts a fresh session
	visitorCookieMaxAge = 30 * 24 * time.Hour
)

// Visitor ensures every request carries an opaque visitor id cookie
func Visitor(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if cookie, err := c.Cookie(VisitorCookieName); err == nil {
				if _, perr := uuid.Parse(cookie.Value); perr == nil {
					id = cookie.Value
				}
			}
			if id == "" {
				id = uuid.New().String()
				c.SetCookie(&http.Cookie{
					Name:     VisitorCookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(visitorCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   cfg.IsProduction(),
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(ContextKeyVisitor, id)
			return next(c)
		}
	}
}

// GetVisitorID retrieves the visitor id from context
func GetVisitorID(c echo.Context) string {
	id, _ := c.Get(ContextKeyVisitor).(string)
	return id
}

// RequireAdmin protects the lead listing with HTTP basic auth against a bcrypt hash
func RequireAdmin(cfg *config.Config) echo.MiddlewareFunc {
	return echomiddleware.BasicAuthWithConfig(echomiddleware.BasicAuthConfig{
		Realm: "Leads",
		Validator: func(user, password string, c echo.Context) (bool, error) {
			ok := services.CheckAdminCredentials(user, password, cfg.AdminUser, cfg.AdminPasswordHash)
			if !ok {
				logger.Warn("Admin authentication failed", zap.String("user", user), zap.String("ip", c.RealIP()))
			}
			return ok, nil
		},
	})
}
