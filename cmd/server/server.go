package main

import (
	"io/fs"
	"path/filepath"

	"lawyer_landing_go/config"
	"lawyer_landing_go/handlers"
	"lawyer_landing_go/logger"
	"lawyer_landing_go/metrics"
	"lawyer_landing_go/middleware"
	"lawyer_landing_go/tracing"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// newServer builds the Echo instance with every route mounted
func newServer(cfg *config.Config, h *handlers.Handlers, limits middleware.RateLimitStore, assets fs.FS) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.IPExtractor = ipExtractor(cfg)

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Tracing(tracing.ServiceName))
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("ip", v.RemoteIP),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "0",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         hstsMaxAge(cfg),
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(echomiddleware.BodyLimit("64K"))
	e.Use(middleware.CSPNonce(middleware.CSPConfig{ImageOrigins: cfg.ImageOrigins()}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files
	assetsGroup := e.Group("/static", middleware.StaticCache())
	assetsGroup.StaticFS("/", assets)

	// Operational endpoints
	e.GET("/health", h.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/sitemap.xml", handlers.GetSitemapHandler)
	e.GET("/robots.txt", handlers.GetRobotsHandler)
	e.GET("/whatsapp", h.WhatsAppRedirectHandler)

	// Visitor-facing pages and their htmx endpoints
	contactLimiter := middleware.NewContactRateLimiter(cfg.ContactRateLimit, limits, func(c echo.Context) {
		metrics.LeadSubmissions.WithLabelValues(metrics.OutcomeRateLimit).Inc()
	})
	pages := e.Group("", middleware.Visitor(cfg), middleware.CSRF(cfg))
	{
		pages.GET("/", h.LandingHandler)
		pages.GET("/apresentacao", h.ProfileHandler)
		pages.POST("/contato", h.SubmitContactHandler, contactLimiter.Middleware())
		pages.GET("/contato/form", h.ContactFormHandler)
		pages.POST("/contato/dismiss", h.DismissContactHandler)
		pages.POST("/faq/:index/toggle", h.ToggleFAQHandler)
	}

	// Lead listing, only with the database store and a configured password hash
	if cfg.AdminEnabled() {
		admin := e.Group("/admin", middleware.RequireAdmin(cfg))
		{
			admin.GET("/leads", h.ListLeadsHandler)
			admin.GET("/leads/export", h.ExportLeadsHandler)
		}
	} else {
		logger.Info("Admin lead routes disabled")
	}

	return e
}

func hstsMaxAge(cfg *config.Config) int {
	if cfg.IsProduction() {
		return 31536000
	}
	return 0
}

func dirOf(path string) string {
	return filepath.Dir(path)
}

// ipExtractor decides which address the rate limiter and logs see. Forwarded
// headers are honoured only when they arrive from a configured proxy range.
func ipExtractor(cfg *config.Config) echo.IPExtractor {
	nets, err := cfg.TrustedProxyNets()
	if err != nil || len(nets) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range nets {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
