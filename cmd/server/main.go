package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lawyer_landing_go/config"
	"lawyer_landing_go/db"
	"lawyer_landing_go/handlers"
	"lawyer_landing_go/logger"
	"lawyer_landing_go/middleware"
	"lawyer_landing_go/models"
	"lawyer_landing_go/services"
	"lawyer_landing_go/services/content"
	"lawyer_landing_go/static"
	"lawyer_landing_go/tracing"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.Initialize(logger.Config{
		Level:       cfg.LogLevel,
		LogDir:      cfg.LogDir,
		Environment: cfg.Environment,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.OTelEnabled, cfg.OTelEndpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	store, err := newLeadStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize lead store", zap.Error(err))
	}
	defer db.Close()

	site := content.MustLoad()
	validate := services.NewValidator()
	visitors := services.NewVisitorStore(cfg.SessionTTL, func() *services.VisitorSession {
		return &services.VisitorSession{
			Form: services.NewContactForm(store, services.ContactFormConfig{
				SuccessDisplay: cfg.SuccessDisplay,
				Validate:       validate,
			}),
			FAQ: services.NewFAQAccordion(len(site.FAQ)),
		}
	})
	sender, err := services.NewEmailSender(cfg)
	if err != nil {
		logger.Warn("Lead notifications disabled", zap.Error(err))
	}
	notifier := services.NewEmailNotifier(sender, cfg.LeadNotifyEmail)
	leads := services.NewLeadService(notifier, services.TurnstileVerifier(cfg.TurnstileSecretKey, cfg.TurnstileHostname()))
	h := handlers.New(site, visitors, leads, store)

	// Shared rate limit counters when Redis is reachable, process-local otherwise
	var limits middleware.RateLimitStore
	redisClient, err := middleware.NewRedisClient(ctx, cfg.RedisURL)
	switch {
	case err != nil:
		logger.Warn("Redis unavailable, rate limiting in memory", zap.Error(err))
	case redisClient != nil:
		defer redisClient.Close()
		limits = middleware.NewRedisRateLimitStore(redisClient)
	}

	assets := static.FS()
	middleware.InitAssetVersions(assets)

	e := newServer(cfg, h, limits, assets)

	go func() {
		logger.Info("Server starting",
			zap.String("port", cfg.ServerPort),
			zap.String("store", store.Kind()),
			zap.String("variant", cfg.PageVariant),
		)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	notifier.Wait()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown tracer", zap.Error(err))
	}
	logger.Info("Server exited")
}

// newLeadStore opens the backend selected by LEAD_STORE
func newLeadStore(cfg *config.Config) (services.LeadStore, error) {
	if cfg.LeadStore == config.LeadStoreSupabase {
		return services.NewSupabaseLeadStore(cfg, nil), nil
	}

	if cfg.DBDriver == config.DBDriverSQLite {
		if err := os.MkdirAll(dirOf(cfg.DBPath), 0755); err != nil {
			return nil, err
		}
	}
	if err := db.Initialize(cfg); err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.Lead{}); err != nil {
		return nil, err
	}
	return services.NewGormLeadStore(db.DB), nil
}
