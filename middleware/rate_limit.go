package middleware

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"sync"
	"time"

	"lawyer_landing_go/logger"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitStore counts requests per key inside a fixed window
type RateLimitStore interface {
	// Allow records one request for key and reports whether it is within limit
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimitConfig defines the configuration for rate limiting
type RateLimitConfig struct {
	// Requests is the maximum number of requests allowed within the window
	Requests int
	// Window is the time window for rate limiting
	Window time.Duration
	// Prefix namespaces the keys of this limiter in a shared store
	Prefix string
	// KeyFunc is a function that returns a unique key for rate limiting (defaults to IP)
	KeyFunc func(c echo.Context) string
	// Message is the error message returned when rate limit is exceeded
	Message string
	// OnLimited is called for every rejected request
	OnLimited func(c echo.Context)
}

// RateLimiter is a per-endpoint rate limiter
type RateLimiter struct {
	config RateLimitConfig
	store  RateLimitStore
}

// NewRateLimiter creates a new rate limiter with the given configuration.
// A nil store means a process-local memory store.
func NewRateLimiter(config RateLimitConfig, store RateLimitStore) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c echo.Context) string {
			return c.RealIP()
		}
	}
	if config.Message == "" {
		config.Message = "Muitas tentativas. Aguarde um momento e tente novamente."
	}
	if config.Prefix == "" {
		config.Prefix = "ratelimit"
	}
	if store == nil {
		store = NewMemoryRateLimitStore()
	}
	return &RateLimiter{config: config, store: store}
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rl.config.Prefix + ":" + rl.config.KeyFunc(c)

			allowed, err := rl.store.Allow(c.Request().Context(), key, rl.config.Requests, rl.config.Window)
			if err != nil {
				// Fail open: a broken limiter must not block visitors from reaching the attorney
				logger.Warn("Rate limit store unavailable", zap.String("key", key), zap.Error(err))
				return next(c)
			}
			if allowed {
				return next(c)
			}

			if rl.config.OnLimited != nil {
				rl.config.OnLimited(c)
			}
			c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", int(rl.config.Window.Seconds())))
			if c.Request().Header.Get("HX-Request") == "true" {
				return c.HTML(http.StatusTooManyRequests, `<div class="form-alert form-alert--error" role="alert">`+html.EscapeString(rl.config.Message)+`</div>`)
			}
			return echo.NewHTTPError(http.StatusTooManyRequests, rl.config.Message)
		}
	}
}

// rateLimitEntry tracks request count and window expiration
type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

// MemoryRateLimitStore keeps counters in process memory
type MemoryRateLimitStore struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewMemoryRateLimitStore creates a store and starts its cleanup goroutine
func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	s := &MemoryRateLimitStore{
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go s.cleanup()
	return s
}

func (s *MemoryRateLimitStore) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, exists := s.entries[key]
	if !exists || now.After(entry.expiresAt) {
		s.entries[key] = &rateLimitEntry{count: 1, expiresAt: now.Add(window)}
		return true, nil
	}
	if entry.count >= limit {
		return false, nil
	}
	entry.count++
	return true, nil
}

// Close stops the cleanup goroutine
func (s *MemoryRateLimitStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

// cleanup removes expired entries every minute
func (s *MemoryRateLimitStore) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := s.now()
			for key, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

// RedisRateLimitStore shares counters between server instances
type RedisRateLimitStore struct {
	client *redis.Client
}

// NewRedisRateLimitStore wraps an existing client
func NewRedisRateLimitStore(client *redis.Client) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client}
}

func (s *RedisRateLimitStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	// The first request of a window starts its expiry
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return count <= int64(limit), nil
}

// NewRedisClient parses REDIS_URL and pings the server. It returns nil when url is empty.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis not available: %w", err)
	}
	return client, nil
}

// NewContactRateLimiter limits lead submissions to perMinute per IP (10 when unset)
func NewContactRateLimiter(perMinute int, store RateLimitStore, onLimited func(c echo.Context)) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	return NewRateLimiter(RateLimitConfig{
		Requests:  perMinute,
		Window:    1 * time.Minute,
		Prefix:    "contato",
		Message:   "Muitos envios em pouco tempo. Aguarde um minuto ou fale conosco pelo WhatsApp.",
		OnLimited: onLimited,
	}, store)
}
