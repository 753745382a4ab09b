package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Lead store backends
const (
	LeadStoreSupabase = "supabase"
	LeadStoreDatabase = "database"
)

// Database drivers for the database lead store
const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
	DBDriverLibSQL   = "libsql"
)

// Reveal animation modes
const (
	RevealOnce       = "once"
	RevealContinuous = "continuous"
)

type Config struct {
	ServerPort  string
	Environment string
	AppURL      string
	// Logging
	LogLevel string
	LogDir   string
	// Lead storage
	LeadStore          string
	DBDriver           string
	DBPath             string
	DatabaseURL        string
	TursoDatabaseURL   string
	TursoAuthToken     string
	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseLeadsTable string
	// Email (Resend)
	ResendAPIKey    string
	EmailFrom       string
	EmailFromName   string
	EmailTestMode   bool // When true, emails are logged to console instead of sent
	LeadNotifyEmail string
	// Cloudflare Turnstile
	TurnstileSiteKey   string
	TurnstileSecretKey string
	// Rate limiting (empty means in-memory)
	RedisURL string
	// Admin lead listing
	AdminUser         string
	AdminPasswordHash string
	// Cloudflare R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
	// Local fallback for exports and snapshots
	ArtifactDir string
	// Tracing
	OTelEnabled  bool
	OTelEndpoint string
	// Page behaviour
	PageVariant    string
	RevealMode     string
	SessionTTL     time.Duration
	SuccessDisplay time.Duration
	OGImageURL     string
	// Submissions per visitor IP per minute on /contato
	ContactRateLimit int
	// CIDRs of reverse proxies allowed to set X-Forwarded-For; empty trusts no header
	TrustedProxies []string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		AppURL:             strings.TrimRight(getEnv("APP_URL", "http://localhost:8080"), "/"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogDir:             getEnv("LOG_DIR", ""),
		LeadStore:          strings.ToLower(getEnv("LEAD_STORE", LeadStoreDatabase)),
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", DBDriverSQLite)),
		DBPath:             getEnv("DB_PATH", "db/leads.db"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		TursoDatabaseURL:   getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:     getEnv("TURSO_AUTH_TOKEN", ""),
		SupabaseURL:        strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseAnonKey:    getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseLeadsTable: getEnv("SUPABASE_LEADS_TABLE", "leads"),
		ResendAPIKey:       getEnv("RESEND_API_KEY", ""),
		EmailFrom:          getEnv("EMAIL_FROM", "site@alinesantesso.adv.br"),
		EmailFromName:      getEnv("EMAIL_FROM_NAME", "Site Aline Santesso"),
		EmailTestMode:      getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		LeadNotifyEmail:    getEnv("LEAD_NOTIFY_EMAIL", "alinesantesso@adv.oabsp.org.br"),
		TurnstileSiteKey:   getEnv("TURNSTILE_SITE_KEY", ""),
		TurnstileSecretKey: getEnv("TURNSTILE_SECRET_KEY", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		AdminUser:          getEnv("ADMIN_USER", "admin"),
		AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		R2AccountID:        getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:      getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:  getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:       getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:        getEnv("R2_PUBLIC_URL", ""),
		ArtifactDir:        getEnv("ARTIFACT_DIR", "./artifacts"),
		OTelEnabled:        getEnvBool("OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		PageVariant:        strings.ToLower(getEnv("PAGE_VARIANT", "full")),
		RevealMode:         strings.ToLower(getEnv("REVEAL_MODE", RevealOnce)),
		SessionTTL:         getEnvDuration("SESSION_TTL", 2*time.Hour),
		SuccessDisplay:     getEnvDuration("SUCCESS_DISPLAY", 5*time.Second),
		OGImageURL:         getEnv("OG_IMAGE_URL", ""),
		ContactRateLimit:   getEnvInt("CONTACT_RATE_LIMIT", 10),
		TrustedProxies:     getEnvList("TRUSTED_PROXIES"),
	}
}

// IsProduction reports whether the server runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OGImage returns the absolute URL of the social sharing image
func (c *Config) OGImage() string {
	if c.OGImageURL != "" {
		return c.OGImageURL
	}
	return c.AppURL + "/static/images/og.svg"
}

// ImageOrigins returns the external origins images are loaded from
func (c *Config) ImageOrigins() []string {
	var origins []string
	for _, raw := range []string{c.OGImageURL, c.R2PublicURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			continue
		}
		origin := u.Scheme + "://" + u.Host
		if !strings.HasPrefix(c.AppURL, origin) && !slices.Contains(origins, origin) {
			origins = append(origins, origin)
		}
	}
	return origins
}

// TurnstileHostname is the host captcha tokens must be solved on; empty outside production
func (c *Config) TurnstileHostname() string {
	if !c.IsProduction() {
		return ""
	}
	u, err := url.Parse(c.AppURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// AdminEnabled reports whether the admin lead endpoints should be mounted
func (c *Config) AdminEnabled() bool {
	return c.AdminPasswordHash != "" && c.LeadStore == LeadStoreDatabase
}

// Validate checks that the selected lead store has the settings it needs
func (c *Config) Validate() error {
	switch c.LeadStore {
	case LeadStoreSupabase:
		if c.SupabaseURL == "" || c.SupabaseAnonKey == "" {
			return fmt.Errorf("LEAD_STORE=supabase requires SUPABASE_URL and SUPABASE_ANON_KEY")
		}
	case LeadStoreDatabase:
		switch c.DBDriver {
		case DBDriverSQLite:
			if c.DBPath == "" {
				return fmt.Errorf("DB_DRIVER=sqlite requires DB_PATH")
			}
		case DBDriverPostgres:
			if c.DatabaseURL == "" {
				return fmt.Errorf("DB_DRIVER=postgres requires DATABASE_URL")
			}
		case DBDriverLibSQL:
			if c.TursoDatabaseURL == "" {
				return fmt.Errorf("DB_DRIVER=libsql requires TURSO_DATABASE_URL")
			}
		default:
			return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
		}
	default:
		return fmt.Errorf("unknown LEAD_STORE %q", c.LeadStore)
	}

	if c.RevealMode != RevealOnce && c.RevealMode != RevealContinuous {
		return fmt.Errorf("unknown REVEAL_MODE %q", c.RevealMode)
	}
	if c.SuccessDisplay <= 0 {
		return fmt.Errorf("SUCCESS_DISPLAY must be positive")
	}
	if c.ContactRateLimit <= 0 {
		return fmt.Errorf("CONTACT_RATE_LIMIT must be positive")
	}
	if _, err := c.TrustedProxyNets(); err != nil {
		return err
	}
	return nil
}

// TrustedProxyNets parses TrustedProxies; a bare IP is taken as a single host
func (c *Config) TrustedProxyNets() ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(c.TrustedProxies))
	for _, raw := range c.TrustedProxies {
		if !strings.Contains(raw, "/") {
			ip := net.ParseIP(raw)
			if ip == nil {
				return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q", raw)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q: %w", raw, err)
		}
		nets = append(nets, n)
	}
	return nets, nil
}

// getEnvList splits a comma separated variable, dropping blanks
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[WARNING] Invalid integer for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	// Bare integers are seconds
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("[WARNING] Invalid duration for %s: %q, using %s", key, value, defaultValue)
	return defaultValue
}
