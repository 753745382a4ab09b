package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FLAG_ON", "yes")
	t.Setenv("FLAG_OFF", "0")
	t.Setenv("FLAG_BAD", "maybe")

	assert.True(t, getEnvBool("FLAG_ON", false))
	assert.False(t, getEnvBool("FLAG_OFF", true))
	assert.True(t, getEnvBool("FLAG_BAD", true))
	assert.False(t, getEnvBool("FLAG_MISSING", false))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("D_PARSE", "1500ms")
	t.Setenv("D_SECS", "7")
	t.Setenv("D_BAD", "soon")

	assert.Equal(t, 1500*time.Millisecond, getEnvDuration("D_PARSE", time.Second))
	assert.Equal(t, 7*time.Second, getEnvDuration("D_SECS", time.Second))
	assert.Equal(t, time.Second, getEnvDuration("D_BAD", time.Second))
	assert.Equal(t, 5*time.Second, getEnvDuration("D_MISSING", 5*time.Second))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("N_OK", "25")
	t.Setenv("N_BAD", "lots")

	assert.Equal(t, 25, getEnvInt("N_OK", 10))
	assert.Equal(t, 10, getEnvInt("N_BAD", 10))
	assert.Equal(t, 3, getEnvInt("N_MISSING", 3))
}

func TestOGImage(t *testing.T) {
	cfg := &Config{AppURL: "https://example.com"}
	assert.Equal(t, "https://example.com/static/images/og.svg", cfg.OGImage())

	cfg.OGImageURL = "https://cdn.example.com/og.png"
	assert.Equal(t, "https://cdn.example.com/og.png", cfg.OGImage())
}

func TestImageOrigins(t *testing.T) {
	cfg := &Config{AppURL: "https://alinesantesso.adv.br"}
	assert.Empty(t, cfg.ImageOrigins())

	cfg.OGImageURL = "https://cdn.example.com/og.png"
	cfg.R2PublicURL = "https://cdn.example.com"
	assert.Equal(t, []string{"https://cdn.example.com"}, cfg.ImageOrigins())

	cfg.OGImageURL = "https://alinesantesso.adv.br/static/og.png"
	cfg.R2PublicURL = "not a url"
	assert.Empty(t, cfg.ImageOrigins())
}

func TestTurnstileHostname(t *testing.T) {
	cfg := &Config{Environment: "production", AppURL: "https://alinesantesso.adv.br"}
	assert.Equal(t, "alinesantesso.adv.br", cfg.TurnstileHostname())

	cfg.Environment = "development"
	assert.Empty(t, cfg.TurnstileHostname())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_URL", "https://example.com/")

	cfg := Load()
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "https://example.com", cfg.AppURL)
	assert.Equal(t, LeadStoreDatabase, cfg.LeadStore)
	assert.Equal(t, DBDriverSQLite, cfg.DBDriver)
	assert.Equal(t, RevealOnce, cfg.RevealMode)
	assert.Equal(t, 5*time.Second, cfg.SuccessDisplay)
	assert.Equal(t, 10, cfg.ContactRateLimit)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			LeadStore:        LeadStoreDatabase,
			DBDriver:         DBDriverSQLite,
			DBPath:           "leads.db",
			RevealMode:       RevealOnce,
			SuccessDisplay:   5 * time.Second,
			ContactRateLimit: 10,
		}
	}

	t.Run("BadTrustedProxy", func(t *testing.T) {
		cfg := base()
		cfg.TrustedProxies = []string{"10.0.0.0/8", "not-an-ip"}
		assert.ErrorContains(t, cfg.Validate(), "TRUSTED_PROXIES")
	})

	t.Run("SupabaseMissingKey", func(t *testing.T) {
		cfg := base()
		cfg.LeadStore = LeadStoreSupabase
		cfg.SupabaseURL = "https://x.supabase.co"
		assert.ErrorContains(t, cfg.Validate(), "SUPABASE_ANON_KEY")
	})

	t.Run("PostgresWithoutURL", func(t *testing.T) {
		cfg := base()
		cfg.DBDriver = DBDriverPostgres
		assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")
	})

	t.Run("LibSQLWithoutURL", func(t *testing.T) {
		cfg := base()
		cfg.DBDriver = DBDriverLibSQL
		assert.ErrorContains(t, cfg.Validate(), "TURSO_DATABASE_URL")
	})

	t.Run("UnknownStore", func(t *testing.T) {
		cfg := base()
		cfg.LeadStore = "airtable"
		assert.Error(t, cfg.Validate())
	})

	t.Run("UnknownRevealMode", func(t *testing.T) {
		cfg := base()
		cfg.RevealMode = "sometimes"
		assert.ErrorContains(t, cfg.Validate(), "REVEAL_MODE")
	})

	t.Run("AdminEnabled", func(t *testing.T) {
		cfg := base()
		assert.False(t, cfg.AdminEnabled())
		cfg.AdminPasswordHash = "$2a$10$abc"
		assert.True(t, cfg.AdminEnabled())
		cfg.LeadStore = LeadStoreSupabase
		assert.False(t, cfg.AdminEnabled())
	})
}

func TestTrustedProxyNets(t *testing.T) {
	cfg := &Config{TrustedProxies: []string{"10.0.0.0/8", "203.0.113.7", "2001:db8::1"}}
	nets, err := cfg.TrustedProxyNets()
	require.NoError(t, err)
	require.Len(t, nets, 3)
	assert.Equal(t, "10.0.0.0/8", nets[0].String())
	assert.Equal(t, "203.0.113.7/32", nets[1].String())
	assert.Equal(t, "2001:db8::1/128", nets[2].String())

	nets, err = (&Config{}).TrustedProxyNets()
	require.NoError(t, err)
	assert.Empty(t, nets)
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("TEST_LIST", " 10.0.0.1, ,192.168.0.0/16 ")
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, getEnvList("TEST_LIST"))

	t.Setenv("TEST_LIST", "")
	assert.Empty(t, getEnvList("TEST_LIST"))
}
