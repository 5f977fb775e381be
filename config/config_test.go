package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CATALOG_URL", "https://example.com/plants.tsv")
	t.Setenv("AUTH_DISABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 15*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "@every 30m", cfg.Catalog.RefreshSchedule)
	assert.Equal(t, "structurelandscapes.com", cfg.Firebase.AllowedDomain)
	assert.False(t, cfg.Guide.ArchiveEnabled())
}

func TestLoadParsesTypedValues(t *testing.T) {
	t.Setenv("CATALOG_URL", "https://example.com/plants.tsv")
	t.Setenv("AUTH_DISABLED", "true")
	t.Setenv("SESSIONS_TTL", "45m")
	t.Setenv("SESSIONS_MAX_OPEN", "12")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("GUIDE_S3_BUCKET", "guides")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 45*time.Minute, cfg.Sessions.TTL)
	assert.Equal(t, 12, cfg.Sessions.MaxOpen)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Guide.ArchiveEnabled())
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("SESSIONS_TTL", "soon")
	t.Setenv("REDIS_DB", "x")
	t.Setenv("AUTH_DISABLED", "maybe")

	assert.Equal(t, 2*time.Hour, getEnvAsDuration("SESSIONS_TTL", 2*time.Hour))
	assert.Equal(t, 0, getEnvAsInt("REDIS_DB", 0))
	assert.False(t, getEnvAsBool("AUTH_DISABLED", false))
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server:   ServerConfig{Port: "8080"},
			Database: DatabaseConfig{Driver: DriverSQLite, SQLitePath: "x.db"},
			Firebase: FirebaseConfig{AuthDisabled: true},
			Catalog:  CatalogConfig{URL: "https://example.com"},
			Sessions: SessionConfig{MaxOpen: 1},
		}
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing catalog url", mutate: func(c *Config) { c.Catalog.URL = "" }, wantErr: "CATALOG_URL"},
		{name: "postgres without url", mutate: func(c *Config) { c.Database.Driver = DriverPostgres }, wantErr: "DATABASE_URL"},
		{name: "firestore without project", mutate: func(c *Config) { c.Database.Driver = DriverFirestore }, wantErr: "FIREBASE_PROJECT_ID"},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mongo" }, wantErr: "unsupported STORE_DRIVER"},
		{name: "auth needs project", mutate: func(c *Config) { c.Firebase.AuthDisabled = false }, wantErr: "AUTH_DISABLED"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
