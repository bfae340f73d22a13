package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("JWT_SIGNING_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "5000", cfg.HTTPPort)
	assert.Equal(t, "file", cfg.StoreBackend)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 30, cfg.LoginRateLimitPerMin)
	assert.Empty(t, cfg.JWTSigningKey, "bearer tokens are off unless a key is configured")
	assert.Equal(t, []string{"http://localhost:5000"}, cfg.CORSOrigins)
	assert.False(t, cfg.Production())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("DATA_DIR", "/srv/scms")
	t.Setenv("REFRESH_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Production())
	assert.Equal(t, "/srv/scms", cfg.StoreOptions().Dir)
	assert.Equal(t, 2*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: staging\nhttp_port: \"9000\"\nstore_backend: sqlite\nsqlite_path: data/scms.db\n"), 0o644))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.StoreOptions().Backend)
	assert.Equal(t, "data/scms.db", cfg.StoreOptions().SQLitePath)
}

func TestValidate(t *testing.T) {
	base := App{StoreBackend: "file", SessionSecret: "s"}
	assert.NoError(t, base.Validate())

	pg := base
	pg.StoreBackend = "postgres"
	assert.Error(t, pg.Validate())
	pg.DatabaseURL = "postgres://localhost/scms"
	assert.NoError(t, pg.Validate())

	unknown := base
	unknown.StoreBackend = "mongo"
	assert.Error(t, unknown.Validate())

	noSecret := base
	noSecret.SessionSecret = ""
	assert.Error(t, noSecret.Validate())

	prod := base
	prod.Env = "prod"
	assert.NoError(t, prod.Validate(), "no key means tokens are disabled")
	prod.JWTSigningKey = "short"
	assert.Error(t, prod.Validate())
	prod.JWTSigningKey = strings.Repeat("k", 32)
	assert.NoError(t, prod.Validate())
}
