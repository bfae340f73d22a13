package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/jeswin2007cs/scms/internal/store"
)

// App holds the runtime configuration. Values come from environment
// variables; when CONFIG_PATH names a YAML file it is read first and the
// environment overrides it.
type App struct {
	Env      string `yaml:"env" env:"APP_ENV" env-default:"dev"`
	HTTPPort string `yaml:"http_port" env:"HTTP_PORT" env-default:"5000"`

	DataDir      string `yaml:"data_dir" env:"DATA_DIR" env-default:"."`
	StoreBackend string `yaml:"store_backend" env:"STORE_BACKEND" env-default:"file"`
	SQLitePath   string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"scms.db"`
	DatabaseURL  string `yaml:"database_url" env:"DATABASE_URL"`
	RedisAddr    string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPrefix  string `yaml:"redis_prefix" env:"REDIS_PREFIX" env-default:"scms:"`

	SessionName   string `yaml:"session_name" env:"SESSION_NAME" env-default:"scms_session"`
	SessionSecret string `yaml:"session_secret" env:"SESSION_SECRET" env-default:"secret123"`
	SessionMaxAge int    `yaml:"session_max_age" env:"SESSION_MAX_AGE" env-default:"86400"`

	TemplatesDir string `yaml:"templates_dir" env:"TEMPLATES_DIR" env-default:"web/templates"`
	StaticDir    string `yaml:"static_dir" env:"STATIC_DIR" env-default:"web/static"`
	PhotosDir    string `yaml:"photos_dir" env:"PHOTOS_DIR" env-default:"photos"`

	JWTIssuer     string        `yaml:"jwt_issuer" env:"JWT_ISSUER" env-default:"scms"`
	JWTSigningKey string        `yaml:"jwt_signing_key" env:"JWT_SIGNING_KEY"` // empty disables /api/token
	AccessTTL     time.Duration `yaml:"access_ttl" env:"ACCESS_TTL" env-default:"15m"`
	RefreshTTL    time.Duration `yaml:"refresh_ttl" env:"REFRESH_TTL" env-default:"24h"`

	LoginRateLimitPerMin int      `yaml:"login_rate_limit_per_min" env:"LOGIN_RATE_LIMIT_PER_MIN" env-default:"30"`
	CORSOrigins          []string `yaml:"cors_origins" env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:5000"`
}

// Load reads the configuration and validates it.
func Load() (App, error) {
	var cfg App
	var err error
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return App{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return App{}, err
	}
	return cfg, nil
}

const minSigningKeyLen = 32

// Validate rejects settings the server cannot start with.
func (a App) Validate() error {
	switch a.StoreBackend {
	case store.BackendFile, store.BackendSQLite, store.BackendRedis:
	case store.BackendPostgres:
		if a.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", a.StoreBackend)
	}
	if a.SessionSecret == "" {
		return errors.New("config: SESSION_SECRET must not be empty")
	}
	if a.Production() && a.JWTSigningKey != "" && len(a.JWTSigningKey) < minSigningKeyLen {
		return fmt.Errorf("config: JWT_SIGNING_KEY must be at least %d bytes in production", minSigningKeyLen)
	}
	return nil
}

// Production reports whether the app runs in a production environment.
func (a App) Production() bool {
	return a.Env == "production" || a.Env == "prod"
}

// StoreOptions maps the configuration onto store.Open options.
func (a App) StoreOptions() store.Options {
	return store.Options{
		Backend:     a.StoreBackend,
		Dir:         a.DataDir,
		SQLitePath:  a.SQLitePath,
		DatabaseURL: a.DatabaseURL,
		RedisAddr:   a.RedisAddr,
		RedisPrefix: a.RedisPrefix,
	}
}
