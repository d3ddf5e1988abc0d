// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`

	// StoreDriver selects the contact store: mongo, postgres or memory.
	StoreDriver string `mapstructure:"STORE_DRIVER"`
	// MongoURI is the MongoDB connection string; required for the mongo driver.
	MongoURI string `mapstructure:"MONGODB_URI"`
	// MongoDatabase is the database holding the contacts collection.
	MongoDatabase string `mapstructure:"MONGODB_DB"`
	// MongoCollection is the collection name for submissions.
	MongoCollection string `mapstructure:"MONGODB_COLLECTION"`
	// DatabaseURL is the Postgres DSN; required for the postgres driver.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// AdminSecret is the shared admin password.
	AdminSecret string `mapstructure:"ADMIN_SECRET"`
	// AdminPasswordHash is an optional bcrypt hash checked instead of AdminSecret.
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`
	// AdminTokenSecret signs admin tokens. Falls back to AdminSecret when empty.
	AdminTokenSecret string `mapstructure:"ADMIN_TOKEN_SECRET"`
	// AdminTokenTTL is the admin token lifetime (e.g. "24h").
	AdminTokenTTL string `mapstructure:"ADMIN_TOKEN_TTL"`

	// CORSAllowedOrigin is sent as Access-Control-Allow-Origin.
	CORSAllowedOrigin string `mapstructure:"CORS_ALLOWED_ORIGIN"`
	// PublicListingEnabled exposes GET /api/contacts without credentials.
	PublicListingEnabled bool `mapstructure:"PUBLIC_LISTING_ENABLED"`

	LogLevel string `mapstructure:"LOG_LEVEL"`

	// OTLPEndpoint is the OTLP gRPC collector; empty disables export.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	ServiceName  string `mapstructure:"OTEL_SERVICE_NAME"`

	// ShutdownTimeout bounds graceful shutdown (e.g. "10s").
	ShutdownTimeout string `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored. Env vars override .env.
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read builds Config like Load without validating it. Tools that only need
// the store settings use it so admin secrets are not required.
func Read() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("STORE_DRIVER", StoreMongo)
	v.SetDefault("MONGODB_URI", "")
	v.SetDefault("MONGODB_DB", "joe-profile")
	v.SetDefault("MONGODB_COLLECTION", "contacts")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("ADMIN_SECRET", "")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("ADMIN_TOKEN_SECRET", "")
	v.SetDefault("ADMIN_TOKEN_TTL", "24h")
	v.SetDefault("CORS_ALLOWED_ORIGIN", "*")
	v.SetDefault("PUBLIC_LISTING_ENABLED", true)
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("OTEL_SERVICE_NAME", "portfolio-api")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPAddr == "" {
		return errors.New("config: HTTP_ADDR must be set")
	}

	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("config: MONGODB_URI must be set when STORE_DRIVER=mongo")
		}
		if c.MongoDatabase == "" {
			c.MongoDatabase = "joe-profile"
		}
		if c.MongoCollection == "" {
			c.MongoCollection = "contacts"
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL must be set when STORE_DRIVER=postgres")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("config: STORE_DRIVER must be mongo, postgres or memory, got %q", c.StoreDriver)
	}

	if c.AdminSecret == "" && c.AdminPasswordHash == "" {
		return errors.New("config: ADMIN_SECRET or ADMIN_PASSWORD_HASH must be set")
	}
	if c.SigningSecret() == "" {
		return errors.New("config: ADMIN_TOKEN_SECRET must be set when only ADMIN_PASSWORD_HASH is configured")
	}
	if d, err := time.ParseDuration(c.AdminTokenTTL); err != nil || d <= 0 {
		return fmt.Errorf("config: ADMIN_TOKEN_TTL must be a positive duration, got %q", c.AdminTokenTTL)
	}
	return nil
}

// SigningSecret returns the key used to sign admin tokens.
func (c *Config) SigningSecret() string {
	if c.AdminTokenSecret != "" {
		return c.AdminTokenSecret
	}
	return c.AdminSecret
}

// SharesSecret reports whether the login password doubles as the signing key.
func (c *Config) SharesSecret() bool {
	return c.AdminTokenSecret == ""
}

// TokenTTL parses AdminTokenTTL. Returns 24h if unset or invalid.
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.AdminTokenTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// ShutdownGrace parses ShutdownTimeout. Returns 10s if unset or invalid.
func (c *Config) ShutdownGrace() time.Duration {
	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}
