// Package config builds the explicit configuration object for the
// server. All environment access happens here so the components that
// consume credentials can be constructed and tested in isolation.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissing indicates a required environment value is absent.
// It is fatal for any code path that needs the value.
var ErrMissing = errors.New("missing required environment variable")

// Config holds everything the server reads from the environment.
type Config struct {
	HTTPAddr string
	Storage  StorageConfig
	Admin    AdminConfig
	Session  SessionConfig
}

// StorageConfig selects and parameterizes the storage backend.
type StorageConfig struct {
	// Driver is "postgres" (hosted database, production) or
	// "sqlite" (local file, development and tests).
	Driver string

	// DatabaseURL is the service-role DSN for the hosted database.
	// Required when Driver is "postgres".
	DatabaseURL string

	// Path is the SQLite database file. Used when Driver is "sqlite".
	Path string
}

// AdminConfig carries the shared admin credential. Exactly one of
// Password (plaintext, compared trimmed) or PasswordHash (bcrypt)
// must be set.
type AdminConfig struct {
	Password     string
	PasswordHash string
}

// SessionConfig parameterizes session token issuance.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// Load reads the configuration from the process environment. A .env
// file in the working directory is applied first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		Storage: StorageConfig{
			Driver:      getEnv("STORAGE_DRIVER", "postgres"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Path:        getEnv("DB_PATH", "./data/specials.db"),
		},
		Admin: AdminConfig{
			Password:     os.Getenv("ADMIN_PASSWORD"),
			PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		},
		Session: SessionConfig{
			Secret: os.Getenv("SESSION_SECRET"),
			TTL:    12 * time.Hour,
		},
	}

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", ttl, err)
		}
		cfg.Session.TTL = d
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "postgres":
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL", ErrMissing)
		}
	case "sqlite":
		// Path always has a default.
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		return fmt.Errorf("%w: ADMIN_PASSWORD or ADMIN_PASSWORD_HASH", ErrMissing)
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("%w: SESSION_SECRET", ErrMissing)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
