package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/cerebro/internal/logger"
)

type Config struct {
	Addr                  string
	DBPath                string
	LogLevel              string
	Timezone              string
	DefaultUserID         int64
	AllowedOrigin         string
	RequestTimeoutSeconds int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or unparsable.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                  envOr("ADDR", ":8080"),
		DBPath:                envOr("DB_PATH", "file:cerebro.db"),
		LogLevel:              strings.ToUpper(envOr("LOG_LEVEL", "INFO")),
		Timezone:              envOr("TIMEZONE", "Local"),
		DefaultUserID:         int64(envIntOr("DEFAULT_USER_ID", 1)),
		AllowedOrigin:         envOr("ALLOWED_ORIGIN", "http://localhost:5173"),
		RequestTimeoutSeconds: envIntOr("REQUEST_TIMEOUT_SECONDS", 30),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	if !logger.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q must be one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err))
	}
	if c.DefaultUserID <= 0 {
		errs = append(errs, fmt.Errorf("DEFAULT_USER_ID must be positive, got %d", c.DefaultUserID))
	}
	if c.RequestTimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive, got %d", c.RequestTimeoutSeconds))
	}
	return errors.Join(errs...)
}

// Location resolves Timezone. "Local" and "" mean the process zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "Local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
