// Package config loads splitpad settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mmynk/splitpad/internal/export"
	"github.com/mmynk/splitpad/internal/ledger"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

type Config struct {
	// HTTP server
	Port int

	// Storage
	StoreBackend string
	DBPath       string
	JSONPath     string

	// Presentation
	Currency            string
	DefaultParticipants []string

	// Observability
	LogLevel       string
	MetricsEnabled bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port: getEnvInt("PORT", 8080),

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendSQLite)),
		DBPath:       getEnv("DB_PATH", "./data/splitpad.db"),
		JSONPath:     getEnv("JSON_PATH", "./data/splitpad.json"),

		Currency:            getEnv("CURRENCY", export.DefaultCurrency),
		DefaultParticipants: getEnvList("DEFAULT_PARTICIPANTS", ledger.DefaultParticipants),

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}
}

// Validate validates the configuration and returns an error listing every problem.
func (c *Config) Validate() error {
	var errors []string

	if c.Port < 1 || c.Port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}

	switch c.StoreBackend {
	case BackendSQLite:
		if c.DBPath == "" {
			errors = append(errors, "DB_PATH cannot be empty when using sqlite backend")
		}
	case BackendJSON:
		if c.JSONPath == "" {
			errors = append(errors, "JSON_PATH cannot be empty when using json backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid store backend '%s': must be one of [%s %s]", c.StoreBackend, BackendSQLite, BackendJSON))
	}

	if strings.TrimSpace(c.Currency) == "" {
		errors = append(errors, "currency label cannot be empty")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		return -1
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping blank entries.
func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
