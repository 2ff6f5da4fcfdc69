// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps the size of request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// DBMaxConns is the upper bound of the Postgres connection pool. Defaults to 10.
	DBMaxConns int32

	// MigrateOnStart applies pending goose migrations before serving.
	MigrateOnStart bool

	// ShutdownTimeout bounds graceful shutdown. Defaults to 15s.
	ShutdownTimeout time.Duration

	// TracesExporter selects where finished spans go: "none" (default) or
	// "stdout".
	TracesExporter string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set together
// with any variables whose values cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		TracesExporter: getEnv("TRACES_EXPORTER", "none"),
	}

	var missing, invalid []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if v, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64); err != nil || v <= 0 {
		invalid = append(invalid, "MAX_BODY_BYTES")
	} else {
		cfg.MaxBodyBytes = v
	}

	if v, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "10"), 10, 32); err != nil || v <= 0 {
		invalid = append(invalid, "DB_MAX_CONNS")
	} else {
		cfg.DBMaxConns = int32(v)
	}

	if v, err := strconv.ParseBool(getEnv("MIGRATE_ON_START", "false")); err != nil {
		invalid = append(invalid, "MIGRATE_ON_START")
	} else {
		cfg.MigrateOnStart = v
	}

	if v, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "15s")); err != nil || v <= 0 {
		invalid = append(invalid, "SHUTDOWN_TIMEOUT")
	} else {
		cfg.ShutdownTimeout = v
	}

	switch cfg.TracesExporter {
	case "none", "stdout":
	default:
		invalid = append(invalid, "TRACES_EXPORTER")
	}

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "required environment variables not set: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		problems = append(problems, "invalid values for: "+strings.Join(invalid, ", "))
	}
	if len(problems) > 0 {
		return Config{}, fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
