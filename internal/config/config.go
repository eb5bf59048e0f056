// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the runtime settings shared by the CLI and the HTTP server.
type Config struct {
	// Port the HTTP API listens on.
	Port int
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string
	// StatementYear, when non-zero, is applied to dates that carry no year.
	StatementYear int
	// MinTables is the table count at which the extraction fallback chain
	// stops trying further sources.
	MinTables int
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in when present; missing keys fall back to defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:      8080,
		LogLevel:  "info",
		MinTables: 1,
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse PORT %q: %w", v, err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("STATEMENT_YEAR"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse STATEMENT_YEAR %q: %w", v, err)
		}
		cfg.StatementYear = y
	}
	if v := os.Getenv("MIN_TABLES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse MIN_TABLES %q: %w", v, err)
		}
		cfg.MinTables = n
	}
	return cfg, nil
}
