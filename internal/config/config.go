package config

import (
	"os"
	"strconv"
)

type Config struct {
	DatabaseDSN string
	Env         string
	LogLevel    string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "budget_projet.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.LogLevel = getEnv("LOG_LEVEL", "warning")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			GetLogger().Warnf("valeur booléenne invalide pour %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
