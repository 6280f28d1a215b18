package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	TablePrefix string

	// Cloud sync. Empty DatabaseURL runs the server offline.
	DatabaseURL   string
	SnapshotEvery int // folder saves between cloud snapshots, 0 disables

	// Local store
	LocalDBPath string

	// Notifications fan-out. Empty RedisURL keeps them in-process.
	RedisURL string

	// Auth
	AuthEnabled     bool
	SupabaseURL     string
	SupabaseJWKSURL string // Constructed from SupabaseURL + /auth/v1/.well-known/jwks.json

	// Session user and workspace when auth is disabled
	UserID      int64
	WorkspaceID string

	// Logging
	LogDir      string
	LogMaxFiles int

	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	supabaseURL := strings.TrimRight(getEnv("SUPABASE_URL", ""), "/")

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     env,
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:     getTablePrefix(env),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		SnapshotEvery:   getEnvInt("SNAPSHOT_EVERY", 20),
		LocalDBPath:     getEnv("LOCAL_DB_PATH", "folio.db"),
		RedisURL:        getEnv("REDIS_URL", ""),
		AuthEnabled:     getEnv("AUTH_ENABLED", "false") == "true",
		SupabaseURL:     supabaseURL,
		SupabaseJWKSURL: supabaseURL + "/auth/v1/.well-known/jwks.json",
		UserID:          int64(getEnvInt("USER_ID", 1)),
		WorkspaceID:     getEnv("WORKSPACE_ID", "default-workspace"),
		LogDir:          getEnv("LOG_DIR", ""),
		LogMaxFiles:     getEnvInt("LOG_MAX_FILES", 10),
		// default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// CloudEnabled reports whether a remote Postgres backend is configured
func (c *Config) CloudEnabled() bool {
	return c.DatabaseURL != ""
}

// CORSOriginList splits CORSOrigins on commas
func (c *Config) CORSOriginList() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
