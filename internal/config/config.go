package config

import (
	"log"
	"os"
	"strconv"
)

// Config carries everything the server reads from the environment. Callers
// load a .env file (godotenv) before Load if they want file-based settings.
type Config struct {
	Port string
	Env  string

	// DatabaseDSN selects postgres when set; otherwise the embedded sqlite
	// file at SQLitePath is used.
	DatabaseDSN string
	SQLitePath  string

	JWTSecret       string
	TokenTTLMin     int // default token lifetime, minutes
	LoginTTLMin     int // lifetime granted at /token, minutes
	UploadDir       string
	LogLevel        string
	RunMigrations   bool
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

// Load reads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.DatabaseDSN = os.Getenv("DATABASE_DSN")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "quotations.db")
	cfg.JWTSecret = getEnv("JWT_SECRET", "a_very_secret_key_that_should_be_changed")
	cfg.TokenTTLMin = getEnvInt("TOKEN_TTL_MINUTES", 15)
	cfg.LoginTTLMin = getEnvInt("LOGIN_TOKEN_TTL_MINUTES", 30)
	cfg.UploadDir = getEnv("UPLOAD_DIR", "uploads")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.RunMigrations = ParseBool("MIGRATIONS", false)
	cfg.ReadTimeoutSec = getEnvInt("READ_TIMEOUT_SECONDS", 15)
	cfg.WriteTimeoutSec = getEnvInt("WRITE_TIMEOUT_SECONDS", 30)
	cfg.IdleTimeoutSec = getEnvInt("IDLE_TIMEOUT_SECONDS", 60)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid integer for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
