package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/vytor/phraseflash/internal/logger"
)

type Config struct {
	Addr               string
	DBPath             string
	LogLevel           string
	LogColors          bool
	CharacterLanguages []string
	DefaultTimezone    string
	SessionSize        int
	CORSOrigins        []string
	RequestTimeout     time.Duration
	BatchWorkers       int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:phraseflash.db"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		LogColors:          envBoolOr("LOG_COLORS", true),
		CharacterLanguages: envListOr("CHARACTER_LANGUAGES", []string{"ja", "zh", "th"}),
		DefaultTimezone:    envOr("DEFAULT_TIMEZONE", "UTC"),
		SessionSize:        envIntOr("SESSION_SIZE", 5),
		CORSOrigins:        envListOr("CORS_ORIGINS", []string{"http://localhost:3000"}),
		RequestTimeout:     time.Duration(envIntOr("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		BatchWorkers:       envIntOr("BATCH_WORKERS", 4),
	}
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		return fmt.Errorf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel)
	}
	if len(c.CharacterLanguages) == 0 {
		return fmt.Errorf("CHARACTER_LANGUAGES cannot be empty")
	}
	if _, err := time.LoadLocation(c.DefaultTimezone); err != nil {
		return fmt.Errorf("DEFAULT_TIMEZONE %q: %w", c.DefaultTimezone, err)
	}
	if c.SessionSize < 0 {
		return fmt.Errorf("SESSION_SIZE must be >= 0, got %d", c.SessionSize)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if c.BatchWorkers <= 0 {
		return fmt.Errorf("BATCH_WORKERS must be positive, got %d", c.BatchWorkers)
	}
	return nil
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

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}

func envListOr(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
