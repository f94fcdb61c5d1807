package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/phraseflash/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:               ":8080",
		DBPath:             "test.db",
		LogLevel:           "INFO",
		CharacterLanguages: []string{"ja", "zh", "th"},
		DefaultTimezone:    "UTC",
		SessionSize:        5,
		RequestTimeout:     30 * time.Second,
		BatchWorkers:       4,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"empty addr", func(c *config.Config) { c.Addr = "" }, "ADDR cannot be empty"},
		{"empty db path", func(c *config.Config) { c.DBPath = "" }, "DB_PATH cannot be empty"},
		{"bad log level", func(c *config.Config) { c.LogLevel = "LOUD" }, "LOG_LEVEL"},
		{"no character languages", func(c *config.Config) { c.CharacterLanguages = nil }, "CHARACTER_LANGUAGES"},
		{"unknown timezone", func(c *config.Config) { c.DefaultTimezone = "Mars/Olympus" }, "DEFAULT_TIMEZONE"},
		{"negative session size", func(c *config.Config) { c.SessionSize = -1 }, "SESSION_SIZE"},
		{"zero timeout", func(c *config.Config) { c.RequestTimeout = 0 }, "REQUEST_TIMEOUT_SECONDS"},
		{"zero workers", func(c *config.Config) { c.BatchWorkers = 0 }, "BATCH_WORKERS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("CHARACTER_LANGUAGES", " ja, ko ,,")
	t.Setenv("SESSION_SIZE", "10")
	t.Setenv("LOG_COLORS", "false")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, []string{"ja", "ko"}, cfg.CharacterLanguages)
	assert.Equal(t, 10, cfg.SessionSize)
	assert.False(t, cfg.LogColors)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("SESSION_SIZE", "lots")

	cfg := config.Load()

	assert.Equal(t, 5, cfg.SessionSize)
}
