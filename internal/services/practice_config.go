package services

import "time"

// PracticeConfig holds configuration for practice sessions
type PracticeConfig struct {
	SessionSize     int    // phrases per session when the client does not ask for a count
	DefaultTimezone string // used for users without a stored timezone
	MaxRetries      int    // attempts at recording an answer before giving up
	Now             func() time.Time
}

const (
	DefaultSessionSize = 5
	defaultMaxRetries  = 3
)

func (c PracticeConfig) withDefaults() PracticeConfig {
	if c.SessionSize <= 0 {
		c.SessionSize = DefaultSessionSize
	}
	if c.DefaultTimezone == "" {
		c.DefaultTimezone = "UTC"
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}
