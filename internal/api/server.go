package api

import (
	"context"
	"time"

	"github.com/vytor/phraseflash/internal/services"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	PracticeService services.PracticeService
	StatsService    services.StatsService
	UserService     services.UserService
	PhraseService   services.PhraseService
	DB              Pinger
	CORSOrigins     []string
	RequestTimeout  time.Duration
}
