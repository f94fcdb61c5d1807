package logger_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/phraseflash/internal/logger"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Info("hidden")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown 1")
	assert.False(t, log.Enabled(logger.INFO))
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).
		WithPrefix("practice").
		WithFields(map[string]any{"phrase_id": 7, "correct": true}).
		WithError(errors.New("boom"))

	log.Info("answer recorded")

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "[practice]")
	assert.True(t, strings.HasSuffix(line, "answer recorded correct=true error=boom phrase_id=7"), line)
}

func TestLookupLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   logger.Level
		wantOK bool
	}{
		{"debug", logger.DEBUG, true},
		{" WARNING ", logger.WARN, true},
		{"error", logger.ERROR, true},
		{"verbose", logger.INFO, false},
	}
	for _, tt := range tests {
		got, ok := logger.LookupLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestContextRoundTrip(t *testing.T) {
	log := logger.New(logger.WithPrefix("req"))
	ctx := logger.NewContext(context.Background(), log)

	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
