package logger

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = [...]string{DEBUG: "DEBUG", INFO: "INFO", WARN: "WARN", ERROR: "ERROR"}

var levelColors = [...]string{DEBUG: "\033[36m", INFO: "\033[32m", WARN: "\033[33m", ERROR: "\033[31m"}

func (l Level) String() string {
	if l < DEBUG || l > ERROR {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps LOG_LEVEL values to a Level, falling back to INFO.
func ParseLevel(s string) Level {
	l, _ := LookupLevel(s)
	return l
}

// LookupLevel is ParseLevel that also reports whether s named a level.
func LookupLevel(s string) (Level, bool) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARNING" {
		return WARN, true
	}
	for l, n := range levelNames {
		if n == name {
			return Level(l), true
		}
	}
	return INFO, false
}

// Logger writes one line per message: time, level, [prefix], [file:line],
// the message, then fields sorted by key. Loggers derived with WithPrefix
// or WithField share their parent's writer and lock.
type Logger struct {
	mu       *sync.Mutex
	out      io.Writer
	level    Level
	prefix   string
	fields   map[string]any
	colorize bool
}

type Option func(*Logger)

func WithOutput(w io.Writer) Option { return func(l *Logger) { l.out = w } }

func WithLevel(level Level) Option { return func(l *Logger) { l.level = level } }

func WithPrefix(prefix string) Option { return func(l *Logger) { l.prefix = prefix } }

// WithColors toggles ANSI level colors. On by default.
func WithColors(enabled bool) Option { return func(l *Logger) { l.colorize = enabled } }

func New(opts ...Option) *Logger {
	l := &Logger{mu: &sync.Mutex{}, out: os.Stdout, level: INFO, colorize: true}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var defaultLogger = New()

// SetDefault replaces the logger returned by Default and by FromContext
// for contexts without one. Call it once at startup.
func SetDefault(l *Logger) { defaultLogger = l }

func Default() *Logger { return defaultLogger }

func (l *Logger) derive(prefix string, fields map[string]any) *Logger {
	c := *l
	c.prefix = prefix
	c.fields = fields
	return &c
}

func (l *Logger) WithPrefix(prefix string) *Logger { return l.derive(prefix, l.fields) }

func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

func (l *Logger) WithFields(fields map[string]any) *Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(merged, l.fields)
	maps.Copy(merged, fields)
	return l.derive(l.prefix, merged)
}

func (l *Logger) WithError(err error) *Logger { return l.WithField("error", err) }

func (l *Logger) Enabled(level Level) bool { return level >= l.level }

func (l *Logger) Debug(msg string, args ...any) { l.write(DEBUG, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.write(INFO, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.write(WARN, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.write(ERROR, msg, args) }

// write must be called directly from a level method so the caller frame
// points at the logging call site.
func (l *Logger) write(level Level, msg string, args []any) {
	if !l.Enabled(level) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var sb strings.Builder
	sb.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	sb.WriteByte(' ')
	if l.colorize {
		fmt.Fprintf(&sb, "%s%-5s\033[0m ", levelColors[level], level)
	} else {
		fmt.Fprintf(&sb, "%-5s ", level)
	}
	if l.prefix != "" {
		fmt.Fprintf(&sb, "[%s] ", l.prefix)
	}
	if _, file, line, ok := runtime.Caller(2); ok {
		fmt.Fprintf(&sb, "[%s:%d] ", filepath.Base(file), line)
	}
	sb.WriteString(msg)
	for _, k := range slices.Sorted(maps.Keys(l.fields)) {
		fmt.Fprintf(&sb, " %s=%v", k, l.fields[k])
	}
	sb.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.out, sb.String())
}

type ctxKey struct{}

// FromContext returns the request-scoped logger, or Default.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return defaultLogger
}

func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}
