// Package logging provides the logger interface used across pages-prep and
// its zap-backed implementation.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger takes a message followed by alternating key/value pairs.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Error(msg string, kv ...any)
}

type ZapLogger struct {
	s *zap.SugaredLogger
}

func (l ZapLogger) Debug(msg string, kv ...any) { l.s.Debugw(msg, kv...) }
func (l ZapLogger) Info(msg string, kv ...any)  { l.s.Infow(msg, kv...) }
func (l ZapLogger) Error(msg string, kv ...any) { l.s.Errorw(msg, kv...) }

// Sync flushes buffered entries.
func (l ZapLogger) Sync() error { return l.s.Sync() }

// FromZap wraps an existing zap logger (tests pass an observer-backed one).
func FromZap(z *zap.Logger) ZapLogger {
	return ZapLogger{s: z.Sugar()}
}

// Nop discards everything.
func Nop() ZapLogger {
	return FromZap(zap.NewNop())
}

// New builds a logger writing to stderr. format is "json" or "text".
func New(level, format string) (ZapLogger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(orDefault(level, "info"))))
	if err != nil {
		return ZapLogger{}, fmt.Errorf("parsing log level: %w", err)
	}

	var cfg zap.Config
	switch strings.ToLower(format) {
	case "json":
		cfg = zap.NewProductionConfig()
	case "", "text", "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return ZapLogger{}, fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	z, err := cfg.Build()
	if err != nil {
		return ZapLogger{}, fmt.Errorf("building logger: %w", err)
	}
	return FromZap(z), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
