// Package logging provides the leveled-sink abstraction scipaper's core and
// reference backends log through, plus a zap-backed default implementation.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sink is the leveled logging interface the federation engine and reference
// backends depend on. It is deliberately narrow so any logging library can
// back it.
type Sink interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	// With returns a derived Sink that always logs the given fields.
	With(fields ...zap.Field) Sink
}

// Style selects the output format of the default zap-backed Sink. scipaper
// runs as an embedded library, not a standalone service, so it only needs
// the two shapes an embedder actually wants for its own process output —
// human-readable during development, structured when shipped — plus a
// discard sink for tests.
type Style string

const (
	StyleTerminal Style = "terminal"
	StyleJson     Style = "json"
	StyleNoop     Style = "noop"
)

// Config configures the default Sink.
type Config struct {
	Style Style
	Level string
}

// Level name constants accepted by Config.Level.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

type zapSink struct {
	l *zap.SugaredLogger
	z *zap.Logger
}

// New creates a Sink based on the Config settings. If c is nil or has empty
// values it defaults to terminal style at info level.
func New(c *Config) Sink {
	z := NewLogger(c)
	return &zapSink{l: z.Sugar(), z: z}
}

func (s *zapSink) Debugf(format string, args ...any) { s.l.Debugf(format, args...) }
func (s *zapSink) Infof(format string, args ...any)  { s.l.Infof(format, args...) }
func (s *zapSink) Warnf(format string, args ...any)  { s.l.Warnf(format, args...) }
func (s *zapSink) Errorf(format string, args ...any) { s.l.Errorf(format, args...) }

func (s *zapSink) With(fields ...zap.Field) Sink {
	z := s.z.With(fields...)
	return &zapSink{l: z.Sugar(), z: z}
}

// baseConfig returns the zap.Config that backs each Style, before the
// requested level is applied.
func baseConfig(style Style) (zap.Config, error) {
	switch style {
	case StyleJson:
		return zap.NewProductionConfig(), nil
	case StyleTerminal, "":
		return zap.NewDevelopmentConfig(), nil
	default:
		return zap.Config{}, fmt.Errorf("logging: unknown style %q: must be one of terminal, json, noop", style)
	}
}

// NewLogger creates a zap logger based on the Config settings. If c is nil
// or has empty values it defaults to terminal style at info level. An
// unrecognized style or a build failure falls back to a no-op logger
// rather than killing the embedding process — a library has no business
// calling os.Exit on a caller's behalf.
func NewLogger(c *Config) *zap.Logger {
	style := StyleTerminal
	logLevel := zapcore.InfoLevel

	if c != nil {
		if c.Style != "" {
			style = c.Style
		}
		if c.Level != "" {
			if lvl, err := zapcore.ParseLevel(c.Level); err == nil {
				logLevel = lvl
			}
		}
	}

	if style == StyleNoop {
		return zap.NewNop()
	}

	cfg, err := baseConfig(style)
	if err != nil {
		return zap.NewNop()
	}
	cfg.Level = zap.NewAtomicLevelAt(logLevel)
	logger, err := cfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// Noop is a Sink that discards everything, useful as a safe zero value.
var Noop Sink = &zapSink{l: zap.NewNop().Sugar(), z: zap.NewNop()}
