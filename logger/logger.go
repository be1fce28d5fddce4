package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger used across the service. Every key/value
// pair passes through a Scrubber before it reaches zap, so handlers can log
// request data without leaking credentials or raw customer contact details.
type Logger struct {
	sugar *zap.SugaredLogger
	scrub *Scrubber
}

// New builds the process logger for env. "production" (or "prod") writes JSON
// at info level; anything else writes the colored console format at debug.
//
// LOG_SCRUB=off disables scrubbing and LOG_HASH_SALT salts the digests of
// session and user ids.
func New(env string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.DisableStacktrace = true

	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return fromZap(z, scrubberFromEnv()), nil
}

// Nop discards everything.
func Nop() *Logger {
	return fromZap(zap.NewNop(), NewScrubber(""))
}

func fromZap(z *zap.Logger, s *Scrubber) *Logger {
	return &Logger{sugar: z.Sugar(), scrub: s}
}

func scrubberFromEnv() *Scrubber {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_SCRUB"))) {
	case "off", "false", "0", "no":
		return nil
	}
	return NewScrubber(os.Getenv("LOG_HASH_SALT"))
}

func (l *Logger) Debug(msg string, kv ...any) { l.sugar.Debugw(msg, l.scrub.Pairs(kv)...) }
func (l *Logger) Info(msg string, kv ...any)  { l.sugar.Infow(msg, l.scrub.Pairs(kv)...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.sugar.Warnw(msg, l.scrub.Pairs(kv)...) }
func (l *Logger) Error(msg string, kv ...any) { l.sugar.Errorw(msg, l.scrub.Pairs(kv)...) }
func (l *Logger) Fatal(msg string, kv ...any) { l.sugar.Fatalw(msg, l.scrub.Pairs(kv)...) }

// With returns a child logger carrying kv on every entry.
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{sugar: l.sugar.With(l.scrub.Pairs(kv)...), scrub: l.scrub}
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}
