package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production logger with ISO 8601 timestamps.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// Must is like New but panics on failure. Intended for program startup
// where a missing logger is unrecoverable.
func Must() *zap.Logger {
	log, err := New()
	if err != nil {
		panic(err)
	}
	return log
}

// Named returns a child logger scoped with the given component name.
func Named(log *zap.Logger, name string) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log.Named(name)
}
