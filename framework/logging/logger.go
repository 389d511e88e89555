// Package logging builds the zap loggers used by the resolver.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// New builds a production logger writing JSON to stderr at the given level.
func New(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(ParseLevel(level))

	return config.Build()
}

// ForTest builds a logger that writes through t.Log, so output is attached to
// the test that produced it.
func ForTest(t zaptest.TestingT, level string) *zap.Logger {
	return zaptest.NewLogger(t, zaptest.Level(ParseLevel(level)))
}

// ParseLevel maps DEBUG, WARN and ERROR (any case) to zap levels. Anything
// else is Info.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return zap.DebugLevel
	case "WARN":
		return zap.WarnLevel
	case "ERROR":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
