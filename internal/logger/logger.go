package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const DefaultLevel = "warn"

// New creates the diagnostic logger for a command line tool.
//
// LOG_FORMAT selects the encoding:
//   - "console" or "development": human-readable output with ISO8601 timestamps
//   - "json" or "production" (default): structured JSON
//
// LOG_LEVEL sets the minimum level (debug, info, warn, error). Logs always go to
// stderr so stdout carries only what the tool prints for the user.
func New(component string) (*zap.Logger, error) {
	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "production"
	}

	var cfg zap.Config
	if logFormat == "console" || logFormat == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.Level = zap.NewAtomicLevelAt(parseLevel(os.Getenv("LOG_LEVEL")))
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build(zap.Fields(zap.String("component", component)))
}

// NewOrNop is New for callers that have no way to report a broken logger.
func NewOrNop(component string) *zap.Logger {
	l, err := New(component)
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func parseLevel(s string) zapcore.Level {
	if s == "" {
		s = DefaultLevel
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return zapcore.WarnLevel
	}
	return lvl
}
