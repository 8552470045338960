package utils

import (
	"log"
	"strings"

	"rideshare/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger; use GetLogger to read it.
var Logger *zap.Logger

// InitializeLogger builds the global logger from ENV and LOG_LEVEL.
func InitializeLogger() {
	cfg := newLoggerConfig(config.IsProduction(), config.AppConfig.LogLevel)
	built, err := cfg.Build(zap.Fields(
		zap.String("service", "rideshare"),
		zap.String("env", config.GetEnv()),
	))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	Logger = built
	zap.ReplaceGlobals(Logger)
}

// GetLogger returns the global logger, initializing it on first use.
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}

// newLoggerConfig returns JSON output with ISO8601 timestamps in production
// and colored console output elsewhere.
func newLoggerConfig(production bool, level string) zap.Config {
	if production {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(level, zap.InfoLevel))
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level, zap.DebugLevel))
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	return cfg
}

func parseLevel(s string, fallback zapcore.Level) zapcore.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return fallback
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return fallback
	}
	return lvl
}
