// =============================================================================
// Sales Analytics - Logging Module
// =============================================================================
//
// This module sets up the global zap logger used for diagnostic output.
// User-facing progress (the step-by-step pipeline output) is printed to
// stdout with fmt by the commands; zap carries the structured diagnostics
// that go to stderr and stay out of the report.
//
// =============================================================================

package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger instance.
	Logger *zap.Logger

	// Sugar is the sugared logger for convenience.
	Sugar *zap.SugaredLogger
)

// Initialize sets up the global logger.
//
// PARAMETERS:
//   - level:  minimum log level (debug, info, warn, error); unknown values
//             fall back to info.
//   - format: "console" or "json".
func Initialize(level, format string) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), lvl)
	Logger = zap.New(core)
	Sugar = Logger.Sugar()
}

// Sync flushes any buffered log entries.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

func init() {
	Initialize("info", "console")
}
