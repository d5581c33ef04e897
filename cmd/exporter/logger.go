package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Guliveer/vitalis/exporter/internal/config"
)

// initLogger creates a zap logger based on the configuration.
// With syslog enabled, records go to the system log under the program
// name; if the log daemon cannot be reached, or syslog is disabled, the
// logger writes human-readable lines to stderr. Stdout is reserved for the
// report.
func initLogger(cfg *config.Config) *zap.Logger {
	level := parseLevel(cfg.Logging.Level)

	if cfg.Logging.Syslog {
		core, err := newSyslogCore(name, level)
		if err == nil {
			return zap.New(core)
		}
		fmt.Fprintf(os.Stderr, "syslog unavailable, logging to stderr: %v\n", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(consoleCore)
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// syslogEncoderConfig omits the timestamp and level; the log daemon adds
// both from the message priority.
func syslogEncoderConfig() zapcore.EncoderConfig {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = zapcore.OmitKey
	encoderConfig.LevelKey = zapcore.OmitKey
	encoderConfig.CallerKey = zapcore.OmitKey
	encoderConfig.StacktraceKey = zapcore.OmitKey
	return encoderConfig
}
