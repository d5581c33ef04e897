package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Guliveer/vitalis/exporter/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestInitLogger_StderrWhenSyslogDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.Syslog = false
	cfg.Logging.Level = "warn"

	logger := initLogger(cfg)
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestCommand_WriteConfig(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "exporter.yaml")

	err := newCommand().Run(context.Background(), []string{
		name,
		"--config", filepath.Join(dir, "absent.yaml"),
		"--prefix", "host",
		"--write-config", out,
	})
	require.NoError(t, err)

	cfg, err := config.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "host", cfg.Exporter.Prefix)
	assert.Equal(t, "ffs", cfg.Exporter.FilesystemType)
}

func TestCommand_InvalidPrefix(t *testing.T) {
	err := newCommand().Run(context.Background(), []string{
		name,
		"--config", filepath.Join(t.TempDir(), "absent.yaml"),
		"--prefix", "not-valid",
		"--write-config", filepath.Join(t.TempDir(), "x.yaml"),
	})
	assert.ErrorContains(t, err, "invalid configuration")
}
