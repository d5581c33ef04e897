//go:build !windows && !plan9

package main

import (
	"log/syslog"
	"strings"

	"go.uber.org/zap/zapcore"
)

// syslogCore writes each entry to the system log with a priority matching
// its zap level.
type syslogCore struct {
	zapcore.LevelEnabler
	enc    zapcore.Encoder
	writer *syslog.Writer
}

func newSyslogCore(tag string, level zapcore.LevelEnabler) (zapcore.Core, error) {
	w, err := syslog.New(syslog.LOG_USER|syslog.LOG_INFO, tag)
	if err != nil {
		return nil, err
	}
	return newSyslogWriterCore(w, level), nil
}

func newSyslogWriterCore(w *syslog.Writer, level zapcore.LevelEnabler) *syslogCore {
	return &syslogCore{
		LevelEnabler: level,
		enc:          zapcore.NewConsoleEncoder(syslogEncoderConfig()),
		writer:       w,
	}
}

func (c *syslogCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &syslogCore{
		LevelEnabler: c.LevelEnabler,
		enc:          c.enc.Clone(),
		writer:       c.writer,
	}
	for _, f := range fields {
		f.AddTo(clone.enc)
	}
	return clone
}

func (c *syslogCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *syslogCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	msg := strings.TrimSuffix(buf.String(), "\n")
	buf.Free()

	switch ent.Level {
	case zapcore.DebugLevel:
		return c.writer.Debug(msg)
	case zapcore.InfoLevel:
		return c.writer.Info(msg)
	case zapcore.WarnLevel:
		return c.writer.Warning(msg)
	case zapcore.ErrorLevel:
		return c.writer.Err(msg)
	default:
		return c.writer.Crit(msg)
	}
}

// Sync closes the log connection. A later write dials the daemon again.
func (c *syslogCore) Sync() error {
	return c.writer.Close()
}
