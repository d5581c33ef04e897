// Package exporter runs one collection pass and writes the response.
// The collectors run in a fixed order (filesystem, load, network, memory,
// disk I/O) so that the output of two runs can be diffed line by line.
package exporter

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/Guliveer/vitalis/exporter/internal/collector"
	"github.com/Guliveer/vitalis/exporter/internal/config"
	"github.com/Guliveer/vitalis/exporter/internal/kernel"
	"github.com/Guliveer/vitalis/exporter/internal/models"
	"github.com/Guliveer/vitalis/exporter/internal/transport"
)

// Exporter ties the collector registry to a response writer.
type Exporter struct {
	registry *collector.Registry
	cfg      *config.Config
	logger   *zap.Logger
}

// New creates an Exporter with the five collectors registered against adapter.
func New(adapter kernel.Adapter, cfg *config.Config, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix := cfg.Exporter.Prefix

	registry := collector.NewRegistry(logger)
	registry.Register(collector.NewFilesystemCollector(adapter, prefix, cfg.Exporter.FilesystemType, logger))
	registry.Register(collector.NewLoadCollector(adapter, prefix))
	registry.Register(collector.NewNetworkCollector(adapter, prefix))
	registry.Register(collector.NewMemoryCollector(adapter, prefix))
	registry.Register(collector.NewDiskIOCollector(adapter, prefix))

	return &Exporter{
		registry: registry,
		cfg:      cfg,
		logger:   logger,
	}
}

// Collect runs every collector once and returns the records in output order.
func (e *Exporter) Collect(ctx context.Context) []models.MetricRecord {
	start := time.Now()
	records := e.registry.CollectAll(ctx)
	e.logger.Debug("Collected metrics",
		zap.Int("records", len(records)),
		zap.Duration("took", time.Since(start)))
	return records
}

// Run collects and writes a complete response to w. Collector failures only
// shrink the report; the returned error is always a write failure.
func (e *Exporter) Run(ctx context.Context, w io.Writer) error {
	records := e.Collect(ctx)
	return transport.New(w, e.cfg.Transport.SuppressHTTPHeader, e.logger).Send(records)
}
