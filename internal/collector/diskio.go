// Disk I/O collector: bytes read and written per attached disk.
package collector

import (
	"context"

	"github.com/Guliveer/vitalis/exporter/internal/kernel"
	"github.com/Guliveer/vitalis/exporter/internal/models"
)

// DiskIOCollector collects per-device transfer counters from hw.iostats.
type DiskIOCollector struct {
	adapter kernel.Adapter
	prefix  string
}

// NewDiskIOCollector creates a new disk I/O collector.
func NewDiskIOCollector(adapter kernel.Adapter, prefix string) *DiskIOCollector {
	return &DiskIOCollector{adapter: adapter, prefix: prefix}
}

// Name returns the collector identifier.
func (c *DiskIOCollector) Name() string { return "diskio" }

// Samples returns one sample per device in the returned buffer. No attached
// devices is not an error.
func (c *DiskIOCollector) Samples(ctx context.Context) ([]models.DiskIOSample, error) {
	buf, err := c.adapter.QuerySized(ctx, kernel.SelectorIOStats)
	if err != nil {
		return nil, err
	}
	stats, err := kernel.DecodeIOStats(buf)
	if err != nil {
		return nil, err
	}

	samples := make([]models.DiskIOSample, 0, len(stats))
	for _, s := range stats {
		samples = append(samples, models.DiskIOSample{
			Device:     s.Name,
			ReadBytes:  s.ReadBytes,
			WriteBytes: s.WriteBytes,
		})
	}
	return samples, nil
}

// Collect gathers disk I/O records.
func (c *DiskIOCollector) Collect(ctx context.Context) ([]models.MetricRecord, error) {
	samples, err := c.Samples(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]models.MetricRecord, 0, 2*len(samples))
	for _, s := range samples {
		records = append(records, s.Records(c.prefix)...)
	}
	return records, nil
}
