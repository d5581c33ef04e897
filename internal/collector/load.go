// CPU load collector: the 1, 5 and 15 minute load averages.
package collector

import (
	"context"

	"github.com/Guliveer/vitalis/exporter/internal/kernel"
	"github.com/Guliveer/vitalis/exporter/internal/models"
)

// LoadCollector collects the system load averages.
type LoadCollector struct {
	adapter kernel.Adapter
	prefix  string
}

// NewLoadCollector creates a new load collector.
func NewLoadCollector(adapter kernel.Adapter, prefix string) *LoadCollector {
	return &LoadCollector{adapter: adapter, prefix: prefix}
}

// Name returns the collector identifier.
func (c *LoadCollector) Name() string { return "load" }

// Samples returns exactly three samples, or an error and none.
func (c *LoadCollector) Samples(ctx context.Context) ([]models.LoadSample, error) {
	avg, err := c.adapter.LoadAverages(ctx)
	if err != nil {
		return nil, err
	}
	return []models.LoadSample{
		{Window: models.Load1, Value: avg[0]},
		{Window: models.Load5, Value: avg[1]},
		{Window: models.Load15, Value: avg[2]},
	}, nil
}

// Collect gathers load average records.
func (c *LoadCollector) Collect(ctx context.Context) ([]models.MetricRecord, error) {
	samples, err := c.Samples(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]models.MetricRecord, 0, len(samples))
	for _, s := range samples {
		records = append(records, s.Record(c.prefix))
	}
	return records, nil
}
