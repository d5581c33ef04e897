// Network interface collector: received/transmitted bytes and error counts.
// Counters come from the link-layer row of each interface; address rows for
// the same interface are skipped so nothing is reported twice.
package collector

import (
	"context"

	"github.com/Guliveer/vitalis/exporter/internal/kernel"
	"github.com/Guliveer/vitalis/exporter/internal/models"
)

// NetworkCollector collects per-interface traffic counters.
type NetworkCollector struct {
	adapter kernel.Adapter
	prefix  string
}

// NewNetworkCollector creates a new network collector.
func NewNetworkCollector(adapter kernel.Adapter, prefix string) *NetworkCollector {
	return &NetworkCollector{adapter: adapter, prefix: prefix}
}

// Name returns the collector identifier.
func (c *NetworkCollector) Name() string { return "network" }

// Samples returns one sample per link-layer row of an interface that is up.
func (c *NetworkCollector) Samples(ctx context.Context) ([]models.NetworkInterfaceSample, error) {
	entries, err := c.adapter.Interfaces(ctx)
	if err != nil {
		return nil, err
	}

	var samples []models.NetworkInterfaceSample
	for _, e := range entries {
		if !e.HasAddr || !e.Up || e.Family != kernel.FamilyLink || e.Counters == nil {
			continue
		}
		samples = append(samples, models.NetworkInterfaceSample{
			Interface: e.Name,
			RxBytes:   e.Counters.RxBytes,
			TxBytes:   e.Counters.TxBytes,
			Errors:    e.Counters.InErrors + e.Counters.OutErrors,
		})
	}
	return samples, nil
}

// Collect gathers network interface records.
func (c *NetworkCollector) Collect(ctx context.Context) ([]models.MetricRecord, error) {
	samples, err := c.Samples(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]models.MetricRecord, 0, 3*len(samples))
	for _, s := range samples {
		records = append(records, s.Records(c.prefix)...)
	}
	return records, nil
}
