// Memory collector: physical and swap page counts converted to bytes.
// Reads vm.uvmexp2 and multiplies every page count by the system page size.
package collector

import (
	"context"

	"github.com/Guliveer/vitalis/exporter/internal/kernel"
	"github.com/Guliveer/vitalis/exporter/internal/models"
)

// MemoryCollector collects memory usage metrics.
type MemoryCollector struct {
	adapter kernel.Adapter
	prefix  string
}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector(adapter kernel.Adapter, prefix string) *MemoryCollector {
	return &MemoryCollector{adapter: adapter, prefix: prefix}
}

// Name returns the collector identifier.
func (c *MemoryCollector) Name() string { return "memory" }

// Samples returns the eight memory gauges in exposition order.
func (c *MemoryCollector) Samples(ctx context.Context) ([]models.MemorySample, error) {
	pageSize, err := c.adapter.PageSize()
	if err != nil {
		return nil, err
	}
	buf, err := c.adapter.QuerySized(ctx, kernel.SelectorUVMExp)
	if err != nil {
		return nil, err
	}
	u, err := kernel.DecodeUVMExp(buf.Data)
	if err != nil {
		return nil, err
	}

	ps := int64(pageSize)
	return []models.MemorySample{
		{Category: models.MemoryTotal, Bytes: u.NPages * ps},
		{Category: models.MemoryFree, Bytes: u.Free * ps},
		{Category: models.MemoryActive, Bytes: u.Active * ps},
		{Category: models.MemoryInactive, Bytes: u.Inactive * ps},
		{Category: models.MemoryPaging, Bytes: u.Paging * ps},
		{Category: models.MemoryWired, Bytes: u.Wired * ps},
		{Category: models.MemorySwapTotal, Bytes: u.SwapPages * ps},
		{Category: models.MemorySwapUsed, Bytes: u.SwapInUse * ps},
	}, nil
}

// Collect gathers memory records.
func (c *MemoryCollector) Collect(ctx context.Context) ([]models.MetricRecord, error) {
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
