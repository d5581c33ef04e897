// Package collector defines the Collector interface and the five metric
// families the exporter reports: filesystem space, load, network interfaces,
// memory and disk I/O.
package collector

import (
	"context"

	"github.com/Guliveer/vitalis/exporter/internal/models"
)

// Collector is the interface that all metric collectors must implement.
// Each collector produces one metric family from one or more kernel queries.
type Collector interface {
	// Name returns the unique identifier for this collector.
	Name() string

	// Collect queries the kernel and returns the family's records.
	// A collector that fails returns an error and no records.
	Collect(ctx context.Context) ([]models.MetricRecord, error)
}
