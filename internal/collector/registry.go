package collector

import (
	"context"

	"go.uber.org/zap"

	apperrors "github.com/Guliveer/vitalis/exporter/internal/errors"
	"github.com/Guliveer/vitalis/exporter/internal/models"
)

// Registry holds collectors in registration order and runs them one after
// another. The order of registration is the order of the output.
type Registry struct {
	collectors []Collector
	logger     *zap.Logger
}

// NewRegistry creates a new collector registry with the given logger.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		collectors: make([]Collector, 0),
		logger:     logger,
	}
}

// Register appends a collector.
func (r *Registry) Register(c Collector) {
	r.collectors = append(r.collectors, c)
	r.logger.Debug("Registered collector", zap.String("name", c.Name()))
}

// CollectAll runs every collector in order and concatenates their records.
// A failed collector is logged and contributes nothing; the others still run.
func (r *Registry) CollectAll(ctx context.Context) []models.MetricRecord {
	var records []models.MetricRecord
	for _, c := range r.collectors {
		recs, err := c.Collect(ctx)
		if err != nil {
			fields := []zap.Field{zap.String("collector", c.Name()), zap.Error(err)}
			if code, ok := apperrors.CodeOf(err); ok {
				fields = append(fields, zap.String("code", string(code)))
			}
			r.logger.Warn("Collection failed", fields...)
			continue
		}
		records = append(records, recs...)
	}
	return records
}

// Collectors returns a copy of all registered collectors.
func (r *Registry) Collectors() []Collector {
	result := make([]Collector, len(r.collectors))
	copy(result, r.collectors)
	return result
}
