package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/Guliveer/vitalis/exporter/internal/errors"
	"github.com/Guliveer/vitalis/exporter/internal/models"
)

type stubCollector struct {
	name    string
	records []models.MetricRecord
	err     error
	calls   int
}

func (s *stubCollector) Name() string { return s.name }

func (s *stubCollector) Collect(context.Context) ([]models.MetricRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func TestRegistry_PartialFailure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	first := &stubCollector{name: "first", records: []models.MetricRecord{{Name: "a"}}}
	broken := &stubCollector{name: "broken", err: apperrors.New(apperrors.ErrCodeQueryUnavailable, "sysctl failed")}
	last := &stubCollector{name: "last", records: []models.MetricRecord{{Name: "b"}, {Name: "c"}}}

	r := NewRegistry(zap.New(core))
	r.Register(first)
	r.Register(broken)
	r.Register(last)

	records := r.CollectAll(context.Background())
	require.Len(t, records, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{records[0].Name, records[1].Name, records[2].Name})
	assert.Equal(t, 1, last.calls, "collectors after a failure still run")

	failed := logs.FilterMessage("Collection failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "broken", failed[0].ContextMap()["collector"])
	assert.Equal(t, "QUERY_UNAVAILABLE", failed[0].ContextMap()["code"])
}

func TestRegistry_CollectorsIsACopy(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(&stubCollector{name: "one"})

	list := r.Collectors()
	list[0] = &stubCollector{name: "replaced"}
	assert.Equal(t, "one", r.Collectors()[0].Name())
}
