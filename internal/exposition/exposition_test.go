package exposition

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guliveer/vitalis/exporter/internal/models"
)

func TestAppendRecord(t *testing.T) {
	tests := []struct {
		name   string
		record models.MetricRecord
		want   string
	}{
		{
			name: "two labels",
			record: models.MetricRecord{
				Name:   "netbsd_filesystem_size_bytes",
				Labels: []models.Label{{Name: "device", Value: "sd0a"}, {Name: "mountpoint", Value: "/"}},
				Value:  models.Uint(512000),
			},
			want: `netbsd_filesystem_size_bytes{device="sd0a",mountpoint="/"} 512000` + "\n",
		},
		{
			name:   "no labels means no braces",
			record: models.MetricRecord{Name: "netbsd_load1", Value: models.Float(0.5)},
			want:   "netbsd_load1 0.500000\n",
		},
		{
			name:   "signed memory value",
			record: models.MetricRecord{Name: "netbsd_memory_free_bytes", Value: models.Int(409600)},
			want:   "netbsd_memory_free_bytes 409600\n",
		},
		{
			name: "label values are escaped",
			record: models.MetricRecord{
				Name:   "netbsd_filesystem_free_bytes",
				Labels: []models.Label{{Name: "mountpoint", Value: "/mnt/a \"b\"\\c\nd"}},
				Value:  models.Uint(1),
			},
			want: `netbsd_filesystem_free_bytes{mountpoint="/mnt/a \"b\"\\c\nd"} 1` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(AppendRecord(nil, tt.record)))
		})
	}
}

func TestRender_PreservesOrder(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, []models.MetricRecord{
		{Name: "b", Value: models.Uint(2)},
		{Name: "a", Value: models.Uint(1)},
	})
	require.NoError(t, err)
	assert.Equal(t, "b 2\na 1\n", buf.String())
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil))
	assert.Zero(t, buf.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRender_WriteError(t *testing.T) {
	err := Render(failingWriter{}, []models.MetricRecord{{Name: "x", Value: models.Uint(1)}})
	assert.EqualError(t, err, "broken pipe")
}
