package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Guliveer/vitalis/exporter/internal/kernel"
	"github.com/Guliveer/vitalis/exporter/internal/kernel/kerneltest"
	"github.com/Guliveer/vitalis/exporter/internal/models"
)

func TestShortDeviceName(t *testing.T) {
	tests := []struct {
		source string
		want   string
		ok     bool
	}{
		{"/dev/sd0a", "sd0a", true},
		{"/dev/wd0e", "wd0e", true},
		{"dev/sd0a", "sd0a", true},
		{"//dev//sd0a", "sd0a", true},
		{"/dev/dk/wd0", "dk", true},
		{"dev0", "", false},
		{"/dev0", "", false},
		{"", "", false},
		{"///", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, ok := ShortDeviceName(tt.source)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ShortDeviceName(%q) = %q, %v; want %q, %v", tt.source, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFilesystemCollector_SingleMount(t *testing.T) {
	adapter := &kerneltest.Adapter{MountEntries: []kernel.MountEntry{{
		FSType: "ffs", Source: "/dev/sd0a", MountPoint: "/",
		Blocks: 1000, FragmentSize: 512, FreeBlocks: 400, AvailBlocks: 380,
	}}}
	c := NewFilesystemCollector(adapter, "netbsd", "ffs", nil)

	samples, err := c.Samples(context.Background())
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, models.FilesystemSample{
		Device: "sd0a", MountPoint: "/",
		SizeBytes: 512000, UsedBytes: 307200, FreeBytes: 194560,
	}, samples[0])

	records, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestFilesystemCollector_FiltersAndCounts(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	adapter := &kerneltest.Adapter{MountEntries: []kernel.MountEntry{
		{FSType: "ffs", Source: "/dev/wd0a", MountPoint: "/", Blocks: 10, FragmentSize: 2048},
		{FSType: "tmpfs", Source: "tmpfs", MountPoint: "/tmp", Blocks: 10, FragmentSize: 4096},
		{FSType: "nfs", Source: "server:/export", MountPoint: "/home", Blocks: 10, FragmentSize: 4096},
		{FSType: "FFS", Source: "/dev/wd1a", MountPoint: "/data", Blocks: 10, FragmentSize: 2048},
		{FSType: "ffs", Source: "dev0", MountPoint: "/broken", Blocks: 10, FragmentSize: 2048},
		{FSType: "ffs", Source: "/dev/wd0e", MountPoint: "/usr", Blocks: 10, FragmentSize: 2048},
	}}
	c := NewFilesystemCollector(adapter, "netbsd", "ffs", zap.New(core))

	records, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 6, "3 records for each of the two well-formed ffs mounts")
	assert.Equal(t, "wd0e", records[3].Labels[0].Value)

	failures := logs.FilterMessage("Skipping filesystem").All()
	require.Len(t, failures, 1)
	assert.Equal(t, "dev0", failures[0].ContextMap()["source"])
}

func TestFilesystemCollector_NoMatchingMounts(t *testing.T) {
	adapter := &kerneltest.Adapter{MountEntries: []kernel.MountEntry{
		{FSType: "procfs", Source: "/proc", MountPoint: "/proc"},
	}}
	records, err := NewFilesystemCollector(adapter, "netbsd", "ffs", nil).Collect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFilesystemCollector_UsedNeverUnderflows(t *testing.T) {
	adapter := &kerneltest.Adapter{MountEntries: []kernel.MountEntry{
		{FSType: "ffs", Source: "/dev/sd0a", MountPoint: "/", Blocks: 10, FragmentSize: 512, FreeBlocks: 12},
	}}
	samples, err := NewFilesystemCollector(adapter, "netbsd", "ffs", nil).Samples(context.Background())
	require.NoError(t, err)
	assert.Zero(t, samples[0].UsedBytes)
}

func TestFilesystemCollector_MountsError(t *testing.T) {
	adapter := &kerneltest.Adapter{MountsErr: errors.New("getvfsstat failed")}
	records, err := NewFilesystemCollector(adapter, "netbsd", "", nil).Collect(context.Background())
	assert.Error(t, err)
	assert.Nil(t, records)
}
