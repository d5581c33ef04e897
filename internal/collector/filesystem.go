// Filesystem space collector: size, used and free bytes per local filesystem.
// Only the configured on-disk filesystem type is reported; network, memory
// backed and pseudo filesystems are left out.
package collector

import (
	"context"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/Guliveer/vitalis/exporter/internal/errors"
	"github.com/Guliveer/vitalis/exporter/internal/kernel"
	"github.com/Guliveer/vitalis/exporter/internal/models"
)

// DefaultFilesystemType is the on-disk format reported when none is configured.
const DefaultFilesystemType = "ffs"

// ShortDeviceName derives the device label from a mount source by taking the
// second non-empty "/"-separated segment: "/dev/sd0a" gives "sd0a".
// Deeper paths still yield the second segment. It reports false when the
// source has fewer than two segments.
func ShortDeviceName(source string) (string, bool) {
	segments := strings.FieldsFunc(source, func(r rune) bool { return r == '/' })
	if len(segments) < 2 {
		return "", false
	}
	return segments[1], true
}

// FilesystemCollector collects space usage per mounted filesystem.
type FilesystemCollector struct {
	adapter kernel.Adapter
	prefix  string
	fsType  string
	logger  *zap.Logger
}

// NewFilesystemCollector creates a new filesystem collector reporting only
// filesystems of type fsType.
func NewFilesystemCollector(adapter kernel.Adapter, prefix, fsType string, logger *zap.Logger) *FilesystemCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fsType == "" {
		fsType = DefaultFilesystemType
	}
	return &FilesystemCollector{adapter: adapter, prefix: prefix, fsType: fsType, logger: logger}
}

// Name returns the collector identifier.
func (c *FilesystemCollector) Name() string { return "filesystem" }

// Samples returns one sample per matching mount. Entries whose device name
// cannot be derived are logged and skipped.
func (c *FilesystemCollector) Samples(ctx context.Context) ([]models.FilesystemSample, error) {
	mounts, err := c.adapter.Mounts(ctx)
	if err != nil {
		return nil, err
	}

	var samples []models.FilesystemSample
	for _, m := range mounts {
		if m.FSType != c.fsType {
			continue
		}

		device, ok := ShortDeviceName(m.Source)
		if !ok {
			err := apperrors.NewWithContext(apperrors.ErrCodeParseFailure, "parsing dev failed",
				map[string]any{"source": m.Source})
			c.logger.Error("Skipping filesystem",
				zap.String("source", m.Source),
				zap.String("mount", m.MountPoint),
				zap.Error(err))
			continue
		}

		used := uint64(0)
		if m.Blocks > m.FreeBlocks {
			used = m.Blocks - m.FreeBlocks
		}
		samples = append(samples, models.FilesystemSample{
			Device:     device,
			MountPoint: m.MountPoint,
			SizeBytes:  m.Blocks * m.FragmentSize,
			UsedBytes:  used * m.FragmentSize,
			FreeBytes:  m.AvailBlocks * m.FragmentSize,
		})
	}
	return samples, nil
}

// Collect gathers filesystem space records.
func (c *FilesystemCollector) Collect(ctx context.Context) ([]models.MetricRecord, error) {
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
