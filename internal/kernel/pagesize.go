//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package kernel

import (
	"github.com/tklauser/go-sysconf"

	apperrors "github.com/Guliveer/vitalis/exporter/internal/errors"
)

// sysconfPageSize reads _SC_PAGESIZE rather than the obsolete getpagesize.
func sysconfPageSize() (uint32, error) {
	v, err := sysconf.Sysconf(sysconf.SC_PAGESIZE)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrCodeQueryUnavailable, "sysconf(_SC_PAGESIZE) failed", err)
	}
	if v <= 0 || v > 1<<30 {
		return 0, apperrors.NewWithContext(apperrors.ErrCodeQueryUnavailable,
			"sysconf returned an invalid page size", map[string]any{"pagesize": v})
	}
	return uint32(v), nil
}
