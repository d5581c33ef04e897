//go:build !(darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package kernel

import "os"

// sysconfPageSize falls back to the runtime's page size where sysconf(3)
// does not exist.
func sysconfPageSize() (uint32, error) {
	return uint32(os.Getpagesize()), nil
}
