// Package kernel is a thin translation layer over the operating system
// interfaces the exporter reads: the mounted filesystem table, the network
// interface list and two-phase sysctl buffers. It applies no policy; the
// collectors decide what to keep.
//
// NetBSD is served by raw system calls. Every other OS gets a gopsutil backed
// implementation that presents the same records and the same sysctl layouts.
package kernel

import "context"

// Family is the address family of an interface list entry.
type Family int

const (
	// FamilyUnspec marks an entry without an address.
	FamilyUnspec Family = iota
	// FamilyLink is the link-layer family; only these entries carry counters.
	FamilyLink
	// FamilyInet is IPv4.
	FamilyInet
	// FamilyInet6 is IPv6.
	FamilyInet6
	// FamilyOther is any family the exporter does not care about.
	FamilyOther
)

// MountEntry is one row of the mounted filesystem table.
type MountEntry struct {
	FSType       string
	Source       string
	MountPoint   string
	Blocks       uint64
	FragmentSize uint64
	FreeBlocks   uint64
	AvailBlocks  uint64
}

// LinkCounters are the traffic counters of a link-layer entry.
type LinkCounters struct {
	RxBytes   uint64
	TxBytes   uint64
	InErrors  uint64
	OutErrors uint64
}

// InterfaceEntry is one row of the interface address list. An interface
// appears once per address; Counters is only set on the link-layer row.
type InterfaceEntry struct {
	Name     string
	HasAddr  bool
	Up       bool
	Family   Family
	Counters *LinkCounters
}

// Adapter provides the raw OS queries the collectors are built on.
// Implementations perform no retries and hold no state between calls.
type Adapter interface {
	// Mounts lists the mounted filesystems with their block counts.
	Mounts(ctx context.Context) ([]MountEntry, error)

	// Interfaces lists every interface address, including link-layer rows.
	Interfaces(ctx context.Context) ([]InterfaceEntry, error)

	// QuerySized runs a two-phase sysctl for the selector.
	QuerySized(ctx context.Context, sel Selector) (SizedBuffer, error)

	// PageSize returns the memory page size in bytes.
	PageSize() (uint32, error)

	// LoadAverages returns the 1, 5 and 15 minute load averages.
	LoadAverages(ctx context.Context) ([3]float64, error)

	// Name returns the backend identifier (netbsd, gopsutil).
	Name() string
}
