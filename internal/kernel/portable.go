//go:build !netbsd

package kernel

import (
	"context"
	"fmt"
	"net/netip"
	"slices"
	"sort"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"

	apperrors "github.com/Guliveer/vitalis/exporter/internal/errors"
)

// PortableAdapter serves the kernel queries from gopsutil on systems without
// a native backend. The sysctl nodes the collectors read are emulated by
// encoding gopsutil data in the NetBSD record layouts, so the two-phase path
// and the decoders are shared with the native backend.
type PortableAdapter struct{}

// New returns the adapter for the running OS.
func New() Adapter {
	return &PortableAdapter{}
}

// Name returns the backend identifier.
func (a *PortableAdapter) Name() string { return "gopsutil" }

// Mounts lists every partition with byte-granular block counts.
// Partitions whose usage cannot be read are left out, as statvfs would.
func (a *PortableAdapter) Mounts(ctx context.Context) ([]MountEntry, error) {
	partitions, err := disk.PartitionsWithContext(ctx, true)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeQueryUnavailable, "could not determine mounted filesystems", err)
	}

	entries := make([]MountEntry, 0, len(partitions))
	for _, p := range partitions {
		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			continue
		}
		free := uint64(0)
		if usage.Total > usage.Used {
			free = usage.Total - usage.Used
		}
		entries = append(entries, MountEntry{
			FSType:       p.Fstype,
			Source:       p.Device,
			MountPoint:   p.Mountpoint,
			Blocks:       usage.Total,
			FragmentSize: 1,
			FreeBlocks:   free,
			AvailBlocks:  usage.Free,
		})
	}
	return entries, nil
}

// Interfaces emits one link-layer row per interface, carrying the per-NIC
// counters, followed by one row per configured address.
func (a *PortableAdapter) Interfaces(ctx context.Context) ([]InterfaceEntry, error) {
	ifaces, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeQueryUnavailable, "could not get network interfaces", err)
	}
	io, err := psnet.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeQueryUnavailable, "could not get interface counters", err)
	}
	byName := make(map[string]psnet.IOCountersStat, len(io))
	for _, c := range io {
		byName[c.Name] = c
	}

	var entries []InterfaceEntry
	for _, iface := range ifaces {
		up := slices.Contains(iface.Flags, "up")
		link := InterfaceEntry{Name: iface.Name, HasAddr: true, Up: up, Family: FamilyLink}
		if c, ok := byName[iface.Name]; ok {
			link.Counters = &LinkCounters{
				RxBytes:   c.BytesRecv,
				TxBytes:   c.BytesSent,
				InErrors:  c.Errin,
				OutErrors: c.Errout,
			}
		}
		entries = append(entries, link)

		for _, addr := range iface.Addrs {
			fam := FamilyOther
			if prefix, err := netip.ParsePrefix(addr.Addr); err == nil {
				if prefix.Addr().Is4() {
					fam = FamilyInet
				} else {
					fam = FamilyInet6
				}
			}
			entries = append(entries, InterfaceEntry{Name: iface.Name, HasAddr: true, Up: up, Family: fam})
		}
	}
	return entries, nil
}

// QuerySized runs the two-phase protocol against the emulated sysctl tree.
// Each phase samples gopsutil afresh, like a live kernel would.
func (a *PortableAdapter) QuerySized(ctx context.Context, sel Selector) (SizedBuffer, error) {
	return QuerySized(func(mib []int32, buf []byte) (int, error) {
		payload, err := a.payload(ctx, mib)
		if err != nil {
			return 0, err
		}
		if buf == nil {
			return len(payload), nil
		}
		return copy(buf, payload), nil
	}, sel)
}

func (a *PortableAdapter) payload(ctx context.Context, mib []int32) ([]byte, error) {
	switch {
	case slices.Equal(mib, SelectorUVMExp.MIB):
		return a.uvmexp(ctx)
	case slices.Equal(mib, SelectorIOStats.MIB):
		return a.iostats(ctx)
	default:
		return nil, fmt.Errorf("no emulated sysctl node for mib %v", mib)
	}
}

func (a *PortableAdapter) uvmexp(ctx context.Context) ([]byte, error) {
	pageSize, err := a.PageSize()
	if err != nil {
		return nil, err
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}
	swap, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}

	ps := uint64(pageSize)
	pages := func(b uint64) int64 { return int64(b / ps) }
	return EncodeUVMExp(UVMExp{
		PageSize:  int64(pageSize),
		NPages:    pages(vm.Total),
		Free:      pages(vm.Free),
		Active:    pages(vm.Active),
		Inactive:  pages(vm.Inactive),
		Wired:     pages(vm.Wired),
		SwapPages: pages(swap.Total),
		SwapInUse: pages(swap.Used),
	}), nil
}

func (a *PortableAdapter) iostats(ctx context.Context) ([]byte, error) {
	counters, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return nil, err
	}
	stats := make([]IOStat, 0, len(counters))
	for name, c := range counters {
		stats = append(stats, IOStat{
			Name:       name,
			Xfers:      c.ReadCount + c.WriteCount,
			Bytes:      c.ReadBytes + c.WriteBytes,
			ReadXfers:  c.ReadCount,
			WriteXfers: c.WriteCount,
			ReadBytes:  c.ReadBytes,
			WriteBytes: c.WriteBytes,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Name < stats[j].Name
	})
	return EncodeIOStats(stats), nil
}

// PageSize returns sysconf(_SC_PAGESIZE).
func (a *PortableAdapter) PageSize() (uint32, error) {
	return sysconfPageSize()
}

// LoadAverages returns the gopsutil load averages.
func (a *PortableAdapter) LoadAverages(ctx context.Context) ([3]float64, error) {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return [3]float64{}, apperrors.Wrap(apperrors.ErrCodeQueryUnavailable, "loadavg failed", err)
	}
	return [3]float64{avg.Load1, avg.Load5, avg.Load15}, nil
}
