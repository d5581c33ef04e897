//go:build netbsd

package kernel

import (
	"context"
	"encoding/binary"
	"unsafe"

	"golang.org/x/net/route"
	"golang.org/x/sys/unix"

	apperrors "github.com/Guliveer/vitalis/exporter/internal/errors"
)

// NetBSDAdapter reads NetBSD kernel interfaces directly.
type NetBSDAdapter struct {
	sysctl SysctlFunc
}

// New returns the adapter for the running OS.
func New() Adapter {
	return &NetBSDAdapter{sysctl: rawSysctl}
}

// Name returns the backend identifier.
func (a *NetBSDAdapter) Name() string { return "netbsd" }

// rawSysctl issues __sysctl(2) with a numeric MIB.
func rawSysctl(mib []int32, buf []byte) (int, error) {
	n := uintptr(len(buf))
	var p unsafe.Pointer
	if len(buf) > 0 {
		p = unsafe.Pointer(&buf[0])
	}
	_, _, errno := unix.Syscall6(unix.SYS___SYSCTL,
		uintptr(unsafe.Pointer(&mib[0])), uintptr(len(mib)),
		uintptr(p), uintptr(unsafe.Pointer(&n)), 0, 0)
	if errno != 0 {
		return 0, errno
	}
	return int(n), nil
}

// Mounts calls getvfsstat(2) twice: once for the count, once for the table.
func (a *NetBSDAdapter) Mounts(ctx context.Context) ([]MountEntry, error) {
	n, err := unix.Getvfsstat(nil, unix.MNT_WAIT)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeQueryUnavailable, "could not determine mounted filesystems", err)
	}
	if n == 0 {
		return nil, nil
	}

	buf := make([]unix.Statvfs_t, n)
	n, err = unix.Getvfsstat(buf, unix.MNT_WAIT)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeQueryUnavailable, "could not read mounted filesystems", err)
	}
	if n < len(buf) {
		buf = buf[:n]
	}

	entries := make([]MountEntry, 0, len(buf))
	for i := range buf {
		s := &buf[i]
		entries = append(entries, MountEntry{
			FSType:       unix.ByteSliceToString(s.Fstypename[:]),
			Source:       unix.ByteSliceToString(s.Mntfromname[:]),
			MountPoint:   unix.ByteSliceToString(s.Mntonname[:]),
			Blocks:       s.Blocks,
			FragmentSize: uint64(s.Frsize),
			FreeBlocks:   s.Bfree,
			AvailBlocks:  s.Bavail,
		})
	}
	return entries, nil
}

// Interfaces walks the NET_RT_IFLIST routing table dump the same way
// getifaddrs(3) does: one link-layer row per RTM_IFINFO carrying if_data,
// then one row per RTM_NEWADDR inheriting the interface flags.
func (a *NetBSDAdapter) Interfaces(ctx context.Context) ([]InterfaceEntry, error) {
	rib, err := route.FetchRIB(unix.AF_UNSPEC, route.RIBTypeInterface, 0)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeQueryUnavailable, "could not get network interfaces", err)
	}
	msgs, err := route.ParseRIB(route.RIBTypeInterface, rib)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeParseFailure, "could not parse interface list", err)
	}

	return interfaceEntries(msgs, ifCounters(rib)), nil
}

// interfaceEntries turns parsed routing messages into interface rows.
// Address messages follow the RTM_IFINFO of their interface and take its
// name and flags.
func interfaceEntries(msgs []route.Message, counters map[int]LinkCounters) []InterfaceEntry {
	names := make(map[int]string)
	flags := make(map[int]int)

	var entries []InterfaceEntry
	for _, m := range msgs {
		switch m := m.(type) {
		case *route.InterfaceMessage:
			names[m.Index] = m.Name
			flags[m.Index] = m.Flags
			e := InterfaceEntry{
				Name:    m.Name,
				HasAddr: true,
				Up:      m.Flags&unix.IFF_UP != 0,
				Family:  FamilyLink,
			}
			if c, ok := counters[m.Index]; ok {
				e.Counters = &c
			}
			entries = append(entries, e)
		case *route.InterfaceAddrMessage:
			fam := FamilyUnspec
			if len(m.Addrs) > unix.RTAX_IFA {
				fam = addrFamily(m.Addrs[unix.RTAX_IFA])
			}
			entries = append(entries, InterfaceEntry{
				Name:    names[m.Index],
				HasAddr: fam != FamilyUnspec,
				Up:      flags[m.Index]&unix.IFF_UP != 0,
				Family:  fam,
			})
		}
	}
	return entries
}

func addrFamily(a route.Addr) Family {
	switch a.(type) {
	case nil:
		return FamilyUnspec
	case *route.LinkAddr:
		return FamilyLink
	case *route.Inet4Addr:
		return FamilyInet
	case *route.Inet6Addr:
		return FamilyInet6
	default:
		return FamilyOther
	}
}

// ifCounters indexes the if_data block of every RTM_IFINFO message in rib.
func ifCounters(rib []byte) map[int]LinkCounters {
	out := make(map[int]LinkCounters)
	for len(rib) >= 4 {
		l := int(binary.NativeEndian.Uint16(rib[0:2]))
		if l < 4 || l > len(rib) {
			break
		}
		if rib[3] == unix.RTM_IFINFO && l >= unix.SizeofIfMsghdr {
			hdr := (*unix.IfMsghdr)(unsafe.Pointer(&rib[0]))
			out[int(hdr.Index)] = LinkCounters{
				RxBytes:   hdr.Data.Ibytes,
				TxBytes:   hdr.Data.Obytes,
				InErrors:  hdr.Data.Ierrors,
				OutErrors: hdr.Data.Oerrors,
			}
		}
		rib = rib[l:]
	}
	return out
}

// QuerySized runs the two-phase protocol against the live kernel.
func (a *NetBSDAdapter) QuerySized(ctx context.Context, sel Selector) (SizedBuffer, error) {
	return QuerySized(a.sysctl, sel)
}

// PageSize returns sysconf(_SC_PAGESIZE).
func (a *NetBSDAdapter) PageSize() (uint32, error) {
	return sysconfPageSize()
}

// loadavg mirrors struct loadavg; C long is Go int on every NetBSD port.
type loadavg struct {
	ldavg  [3]uint32
	fscale int
}

// LoadAverages reads vm.loadavg and scales the fixed-point values.
func (a *NetBSDAdapter) LoadAverages(ctx context.Context) ([3]float64, error) {
	var out [3]float64
	buf, err := a.QuerySized(ctx, SelectorLoadavg)
	if err != nil {
		return out, err
	}
	if len(buf.Data) < int(unsafe.Sizeof(loadavg{})) {
		return out, apperrors.NewWithContext(apperrors.ErrCodeParseFailure,
			"vm.loadavg payload too short", map[string]any{"length": len(buf.Data)})
	}
	la := *(*loadavg)(unsafe.Pointer(&buf.Data[0]))
	if la.fscale <= 0 {
		return out, apperrors.New(apperrors.ErrCodeParseFailure, "vm.loadavg reported a zero scale")
	}
	for i := range out {
		out[i] = float64(la.ldavg[i]) / float64(la.fscale)
	}
	return out, nil
}
