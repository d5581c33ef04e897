package kernel

import (
	"bytes"
	"encoding/binary"

	apperrors "github.com/Guliveer/vitalis/exporter/internal/errors"
)

// struct io_sysctl (sys/iostat.h), read up to and including wbytes:
//
//	char     name[16]    0
//	int32_t  busy, type  16, 20
//	uint64_t xfer, seek, bytes  24, 32, 40
//	uint32_t attachtime, timestamp, time (sec/usec pairs)  48..71
//	uint64_t rxfer, rbytes, wxfer, wbytes  72, 80, 88, 96
const (
	IOStatNameLen = 16
	IOStatSize    = 104

	ioOffXfer   = 24
	ioOffBytes  = 40
	ioOffRXfer  = 72
	ioOffRBytes = 80
	ioOffWXfer  = 88
	ioOffWBytes = 96
)

// struct uvmexp_sysctl (uvm/uvm_extern.h) is a flat array of int64 fields.
// Only the prefix up to swpginuse is decoded.
const (
	uvmPageSize  = 0
	uvmNPages    = 3
	uvmFree      = 4
	uvmActive    = 5
	uvmInactive  = 6
	uvmPaging    = 7
	uvmWired     = 8
	uvmSwPages   = 17
	uvmSwPgInUse = 18

	// UVMExpSize is the minimum vm.uvmexp2 payload the decoder accepts.
	UVMExpSize = (uvmSwPgInUse + 1) * 8
)

// IOStat is the part of one io_sysctl record the exporter reads.
type IOStat struct {
	Name       string
	Xfers      uint64
	Bytes      uint64
	ReadXfers  uint64
	WriteXfers uint64
	ReadBytes  uint64
	WriteBytes uint64
}

// UVMExp holds page counts from vm.uvmexp2.
type UVMExp struct {
	PageSize  int64
	NPages    int64
	Free      int64
	Active    int64
	Inactive  int64
	Paging    int64
	Wired     int64
	SwapPages int64
	SwapInUse int64
}

// DecodeIOStats decodes every whole io_sysctl element in buf.
func DecodeIOStats(buf SizedBuffer) ([]IOStat, error) {
	if buf.Stride < IOStatSize {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeParseFailure,
			"io_sysctl stride too small", map[string]any{"stride": buf.Stride})
	}
	n := buf.Count()
	stats := make([]IOStat, 0, n)
	for i := 0; i < n; i++ {
		e := buf.Element(i)
		stats = append(stats, IOStat{
			Name:       cString(e[:IOStatNameLen]),
			Xfers:      binary.NativeEndian.Uint64(e[ioOffXfer:]),
			Bytes:      binary.NativeEndian.Uint64(e[ioOffBytes:]),
			ReadXfers:  binary.NativeEndian.Uint64(e[ioOffRXfer:]),
			WriteXfers: binary.NativeEndian.Uint64(e[ioOffWXfer:]),
			ReadBytes:  binary.NativeEndian.Uint64(e[ioOffRBytes:]),
			WriteBytes: binary.NativeEndian.Uint64(e[ioOffWBytes:]),
		})
	}
	return stats, nil
}

// EncodeIOStats lays out stats as consecutive io_sysctl records.
// Names longer than the kernel field are truncated, keeping the NUL.
func EncodeIOStats(stats []IOStat) []byte {
	out := make([]byte, len(stats)*IOStatSize)
	for i, s := range stats {
		e := out[i*IOStatSize : (i+1)*IOStatSize]
		copy(e[:IOStatNameLen-1], s.Name)
		binary.NativeEndian.PutUint64(e[ioOffXfer:], s.Xfers)
		binary.NativeEndian.PutUint64(e[ioOffBytes:], s.Bytes)
		binary.NativeEndian.PutUint64(e[ioOffRXfer:], s.ReadXfers)
		binary.NativeEndian.PutUint64(e[ioOffWXfer:], s.WriteXfers)
		binary.NativeEndian.PutUint64(e[ioOffRBytes:], s.ReadBytes)
		binary.NativeEndian.PutUint64(e[ioOffWBytes:], s.WriteBytes)
	}
	return out
}

// DecodeUVMExp decodes the leading fields of a vm.uvmexp2 payload.
func DecodeUVMExp(data []byte) (UVMExp, error) {
	if len(data) < UVMExpSize {
		return UVMExp{}, apperrors.NewWithContext(apperrors.ErrCodeParseFailure,
			"uvmexp_sysctl payload too short", map[string]any{"length": len(data), "want": UVMExpSize})
	}
	field := func(i int) int64 {
		return int64(binary.NativeEndian.Uint64(data[i*8:]))
	}
	return UVMExp{
		PageSize:  field(uvmPageSize),
		NPages:    field(uvmNPages),
		Free:      field(uvmFree),
		Active:    field(uvmActive),
		Inactive:  field(uvmInactive),
		Paging:    field(uvmPaging),
		Wired:     field(uvmWired),
		SwapPages: field(uvmSwPages),
		SwapInUse: field(uvmSwPgInUse),
	}, nil
}

// EncodeUVMExp lays out u as the leading fields of a uvmexp_sysctl record.
func EncodeUVMExp(u UVMExp) []byte {
	out := make([]byte, UVMExpSize)
	put := func(i int, v int64) {
		binary.NativeEndian.PutUint64(out[i*8:], uint64(v))
	}
	put(uvmPageSize, u.PageSize)
	put(uvmNPages, u.NPages)
	put(uvmFree, u.Free)
	put(uvmActive, u.Active)
	put(uvmInactive, u.Inactive)
	put(uvmPaging, u.Paging)
	put(uvmWired, u.Wired)
	put(uvmSwPages, u.SwapPages)
	put(uvmSwPgInUse, u.SwapInUse)
	return out
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
