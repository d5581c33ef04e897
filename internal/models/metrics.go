// Package models defines the samples produced by the collectors and the flat
// metric records they are projected into for rendering.
package models

import (
	"strconv"
)

type valueKind uint8

const (
	kindUint valueKind = iota
	kindInt
	kindFloat
)

// Value is a metric value that keeps 64-bit counters exact.
type Value struct {
	kind valueKind
	u    uint64
	i    int64
	f    float64
}

// Uint returns an unsigned integer value.
func Uint(v uint64) Value { return Value{kind: kindUint, u: v} }

// Int returns a signed integer value.
func Int(v int64) Value { return Value{kind: kindInt, i: v} }

// Float returns a floating point value.
func Float(v float64) Value { return Value{kind: kindFloat, f: v} }

// AppendText appends the exposition form of v: integers in plain decimal,
// floats in fixed point with six decimals.
func (v Value) AppendText(b []byte) []byte {
	switch v.kind {
	case kindInt:
		return strconv.AppendInt(b, v.i, 10)
	case kindFloat:
		return strconv.AppendFloat(b, v.f, 'f', 6, 64)
	default:
		return strconv.AppendUint(b, v.u, 10)
	}
}

// String implements fmt.Stringer.
func (v Value) String() string {
	return string(v.AppendText(nil))
}

// Label is one name/value pair of a metric record.
type Label struct {
	Name  string
	Value string
}

// MetricRecord is a single exposition line.
type MetricRecord struct {
	Name   string
	Labels []Label
	Value  Value
}

// LoadWindow is the averaging window of a load sample, in minutes.
type LoadWindow int

// Load average windows.
const (
	Load1  LoadWindow = 1
	Load5  LoadWindow = 5
	Load15 LoadWindow = 15
)

// MemoryCategory identifies one memory gauge.
type MemoryCategory int

// Memory categories in exposition order.
const (
	MemoryTotal MemoryCategory = iota
	MemoryFree
	MemoryActive
	MemoryInactive
	MemoryPaging
	MemoryWired
	MemorySwapTotal
	MemorySwapUsed
)

var memorySuffixes = [...]string{
	MemoryTotal:     "size",
	MemoryFree:      "free",
	MemoryActive:    "active",
	MemoryInactive:  "inactive",
	MemoryPaging:    "paging",
	MemoryWired:     "wired",
	MemorySwapTotal: "swap_size",
	MemorySwapUsed:  "swap_used",
}

// MetricSuffix returns the metric name fragment for the category.
func (c MemoryCategory) MetricSuffix() string {
	if c < 0 || int(c) >= len(memorySuffixes) {
		return "unknown"
	}
	return memorySuffixes[c]
}

// FilesystemSample is the space accounting of one mounted filesystem.
type FilesystemSample struct {
	Device     string
	MountPoint string
	SizeBytes  uint64
	UsedBytes  uint64
	FreeBytes  uint64
}

// LoadSample is one load average.
type LoadSample struct {
	Window LoadWindow
	Value  float64
}

// NetworkInterfaceSample holds the counters of one interface.
type NetworkInterfaceSample struct {
	Interface string
	RxBytes   uint64
	TxBytes   uint64
	Errors    uint64
}

// MemorySample is one memory gauge in bytes.
type MemorySample struct {
	Category MemoryCategory
	Bytes    int64
}

// DiskIOSample holds the transfer counters of one disk.
type DiskIOSample struct {
	Device     string
	ReadBytes  uint64
	WriteBytes uint64
}
