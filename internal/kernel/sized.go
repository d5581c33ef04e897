package kernel

import (
	apperrors "github.com/Guliveer/vitalis/exporter/internal/errors"
)

// maxSizedBuffer caps the length a probe may ask us to allocate.
const maxSizedBuffer = 64 << 20

// NetBSD MIB numbers (sys/sysctl.h, uvm/uvm_param.h).
const (
	ctlVM     = 2
	ctlHW     = 6
	vmLoadavg = 2
	vmUVMExp2 = 5
	hwIOStats = 9
)

// Selector names a sysctl node and the size of one element in its result.
// A zero Stride marks a single-record node.
type Selector struct {
	Name   string
	MIB    []int32
	Stride int
}

var (
	// SelectorUVMExp is vm.uvmexp2, the 64-bit UVM statistics record.
	SelectorUVMExp = Selector{Name: "vm.uvmexp2", MIB: []int32{ctlVM, vmUVMExp2}}

	// SelectorIOStats is hw.iostats, an array of io_sysctl records. The third
	// MIB component tells the kernel how many bytes to copy per device.
	SelectorIOStats = Selector{Name: "hw.iostats", MIB: []int32{ctlHW, hwIOStats, IOStatSize}, Stride: IOStatSize}

	// SelectorLoadavg is vm.loadavg, a struct loadavg.
	SelectorLoadavg = Selector{Name: "vm.loadavg", MIB: []int32{ctlVM, vmLoadavg}}
)

// SizedBuffer is the payload of a two-phase query together with its element
// stride. The count is always derived from the length actually returned.
type SizedBuffer struct {
	Data   []byte
	Stride int
}

// Count returns the number of whole elements in the buffer.
func (b SizedBuffer) Count() int {
	if b.Stride <= 0 {
		if len(b.Data) > 0 {
			return 1
		}
		return 0
	}
	return len(b.Data) / b.Stride
}

// Element returns the i-th element. It panics if i is out of range.
func (b SizedBuffer) Element(i int) []byte {
	if b.Stride <= 0 {
		if i != 0 {
			panic("kernel: element index out of range")
		}
		return b.Data
	}
	return b.Data[i*b.Stride : (i+1)*b.Stride]
}

// SysctlFunc performs one sysctl call. With a nil buf it reports the length
// the kernel would return; otherwise it fills buf and reports the length used.
type SysctlFunc func(mib []int32, buf []byte) (int, error)

// QuerySized runs the probe-then-fill protocol for sel using call.
//
// The second call may report a different length than the probe when devices
// attach or detach in between. The returned buffer is sized from the second
// call and trailing bytes that do not form a whole element are dropped.
func QuerySized(call SysctlFunc, sel Selector) (SizedBuffer, error) {
	want, err := call(sel.MIB, nil)
	if err != nil {
		return SizedBuffer{}, apperrors.WrapWithContext(apperrors.ErrCodeQueryUnavailable,
			"sysctl size probe failed", err, map[string]any{"selector": sel.Name})
	}
	if want < 0 || want > maxSizedBuffer {
		return SizedBuffer{}, apperrors.NewWithContext(apperrors.ErrCodeAllocationFailure,
			"sysctl reported an unusable buffer length", map[string]any{"selector": sel.Name, "length": want})
	}
	if want == 0 {
		return SizedBuffer{Stride: sel.Stride}, nil
	}

	buf := make([]byte, want)
	got, err := call(sel.MIB, buf)
	if err != nil {
		return SizedBuffer{}, apperrors.WrapWithContext(apperrors.ErrCodeQueryUnavailable,
			"sysctl fill failed", err, map[string]any{"selector": sel.Name})
	}
	if got < 0 {
		got = 0
	}
	if got > len(buf) {
		got = len(buf)
	}
	data := buf[:got]
	if sel.Stride > 0 {
		data = data[:len(data)-len(data)%sel.Stride]
	}
	return SizedBuffer{Data: data, Stride: sel.Stride}, nil
}
