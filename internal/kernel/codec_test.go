package kernel

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Guliveer/vitalis/exporter/internal/errors"
)

func TestDecodeIOStats_RawLayout(t *testing.T) {
	// Offsets are those of struct io_sysctl in sys/iostat.h.
	raw := make([]byte, 2*104)
	copy(raw, "wd0")
	binary.NativeEndian.PutUint64(raw[24:], 33)      // xfer
	binary.NativeEndian.PutUint64(raw[40:], 1228800) // bytes
	binary.NativeEndian.PutUint64(raw[72:], 11)      // rxfer
	binary.NativeEndian.PutUint64(raw[80:], 409600)  // rbytes
	binary.NativeEndian.PutUint64(raw[88:], 22)      // wxfer
	binary.NativeEndian.PutUint64(raw[96:], 819200)  // wbytes
	second := raw[104:]
	copy(second, "cd0\x00garbage")
	binary.NativeEndian.PutUint64(second[72:], 7)

	stats, err := DecodeIOStats(SizedBuffer{Data: raw, Stride: IOStatSize})
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, IOStat{
		Name:       "wd0",
		Xfers:      33,
		Bytes:      1228800,
		ReadXfers:  11,
		WriteXfers: 22,
		ReadBytes:  409600,
		WriteBytes: 819200,
	}, stats[0])
	assert.Equal(t, "cd0", stats[1].Name, "name stops at the first NUL")
	assert.Equal(t, uint64(7), stats[1].ReadXfers)
	assert.Zero(t, stats[1].ReadBytes)
}

func TestEncodeIOStats_RawLayout(t *testing.T) {
	raw := EncodeIOStats([]IOStat{{Name: "sd0", ReadXfers: 1, ReadBytes: 2, WriteXfers: 3, WriteBytes: 4}})
	require.Len(t, raw, 104)
	assert.Equal(t, uint64(1), binary.NativeEndian.Uint64(raw[72:]))
	assert.Equal(t, uint64(2), binary.NativeEndian.Uint64(raw[80:]))
	assert.Equal(t, uint64(3), binary.NativeEndian.Uint64(raw[88:]))
	assert.Equal(t, uint64(4), binary.NativeEndian.Uint64(raw[96:]))
}

func TestDecodeIOStats_Empty(t *testing.T) {
	stats, err := DecodeIOStats(SizedBuffer{Stride: IOStatSize})
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestDecodeIOStats_BadStride(t *testing.T) {
	_, err := DecodeIOStats(SizedBuffer{Data: make([]byte, 64), Stride: 32})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeParseFailure))
}

func TestEncodeIOStats_TruncatesLongNames(t *testing.T) {
	raw := EncodeIOStats([]IOStat{{Name: "a-very-long-device-name"}})
	require.Len(t, raw, IOStatSize)
	assert.Equal(t, byte(0), raw[IOStatNameLen-1])

	stats, err := DecodeIOStats(SizedBuffer{Data: raw, Stride: IOStatSize})
	require.NoError(t, err)
	assert.Equal(t, "a-very-long-dev", stats[0].Name)
}

func TestDecodeUVMExp(t *testing.T) {
	raw := make([]byte, 400) // the kernel record is longer than what we read
	binary.NativeEndian.PutUint64(raw[uvmNPages*8:], 1000)
	binary.NativeEndian.PutUint64(raw[uvmWired*8:], 50)
	binary.NativeEndian.PutUint64(raw[uvmSwPgInUse*8:], 3)

	u, err := DecodeUVMExp(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), u.NPages)
	assert.Equal(t, int64(50), u.Wired)
	assert.Equal(t, int64(3), u.SwapInUse)
	assert.Zero(t, u.Paging)
}

func TestDecodeUVMExp_Short(t *testing.T) {
	_, err := DecodeUVMExp(make([]byte, UVMExpSize-1))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeParseFailure))
}
