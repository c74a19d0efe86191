package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	result := CheckEndianness()

	var probe uint16 = 0x0102
	probeBytes := (*[2]byte)(unsafe.Pointer(&probe))

	switch probeBytes[0] {
	case 0x01:
		require.Equal(t, binary.BigEndian, result)
	case 0x02:
		require.Equal(t, binary.LittleEndian, result)
	default:
		require.Failf(t, "unexpected probe byte", "got: %v", probeBytes[0])
	}
}

func TestNativeEndiannessInverse(t *testing.T) {
	require.NotEqual(t, IsNativeLittleEndian(), IsNativeBigEndian())
	require.True(t, IsNativeLittleEndian() || IsNativeBigEndian())
}

func TestCompareNativeEndian(t *testing.T) {
	if IsNativeLittleEndian() {
		require.True(t, CompareNativeEndian(GetLittleEndianEngine()))
		require.False(t, CompareNativeEndian(GetBigEndianEngine()))
	} else {
		require.False(t, CompareNativeEndian(GetLittleEndianEngine()))
		require.True(t, CompareNativeEndian(GetBigEndianEngine()))
	}
}

func TestEngines(t *testing.T) {
	le := GetLittleEndianEngine()
	be := GetBigEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), le)
	require.Implements(t, (*EndianEngine)(nil), be)

	var v32 uint32 = 0x01020304
	leBytes := le.AppendUint32(nil, v32)
	beBytes := be.AppendUint32(nil, v32)

	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, leBytes)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, beBytes)
	require.Equal(t, v32, le.Uint32(leBytes))
	require.Equal(t, v32, be.Uint32(beBytes))

	var v64 uint64 = 0x0102030405060708
	leBytes = le.AppendUint64(nil, v64)
	beBytes = be.AppendUint64(nil, v64)

	require.NotEqual(t, leBytes, beBytes)
	require.Equal(t, v64, le.Uint64(leBytes))
	require.Equal(t, v64, be.Uint64(beBytes))
}
