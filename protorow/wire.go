package protorow

import (
	"github.com/arloliu/datum/endian"
)

// Low-level protobuf wire writers. All functions append to dst and return
// the extended slice, following the append convention so callers can chain
// them without intermediate allocations.

// AppendUvarint appends v in base-128 varint form (1-10 bytes).
func AppendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

// AppendVarint appends v in two's-complement varint form. Negative values
// always occupy 10 bytes, matching protobuf int32/int64 encoding.
func AppendVarint(dst []byte, v int64) []byte {
	return AppendUvarint(dst, uint64(v))
}

// AppendZigzag appends v in zig-zag varint form, matching protobuf
// sint32/sint64 encoding. Small negative values stay small on the wire.
func AppendZigzag(dst []byte, v int64) []byte {
	return AppendUvarint(dst, uint64(v<<1)^uint64(v>>63))
}

// AppendTag appends the field tag varint ((number << 3) | wire).
func AppendTag(dst []byte, number int32, wire WireType) []byte {
	return AppendUvarint(dst, uint64(number)<<3|uint64(wire))
}

// AppendFixed32 appends v as 4 bytes under the given engine. Protobuf
// fixed32 fields use the little-endian engine.
func AppendFixed32(dst []byte, engine endian.EndianEngine, v uint32) []byte {
	return engine.AppendUint32(dst, v)
}

// AppendFixed64 appends v as 8 bytes under the given engine. Protobuf
// fixed64 fields use the little-endian engine.
func AppendFixed64(dst []byte, engine endian.EndianEngine, v uint64) []byte {
	return engine.AppendUint64(dst, v)
}

// AppendLengthDelimited appends a varint byte length followed by the
// payload itself.
func AppendLengthDelimited(dst []byte, payload []byte) []byte {
	dst = AppendUvarint(dst, uint64(len(payload)))

	return append(dst, payload...)
}

// Uvarint decodes a base-128 varint from the front of buf, returning the
// value and the number of bytes consumed. n == 0 means buf was truncated;
// n < 0 means the varint overflows 64 bits.
func Uvarint(buf []byte) (uint64, int) {
	var v uint64
	var shift uint

	for i, b := range buf {
		if i == 10 {
			return 0, -(i + 1)
		}
		if b < 0x80 {
			if i == 9 && b > 1 {
				return 0, -(i + 1)
			}

			return v | uint64(b)<<shift, i + 1
		}
		v |= uint64(b&0x7f) << shift
		shift += 7
	}

	return 0, 0
}
