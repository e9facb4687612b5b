package wire

import "github.com/wirebuf/wirebuf/errors"

// Variable-length quantity encoding: 7 data bits per byte, least significant
// group first, high bit set while more groups follow.

// MaxVarintLen is the longest varint encoding of a uint64.
const MaxVarintLen = 10

// ZigZagEncode maps a signed integer to an unsigned one so that values of
// small magnitude, positive or negative, stay small under varint encoding.
func ZigZagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// ZigZagDecode is the inverse of ZigZagEncode.
func ZigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// UvarintLen returns the number of bytes the varint encoding of v occupies:
// max(1, ceil(bitlen(v)/7)).
func UvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

func (w *Writer) writeUvarint(v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf.WriteUint8(b)
		if v == 0 {
			return
		}
	}
}

func (w *Writer) writeVarint(v int64) {
	w.writeUvarint(ZigZagEncode(v))
}

// readUvarint accumulates 7-bit groups until a byte with the continuation
// bit clear. The group count is capped at MaxVarintLen so corrupt input
// fails with an overflow instead of running past the field boundary.
func (r *Reader) readUvarint() (uint64, error) {
	var result uint64
	var shift uint
	for i := 0; i < MaxVarintLen; i++ {
		b, err := r.buf.ReadByte()
		if err != nil {
			return 0, err
		}
		if i == MaxVarintLen-1 && b > 1 {
			// The tenth byte may only carry the 64th bit.
			return 0, errors.Overflow(errors.PhaseDecode, b, "uint64 varint")
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, errors.Overflow(errors.PhaseDecode, result, "uint64 varint")
}

func (r *Reader) readVarint() (int64, error) {
	u, err := r.readUvarint()
	if err != nil {
		return 0, err
	}
	return ZigZagDecode(u), nil
}
