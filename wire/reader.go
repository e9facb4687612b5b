package wire

import (
	"math"
	"time"

	"github.com/wirebuf/wirebuf"
	"github.com/wirebuf/wirebuf/buffer"
	"github.com/wirebuf/wirebuf/errors"
)

// Reader decodes typed values from a received byte slice. It must be
// constructed with the same Config the Writer used or every subsequent read
// returns garbage. Like the Writer it is single-owner and not safe for
// concurrent use.
type Reader struct {
	buf   *buffer.Reader
	cfg   wirebuf.Config
	scale float64
}

// NewReader creates a Reader over data. The zero Config is replaced with
// wirebuf.DefaultConfig. The Reader does not copy data.
func NewReader(data []byte, cfg wirebuf.Config) *Reader {
	cfg = cfg.Normalize()
	return &Reader{
		buf:   buffer.NewReader(data),
		cfg:   cfg,
		scale: math.Pow10(int(cfg.DecimalPlaces)),
	}
}

// Config returns the configuration the Reader was constructed with.
func (r *Reader) Config() wirebuf.Config { return r.cfg }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return r.buf.Remaining() }

// Pos returns the current read position.
func (r *Reader) Pos() int { return r.buf.Pos() }

// Len returns the total input length.
func (r *Reader) Len() int { return r.buf.Len() }

// Skip advances the read position, clamped to the input bounds.
func (r *Reader) Skip(n int) { r.buf.Skip(n) }

// Revert moves the read position back, clamped at zero.
func (r *Reader) Revert(n int) { r.buf.Revert(n) }

// Clear resets the read position to the start of the input.
func (r *Reader) Clear() { r.buf.Clear() }

// ReadBool reads a 0/1 byte. Any nonzero byte decodes as true.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.buf.ReadByte()
	return b != 0, err
}

// ReadUint8 reads a literal byte.
func (r *Reader) ReadUint8() (uint8, error) {
	return r.buf.ReadByte()
}

// ReadInt8 reads a literal byte.
func (r *Reader) ReadInt8() (int8, error) {
	b, err := r.buf.ReadByte()
	return int8(b), err
}

// ReadUint16 reads a varint when compression is on, little-endian fixed
// width otherwise.
func (r *Reader) ReadUint16() (uint16, error) {
	if r.cfg.UseCompression {
		u, err := r.readUvarint()
		if err != nil {
			return 0, err
		}
		if u > math.MaxUint16 {
			return 0, errors.Overflow(errors.PhaseDecode, u, "uint16")
		}
		return uint16(u), nil
	}
	return r.buf.ReadUint16()
}

// ReadInt16 reads a zigzag varint when compression is on.
func (r *Reader) ReadInt16() (int16, error) {
	if r.cfg.UseCompression {
		v, err := r.readVarint()
		if err != nil {
			return 0, err
		}
		if v < math.MinInt16 || v > math.MaxInt16 {
			return 0, errors.Overflow(errors.PhaseDecode, v, "int16")
		}
		return int16(v), nil
	}
	u, err := r.buf.ReadUint16()
	return int16(u), err
}

// ReadUint32 reads a varint when compression is on.
func (r *Reader) ReadUint32() (uint32, error) {
	if r.cfg.UseCompression {
		u, err := r.readUvarint()
		if err != nil {
			return 0, err
		}
		if u > math.MaxUint32 {
			return 0, errors.Overflow(errors.PhaseDecode, u, "uint32")
		}
		return uint32(u), nil
	}
	return r.buf.ReadUint32()
}

// ReadInt32 reads a zigzag varint when compression is on.
func (r *Reader) ReadInt32() (int32, error) {
	if r.cfg.UseCompression {
		v, err := r.readVarint()
		if err != nil {
			return 0, err
		}
		if v < math.MinInt32 || v > math.MaxInt32 {
			return 0, errors.Overflow(errors.PhaseDecode, v, "int32")
		}
		return int32(v), nil
	}
	u, err := r.buf.ReadUint32()
	return int32(u), err
}

// ReadUint64 reads a varint when compression is on.
func (r *Reader) ReadUint64() (uint64, error) {
	if r.cfg.UseCompression {
		return r.readUvarint()
	}
	return r.buf.ReadUint64()
}

// ReadInt64 reads a zigzag varint when compression is on.
func (r *Reader) ReadInt64() (int64, error) {
	if r.cfg.UseCompression {
		return r.readVarint()
	}
	u, err := r.buf.ReadUint64()
	return int64(u), err
}

// ReadChar reads a rune from the two-byte char slot.
func (r *Reader) ReadChar() (rune, error) {
	u, err := r.ReadUint16()
	return rune(u), err
}

// ReadFloat32 reads the IEEE-754 bit pattern, or dequantizes the fixed-point
// form when compression is on.
func (r *Reader) ReadFloat32() (float32, error) {
	if r.cfg.UseCompression {
		v, err := r.readVarint()
		if err != nil {
			return 0, err
		}
		return float32(float64(v) / r.scale), nil
	}
	bits, err := r.buf.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// ReadFloat64 reads the raw IEEE-754 bit pattern.
func (r *Reader) ReadFloat64() (float64, error) {
	bits, err := r.buf.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// ReadString reads a uint16 byte-length prefix and that many UTF-8 bytes.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return "", err
	}
	seg, err := r.buf.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(seg), nil
}

// ReadColor reads four one-byte channels and scales them back to [0, 1].
func (r *Reader) ReadColor() (wirebuf.Color, error) {
	seg, err := r.buf.ReadBytes(4)
	if err != nil {
		return wirebuf.Color{}, err
	}
	return wirebuf.Color{
		R: float32(seg[0]) / colorScale,
		G: float32(seg[1]) / colorScale,
		B: float32(seg[2]) / colorScale,
		A: float32(seg[3]) / colorScale,
	}, nil
}

// ReadVector2 reads both components under the float32 rule.
func (r *Reader) ReadVector2() (wirebuf.Vector2, error) {
	var v wirebuf.Vector2
	var err error
	if v.X, err = r.ReadFloat32(); err != nil {
		return v, err
	}
	v.Y, err = r.ReadFloat32()
	return v, err
}

// ReadVector3 reads all three components under the float32 rule.
func (r *Reader) ReadVector3() (wirebuf.Vector3, error) {
	var v wirebuf.Vector3
	var err error
	if v.X, err = r.ReadFloat32(); err != nil {
		return v, err
	}
	if v.Y, err = r.ReadFloat32(); err != nil {
		return v, err
	}
	v.Z, err = r.ReadFloat32()
	return v, err
}

// ReadQuaternion reads four floats, or unpacks the smallest-three form when
// compression is on.
func (r *Reader) ReadQuaternion() (wirebuf.Quaternion, error) {
	if r.cfg.UseCompression {
		packed, err := r.readUvarint()
		if err != nil {
			return wirebuf.Quaternion{}, err
		}
		return unpackQuaternion(packed, r.cfg.BitsPerComponent), nil
	}
	var q wirebuf.Quaternion
	var err error
	if q.X, err = r.ReadFloat32(); err != nil {
		return q, err
	}
	if q.Y, err = r.ReadFloat32(); err != nil {
		return q, err
	}
	if q.Z, err = r.ReadFloat32(); err != nil {
		return q, err
	}
	q.W, err = r.ReadFloat32()
	return q, err
}

// ReadTime reads an instant written by WriteTime.
func (r *Reader) ReadTime() (time.Time, error) {
	ns, err := r.ReadInt64()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, ns), nil
}

// ReadCount reads a container element count under the uint32 rule.
func (r *Reader) ReadCount() (uint32, error) {
	if r.cfg.UseCompression {
		u, err := r.readUvarint()
		if err != nil {
			return 0, err
		}
		if u > math.MaxUint32 {
			return 0, errors.Overflow(errors.PhaseDecode, u, "uint32 count")
		}
		return uint32(u), nil
	}
	return r.buf.ReadUint32()
}

// ReadRawBytes reads n bytes with no length prefix. The returned slice
// aliases the input.
func (r *Reader) ReadRawBytes(n int) ([]byte, error) {
	return r.buf.ReadBytes(n)
}
