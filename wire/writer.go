package wire

import (
	"math"
	"time"

	"github.com/wirebuf/wirebuf"
	"github.com/wirebuf/wirebuf/buffer"
	"github.com/wirebuf/wirebuf/errors"
)

// MaxStringBytes is the wire limit on the UTF-8 length of a string. The
// length prefix is a uint16.
const MaxStringBytes = math.MaxUint16

// MaxCharValue is the largest rune that fits the two-byte char slot.
const MaxCharValue = 0xFFFF

// colorScale converts a [0, 1] color channel into its one-byte wire form.
const colorScale = 100

// Writer encodes typed values into a growing byte buffer. One Writer is
// constructed per outgoing message, driven to completion on a single
// goroutine and discarded; it is not safe for concurrent use.
type Writer struct {
	buf   *buffer.Writer
	cfg   wirebuf.Config
	scale float64 // 10^DecimalPlaces, fixed at construction
}

// NewWriter creates a Writer. The zero Config is replaced with
// wirebuf.DefaultConfig; any other configuration is used as given, so callers
// constructing configs by hand should Validate first.
func NewWriter(cfg wirebuf.Config) *Writer {
	cfg = cfg.Normalize()
	return &Writer{
		buf:   buffer.NewWriter(0),
		cfg:   cfg,
		scale: math.Pow10(int(cfg.DecimalPlaces)),
	}
}

// Config returns the configuration the Writer was constructed with.
func (w *Writer) Config() wirebuf.Config { return w.cfg }

// Bytes returns a copy of the encoded output.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Raw returns the backing array including trailing garbage beyond Len.
func (w *Writer) Raw() []byte { return w.buf.Raw() }

// Len returns the number of output bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

// Pos returns the current write position.
func (w *Writer) Pos() int { return w.buf.Pos() }

// Skip advances the write position by n bytes.
func (w *Writer) Skip(n int) { w.buf.Skip(n) }

// Revert moves the write position back by n bytes, clamped at zero.
func (w *Writer) Revert(n int) { w.buf.Revert(n) }

// Clear resets the Writer for a fresh message.
func (w *Writer) Clear() { w.buf.Clear() }

// WriteBool writes a single 0/1 byte.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.WriteUint8(1)
	} else {
		w.buf.WriteUint8(0)
	}
}

// WriteUint8 writes a literal byte. Single bytes are never compressed.
func (w *Writer) WriteUint8(v uint8) {
	w.buf.WriteUint8(v)
}

// WriteInt8 writes a literal byte.
func (w *Writer) WriteInt8(v int8) {
	w.buf.WriteUint8(byte(v))
}

// WriteUint16 writes v as a varint when compression is on, little-endian
// fixed width otherwise.
func (w *Writer) WriteUint16(v uint16) {
	if w.cfg.UseCompression {
		w.writeUvarint(uint64(v))
		return
	}
	w.buf.WriteUint16(v)
}

// WriteInt16 writes v zigzag-mapped as a varint when compression is on.
func (w *Writer) WriteInt16(v int16) {
	if w.cfg.UseCompression {
		w.writeVarint(int64(v))
		return
	}
	w.buf.WriteUint16(uint16(v))
}

// WriteUint32 writes v as a varint when compression is on.
func (w *Writer) WriteUint32(v uint32) {
	if w.cfg.UseCompression {
		w.writeUvarint(uint64(v))
		return
	}
	w.buf.WriteUint32(v)
}

// WriteInt32 writes v zigzag-mapped as a varint when compression is on.
func (w *Writer) WriteInt32(v int32) {
	if w.cfg.UseCompression {
		w.writeVarint(int64(v))
		return
	}
	w.buf.WriteUint32(uint32(v))
}

// WriteUint64 writes v as a varint when compression is on.
func (w *Writer) WriteUint64(v uint64) {
	if w.cfg.UseCompression {
		w.writeUvarint(v)
		return
	}
	w.buf.WriteUint64(v)
}

// WriteInt64 writes v zigzag-mapped as a varint when compression is on.
func (w *Writer) WriteInt64(v int64) {
	if w.cfg.UseCompression {
		w.writeVarint(v)
		return
	}
	w.buf.WriteUint64(uint64(v))
}

// WriteChar writes a rune into the two-byte char slot, following the uint16
// compression rule. Runes above U+FFFF do not fit and are a format violation.
func (w *Writer) WriteChar(r rune) error {
	if r < 0 || r > MaxCharValue {
		return errors.Format(errors.PhaseEncode, "char U+%04X exceeds two-byte wire slot", r)
	}
	w.WriteUint16(uint16(r))
	return nil
}

// WriteFloat32 writes the IEEE-754 bit pattern, or the fixed-point quantized
// form when compression is on. Quantization error is bounded by
// 0.5 * 10^-DecimalPlaces.
func (w *Writer) WriteFloat32(v float32) {
	if w.cfg.UseCompression {
		w.writeVarint(int64(math.Round(float64(v) * w.scale)))
		return
	}
	w.buf.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 writes the raw IEEE-754 bit pattern. Doubles are never
// compressed: fixed-point quantization on a 64-bit value loses more than it
// saves.
func (w *Writer) WriteFloat64(v float64) {
	w.buf.WriteUint64(math.Float64bits(v))
}

// WriteString writes a uint16 byte-length prefix (following the uint16
// compression rule) and the UTF-8 bytes. Strings longer than MaxStringBytes
// are a format violation.
func (w *Writer) WriteString(s string) error {
	if len(s) > MaxStringBytes {
		return errors.Format(errors.PhaseEncode, "string length %d exceeds %d bytes", len(s), MaxStringBytes)
	}
	w.WriteUint16(uint16(len(s)))
	w.buf.WriteBytes([]byte(s))
	return nil
}

// WriteColor writes one byte per channel, channel = round(component * 100).
// Channels are clamped to [0, 1].
func (w *Writer) WriteColor(c wirebuf.Color) {
	w.buf.WriteUint8(quantizeChannel(c.R))
	w.buf.WriteUint8(quantizeChannel(c.G))
	w.buf.WriteUint8(quantizeChannel(c.B))
	w.buf.WriteUint8(quantizeChannel(c.A))
}

// WriteVector2 writes both components under the float32 rule.
func (w *Writer) WriteVector2(v wirebuf.Vector2) {
	w.WriteFloat32(v.X)
	w.WriteFloat32(v.Y)
}

// WriteVector3 writes all three components under the float32 rule.
func (w *Writer) WriteVector3(v wirebuf.Vector3) {
	w.WriteFloat32(v.X)
	w.WriteFloat32(v.Y)
	w.WriteFloat32(v.Z)
}

// WriteQuaternion writes four floats, or the bit-packed smallest-three form
// when compression is on.
func (w *Writer) WriteQuaternion(q wirebuf.Quaternion) {
	if w.cfg.UseCompression {
		w.writeUvarint(packQuaternion(q, w.cfg.BitsPerComponent))
		return
	}
	w.WriteFloat32(q.X)
	w.WriteFloat32(q.Y)
	w.WriteFloat32(q.Z)
	w.WriteFloat32(q.W)
}

// WriteTime writes the instant as Unix nanoseconds under the int64 rule.
func (w *Writer) WriteTime(t time.Time) {
	w.WriteInt64(t.UnixNano())
}

// WriteCount writes a container element count under the uint32 rule.
func (w *Writer) WriteCount(n uint32) {
	if w.cfg.UseCompression {
		w.writeUvarint(uint64(n))
		return
	}
	w.buf.WriteUint32(n)
}

// WriteRawBytes copies p into the stream with no length prefix. Callers are
// responsible for framing.
func (w *Writer) WriteRawBytes(p []byte) {
	w.buf.WriteBytes(p)
}

func quantizeChannel(c float32) byte {
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return byte(math.Round(float64(c) * colorScale))
}
