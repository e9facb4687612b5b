package buffer

import "encoding/binary"

const initialCapacity = 64

// Writer is a growable byte buffer with an explicit write position. Writes
// append at the position and never fail: the backing array grows (at least
// doubling) before any write that would exceed capacity.
//
// Length is the high-water mark of bytes actually written and defines the
// valid output; Revert moves the position back without shrinking it.
type Writer struct {
	buf    []byte
	pos    int
	length int
}

// NewWriter creates a Writer with the given initial capacity. A non-positive
// capacity uses a small default.
func NewWriter(capacity int) *Writer {
	if capacity <= 0 {
		capacity = initialCapacity
	}
	return &Writer{buf: make([]byte, capacity)}
}

// ensure grows the backing array so that n more bytes fit at the position.
func (w *Writer) ensure(n int) {
	need := w.pos + n
	if need <= len(w.buf) {
		return
	}
	newCap := 2 * len(w.buf)
	if newCap < need {
		newCap = need + len(w.buf)
	}
	grown := make([]byte, newCap)
	copy(grown, w.buf[:w.length])
	w.buf = grown
}

// mark advances the position by n and raises the high-water mark.
func (w *Writer) mark(n int) {
	w.pos += n
	if w.pos > w.length {
		w.length = w.pos
	}
}

// WriteUint8 writes a single byte at the position.
func (w *Writer) WriteUint8(v byte) {
	w.ensure(1)
	w.buf[w.pos] = v
	w.mark(1)
}

// WriteBytes copies p into the buffer at the position.
func (w *Writer) WriteBytes(p []byte) {
	w.ensure(len(p))
	copy(w.buf[w.pos:], p)
	w.mark(len(p))
}

// WriteUint16 writes a little-endian uint16.
func (w *Writer) WriteUint16(v uint16) {
	w.ensure(2)
	binary.LittleEndian.PutUint16(w.buf[w.pos:], v)
	w.mark(2)
}

// WriteUint32 writes a little-endian uint32.
func (w *Writer) WriteUint32(v uint32) {
	w.ensure(4)
	binary.LittleEndian.PutUint32(w.buf[w.pos:], v)
	w.mark(4)
}

// WriteUint64 writes a little-endian uint64.
func (w *Writer) WriteUint64(v uint64) {
	w.ensure(8)
	binary.LittleEndian.PutUint64(w.buf[w.pos:], v)
	w.mark(8)
}

// Skip advances the position by n bytes, growing the buffer as needed. The
// skipped bytes count toward Length and are zero unless previously written.
func (w *Writer) Skip(n int) {
	if n <= 0 {
		return
	}
	w.ensure(n)
	w.mark(n)
}

// Revert moves the position back by n bytes, clamped at zero. Length is
// unaffected: bytes already written remain part of the output until
// overwritten or Clear is called.
func (w *Writer) Revert(n int) {
	w.pos -= n
	if w.pos < 0 {
		w.pos = 0
	}
}

// Clear resets the position and length to zero, retaining the backing array.
func (w *Writer) Clear() {
	w.pos = 0
	w.length = 0
}

// Bytes returns a copy of exactly Length bytes of output.
func (w *Writer) Bytes() []byte {
	out := make([]byte, w.length)
	copy(out, w.buf[:w.length])
	return out
}

// Raw returns the backing array. Bytes beyond Len are garbage; most callers
// want Bytes.
func (w *Writer) Raw() []byte {
	return w.buf
}

// Pos returns the current write position.
func (w *Writer) Pos() int { return w.pos }

// Len returns the high-water mark of bytes written.
func (w *Writer) Len() int { return w.length }

// Cap returns the size of the backing array.
func (w *Writer) Cap() int { return len(w.buf) }
