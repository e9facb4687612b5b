package buffer

import (
	"encoding/binary"

	"github.com/wirebuf/wirebuf/errors"
)

// Reader is a bounded cursor over an immutable input byte slice. Every read
// checks the remaining length first; exceeding it is an out-of-bounds error,
// never an implicit extension.
//
// The Reader does not copy its input. Slices returned by ReadBytes share
// memory with it.
type Reader struct {
	buf []byte
	pos int
}

// NewReader creates a Reader over data. The caller must not mutate data while
// the Reader is in use.
func NewReader(data []byte) *Reader {
	return &Reader{buf: data}
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, errors.OutOfBounds(errors.PhaseDecode, 1, 0)
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

// ReadBytes reads the next n bytes. The returned slice aliases the input.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.InvalidData(errors.PhaseDecode, nil, "negative read length")
	}
	if n > r.Remaining() {
		return nil, errors.OutOfBounds(errors.PhaseDecode, n, r.Remaining())
	}
	v := r.buf[r.pos : r.pos+n]
	r.pos += n
	return v, nil
}

// ReadUint16 reads a little-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	if r.Remaining() < 2 {
		return 0, errors.OutOfBounds(errors.PhaseDecode, 2, r.Remaining())
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadUint32 reads a little-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, errors.OutOfBounds(errors.PhaseDecode, 4, r.Remaining())
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadUint64 reads a little-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	if r.Remaining() < 8 {
		return 0, errors.OutOfBounds(errors.PhaseDecode, 8, r.Remaining())
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

// Skip advances the position by n bytes, clamped at the input length.
func (r *Reader) Skip(n int) {
	r.pos += n
	if r.pos > len(r.buf) {
		r.pos = len(r.buf)
	}
	if r.pos < 0 {
		r.pos = 0
	}
}

// Revert moves the position back by n bytes, clamped at zero.
func (r *Reader) Revert(n int) {
	r.Skip(-n)
}

// Clear resets the position to the start of the input.
func (r *Reader) Clear() {
	r.pos = 0
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Pos returns the current read position.
func (r *Reader) Pos() int { return r.pos }

// Len returns the total input length.
func (r *Reader) Len() int { return len(r.buf) }
