// Package wire implements the typed Writer and Reader over the byte cursors.
//
// The Writer exposes one Write method per wire type; the Reader mirrors each
// with a Read method. A Config chosen at construction decides between the
// fixed-width and compressed layouts:
//
//	Value          Uncompressed              Compressed
//	──────────────────────────────────────────────────────────────────
//	bool/u8/i8     1 byte literal            same
//	u16..u64       little-endian fixed       7-bit varint
//	i16..i64       little-endian fixed       zigzag + varint
//	char           2 bytes LE                as u16
//	float32        IEEE-754 bits             round(v * 10^dp) zigzag varint
//	float64        IEEE-754 bits             same (never compressed)
//	string         u16 length + UTF-8        length follows u16 rule
//	color          4 bytes, round(c * 100)   same
//	quaternion     4 x float32               smallest-three packed varint
//
// Varints are least-significant-group-first with the high bit as the
// continuation flag. Decoding caps the group count at MaxVarintLen, so a
// corrupt stream fails with an overflow error instead of consuming unrelated
// bytes.
//
// Writers and Readers live for one message each and are not safe for
// concurrent use.
package wire
