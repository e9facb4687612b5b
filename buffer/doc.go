// Package buffer provides the byte cursors backing the wire codec.
//
// Writer is a growable write buffer with an explicit position and a
// high-water Length mark; writes never fail on capacity. Reader is a bounded
// cursor over an immutable input slice; reads past the end return an
// out-of-bounds error rather than extending anything.
//
// Both cursors are single-owner: one instance is constructed, driven to
// completion and discarded by a single logical encode or decode call on one
// goroutine. Neither is safe for concurrent use.
package buffer
