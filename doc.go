// Package wirebuf implements a compact binary serialization engine for
// network transmission.
//
// A Writer turns values (primitives, vectors, quaternions, strings, sequences,
// maps and user-defined composite records) into a byte stream; a Reader is the
// mirror operation. Two independent compression schemes keep payloads small:
// variable-length integer encoding with zigzag sign mapping, and fixed-point
// quantization for floats and rotations.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	wirebuf/          Root package with Config and the wire value types
//	├── buffer/       Growable write buffer and bounded read cursor
//	├── wire/         Typed Writer/Reader: primitives, varints, quantization
//	├── codec/        Type handler registry and dynamic dispatch
//	├── errors/       Structured error types
//	└── cmd/wireview/ Wire stream inspector CLI
//
// # Quick Start
//
// Encode a message into bytes and back:
//
//	cfg := wirebuf.DefaultConfig()
//
//	payload, err := codec.Marshal(msg, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var decoded Message
//	if err := codec.Unmarshal(payload, &decoded, cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Or drive a Writer directly for multi-value messages:
//
//	w := wire.NewWriter(cfg)
//	w.WriteUint32(seq)
//	w.WriteString(name)
//	w.WriteQuaternion(rot)
//	transport.Send(w.Bytes())
//
// # Compression
//
// With Config.UseCompression enabled, integers use 7-bit variable-length
// groups (signed values are zigzag-mapped first), float32 values are scaled
// by 10^DecimalPlaces and rounded, and quaternions drop their largest
// component and bit-pack the rest into a single varint.
//
// # Thread Safety
//
// The codec type handler registry is safe for concurrent use. Writer, Reader
// and the underlying buffers are single-owner: construct one per message,
// drive it to completion on one goroutine, and discard it.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[decode] out_of_bounds: need 4 bytes, 1 remaining
//	[resolve] unsupported at next: Go type main.Node - direct self-reference
//
// All errors are synchronous. A failed write or read leaves the buffer
// position unspecified; discard the buffer rather than continuing.
package wirebuf
