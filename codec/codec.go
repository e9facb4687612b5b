package codec

import (
	"fmt"
	"reflect"

	"github.com/wirebuf/wirebuf"
	"github.com/wirebuf/wirebuf/errors"
	"github.com/wirebuf/wirebuf/wire"
)

// Marshaler is the capability interface for types that encode themselves.
// Implementing it (together with Unmarshaler) replaces the structural
// fallback for that type.
type Marshaler interface {
	EncodeWire(w *wire.Writer) error
}

// Unmarshaler is the decode half of the capability pair. It requires a
// pointer receiver so the decoded state has somewhere to go.
type Unmarshaler interface {
	DecodeWire(r *wire.Reader) error
}

// Marshal encodes v into a fresh byte payload using the default registry.
func Marshal(v any, cfg wirebuf.Config) ([]byte, error) {
	return Default.Marshal(v, cfg)
}

// Unmarshal decodes data into the value out points at using the default
// registry.
func Unmarshal(data []byte, out any, cfg wirebuf.Config) error {
	return Default.Unmarshal(data, out, cfg)
}

// Write appends the encoding of v to an existing Writer, for messages built
// from several values.
func Write(w *wire.Writer, v any) error {
	return Default.Write(w, v)
}

// Read decodes the next value from r into the value out points at.
func Read(r *wire.Reader, out any) error {
	return Default.Read(r, out)
}

// Marshal encodes v into a fresh byte payload.
func (reg *Registry) Marshal(v any, cfg wirebuf.Config) ([]byte, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := wire.NewWriter(cfg)
	if err := reg.Write(w, v); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Unmarshal decodes data into the value out points at.
func (reg *Registry) Unmarshal(data []byte, out any, cfg wirebuf.Config) error {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}
	return reg.Read(wire.NewReader(data, cfg), out)
}

// Write appends the encoding of v to an existing Writer.
func (reg *Registry) Write(w *wire.Writer, v any) error {
	if v == nil {
		return errors.NilPointer(errors.PhaseEncode, nil, "<nil>")
	}
	rv := reflect.ValueOf(v)
	h, err := reg.lookup(rv.Type())
	if err != nil {
		return err
	}
	return h.encode(w, rv)
}

// Read decodes the next value from r into the value out points at. out must
// be a non-nil pointer.
func (reg *Registry) Read(r *wire.Reader, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New(errors.PhaseDecode, errors.KindNilPointer).
			GoType(fmt.Sprintf("%T", out)).
			Detail("decode target must be a non-nil pointer").
			Build()
	}
	h, err := reg.lookup(rv.Type().Elem())
	if err != nil {
		return err
	}
	return h.decode(r, rv.Elem())
}
