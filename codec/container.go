package codec

import (
	"fmt"
	"math"
	"reflect"

	"github.com/wirebuf/wirebuf/errors"
	"github.com/wirebuf/wirebuf/wire"
)

// Containers share one framing rule: an element count up front, then the
// elements back to back. The count uses the uint32 layout of the active
// configuration, so compressed buffers spend a single byte on small
// collections.

func (reg *Registry) compileSlice(t reflect.Type, path []string, visiting map[reflect.Type]bool) *handler {
	// []byte skips per-element dispatch and goes to the buffer verbatim.
	if t.Elem().Kind() == reflect.Uint8 && t.Elem() == byteType {
		return byteSliceHandler(t)
	}

	eh := reg.resolve(t.Elem(), append(path, "[]"), visiting)
	if eh.err != nil {
		return &handler{err: eh.err}
	}

	return &handler{
		encode: func(w *wire.Writer, v reflect.Value) error {
			n := v.Len()
			if uint64(n) > math.MaxUint32 {
				return errors.InvalidData(errors.PhaseEncode, path,
					fmt.Sprintf("slice length %d exceeds uint32 range", n))
			}
			w.WriteCount(uint32(n))
			for i := 0; i < n; i++ {
				if err := eh.encode(w, v.Index(i)); err != nil {
					return err
				}
			}
			return nil
		},
		decode: func(r *wire.Reader, v reflect.Value) error {
			count, err := r.ReadCount()
			if err != nil {
				return err
			}
			// A count larger than the bytes left cannot describe valid data.
			// Refuse it before allocating, so a corrupt prefix cannot demand
			// gigabytes.
			if int(count) > r.Remaining() {
				return errors.InvalidData(errors.PhaseDecode, path,
					fmt.Sprintf("element count %d exceeds %d remaining bytes", count, r.Remaining()))
			}
			out := reflect.MakeSlice(t, int(count), int(count))
			for i := 0; i < int(count); i++ {
				if err := eh.decode(r, out.Index(i)); err != nil {
					return err
				}
			}
			v.Set(out)
			return nil
		},
	}
}

var byteType = reflect.TypeOf(byte(0))

func byteSliceHandler(t reflect.Type) *handler {
	return &handler{
		encode: func(w *wire.Writer, v reflect.Value) error {
			b := v.Bytes()
			w.WriteCount(uint32(len(b)))
			w.WriteRawBytes(b)
			return nil
		},
		decode: func(r *wire.Reader, v reflect.Value) error {
			count, err := r.ReadCount()
			if err != nil {
				return err
			}
			raw, err := r.ReadRawBytes(int(count))
			if err != nil {
				return err
			}
			out := reflect.MakeSlice(t, int(count), int(count))
			reflect.Copy(out, reflect.ValueOf(raw))
			v.Set(out)
			return nil
		},
	}
}

func (reg *Registry) compileArray(t reflect.Type, path []string, visiting map[reflect.Type]bool) *handler {
	eh := reg.resolve(t.Elem(), append(path, "[]"), visiting)
	if eh.err != nil {
		return &handler{err: eh.err}
	}
	length := t.Len()

	return &handler{
		encode: func(w *wire.Writer, v reflect.Value) error {
			w.WriteCount(uint32(length))
			for i := 0; i < length; i++ {
				if err := eh.encode(w, v.Index(i)); err != nil {
					return err
				}
			}
			return nil
		},
		decode: func(r *wire.Reader, v reflect.Value) error {
			count, err := r.ReadCount()
			if err != nil {
				return err
			}
			if int(count) != length {
				return errors.InvalidData(errors.PhaseDecode, path,
					fmt.Sprintf("array length mismatch: buffer holds %d elements, %s holds %d", count, t, length))
			}
			for i := 0; i < length; i++ {
				if err := eh.decode(r, v.Index(i)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (reg *Registry) compileMap(t reflect.Type, path []string, visiting map[reflect.Type]bool) *handler {
	kh := reg.resolve(t.Key(), append(path, "[key]"), visiting)
	if kh.err != nil {
		return &handler{err: kh.err}
	}
	vh := reg.resolve(t.Elem(), append(path, "[value]"), visiting)
	if vh.err != nil {
		return &handler{err: vh.err}
	}
	keyType, valType := t.Key(), t.Elem()

	return &handler{
		encode: func(w *wire.Writer, v reflect.Value) error {
			w.WriteCount(uint32(v.Len()))
			iter := v.MapRange()
			for iter.Next() {
				if err := kh.encode(w, iter.Key()); err != nil {
					return err
				}
				if err := vh.encode(w, iter.Value()); err != nil {
					return err
				}
			}
			return nil
		},
		decode: func(r *wire.Reader, v reflect.Value) error {
			count, err := r.ReadCount()
			if err != nil {
				return err
			}
			if int(count) > r.Remaining() {
				return errors.InvalidData(errors.PhaseDecode, path,
					fmt.Sprintf("entry count %d exceeds %d remaining bytes", count, r.Remaining()))
			}
			out := reflect.MakeMapWithSize(t, int(count))
			for i := 0; i < int(count); i++ {
				key := reflect.New(keyType).Elem()
				if err := kh.decode(r, key); err != nil {
					return err
				}
				val := reflect.New(valType).Elem()
				if err := vh.decode(r, val); err != nil {
					return err
				}
				out.SetMapIndex(key, val)
			}
			v.Set(out)
			return nil
		},
	}
}
