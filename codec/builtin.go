package codec

import (
	"reflect"
	"time"

	"github.com/wirebuf/wirebuf"
	"github.com/wirebuf/wirebuf/wire"
)

var (
	vector2Type    = reflect.TypeOf(wirebuf.Vector2{})
	vector3Type    = reflect.TypeOf(wirebuf.Vector3{})
	quaternionType = reflect.TypeOf(wirebuf.Quaternion{})
	colorType      = reflect.TypeOf(wirebuf.Color{})
	timeType       = reflect.TypeOf(time.Time{})
)

// builtinTypeHandler covers the exact wire value types. These sit in front of
// every other tier: they have dedicated wire layouts and must never fall
// through to structural decomposition (time.Time has no exported fields at
// all).
func builtinTypeHandler(t reflect.Type) *handler {
	switch t {
	case vector2Type:
		return &handler{
			encode: func(w *wire.Writer, v reflect.Value) error {
				w.WriteVector2(v.Interface().(wirebuf.Vector2))
				return nil
			},
			decode: func(r *wire.Reader, v reflect.Value) error {
				vec, err := r.ReadVector2()
				if err != nil {
					return err
				}
				v.Set(reflect.ValueOf(vec))
				return nil
			},
		}
	case vector3Type:
		return &handler{
			encode: func(w *wire.Writer, v reflect.Value) error {
				w.WriteVector3(v.Interface().(wirebuf.Vector3))
				return nil
			},
			decode: func(r *wire.Reader, v reflect.Value) error {
				vec, err := r.ReadVector3()
				if err != nil {
					return err
				}
				v.Set(reflect.ValueOf(vec))
				return nil
			},
		}
	case quaternionType:
		return &handler{
			encode: func(w *wire.Writer, v reflect.Value) error {
				w.WriteQuaternion(v.Interface().(wirebuf.Quaternion))
				return nil
			},
			decode: func(r *wire.Reader, v reflect.Value) error {
				q, err := r.ReadQuaternion()
				if err != nil {
					return err
				}
				v.Set(reflect.ValueOf(q))
				return nil
			},
		}
	case colorType:
		return &handler{
			encode: func(w *wire.Writer, v reflect.Value) error {
				w.WriteColor(v.Interface().(wirebuf.Color))
				return nil
			},
			decode: func(r *wire.Reader, v reflect.Value) error {
				c, err := r.ReadColor()
				if err != nil {
					return err
				}
				v.Set(reflect.ValueOf(c))
				return nil
			},
		}
	case timeType:
		return &handler{
			encode: func(w *wire.Writer, v reflect.Value) error {
				w.WriteTime(v.Interface().(time.Time))
				return nil
			},
			decode: func(r *wire.Reader, v reflect.Value) error {
				instant, err := r.ReadTime()
				if err != nil {
					return err
				}
				v.Set(reflect.ValueOf(instant))
				return nil
			},
		}
	}
	return nil
}

// primitiveHandler covers scalar kinds, so named types like `type EntityID
// uint32` share the primitive wire layouts. Platform-sized int and uint use
// the 64-bit layouts. Runs after the Marshaler tier: a named scalar with its
// own codec keeps it.
func primitiveHandler(t reflect.Type) *handler {
	switch t.Kind() {
	case reflect.Bool:
		return &handler{
			encode: func(w *wire.Writer, v reflect.Value) error {
				w.WriteBool(v.Bool())
				return nil
			},
			decode: func(r *wire.Reader, v reflect.Value) error {
				b, err := r.ReadBool()
				if err != nil {
					return err
				}
				v.SetBool(b)
				return nil
			},
		}
	case reflect.Uint8:
		return uintHandler(func(w *wire.Writer, u uint64) { w.WriteUint8(uint8(u)) },
			func(r *wire.Reader) (uint64, error) { u, err := r.ReadUint8(); return uint64(u), err })
	case reflect.Uint16:
		return uintHandler(func(w *wire.Writer, u uint64) { w.WriteUint16(uint16(u)) },
			func(r *wire.Reader) (uint64, error) { u, err := r.ReadUint16(); return uint64(u), err })
	case reflect.Uint32:
		return uintHandler(func(w *wire.Writer, u uint64) { w.WriteUint32(uint32(u)) },
			func(r *wire.Reader) (uint64, error) { u, err := r.ReadUint32(); return uint64(u), err })
	case reflect.Uint64, reflect.Uint:
		return uintHandler(func(w *wire.Writer, u uint64) { w.WriteUint64(u) },
			func(r *wire.Reader) (uint64, error) { return r.ReadUint64() })
	case reflect.Int8:
		return intHandler(func(w *wire.Writer, i int64) { w.WriteInt8(int8(i)) },
			func(r *wire.Reader) (int64, error) { i, err := r.ReadInt8(); return int64(i), err })
	case reflect.Int16:
		return intHandler(func(w *wire.Writer, i int64) { w.WriteInt16(int16(i)) },
			func(r *wire.Reader) (int64, error) { i, err := r.ReadInt16(); return int64(i), err })
	case reflect.Int32:
		return intHandler(func(w *wire.Writer, i int64) { w.WriteInt32(int32(i)) },
			func(r *wire.Reader) (int64, error) { i, err := r.ReadInt32(); return int64(i), err })
	case reflect.Int64, reflect.Int:
		return intHandler(func(w *wire.Writer, i int64) { w.WriteInt64(i) },
			func(r *wire.Reader) (int64, error) { return r.ReadInt64() })
	case reflect.Float32:
		return &handler{
			encode: func(w *wire.Writer, v reflect.Value) error {
				w.WriteFloat32(float32(v.Float()))
				return nil
			},
			decode: func(r *wire.Reader, v reflect.Value) error {
				f, err := r.ReadFloat32()
				if err != nil {
					return err
				}
				v.SetFloat(float64(f))
				return nil
			},
		}
	case reflect.Float64:
		return &handler{
			encode: func(w *wire.Writer, v reflect.Value) error {
				w.WriteFloat64(v.Float())
				return nil
			},
			decode: func(r *wire.Reader, v reflect.Value) error {
				f, err := r.ReadFloat64()
				if err != nil {
					return err
				}
				v.SetFloat(f)
				return nil
			},
		}
	case reflect.String:
		return &handler{
			encode: func(w *wire.Writer, v reflect.Value) error {
				return w.WriteString(v.String())
			},
			decode: func(r *wire.Reader, v reflect.Value) error {
				s, err := r.ReadString()
				if err != nil {
					return err
				}
				v.SetString(s)
				return nil
			},
		}
	}
	return nil
}

func uintHandler(write func(*wire.Writer, uint64), read func(*wire.Reader) (uint64, error)) *handler {
	return &handler{
		encode: func(w *wire.Writer, v reflect.Value) error {
			write(w, v.Uint())
			return nil
		},
		decode: func(r *wire.Reader, v reflect.Value) error {
			u, err := read(r)
			if err != nil {
				return err
			}
			v.SetUint(u)
			return nil
		},
	}
}

func intHandler(write func(*wire.Writer, int64), read func(*wire.Reader) (int64, error)) *handler {
	return &handler{
		encode: func(w *wire.Writer, v reflect.Value) error {
			write(w, v.Int())
			return nil
		},
		decode: func(r *wire.Reader, v reflect.Value) error {
			i, err := read(r)
			if err != nil {
				return err
			}
			v.SetInt(i)
			return nil
		},
	}
}
