package codec

import (
	"reflect"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"

	"github.com/wirebuf/wirebuf/errors"
	"github.com/wirebuf/wirebuf/wire"
)

type encodeFunc func(w *wire.Writer, v reflect.Value) error

// decodeFunc writes into v, which is always addressable.
type decodeFunc func(r *wire.Reader, v reflect.Value) error

// handler is a compiled encode/decode pair for one concrete type. A handler
// with a non-nil err marks the type as permanently unsupported; caching the
// error means repeated dispatch never re-probes the resolution tiers.
type handler struct {
	encode     encodeFunc
	decode     decodeFunc
	err        *errors.Error
	structural bool
}

// Registry is the process-wide cache mapping a concrete type to its compiled
// handler. Entries are added lazily on first dispatch and never evicted.
// Lookups and inserts are safe for concurrent use; two goroutines compiling
// the same type race harmlessly because compilation is pure and the compiled
// handlers are functionally identical.
type Registry struct {
	handlers *xsync.MapOf[reflect.Type, *handler]
}

// Default is the registry used by the package-level entry points. It lives
// for the process lifetime.
var Default = NewRegistry()

// NewRegistry creates an empty handler registry. Most callers want Default;
// separate registries exist so tests can isolate cache state.
func NewRegistry() *Registry {
	return &Registry{handlers: xsync.NewMapOf[reflect.Type, *handler]()}
}

// lookup resolves the handler for t, compiling and caching it on first use.
func (reg *Registry) lookup(t reflect.Type) (*handler, error) {
	if h, ok := reg.handlers.Load(t); ok {
		if h.err != nil {
			return nil, h.err
		}
		return h, nil
	}

	h := reg.resolve(t, nil, map[reflect.Type]bool{})
	if h.err != nil {
		return nil, h.err
	}
	return h, nil
}

// resolve compiles a handler for t and caches it. visiting holds the types
// on the current compilation path; meeting one of them again means the type
// graph cycles, which fails closed as unsupported (an embedded cycle could
// otherwise recurse forever at encode time).
func (reg *Registry) resolve(t reflect.Type, path []string, visiting map[reflect.Type]bool) *handler {
	if h, ok := reg.handlers.Load(t); ok {
		return h
	}
	if visiting[t] {
		// Not cached: the cycle error belongs to the outermost type being
		// compiled, which caches its own unsupported marker.
		return &handler{err: errors.Unsupported(errors.PhaseResolve, path, t.String(), "reference cycle")}
	}

	visiting[t] = true
	h := reg.compile(t, path, visiting)
	delete(visiting, t)

	cached, loaded := reg.handlers.LoadOrStore(t, h)
	if !loaded {
		metricCompiles.Inc()
		if h.err != nil {
			metricUnsupported.Inc()
			Logger().Debug("type rejected", zap.String("type", t.String()), zap.String("reason", h.err.Detail))
		} else {
			if h.structural {
				metricStructural.Inc()
			}
			Logger().Debug("handler compiled", zap.String("type", t.String()), zap.Bool("structural", h.structural))
		}
	}
	return cached
}

// compile walks the resolution tiers for t:
//
//	(a) built-in fast path for the wire value types and time.Time
//	(b) a Marshaler/Unmarshaler implementation supplied by the type
//	(c) primitives by reflect.Kind, covering named scalar types
//	(d) containers: slices, arrays, maps, pointers
//	(e) structural fallback over exported struct fields
//
// Anything left over cannot be serialized.
func (reg *Registry) compile(t reflect.Type, path []string, visiting map[reflect.Type]bool) *handler {
	if h := builtinTypeHandler(t); h != nil {
		return h
	}
	if h := marshalerHandler(t); h != nil {
		return h
	}
	if h := primitiveHandler(t); h != nil {
		return h
	}

	switch t.Kind() {
	case reflect.Slice:
		return reg.compileSlice(t, path, visiting)
	case reflect.Array:
		return reg.compileArray(t, path, visiting)
	case reflect.Map:
		return reg.compileMap(t, path, visiting)
	case reflect.Pointer:
		return reg.compilePointer(t, path, visiting)
	case reflect.Struct:
		return reg.compileStruct(t, path, visiting)
	default:
		return &handler{err: errors.Unsupported(errors.PhaseResolve, path, t.String(),
			"no wire representation for this kind")}
	}
}

// compileStruct builds the structural fallback: exported fields in
// declaration order, each dispatched recursively.
func (reg *Registry) compileStruct(t reflect.Type, path []string, visiting map[reflect.Type]bool) *handler {
	type fieldHandler struct {
		h     *handler
		index int
	}

	var fields []fieldHandler
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		if field.Type == t || (field.Type.Kind() == reflect.Pointer && field.Type.Elem() == t) {
			return &handler{err: errors.Unsupported(errors.PhaseResolve,
				append(path, field.Name), t.String(), "direct self-reference")}
		}

		fh := reg.resolve(field.Type, append(path, field.Name), visiting)
		if fh.err != nil {
			return &handler{err: fh.err}
		}
		fields = append(fields, fieldHandler{h: fh, index: i})
	}

	if len(fields) == 0 {
		return &handler{err: errors.Unsupported(errors.PhaseResolve, path, t.String(),
			"no exported fields")}
	}

	enc := func(w *wire.Writer, v reflect.Value) error {
		for _, f := range fields {
			if err := f.h.encode(w, v.Field(f.index)); err != nil {
				return err
			}
		}
		return nil
	}
	dec := func(r *wire.Reader, v reflect.Value) error {
		for _, f := range fields {
			if err := f.h.decode(r, v.Field(f.index)); err != nil {
				return err
			}
		}
		return nil
	}
	return &handler{encode: enc, decode: dec, structural: true}
}

func (reg *Registry) compilePointer(t reflect.Type, path []string, visiting map[reflect.Type]bool) *handler {
	elem := reg.resolve(t.Elem(), path, visiting)
	if elem.err != nil {
		return &handler{err: elem.err}
	}

	enc := func(w *wire.Writer, v reflect.Value) error {
		if v.IsNil() {
			return errors.NilPointer(errors.PhaseEncode, path, t.String())
		}
		return elem.encode(w, v.Elem())
	}
	dec := func(r *wire.Reader, v reflect.Value) error {
		v.Set(reflect.New(t.Elem()))
		return elem.decode(r, v.Elem())
	}
	return &handler{encode: enc, decode: dec}
}

var (
	marshalerType   = reflect.TypeOf((*Marshaler)(nil)).Elem()
	unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
)

// marshalerHandler wires a type's own Marshaler/Unmarshaler implementation
// into a handler. A type implementing only half the pair is rejected rather
// than silently falling through to the structural tier.
func marshalerHandler(t reflect.Type) *handler {
	ptr := reflect.PointerTo(t)
	encodes := t.Implements(marshalerType) || ptr.Implements(marshalerType)
	decodes := ptr.Implements(unmarshalerType)
	if !encodes && !decodes {
		return nil
	}
	if !encodes || !decodes {
		return &handler{err: errors.Unsupported(errors.PhaseResolve, nil, t.String(),
			"implements only one of Marshaler/Unmarshaler")}
	}

	valueImpl := t.Implements(marshalerType)
	enc := func(w *wire.Writer, v reflect.Value) error {
		if valueImpl {
			return v.Interface().(Marshaler).EncodeWire(w)
		}
		if v.CanAddr() {
			return v.Addr().Interface().(Marshaler).EncodeWire(w)
		}
		// Pointer-receiver implementation on a non-addressable value.
		pv := reflect.New(t)
		pv.Elem().Set(v)
		return pv.Interface().(Marshaler).EncodeWire(w)
	}
	dec := func(r *wire.Reader, v reflect.Value) error {
		return v.Addr().Interface().(Unmarshaler).DecodeWire(r)
	}
	return &handler{encode: enc, decode: dec}
}
