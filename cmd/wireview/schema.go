package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wirebuf/wirebuf"
	"github.com/wirebuf/wirebuf/wire"
)

// fieldKind names one wire layout in a schema string. A schema is a
// comma-separated list like "u32,string,f32,quat".
type fieldKind string

const (
	kindBool   fieldKind = "bool"
	kindU8     fieldKind = "u8"
	kindI8     fieldKind = "i8"
	kindU16    fieldKind = "u16"
	kindI16    fieldKind = "i16"
	kindU32    fieldKind = "u32"
	kindI32    fieldKind = "i32"
	kindU64    fieldKind = "u64"
	kindI64    fieldKind = "i64"
	kindF32    fieldKind = "f32"
	kindF64    fieldKind = "f64"
	kindChar   fieldKind = "char"
	kindString fieldKind = "string"
	kindVec2   fieldKind = "vec2"
	kindVec3   fieldKind = "vec3"
	kindQuat   fieldKind = "quat"
	kindColor  fieldKind = "color"
	kindTime   fieldKind = "time"
)

var knownKinds = map[fieldKind]bool{
	kindBool: true, kindU8: true, kindI8: true, kindU16: true, kindI16: true,
	kindU32: true, kindI32: true, kindU64: true, kindI64: true,
	kindF32: true, kindF64: true, kindChar: true, kindString: true,
	kindVec2: true, kindVec3: true, kindQuat: true, kindColor: true,
	kindTime: true,
}

func parseSchema(s string) ([]fieldKind, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty schema")
	}
	var fields []fieldKind
	for _, tok := range strings.Split(s, ",") {
		k := fieldKind(strings.TrimSpace(tok))
		if !knownKinds[k] {
			return nil, fmt.Errorf("unknown schema token %q", tok)
		}
		fields = append(fields, k)
	}
	return fields, nil
}

// decodedField is one schema entry read from a payload, with the byte range
// it occupied.
type decodedField struct {
	kind   fieldKind
	value  string
	offset int
	size   int
}

func decodePayload(data []byte, fields []fieldKind, cfg wirebuf.Config) ([]decodedField, error) {
	r := wire.NewReader(data, cfg)
	out := make([]decodedField, 0, len(fields))

	for i, k := range fields {
		start := r.Pos()
		value, err := decodeField(r, k)
		if err != nil {
			return out, fmt.Errorf("field %d (%s) at offset %d: %w", i, k, start, err)
		}
		out = append(out, decodedField{kind: k, value: value, offset: start, size: r.Pos() - start})
	}

	if r.Remaining() > 0 {
		return out, fmt.Errorf("%d trailing bytes after last field", r.Remaining())
	}
	return out, nil
}

func decodeField(r *wire.Reader, k fieldKind) (string, error) {
	switch k {
	case kindBool:
		v, err := r.ReadBool()
		return fmt.Sprintf("%v", v), err
	case kindU8:
		v, err := r.ReadUint8()
		return fmt.Sprintf("%d", v), err
	case kindI8:
		v, err := r.ReadInt8()
		return fmt.Sprintf("%d", v), err
	case kindU16:
		v, err := r.ReadUint16()
		return fmt.Sprintf("%d", v), err
	case kindI16:
		v, err := r.ReadInt16()
		return fmt.Sprintf("%d", v), err
	case kindU32:
		v, err := r.ReadUint32()
		return fmt.Sprintf("%d", v), err
	case kindI32:
		v, err := r.ReadInt32()
		return fmt.Sprintf("%d", v), err
	case kindU64:
		v, err := r.ReadUint64()
		return fmt.Sprintf("%d", v), err
	case kindI64:
		v, err := r.ReadInt64()
		return fmt.Sprintf("%d", v), err
	case kindF32:
		v, err := r.ReadFloat32()
		return strconv.FormatFloat(float64(v), 'g', -1, 32), err
	case kindF64:
		v, err := r.ReadFloat64()
		return strconv.FormatFloat(v, 'g', -1, 64), err
	case kindChar:
		v, err := r.ReadChar()
		return fmt.Sprintf("%q", v), err
	case kindString:
		v, err := r.ReadString()
		return fmt.Sprintf("%q", v), err
	case kindVec2:
		v, err := r.ReadVector2()
		return fmt.Sprintf("(%g, %g)", v.X, v.Y), err
	case kindVec3:
		v, err := r.ReadVector3()
		return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z), err
	case kindQuat:
		v, err := r.ReadQuaternion()
		return fmt.Sprintf("(%g, %g, %g, %g)", v.X, v.Y, v.Z, v.W), err
	case kindColor:
		v, err := r.ReadColor()
		return fmt.Sprintf("rgba(%g, %g, %g, %g)", v.R, v.G, v.B, v.A), err
	case kindTime:
		v, err := r.ReadTime()
		if err != nil {
			return "", err
		}
		return v.UTC().Format(time.RFC3339Nano), nil
	}
	return "", fmt.Errorf("unknown field kind %q", k)
}

// encodePayload builds a payload from one textual value per schema field.
func encodePayload(fields []fieldKind, values []string, cfg wirebuf.Config) ([]byte, error) {
	if len(values) != len(fields) {
		return nil, fmt.Errorf("schema has %d fields, got %d values", len(fields), len(values))
	}
	w := wire.NewWriter(cfg)
	for i, k := range fields {
		if err := encodeField(w, k, strings.TrimSpace(values[i])); err != nil {
			return nil, fmt.Errorf("field %d (%s): %w", i, k, err)
		}
	}
	return w.Bytes(), nil
}

func encodeField(w *wire.Writer, k fieldKind, value string) error {
	switch k {
	case kindBool:
		w.WriteBool(value == "true" || value == "1")
	case kindU8:
		v, err := strconv.ParseUint(value, 10, 8)
		if err != nil {
			return err
		}
		w.WriteUint8(uint8(v))
	case kindI8:
		v, err := strconv.ParseInt(value, 10, 8)
		if err != nil {
			return err
		}
		w.WriteInt8(int8(v))
	case kindU16:
		v, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return err
		}
		w.WriteUint16(uint16(v))
	case kindI16:
		v, err := strconv.ParseInt(value, 10, 16)
		if err != nil {
			return err
		}
		w.WriteInt16(int16(v))
	case kindU32:
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return err
		}
		w.WriteUint32(uint32(v))
	case kindI32:
		v, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return err
		}
		w.WriteInt32(int32(v))
	case kindU64:
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		w.WriteUint64(v)
	case kindI64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		w.WriteInt64(v)
	case kindF32:
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return err
		}
		w.WriteFloat32(float32(v))
	case kindF64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		w.WriteFloat64(v)
	case kindChar:
		runes := []rune(value)
		if len(runes) != 1 {
			return fmt.Errorf("char wants exactly one rune, got %q", value)
		}
		return w.WriteChar(runes[0])
	case kindString:
		return w.WriteString(value)
	case kindVec2:
		parts, err := splitFloats(value, 2)
		if err != nil {
			return err
		}
		w.WriteVector2(wirebuf.Vector2{X: parts[0], Y: parts[1]})
	case kindVec3:
		parts, err := splitFloats(value, 3)
		if err != nil {
			return err
		}
		w.WriteVector3(wirebuf.Vector3{X: parts[0], Y: parts[1], Z: parts[2]})
	case kindQuat:
		parts, err := splitFloats(value, 4)
		if err != nil {
			return err
		}
		q := wirebuf.Quaternion{X: parts[0], Y: parts[1], Z: parts[2], W: parts[3]}
		w.WriteQuaternion(q.Normalize())
	case kindColor:
		parts, err := splitFloats(value, 4)
		if err != nil {
			return err
		}
		w.WriteColor(wirebuf.Color{R: parts[0], G: parts[1], B: parts[2], A: parts[3]})
	case kindTime:
		t, err := time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return err
		}
		w.WriteTime(t)
	default:
		return fmt.Errorf("unknown field kind %q", k)
	}
	return nil
}

// splitFloats parses "x:y:z" style component lists.
func splitFloats(value string, n int) ([]float32, error) {
	parts := strings.Split(value, ":")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d colon-separated components, got %q", n, value)
	}
	out := make([]float32, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}
