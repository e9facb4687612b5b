package wire

import (
	"bytes"
	stderrors "errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/wirebuf/wirebuf"
	"github.com/wirebuf/wirebuf/errors"
)

func TestWriter_Compressed513(t *testing.T) {
	w := NewWriter(compressed())
	w.WriteUint16(513)

	want := []byte{0x81, 0x04}
	if got := w.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("encoding = %x, want %x", got, want)
	}

	r := NewReader(want, compressed())
	v, err := r.ReadUint16()
	if err != nil {
		t.Fatal(err)
	}
	if v != 513 {
		t.Errorf("decoded %d, want 513", v)
	}
}

func TestWriter_StringHi(t *testing.T) {
	w := NewWriter(compressed())
	if err := w.WriteString("hi"); err != nil {
		t.Fatal(err)
	}

	want := []byte{0x02, 0x68, 0x69}
	if got := w.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("encoding = %x, want %x", got, want)
	}

	r := NewReader(want, compressed())
	s, err := r.ReadString()
	if err != nil {
		t.Fatal(err)
	}
	if s != "hi" {
		t.Errorf("decoded %q, want \"hi\"", s)
	}
}

func TestWriter_StringTooLong(t *testing.T) {
	w := NewWriter(compressed())
	err := w.WriteString(strings.Repeat("x", MaxStringBytes+1))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindFormat}) {
		t.Fatalf("error = %v, want format violation", err)
	}
}

func TestWriter_CharSlot(t *testing.T) {
	for _, cfg := range []wirebuf.Config{compressed(), uncompressed()} {
		w := NewWriter(cfg)
		if err := w.WriteChar('A'); err != nil {
			t.Fatal(err)
		}
		if err := w.WriteChar('é'); err != nil {
			t.Fatal(err)
		}

		r := NewReader(w.Bytes(), cfg)
		for _, want := range []rune{'A', 'é'} {
			got, err := r.ReadChar()
			if err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Errorf("decoded %q, want %q", got, want)
			}
		}
	}
}

func TestWriter_CharBeyondBMP(t *testing.T) {
	w := NewWriter(compressed())
	err := w.WriteChar('🚀')
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindFormat}) {
		t.Fatalf("error = %v, want format violation", err)
	}
}

func TestWriter_UncompressedLayouts(t *testing.T) {
	w := NewWriter(uncompressed())
	w.WriteUint16(513)
	w.WriteUint32(1)
	w.WriteFloat32(1.0)

	want := []byte{
		0x01, 0x02, // 513 LE
		0x01, 0x00, 0x00, 0x00, // 1 LE
		0x00, 0x00, 0x80, 0x3F, // 1.0f bits
	}
	if got := w.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("encoding = %x, want %x", got, want)
	}
}

func TestWriter_Float32Quantized(t *testing.T) {
	cfg := wirebuf.Config{UseCompression: true, DecimalPlaces: 2, BitsPerComponent: 10}
	w := NewWriter(cfg)
	w.WriteFloat32(3.14159)

	// 3.14159 * 100 rounds to 314, zigzag 628 = varint [0xF4, 0x04].
	want := []byte{0xF4, 0x04}
	if got := w.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("encoding = %x, want %x", got, want)
	}

	r := NewReader(w.Bytes(), cfg)
	got, err := r.ReadFloat32()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(float64(got)-3.14159) > 0.005 {
		t.Errorf("decoded %g, want within 0.005 of 3.14159", got)
	}
}

func TestWriter_FloatPrecisionBound(t *testing.T) {
	for _, dp := range []uint8{0, 1, 2, 4, 6} {
		cfg := wirebuf.Config{UseCompression: true, DecimalPlaces: dp, BitsPerComponent: 10}
		bound := 0.5 * math.Pow10(-int(dp))

		for _, v := range []float32{0, 1, -1, 0.5, -127.25, 1000.125, -0.0625} {
			w := NewWriter(cfg)
			w.WriteFloat32(v)
			r := NewReader(w.Bytes(), cfg)
			got, err := r.ReadFloat32()
			if err != nil {
				t.Fatal(err)
			}
			if diff := math.Abs(float64(got) - float64(v)); diff > bound+1e-9 {
				t.Errorf("dp=%d: %g decoded as %g, error %g > %g", dp, v, got, diff, bound)
			}
		}
	}
}

func TestWriter_Float64Raw(t *testing.T) {
	for _, cfg := range []wirebuf.Config{compressed(), uncompressed()} {
		w := NewWriter(cfg)
		w.WriteFloat64(math.Pi)
		if w.Len() != 8 {
			t.Fatalf("float64 = %d bytes, want 8 (never compressed)", w.Len())
		}
		r := NewReader(w.Bytes(), cfg)
		got, err := r.ReadFloat64()
		if err != nil {
			t.Fatal(err)
		}
		if got != math.Pi {
			t.Errorf("decoded %g, want exact pi", got)
		}
	}
}

func TestWriter_Color(t *testing.T) {
	w := NewWriter(compressed())
	w.WriteColor(wirebuf.Color{R: 1, G: 0.5, B: 0, A: 1})

	want := []byte{100, 50, 0, 100}
	if got := w.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("encoding = %x, want %x", got, want)
	}

	r := NewReader(w.Bytes(), compressed())
	c, err := r.ReadColor()
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 1 || c.G != 0.5 || c.B != 0 || c.A != 1 {
		t.Errorf("decoded %+v", c)
	}
}

func TestWriter_Vectors(t *testing.T) {
	for _, cfg := range []wirebuf.Config{compressed(), uncompressed()} {
		w := NewWriter(cfg)
		w.WriteVector2(wirebuf.Vector2{X: 1.5, Y: -2.25})
		w.WriteVector3(wirebuf.Vector3{X: 0.125, Y: 100, Z: -0.5})

		r := NewReader(w.Bytes(), cfg)
		v2, err := r.ReadVector2()
		if err != nil {
			t.Fatal(err)
		}
		v3, err := r.ReadVector3()
		if err != nil {
			t.Fatal(err)
		}

		const eps = 1e-4
		if math.Abs(float64(v2.X-1.5)) > eps || math.Abs(float64(v2.Y+2.25)) > eps {
			t.Errorf("vector2 = %+v", v2)
		}
		if math.Abs(float64(v3.X-0.125)) > eps || math.Abs(float64(v3.Y-100)) > eps || math.Abs(float64(v3.Z+0.5)) > eps {
			t.Errorf("vector3 = %+v", v3)
		}
	}
}

func TestWriter_Time(t *testing.T) {
	instant := time.Date(2026, 8, 30, 12, 30, 45, 123456789, time.UTC)
	for _, cfg := range []wirebuf.Config{compressed(), uncompressed()} {
		w := NewWriter(cfg)
		w.WriteTime(instant)

		r := NewReader(w.Bytes(), cfg)
		got, err := r.ReadTime()
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(instant) {
			t.Errorf("decoded %v, want %v", got, instant)
		}
	}
}

func TestWriter_Count(t *testing.T) {
	w := NewWriter(compressed())
	w.WriteCount(0)
	if got := w.Bytes(); !bytes.Equal(got, []byte{0x00}) {
		t.Fatalf("compressed empty count = %x, want 00", got)
	}

	w = NewWriter(uncompressed())
	w.WriteCount(0)
	if got := w.Bytes(); !bytes.Equal(got, []byte{0, 0, 0, 0}) {
		t.Fatalf("uncompressed empty count = %x, want 00000000", got)
	}
}

func TestWriter_IntegerRoundTrip(t *testing.T) {
	for _, cfg := range []wirebuf.Config{compressed(), uncompressed()} {
		w := NewWriter(cfg)
		w.WriteBool(true)
		w.WriteUint8(200)
		w.WriteInt8(-100)
		w.WriteUint16(65535)
		w.WriteInt16(-32768)
		w.WriteUint32(4_000_000_000)
		w.WriteInt32(-2_000_000_000)
		w.WriteUint64(math.MaxUint64)
		w.WriteInt64(math.MinInt64)

		r := NewReader(w.Bytes(), cfg)
		if v, err := r.ReadBool(); err != nil || v != true {
			t.Fatalf("bool: %v, %v", v, err)
		}
		if v, err := r.ReadUint8(); err != nil || v != 200 {
			t.Fatalf("uint8: %v, %v", v, err)
		}
		if v, err := r.ReadInt8(); err != nil || v != -100 {
			t.Fatalf("int8: %v, %v", v, err)
		}
		if v, err := r.ReadUint16(); err != nil || v != 65535 {
			t.Fatalf("uint16: %v, %v", v, err)
		}
		if v, err := r.ReadInt16(); err != nil || v != -32768 {
			t.Fatalf("int16: %v, %v", v, err)
		}
		if v, err := r.ReadUint32(); err != nil || v != 4_000_000_000 {
			t.Fatalf("uint32: %v, %v", v, err)
		}
		if v, err := r.ReadInt32(); err != nil || v != -2_000_000_000 {
			t.Fatalf("int32: %v, %v", v, err)
		}
		if v, err := r.ReadUint64(); err != nil || v != math.MaxUint64 {
			t.Fatalf("uint64: %v, %v", v, err)
		}
		if v, err := r.ReadInt64(); err != nil || v != math.MinInt64 {
			t.Fatalf("int64: %v, %v", v, err)
		}
		if r.Remaining() != 0 {
			t.Fatalf("%d bytes left over", r.Remaining())
		}
	}
}

func TestReader_ValueRangeChecks(t *testing.T) {
	// A compressed stream holding a value too large for the declared type.
	w := NewWriter(compressed())
	w.WriteUint32(1 << 20)

	r := NewReader(w.Bytes(), compressed())
	_, err := r.ReadUint16()
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindOverflow}) {
		t.Fatalf("error = %v, want overflow", err)
	}
}

func TestWriter_TruncatedString(t *testing.T) {
	w := NewWriter(compressed())
	if err := w.WriteString("hello"); err != nil {
		t.Fatal(err)
	}

	data := w.Bytes()
	r := NewReader(data[:3], compressed())
	_, err := r.ReadString()
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindOutOfBounds}) {
		t.Fatalf("error = %v, want out_of_bounds", err)
	}
}

func TestWriter_ZeroConfigUsesDefaults(t *testing.T) {
	w := NewWriter(wirebuf.Config{})
	if !w.Config().UseCompression {
		t.Error("zero config should normalize to compression on")
	}
	w.WriteUint16(513)
	if got := w.Bytes(); !bytes.Equal(got, []byte{0x81, 0x04}) {
		t.Errorf("encoding = %x, want varint form", got)
	}
}
