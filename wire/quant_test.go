package wire

import (
	"math"
	"testing"

	"github.com/wirebuf/wirebuf"
)

func TestQuaternion_PackedIdentity(t *testing.T) {
	w := NewWriter(compressed())
	w.WriteQuaternion(wirebuf.Identity())

	r := NewReader(w.Bytes(), compressed())
	got, err := r.ReadQuaternion()
	if err != nil {
		t.Fatal(err)
	}

	// With 10 bits per component every component must land within 2^-9.
	const eps = 1.0 / 512
	id := wirebuf.Identity()
	for i, d := range []float64{
		float64(got.X - id.X),
		float64(got.Y - id.Y),
		float64(got.Z - id.Z),
		float64(got.W - id.W),
	} {
		if math.Abs(d) > eps {
			t.Errorf("component %d deviates by %g, tolerance %g", i, d, eps)
		}
	}
}

func TestQuaternion_PackedRoundTrip(t *testing.T) {
	quats := []wirebuf.Quaternion{
		{X: 1},
		{Y: -1},
		{Z: 1},
		{W: -1},
		wirebuf.Quaternion{X: 0.3, Y: -0.2, Z: 0.5, W: 0.7}.Normalize(),
		wirebuf.Quaternion{X: -0.7, Y: 0.7, Z: 0.1, W: -0.1}.Normalize(),
		wirebuf.Quaternion{X: 0.5, Y: 0.5, Z: 0.5, W: 0.5},
	}

	for _, bits := range []uint8{8, 10, 12, 16, 20} {
		cfg := wirebuf.Config{UseCompression: true, DecimalPlaces: 4, BitsPerComponent: bits}
		// One quantization step per retained component; the reconstructed
		// component accumulates error from all three, so give it 3x.
		step := math.Sqrt2 / float64(uint64(1)<<bits-1)
		eps := float32(3 * step)

		for _, q := range quats {
			w := NewWriter(cfg)
			w.WriteQuaternion(q)
			r := NewReader(w.Bytes(), cfg)
			got, err := r.ReadQuaternion()
			if err != nil {
				t.Fatalf("bits=%d q=%v: %v", bits, q, err)
			}

			// Compare up to sign: q and -q are the same rotation, and the
			// packed form preserves the exact representation anyway.
			if diff := maxComponentDiff(got, q); diff > eps {
				t.Errorf("bits=%d: round-trip of %v gave %v, max diff %g > %g",
					bits, q, got, diff, eps)
			}
		}
	}
}

func TestQuaternion_UncompressedExact(t *testing.T) {
	q := wirebuf.Quaternion{X: 0.25, Y: -0.5, Z: 0.125, W: 0.8125}
	w := NewWriter(uncompressed())
	w.WriteQuaternion(q)

	if w.Len() != 16 {
		t.Fatalf("uncompressed quaternion = %d bytes, want 16", w.Len())
	}

	r := NewReader(w.Bytes(), uncompressed())
	got, err := r.ReadQuaternion()
	if err != nil {
		t.Fatal(err)
	}
	if got != q {
		t.Errorf("round-trip = %v, want exact %v", got, q)
	}
}

func TestQuaternion_PackedIsCompact(t *testing.T) {
	// 3 flag bits + 3*10 component bits = 33 bits, at most 5 varint bytes.
	w := NewWriter(compressed())
	w.WriteQuaternion(wirebuf.Quaternion{X: 0.3, Y: -0.2, Z: 0.5, W: 0.7}.Normalize())
	if w.Len() > 5 {
		t.Errorf("packed quaternion = %d bytes, want <= 5", w.Len())
	}
}

func TestQuantizeComponent_Clamps(t *testing.T) {
	if got := quantizeComponent(-2, 10); got != 0 {
		t.Errorf("quantize(-2) = %d, want 0", got)
	}
	if got := quantizeComponent(2, 10); got != 1023 {
		t.Errorf("quantize(2) = %d, want 1023", got)
	}
}

func maxComponentDiff(a, b wirebuf.Quaternion) float32 {
	if a.Dot(b) < 0 {
		b = wirebuf.Quaternion{X: -b.X, Y: -b.Y, Z: -b.Z, W: -b.W}
	}
	diff := abs32(a.X - b.X)
	if d := abs32(a.Y - b.Y); d > diff {
		diff = d
	}
	if d := abs32(a.Z - b.Z); d > diff {
		diff = d
	}
	if d := abs32(a.W - b.W); d > diff {
		diff = d
	}
	return diff
}
