package wirebuf

import (
	"github.com/wirebuf/wirebuf/errors"
)

// Limits for the configurable compression knobs. BitsPerComponent is bounded
// so that 3 flag bits plus three quantized components always fit a single
// uint64 before varint encoding.
const (
	MinBitsPerComponent = 2
	MaxBitsPerComponent = 20
	MaxDecimalPlaces    = 15
)

// Config controls the compression behavior of a Writer/Reader pair. It is
// copied into each Writer and Reader at construction; the two sides of a
// connection must agree on all three fields or decoding produces garbage.
type Config struct {
	// UseCompression toggles varint integer compression, fixed-point float
	// quantization and quaternion bit packing. When false every value is
	// written in its fixed-width little-endian form.
	UseCompression bool

	// DecimalPlaces is the number of decimal digits preserved when float32
	// values are quantized. Precision loss is bounded by 0.5 * 10^-DecimalPlaces.
	DecimalPlaces uint8

	// BitsPerComponent is the fixed-point resolution for the three retained
	// quaternion components.
	BitsPerComponent uint8
}

// DefaultConfig returns the configuration used when callers pass the zero
// Config: compression on, four decimal places, ten bits per quaternion
// component.
func DefaultConfig() Config {
	return Config{
		UseCompression:   true,
		DecimalPlaces:    4,
		BitsPerComponent: 10,
	}
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	if c.BitsPerComponent < MinBitsPerComponent || c.BitsPerComponent > MaxBitsPerComponent {
		return errors.InvalidConfig("bits per component %d out of range [%d, %d]",
			c.BitsPerComponent, MinBitsPerComponent, MaxBitsPerComponent)
	}
	if c.DecimalPlaces > MaxDecimalPlaces {
		return errors.InvalidConfig("decimal places %d exceeds maximum %d",
			c.DecimalPlaces, MaxDecimalPlaces)
	}
	return nil
}

// Normalize replaces the zero Config with DefaultConfig and leaves any other
// value untouched. Writers and Readers normalize their configuration at
// construction so that the zero value is usable.
func (c Config) Normalize() Config {
	if c == (Config{}) {
		return DefaultConfig()
	}
	return c
}
