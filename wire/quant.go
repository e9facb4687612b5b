package wire

import (
	"math"

	"github.com/wirebuf/wirebuf"
)

// Smallest-three quaternion packing. A unit quaternion always has one
// component with absolute value >= 1/2; dropping the largest one leaves three
// components confined to [-1/sqrt2, 1/sqrt2], which quantize well. The packed
// layout, LSB first:
//
//	bits [0,2)              index of the dropped component (0=X 1=Y 2=Z 3=W)
//	bit  2                  sign of the dropped component (1 = negative)
//	bits [3, 3+N)           first retained component, N = BitsPerComponent
//	bits [3+N, 3+2N)        second retained component
//	bits [3+2N, 3+3N)       third retained component
//
// The whole value is then varint-encoded, so near-identity rotations cost a
// handful of bytes instead of sixteen.

const invSqrt2 = 0.7071067811865476

func packQuaternion(q wirebuf.Quaternion, bits uint8) uint64 {
	comps := [4]float32{q.X, q.Y, q.Z, q.W}

	largest := 0
	for i := 1; i < 4; i++ {
		if abs32(comps[i]) > abs32(comps[largest]) {
			largest = i
		}
	}

	packed := uint64(largest)
	if comps[largest] < 0 {
		packed |= 1 << 2
	}

	shift := uint(3)
	for i := 0; i < 4; i++ {
		if i == largest {
			continue
		}
		packed |= uint64(quantizeComponent(comps[i], bits)) << shift
		shift += uint(bits)
	}
	return packed
}

func unpackQuaternion(packed uint64, bits uint8) wirebuf.Quaternion {
	largest := int(packed & 0x3)
	negative := packed&(1<<2) != 0

	var comps [4]float32
	sumSq := 0.0
	shift := uint(3)
	mask := uint64(1)<<bits - 1
	for i := 0; i < 4; i++ {
		if i == largest {
			continue
		}
		c := dequantizeComponent(uint32(packed>>shift&mask), bits)
		comps[i] = c
		sumSq += float64(c) * float64(c)
		shift += uint(bits)
	}

	dropped := math.Sqrt(math.Max(0, 1-sumSq))
	if negative {
		dropped = -dropped
	}
	comps[largest] = float32(dropped)

	return wirebuf.Quaternion{X: comps[0], Y: comps[1], Z: comps[2], W: comps[3]}
}

// quantizeComponent maps c in [-1/sqrt2, 1/sqrt2] onto [0, 2^bits-1].
func quantizeComponent(c float32, bits uint8) uint32 {
	v := float64(c)
	if v < -invSqrt2 {
		v = -invSqrt2
	}
	if v > invSqrt2 {
		v = invSqrt2
	}
	steps := float64(uint64(1)<<bits - 1)
	return uint32(math.Round((v + invSqrt2) / (2 * invSqrt2) * steps))
}

func dequantizeComponent(u uint32, bits uint8) float32 {
	steps := float64(uint64(1)<<bits - 1)
	return float32(float64(u)/steps*(2*invSqrt2) - invSqrt2)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
