// Package property models the declared shape of a machine property's legal
// values: a value format, an access permission and a numeric resolution
// packed into one control byte, plus initial/minimum/maximum bounds held as
// compact values.
package property

import "math"

// Resolution encodes a numeric scale factor coefficient × 10^shift in
// three bits: bit0 selects the coefficient (0 → 1, 1 → 5), bits[2:1] are a
// two's-complement shift exponent (00 → 0, 01 → +1, 10 → -2, 11 → -1).
type Resolution uint8

const (
	ResX1   Resolution = 0 // 1 × 10^0
	ResX5   Resolution = 1 // 5 × 10^0
	ResX10  Resolution = 2 // 1 × 10^+1
	ResX50  Resolution = 3 // 5 × 10^+1
	ResX001 Resolution = 4 // 1 × 10^-2
	ResX005 Resolution = 5 // 5 × 10^-2
	ResX01  Resolution = 6 // 1 × 10^-1
	ResX05  Resolution = 7 // 5 × 10^-1
)

const (
	resolutionBits = 3
	resolutionMask = 1<<resolutionBits - 1
)

var resolutionNames = [8]string{
	"x1", "x5", "x10", "x50", "x0.01", "x0.05", "x0.1", "x0.5",
}

// ResolutionFromRaw converts a raw byte to a Resolution. Only the low
// three bits are used, so every input maps to a valid code.
func ResolutionFromRaw(raw byte) Resolution {
	return Resolution(raw & resolutionMask)
}

// Shift returns the power-of-ten exponent, -2..+1. The two shift bits are
// sign-extended: 00 → 0, 01 → +1, 10 → -2, 11 → -1.
func (r Resolution) Shift() int8 {
	bits := uint8(r) >> 1 & 0b11
	return int8(bits<<6) >> 6
}

// Coefficient returns 1 or 5 from the low bit.
func (r Resolution) Coefficient() uint8 {
	if r&1 != 0 {
		return 5
	}
	return 1
}

// ScaleFactor returns coefficient × 10^shift as a float64. Intentionally
// floating point; integer-only call sites should combine Shift and
// Coefficient directly.
func (r Resolution) ScaleFactor() float64 {
	return float64(r.Coefficient()) * math.Pow(10, float64(r.Shift()))
}

func (r Resolution) String() string {
	return resolutionNames[r&resolutionMask]
}
