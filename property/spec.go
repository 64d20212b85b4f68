// property/spec.go
package property

import (
	"machineprops-go/value"
)

// Payload limits per format.
const (
	MaxStringLen  = 192
	MaxBitSetLen  = 4
	MaxNumericLen = 4
	boolLen       = 1
)

// Control byte layout: bits[1:0] format, bits[3:2] permission,
// bits[6:4] resolution, bit[7] reserved (0). Collaborating transport code
// persists this byte bit-exactly.
const (
	formatShift     = 0
	permissionShift = 2
	resolutionShift = 4
)

// Spec is the declared shape of a property's legal values: one control
// byte plus exclusively owned initial/minimum/maximum values. Immutable
// after construction, so safe to share read-only across goroutines.
//
// Construction performs no min ≤ max check: a spec is structurally valid
// as soon as its values clone; whether a candidate is semantically
// sensible is IsWithinRange's job.
type Spec struct {
	control byte
	initial *value.Value
	minimum *value.Value
	maximum *value.Value
}

// NewSpec clones the three candidate values (any clone failure fails the
// construction as a whole), derives the format from the min/max pair and
// packs the control byte.
func NewSpec(perm Permission, reso Resolution, init, min, max *value.Value) (*Spec, error) {
	cInit, err := init.Clone()
	if err != nil {
		return nil, err
	}
	cMin, err := min.Clone()
	if err != nil {
		return nil, err
	}
	cMax, err := max.Clone()
	if err != nil {
		return nil, err
	}

	f := FormatOf(cMin, cMax)
	control := byte(f&formatMask)<<formatShift |
		byte(perm&permissionMask)<<permissionShift |
		byte(reso&resolutionMask)<<resolutionShift

	return &Spec{
		control: control,
		initial: cInit,
		minimum: cMin,
		maximum: cMax,
	}, nil
}

// ControlByte returns the packed format/permission/resolution byte.
func (s *Spec) ControlByte() byte { return s.control }

func (s *Spec) Permission() Permission {
	return PermissionFromRaw(s.control >> permissionShift)
}

func (s *Spec) Resolution() Resolution {
	return ResolutionFromRaw(s.control >> resolutionShift)
}

// Format recomputes the derived kind from the stored bounds rather than
// reading the control byte cache, so it can never drift from its source
// values. The bounds never change post-construction, so both agree.
func (s *Spec) Format() Format {
	return FormatOf(s.minimum, s.maximum)
}

func (s *Spec) Initial() *value.Value { return s.initial }
func (s *Spec) Minimum() *value.Value { return s.minimum }
func (s *Spec) Maximum() *value.Value { return s.maximum }

// IsWithinRange reports whether a candidate value is legal under this
// spec. Empty candidates are always rejected; every input maps to a plain
// true or false verdict.
func (s *Spec) IsWithinRange(v *value.Value) bool {
	size := v.Len()
	if size == 0 {
		return false
	}

	switch s.Format() {

	case FormatString:
		return size <= MaxStringLen

	case FormatBitSet:
		// Treated as an unsigned bit mask; no containment check against
		// the maximum mask is performed.
		return size <= MaxBitSetLen

	case FormatBoolean:
		if size != boolLen {
			return false
		}
		b := v.Bytes()[0]
		return b == 0x00 || b == 0x01

	case FormatNumeric:
		if size > MaxNumericLen {
			return false
		}
		n := decodeNumeric(v)
		min := decodeNumeric(s.minimum)
		max := decodeNumeric(s.maximum)
		return min <= n && n <= max
	}

	return false
}

// decodeNumeric copies 1-4 little-endian payload bytes into a zero-padded
// int32 accumulator. Payloads shorter than 4 bytes are zero-extended, not
// sign-extended: a 1-byte 0xFF decodes to 255, never -1. Empty or
// over-long payloads decode to 0.
func decodeNumeric(v *value.Value) int32 {
	b := v.Bytes()
	if len(b) == 0 || len(b) > MaxNumericLen {
		return 0
	}
	var n uint32
	for i := len(b) - 1; i >= 0; i-- {
		n = n<<8 | uint32(b[i])
	}
	return int32(n)
}

// Str renders the spec in its canonical form, e.g.
//
//	{ format: boolean, permission: read-write, resolution: x1,
//	  initial_value: [ 0x00 ], minimum_value: [ 0x00 ], maximum_value: [ 0x01 ] }
func (s *Spec) Str() string {
	return "{ format: " + s.Format().String() +
		", permission: " + s.Permission().String() +
		", resolution: " + s.Resolution().String() +
		", initial_value: " + s.initial.Str() +
		", minimum_value: " + s.minimum.Str() +
		", maximum_value: " + s.maximum.Str() +
		" }"
}

func (s *Spec) String() string { return s.Str() }
