// property/format.go
package property

import "machineprops-go/value"

// Format is the derived kind of a property value. It is never stored
// independently: it is a pure function of the shape of the minimum and
// maximum bounds (see FormatOf).
type Format uint8

const (
	FormatNumeric Format = 0 // signed 1-4 byte integer
	FormatBoolean Format = 1 // 1 byte, 0 or 1
	FormatBitSet  Format = 2 // unsigned 1-4 byte bit mask
	FormatString  Format = 3 // 1-192 bytes
)

const (
	formatBits = 2
	formatMask = 1<<formatBits - 1
)

var formatNames = [4]string{
	"numeric", "boolean", "bitset", "string",
}

// FormatFromRaw converts a raw byte to a Format. Only the low two bits are
// used, so every input maps to a valid code.
func FormatFromRaw(raw byte) Format {
	return Format(raw & formatMask)
}

// FormatOf classifies a minimum/maximum bound pair. The priority order
// matters: a 1-byte [0x00, 0x01] pair is Boolean, not Numeric.
//
//	both empty            → String
//	min empty, max not    → BitSet
//	1-byte min=0, max=1   → Boolean
//	anything else         → Numeric
func FormatOf(min, max *value.Value) Format {
	minLen := min.Len()
	maxLen := max.Len()

	if minLen == 0 && maxLen == 0 {
		return FormatString
	}
	if minLen == 0 && maxLen != 0 {
		return FormatBitSet
	}
	if minLen == 1 && maxLen == 1 {
		if min.Bytes()[0] == 0x00 && max.Bytes()[0] == 0x01 {
			return FormatBoolean
		}
	}
	return FormatNumeric
}

func (f Format) String() string {
	return formatNames[f&formatMask]
}
