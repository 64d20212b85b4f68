// Package machine holds the addressing hierarchy for machine properties
// and the aggregate that pairs a property code with its spec and current
// value:
//
//	Machine
//	  Unit[]       (unique: kind, index)
//	    Component[] (unique: code, index)
//	      Property[] (unique: code)
//
// Unit and Component are plain immutable identifier tuples with no
// behaviour beyond naming, comparison and hashing.
package machine

import "machineprops-go/x/conv"

// PrimaryIndex marks the primary unit or component of its kind/code.
const PrimaryIndex = 0

// UnitKind identifies the class of a machine unit.
type UnitKind uint8

const (
	UnitBoard UnitKind = iota
	UnitExpansionBoard
	UnitThermal
	UnitStorage
	UnitPower
	UnitLight
)

var unitKindNames = [...]string{
	"Board", "ExpansionBoard", "Thermal", "Storage", "Power", "Light",
}

func (k UnitKind) String() string {
	if int(k) < len(unitKindNames) {
		return unitKindNames[k]
	}
	return "Unknown"
}

// Unit identifies one unit within a machine. Index 0 is the primary unit
// of its kind; higher indices are secondary units. Comparable; usable as a
// map key.
type Unit struct {
	Kind  UnitKind
	Index uint8
}

func (u Unit) IsPrimary() bool { return u.Index == PrimaryIndex }

// Hash returns a combined identity hash of kind and index.
func (u Unit) Hash() uint64 {
	return combineAll(0, uint64(u.Kind), uint64(u.Index))
}

// String renders e.g. "Unit{kind=Board(0), index=0}".
func (u Unit) String() string {
	out := make([]byte, 0, 32)
	out = append(out, "Unit{kind="...)
	out = append(out, u.Kind.String()...)
	out = append(out, '(')
	out = conv.AppendUint(out, uint64(u.Kind))
	out = append(out, "), index="...)
	out = conv.AppendUint(out, uint64(u.Index))
	out = append(out, '}')
	return string(out)
}
