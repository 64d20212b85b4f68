// machine/component.go
package machine

import "machineprops-go/x/conv"

// RootLevel is the hierarchical depth of a top-level component.
const RootLevel = 0

// Component identifies one component within a unit. Index 0 is the primary
// component of its code; Level is the hierarchical depth (0 = root).
// Comparable; usable as a map key.
type Component struct {
	Code  uint8
	Index uint8
	Level uint8
}

func (c Component) IsPrimary() bool { return c.Index == PrimaryIndex }

// Hash returns a combined identity hash of code and index.
func (c Component) Hash() uint64 {
	return combineAll(0, uint64(c.Code), uint64(c.Index))
}

// String renders e.g. "Component{code=3, index=0, level=0}".
func (c Component) String() string {
	out := make([]byte, 0, 40)
	out = append(out, "Component{code="...)
	out = conv.AppendUint(out, uint64(c.Code))
	out = append(out, ", index="...)
	out = conv.AppendUint(out, uint64(c.Index))
	out = append(out, ", level="...)
	out = conv.AppendUint(out, uint64(c.Level))
	out = append(out, '}')
	return string(out)
}
