// machine/address.go
package machine

import "machineprops-go/x/conv"

// Address is the full path to one property: unit, component, property
// code. Comparable; usable as a map key.
type Address struct {
	Unit      Unit
	Component Component
	Code      uint8
}

// Hash combines the unit, component and code identity hashes.
func (a Address) Hash() uint64 {
	return combineAll(0, a.Unit.Hash(), a.Component.Hash(), uint64(a.Code))
}

// String renders e.g. "Address{Unit{kind=Power(4), index=0}, Component{code=1, index=0, level=0}, code=7}".
func (a Address) String() string {
	out := make([]byte, 0, 96)
	out = append(out, "Address{"...)
	out = append(out, a.Unit.String()...)
	out = append(out, ", "...)
	out = append(out, a.Component.String()...)
	out = append(out, ", code="...)
	out = conv.AppendUint(out, uint64(a.Code))
	out = append(out, '}')
	return string(out)
}
