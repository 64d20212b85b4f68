// machine/property.go
package machine

import (
	"machineprops-go/errcode"
	"machineprops-go/property"
	"machineprops-go/value"
	"machineprops-go/x/conv"
)

// Property pairs a property code with its spec and its current value. The
// spec is immutable; the current value is the one mutable cell, seeded
// from the spec's initial value and only ever overwritten through Set's
// validation.
type Property struct {
	code uint8
	spec *property.Spec
	cur  *value.Mutable
}

// NewProperty builds the aggregate, seeding the current value from the
// spec's initial value.
func NewProperty(code uint8, spec *property.Spec) (*Property, error) {
	cur, err := value.NewMutable(spec.Initial().Bytes())
	if err != nil {
		return nil, err
	}
	return &Property{code: code, spec: spec, cur: cur}, nil
}

func (p *Property) Code() uint8          { return p.code }
func (p *Property) Spec() *property.Spec { return p.spec }

// Value returns the current value. Read-permission enforcement is the
// service layer's job; the aggregate itself stays symmetric.
func (p *Property) Value() *value.Value { return &p.cur.Value }

// Bytes returns an owned copy of the current value's payload.
func (p *Property) Bytes() []byte { return p.cur.Bytes() }

// Set overwrites the current value after checking the spec's write
// permission and range. Failures leave the current value untouched.
func (p *Property) Set(data []byte) error {
	if !p.spec.Permission().CanWrite() {
		return errcode.PermissionDenied
	}
	cand, err := value.New(data)
	if err != nil {
		return err
	}
	if !p.spec.IsWithinRange(cand) {
		return errcode.OutOfRange
	}
	return p.cur.Set(data)
}

// Restore overwrites the current value without the write-permission
// check, for re-seeding from persisted state. Range validation still
// applies: persisted bytes that no longer fit the spec are rejected.
func (p *Property) Restore(data []byte) error {
	cand, err := value.New(data)
	if err != nil {
		return err
	}
	if !p.spec.IsWithinRange(cand) {
		return errcode.OutOfRange
	}
	return p.cur.Set(data)
}

// Str renders "Property{code=7, value=[ 0x00 ], spec={ ... }}".
func (p *Property) Str() string {
	out := make([]byte, 0, 160)
	out = append(out, "Property{code="...)
	out = conv.AppendUint(out, uint64(p.code))
	out = append(out, ", value="...)
	out = append(out, p.cur.Str()...)
	out = append(out, ", spec="...)
	out = append(out, p.spec.Str()...)
	out = append(out, '}')
	return string(out)
}

func (p *Property) String() string { return p.Str() }
