// value/mutable.go
package value

import "machineprops-go/errcode"

// Mutable is a Value with the one externally reachable overwrite
// operation. Everything else behaves exactly like the embedded Value.
type Mutable struct {
	Value
}

// NewMutable copies data into a fresh Mutable. Same contract as New.
func NewMutable(data []byte) (*Mutable, error) {
	if len(data) > MaxLen {
		return nil, errcode.ValueTooLong
	}
	m := &Mutable{Value: Value{id: nextID.Add(1)}}
	m.store(data)
	return m, nil
}

// Set overwrites the payload with a copy of data. On an over-long payload
// the value is reset to empty and the error reported; a successful Set
// leaves no trace of the previous payload except a reused heap block.
func (m *Mutable) Set(data []byte) error {
	m.lk.lock()
	defer m.lk.unlock()

	if len(data) > MaxLen {
		m.length = 0
		m.heap = nil
		return errcode.ValueTooLong
	}
	m.store(data)
	return nil
}
