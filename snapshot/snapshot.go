// Package snapshot persists a property store's current state as
// deterministic CBOR. A snapshot carries each property's full address, its
// spec's control byte and its value bytes — the in-memory representation,
// not a wire protocol: there is no framing and no request/response here.
package snapshot

import (
	"machineprops-go/errcode"
	"machineprops-go/machine"
	"machineprops-go/services/store"
)

// Version identifies the snapshot schema.
const Version = 1

// Entry is one property's persisted state.
type Entry struct {
	UnitKind       uint8  `cbor:"uk"`
	UnitIndex      uint8  `cbor:"ui"`
	ComponentCode  uint8  `cbor:"cc"`
	ComponentIndex uint8  `cbor:"ci"`
	ComponentLevel uint8  `cbor:"cl"`
	PropertyCode   uint8  `cbor:"pc"`
	Control        byte   `cbor:"ctl"`
	Value          []byte `cbor:"val"`
}

// Addr reassembles the entry's machine address.
func (e Entry) Addr() machine.Address {
	return machine.Address{
		Unit:      machine.Unit{Kind: machine.UnitKind(e.UnitKind), Index: e.UnitIndex},
		Component: machine.Component{Code: e.ComponentCode, Index: e.ComponentIndex, Level: e.ComponentLevel},
		Code:      e.PropertyCode,
	}
}

// Snapshot is the full persisted state of one store.
type Snapshot struct {
	Version uint8   `cbor:"v"`
	Entries []Entry `cbor:"entries"`
}

// Take captures the store's current state in insertion order.
func Take(st *store.Store) *Snapshot {
	s := &Snapshot{Version: Version}
	st.Each(func(addr machine.Address, p *machine.Property) {
		s.Entries = append(s.Entries, Entry{
			UnitKind:       uint8(addr.Unit.Kind),
			UnitIndex:      addr.Unit.Index,
			ComponentCode:  addr.Component.Code,
			ComponentIndex: addr.Component.Index,
			ComponentLevel: addr.Component.Level,
			PropertyCode:   addr.Code,
			Control:        p.Spec().ControlByte(),
			Value:          p.Bytes(),
		})
	})
	return s
}

// Encode marshals the snapshot with deterministic encoding.
func Encode(s *Snapshot) ([]byte, error) {
	return encMode.Marshal(s)
}

// Decode unmarshals a snapshot.
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := decMode.Unmarshal(data, &s); err != nil {
		return nil, &errcode.E{C: errcode.BadSnapshot, Op: "snapshot.Decode", Err: err}
	}
	if s.Version != Version {
		return nil, &errcode.E{C: errcode.BadSnapshot, Op: "snapshot.Decode", Msg: "unsupported version"}
	}
	return &s, nil
}

// Apply restores every entry's value into the store. Restores skip the
// write-permission check (persisted state is not a caller write) but keep
// range validation. Entries for addresses the store does not know, or
// whose bytes no longer fit the spec, fail the whole apply.
func Apply(st *store.Store, s *Snapshot) error {
	for _, e := range s.Entries {
		if err := st.Restore(e.Addr(), e.Value); err != nil {
			return &errcode.E{C: errcode.BadSnapshot, Op: "snapshot.Apply", Msg: e.Addr().String(), Err: err}
		}
	}
	return nil
}
