// snapshot/snapshot_test.go
package snapshot

import (
	"bytes"
	"testing"

	"machineprops-go/errcode"
	"machineprops-go/machine"
	"machineprops-go/property"
	"machineprops-go/services/store"
	"machineprops-go/value"
)

func buildStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New(nil)

	mk := func(b []byte) *value.Value {
		v, err := value.New(b)
		if err != nil {
			t.Fatalf("value.New: %v", err)
		}
		return v
	}
	numeric, err := property.NewSpec(property.PermReadWrite, property.ResX01,
		mk([]byte{0x05}), mk([]byte{0x00}), mk([]byte{0x64}))
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}
	boolean, err := property.NewSpec(property.PermReadOnly, property.ResX1,
		mk([]byte{0x00}), mk([]byte{0x00}), mk([]byte{0x01}))
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}

	a := machine.Address{
		Unit:      machine.Unit{Kind: machine.UnitThermal, Index: 0},
		Component: machine.Component{Code: 1, Index: 0},
		Code:      0x10,
	}
	b := a
	b.Code = 0x11

	if err := st.Add(a, numeric); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := st.Add(b, boolean); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return st
}

func TestRoundTrip(t *testing.T) {
	st := buildStore(t)
	addr := st.Addresses()[0]
	if err := st.Set(addr, []byte{0x30}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, err := Encode(Take(st))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	snap, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if snap.Version != Version || len(snap.Entries) != 2 {
		t.Fatalf("decoded %d entries, version %d", len(snap.Entries), snap.Version)
	}
	if !bytes.Equal(snap.Entries[0].Value, []byte{0x30}) {
		t.Fatalf("entry value = % X", snap.Entries[0].Value)
	}
	if snap.Entries[0].Addr() != addr {
		t.Fatalf("entry address = %v, want %v", snap.Entries[0].Addr(), addr)
	}
}

func TestDeterministicEncoding(t *testing.T) {
	st := buildStore(t)
	a, err := Encode(Take(st))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := Encode(Take(st))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("same state must encode to identical bytes")
	}
}

func TestApplyRestoresValues(t *testing.T) {
	st := buildStore(t)
	addr := st.Addresses()[0]
	if err := st.Set(addr, []byte{0x42}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	snap := Take(st)

	// A fresh store with the same layout starts from initial values.
	st2 := buildStore(t)
	if got, _ := st2.Get(addr); !bytes.Equal(got, []byte{0x05}) {
		t.Fatalf("fresh store value = % X", got)
	}
	if err := Apply(st2, snap); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got, _ := st2.Get(addr); !bytes.Equal(got, []byte{0x42}) {
		t.Fatalf("restored value = % X", got)
	}
}

func TestApplyUnknownAddress(t *testing.T) {
	st := buildStore(t)
	snap := Take(st)
	snap.Entries[0].PropertyCode = 0xEE

	err := Apply(buildStore(t), snap)
	if errcode.Of(err) != errcode.BadSnapshot {
		t.Fatalf("want BadSnapshot, got %v", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte{0xFF, 0x00, 0x01}); errcode.Of(err) != errcode.BadSnapshot {
		t.Fatalf("want BadSnapshot, got %v", err)
	}
}
