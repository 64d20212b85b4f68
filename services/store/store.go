// services/store/store.go
// Package store hosts a machine's property registry: the aggregates built
// from specs, addressable by unit/component/code, with every write funnelled
// through spec validation and published as a retained bus update.
package store

import (
	"sync"

	"machineprops-go/bus"
	"machineprops-go/errcode"
	"machineprops-go/machine"
	"machineprops-go/property"
)

// Store is safe for concurrent use. One RWMutex guards the registry map;
// the values inside the aggregates carry their own locks.
type Store struct {
	mu    sync.RWMutex
	props map[machine.Address]*machine.Property
	order []machine.Address // insertion order, for stable enumeration
	conn  *bus.Connection
}

// New creates an empty store. b may be nil when no update notifications
// are wanted (host tools, tests).
func New(b *bus.Bus) *Store {
	s := &Store{props: make(map[machine.Address]*machine.Property)}
	if b != nil {
		s.conn = b.NewConnection("store")
	}
	return s
}

// Add registers a property under addr, seeded from the spec's initial
// value, and publishes the seed as a retained update.
func (s *Store) Add(addr machine.Address, spec *property.Spec) error {
	p, err := machine.NewProperty(addr.Code, spec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if _, exists := s.props[addr]; exists {
		s.mu.Unlock()
		return errcode.DuplicateAddress
	}
	s.props[addr] = p
	s.order = append(s.order, addr)
	s.mu.Unlock()

	s.publish(addr, p)
	return nil
}

// Get returns an owned copy of the current value. Read permission is
// enforced here, at the service boundary.
func (s *Store) Get(addr machine.Address) ([]byte, error) {
	p, err := s.lookup(addr)
	if err != nil {
		return nil, err
	}
	if !p.Spec().Permission().CanRead() {
		return nil, errcode.PermissionDenied
	}
	return p.Bytes(), nil
}

// Set overwrites a property's value through the aggregate's validation
// (write permission + range) and publishes a retained update on success.
func (s *Store) Set(addr machine.Address, data []byte) error {
	p, err := s.lookup(addr)
	if err != nil {
		return err
	}
	if err := p.Set(data); err != nil {
		return err
	}
	s.publish(addr, p)
	return nil
}

// Update writes a device-originated measurement: range-validated but not
// permission-checked (the permission models external access, and the
// device is not an external caller), published like any other update.
func (s *Store) Update(addr machine.Address, data []byte) error {
	p, err := s.lookup(addr)
	if err != nil {
		return err
	}
	if err := p.Restore(data); err != nil {
		return err
	}
	s.publish(addr, p)
	return nil
}

// Restore overwrites a property's value from persisted state, skipping the
// write-permission check but not range validation. No update is published;
// restore precedes consumers.
func (s *Store) Restore(addr machine.Address, data []byte) error {
	p, err := s.lookup(addr)
	if err != nil {
		return err
	}
	return p.Restore(data)
}

// Spec returns the registered spec for addr.
func (s *Store) Spec(addr machine.Address) (*property.Spec, error) {
	p, err := s.lookup(addr)
	if err != nil {
		return nil, err
	}
	return p.Spec(), nil
}

// Addresses returns the registered addresses in insertion order.
func (s *Store) Addresses() []machine.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]machine.Address, len(s.order))
	copy(out, s.order)
	return out
}

// Each calls fn for every property in insertion order. fn must not call
// back into the store.
func (s *Store) Each(fn func(machine.Address, *machine.Property)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, addr := range s.order {
		fn(addr, s.props[addr])
	}
}

// Len returns the number of registered properties.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.props)
}

func (s *Store) lookup(addr machine.Address) (*machine.Property, error) {
	s.mu.RLock()
	p := s.props[addr]
	s.mu.RUnlock()
	if p == nil {
		return nil, errcode.UnknownAddress
	}
	return p, nil
}

func (s *Store) publish(addr machine.Address, p *machine.Property) {
	if s.conn == nil {
		return
	}
	s.conn.Publish(&bus.Update{
		Addr:     addr,
		Value:    p.Bytes(),
		Control:  p.Spec().ControlByte(),
		Retained: true,
	})
}
