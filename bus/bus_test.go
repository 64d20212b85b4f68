// bus/bus_test.go
package bus

import (
	"testing"
	"time"

	"machineprops-go/machine"
)

var (
	addrA = machine.Address{
		Unit:      machine.Unit{Kind: machine.UnitPower, Index: 0},
		Component: machine.Component{Code: 1, Index: 0},
		Code:      7,
	}
	addrB = machine.Address{
		Unit:      machine.Unit{Kind: machine.UnitThermal, Index: 0},
		Component: machine.Component{Code: 2, Index: 0},
		Code:      3,
	}
)

func expectUpdate(t *testing.T, sub *Subscription, want byte) {
	t.Helper()
	select {
	case u := <-sub.Channel():
		if len(u.Value) != 1 || u.Value[0] != want {
			t.Fatalf("got value % X, want [%#x]", u.Value, want)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for update")
	}
}

func expectNoUpdate(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case u := <-sub.Channel():
		t.Fatalf("unexpected update %v", u.Addr)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestBasicPubSub(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(addrA)
	other := conn.Subscribe(addrB)

	conn.Publish(&Update{Addr: addrA, Value: []byte{0x01}})

	expectUpdate(t, sub, 0x01)
	expectNoUpdate(t, other)
}

func TestRetainedUpdate(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(&Update{Addr: addrA, Value: []byte{0x05}, Retained: true})

	sub := conn.Subscribe(addrA)
	expectUpdate(t, sub, 0x05)

	// A later retained update replaces the slot.
	conn.Publish(&Update{Addr: addrA, Value: []byte{0x06}, Retained: true})
	late := conn.Subscribe(addrA)
	expectUpdate(t, late, 0x06) // replayed
}

func TestRetainedClear(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(&Update{Addr: addrA, Value: []byte{0x05}, Retained: true})
	conn.Publish(&Update{Addr: addrA, Value: nil, Retained: true})

	sub := conn.Subscribe(addrA)
	expectNoUpdate(t, sub)
}

func TestSubscribeAll(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	fire := conn.SubscribeAll()

	conn.Publish(&Update{Addr: addrA, Value: []byte{0x01}})
	conn.Publish(&Update{Addr: addrB, Value: []byte{0x02}})

	expectUpdate(t, fire, 0x01)
	expectUpdate(t, fire, 0x02)
}

func TestDropOldestOnFullQueue(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")
	sub := conn.Subscribe(addrA)

	for i := byte(1); i <= 5; i++ {
		conn.Publish(&Update{Addr: addrA, Value: []byte{i}})
	}

	// Oldest updates were dropped; the last two survive in order.
	expectUpdate(t, sub, 4)
	expectUpdate(t, sub, 5)
	expectNoUpdate(t, sub)
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")
	sub := conn.Subscribe(addrA)
	sub.Unsubscribe()

	// Publishing after unsubscribe must not panic or deliver.
	conn.Publish(&Update{Addr: addrA, Value: []byte{0x01}})

	if _, open := <-sub.Channel(); open {
		t.Fatal("channel must be closed after unsubscribe")
	}
}

func TestDisconnectClosesAll(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")
	s1 := conn.Subscribe(addrA)
	s2 := conn.SubscribeAll()

	conn.Disconnect()

	if _, open := <-s1.Channel(); open {
		t.Error("address subscription not closed")
	}
	if _, open := <-s2.Channel(); open {
		t.Error("firehose subscription not closed")
	}
}
