// bus.go
// Package bus is an in-process publish/subscribe fabric for property
// updates. Topics are typed machine.Address values rather than string
// paths; each address keeps its last retained update, delivered to new
// subscribers on subscribe. Delivery is drop-oldest when a subscriber's
// queue is full, so a slow consumer never blocks a publisher.
package bus

import (
	"sync"

	"machineprops-go/machine"
)

// Update is one property change notification. Value is an owned copy of
// the payload bytes; consumers must not mutate it.
type Update struct {
	Addr     machine.Address
	Value    []byte
	Control  byte // the spec's packed control byte, for format-aware consumers
	Retained bool
}

// -----------------------------------------------------------------------------
// Subscription
// -----------------------------------------------------------------------------

type Subscription struct {
	addr machine.Address
	all  bool
	ch   chan *Update
	conn *Connection // owning connection
}

func (s *Subscription) Addr() machine.Address   { return s.addr }
func (s *Subscription) Channel() <-chan *Update { return s.ch }
func (s *Subscription) Unsubscribe()            { s.conn.Unsubscribe(s) }

// -----------------------------------------------------------------------------
// Bus
// -----------------------------------------------------------------------------

type entry struct {
	subs     []*Subscription
	retained *Update
}

type Bus struct {
	mu      sync.Mutex
	qLen    int
	entries map[machine.Address]*entry
	allSubs []*Subscription // firehose subscribers (loggers, bridges)
}

// NewBus creates a bus with the given per-subscription queue length.
func NewBus(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = 8 // safe default
	}
	return &Bus{
		qLen:    queueLen,
		entries: make(map[machine.Address]*entry),
	}
}

// Publish delivers an update to the address's subscribers and to all
// firehose subscribers. A retained update with a nil Value clears the
// retained slot.
func (b *Bus) Publish(u *Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.entries[u.Addr]
	if e == nil {
		if !u.Retained && len(b.allSubs) == 0 {
			return
		}
		e = &entry{}
		b.entries[u.Addr] = e
	}

	for _, sub := range e.subs {
		deliver(sub.ch, u)
	}
	for _, sub := range b.allSubs {
		deliver(sub.ch, u)
	}

	if u.Retained {
		if u.Value == nil {
			e.retained = nil
		} else {
			e.retained = u
		}
	}
}

// deliver enqueues without blocking, dropping the oldest queued update
// when the subscriber is full.
func deliver(ch chan *Update, u *Update) {
	select {
	case ch <- u:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- u:
		default:
		}
	}
}

func (b *Bus) addSubscription(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub.all {
		b.allSubs = append(b.allSubs, sub)
		return
	}

	e := b.entries[sub.addr]
	if e == nil {
		e = &entry{}
		b.entries[sub.addr] = e
	}
	e.subs = append(e.subs, sub)

	if e.retained != nil {
		deliver(sub.ch, e.retained)
	}
}

func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub.all {
		b.allSubs = removeSub(b.allSubs, sub)
		return
	}

	e := b.entries[sub.addr]
	if e == nil {
		return
	}
	e.subs = removeSub(e.subs, sub)
	if len(e.subs) == 0 && e.retained == nil {
		delete(b.entries, sub.addr)
	}
}

func removeSub(subs []*Subscription, sub *Subscription) []*Subscription {
	for i, s := range subs {
		if s == sub {
			return append(subs[:i], subs[i+1:]...)
		}
	}
	return subs
}

// -----------------------------------------------------------------------------
// Connection
// -----------------------------------------------------------------------------

type Connection struct {
	bus  *Bus
	mu   sync.Mutex
	subs []*Subscription
	id   string
}

// NewConnection creates a connection bound to this bus.
func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{bus: b, id: id}
}

// Publish sends an update via the bus.
func (c *Connection) Publish(u *Update) {
	c.bus.Publish(u)
}

// Subscribe registers for updates to one address.
func (c *Connection) Subscribe(addr machine.Address) *Subscription {
	return c.register(&Subscription{addr: addr, ch: make(chan *Update, c.bus.qLen), conn: c})
}

// SubscribeAll registers for every update on the bus. Retained updates are
// not replayed into firehose subscriptions.
func (c *Connection) SubscribeAll() *Subscription {
	return c.register(&Subscription{all: true, ch: make(chan *Update, c.bus.qLen), conn: c})
}

func (c *Connection) register(sub *Subscription) *Subscription {
	c.bus.addSubscription(sub)
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	return sub
}

// Unsubscribe removes a subscription owned by this connection.
func (c *Connection) Unsubscribe(sub *Subscription) {
	c.bus.unsubscribe(sub)
	c.mu.Lock()
	c.subs = removeSub(c.subs, sub)
	c.mu.Unlock()
	close(sub.ch)
}

// Disconnect closes all subscriptions and clears them.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, sub := range subs {
		c.bus.unsubscribe(sub)
		close(sub.ch)
	}
}
