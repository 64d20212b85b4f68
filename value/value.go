// Package value implements a compact, thread-safe, variable-length byte
// value for memory-constrained targets. Payloads of up to InlineSize bytes
// live directly inside the Value; longer payloads (up to MaxLen) live in an
// exclusively owned heap block. The heap block is never shrunk by a later
// smaller Set — it is reused, trading memory headroom for zero reallocation
// churn on frequent same-or-smaller updates.
//
// Value is read-only once constructed; Mutable adds the single overwrite
// operation. Every public operation holds the instance's spin lock for its
// full duration, so instances may be shared across goroutines. Operations
// are non-reentrant (see spinLock).
//
// Construct with New/NewMutable/Clone; the zero Value is not usable.
package value

import (
	"bytes"
	"sync/atomic"

	"machineprops-go/errcode"
	"machineprops-go/x/conv"
)

const (
	// MaxLen is the largest payload a Value can hold.
	MaxLen = 255
	// InlineSize is the threshold at or below which payload bytes are
	// stored inside the Value itself, with no heap block.
	InlineSize = 4
)

// nextID hands out lock-ordering identities. Monotonic, never reused.
var nextID atomic.Uint64

// Value is an immutable opaque byte sequence of length 0..MaxLen.
type Value struct {
	lk     spinLock
	id     uint64 // lock-ordering identity, fixed at construction
	length uint8
	inline [InlineSize]byte
	heap   []byte // allocated block; len(heap) tracks peak, never shrunk
}

// New copies data into a fresh Value. It fails only when data exceeds
// MaxLen bytes; on failure no Value is produced. A nil slice is the empty
// value.
func New(data []byte) (*Value, error) {
	if len(data) > MaxLen {
		return nil, errcode.ValueTooLong
	}
	v := &Value{id: nextID.Add(1)}
	v.store(data)
	return v, nil
}

// Clone reads other's current bytes under its lock and constructs an
// independent copy.
func (v *Value) Clone() (*Value, error) {
	v.lk.lock()
	defer v.lk.unlock()
	return New(v.view())
}

// MoveFrom transfers src's storage into v and resets src to the empty
// value. v's previous storage is released. Moving a value into itself is a
// no-op.
func (v *Value) MoveFrom(src *Value) {
	if v == src {
		return
	}
	unlock := lockPair(v, src)
	defer unlock()

	v.length = src.length
	v.inline = src.inline
	v.heap = src.heap

	src.length = 0
	src.heap = nil
}

// Len returns the payload length in bytes.
func (v *Value) Len() uint8 {
	v.lk.lock()
	defer v.lk.unlock()
	return v.length
}

// Bytes returns an owned copy of the payload.
func (v *Value) Bytes() []byte {
	v.lk.lock()
	defer v.lk.unlock()
	out := make([]byte, v.length)
	copy(out, v.view())
	return out
}

// Str renders the payload as bracketed hex: "[ 0xAA 0xBB ]"; the empty
// value renders as "[ ]".
func (v *Value) Str() string {
	v.lk.lock()
	defer v.lk.unlock()

	b := v.view()
	if len(b) == 0 {
		return "[ ]"
	}
	out := make([]byte, 0, 4+5*len(b))
	out = append(out, '[', ' ')
	for i, c := range b {
		if i > 0 {
			out = append(out, ' ')
		}
		out = conv.AppendByteHex(out, c)
	}
	out = append(out, ' ', ']')
	return string(out)
}

func (v *Value) String() string { return v.Str() }

// Equal reports whether v and o hold the same bytes.
func (v *Value) Equal(o *Value) bool {
	if v == o {
		return true
	}
	unlock := lockPair(v, o)
	defer unlock()

	if v.length != o.length {
		return false
	}
	if v.length == 0 {
		return true
	}
	return bytes.Equal(v.view(), o.view())
}

// Compare orders by length first (shorter is less), then lexicographically
// over equal-length payloads. Returns -1, 0 or +1.
func (v *Value) Compare(o *Value) int {
	if v == o {
		return 0
	}
	unlock := lockPair(v, o)
	defer unlock()

	switch {
	case v.length < o.length:
		return -1
	case v.length > o.length:
		return 1
	case v.length == 0:
		return 0
	}
	return bytes.Compare(v.view(), o.view())
}

// view returns the live payload slice. Caller holds the lock (or is the
// sole owner during construction).
func (v *Value) view() []byte {
	if v.length <= InlineSize {
		return v.inline[:v.length]
	}
	return v.heap[:v.length]
}

// store overwrites the payload. Caller holds the lock (or is the sole
// owner during construction); data fits MaxLen.
//
// Shrinking into the inline range releases the heap block. Growing beyond
// the current block allocates exactly the new length; anything else reuses
// the block, which is guaranteed at least as large.
func (v *Value) store(data []byte) {
	n := len(data)
	if n <= InlineSize {
		v.heap = nil
		copy(v.inline[:], data)
	} else {
		if n > len(v.heap) {
			v.heap = make([]byte, n)
		}
		copy(v.heap, data)
	}
	v.length = uint8(n)
}
