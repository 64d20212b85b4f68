// value/lock.go
package value

import (
	"runtime"
	"sync/atomic"
)

// spinLock guards one Value. Critical sections are memory copies bounded
// by MaxLen bytes, so a busy-wait flag is cheaper than parking. Gosched in
// the wait loop keeps cooperative schedulers (TinyGo) live while spinning.
//
// Public Value operations are non-reentrant: calling one from inside
// another on the same instance spins forever. Caller obligation; there is
// no runtime detection.
type spinLock struct {
	f atomic.Uint32
}

func (l *spinLock) lock() {
	for !l.f.CompareAndSwap(0, 1) {
		runtime.Gosched()
	}
}

func (l *spinLock) unlock() { l.f.Store(0) }

// lockPair acquires the locks of two distinct instances in id order and
// returns a release in the reverse order. A fixed order across all callers
// is what keeps concurrent pair operations (move, compare, clone source
// reads) deadlock-free.
func lockPair(a, b *Value) func() {
	first, second := a, b
	if b.id < a.id {
		first, second = b, a
	}
	first.lk.lock()
	second.lk.lock()
	return func() {
		second.lk.unlock()
		first.lk.unlock()
	}
}
