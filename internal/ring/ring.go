// Package ring implements a bounded, lock-free, multi-producer
// single-consumer ring buffer.
//
// Producers race on a tail cursor with a CAS-retry loop: load the
// cursor, compare it against a per-slot sequence stamp, CAS the cursor
// forward, retry on a race. The slot array is fixed-size so the ring
// stays allocation-free after construction.
package ring

import (
	"sync/atomic"
)

type cell[T any] struct {
	seq atomic.Uint64
	val T
}

// Ring is a fixed-capacity, power-of-two-sized slot array. Producers
// race on tail via CAS; TryPop advances head with the same CAS shape
// and is documented single-consumer-only.
type Ring[T any] struct {
	mask uint64
	buf  []cell[T]

	head atomic.Uint64
	tail atomic.Uint64

	wait *Wait
}

// RoundUpPow2 returns the smallest power of two >= x, with a floor of 1.
// Capacities of 1 and 2 are legal and round up rather than error.
func RoundUpPow2(x uint64) uint64 {
	if x <= 1 {
		return 1
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	return x + 1
}

// New creates a ring of the given capacity (rounded up to a power of
// two, with a minimum of two slots) backed by the given wait block.
// wait may be nil for a ring used without blocking/sleeping semantics
// (e.g. in isolation in tests).
func New[T any](capacity uint64, wait *Wait) *Ring[T] {
	cap_ := RoundUpPow2(capacity)
	// With one slot a filled cell's stamp equals the next tail, so it
	// would read as writable again; two slots keep full and free apart.
	if cap_ < 2 {
		cap_ = 2
	}
	r := &Ring[T]{
		mask: cap_ - 1,
		buf:  make([]cell[T], cap_),
		wait: wait,
	}
	for i := range r.buf {
		r.buf[i].seq.Store(uint64(i))
	}
	return r
}

// Capacity returns the ring's power-of-two slot count.
func (r *Ring[T]) Capacity() uint64 {
	return uint64(len(r.buf))
}

// TryPush attempts a non-blocking enqueue. It returns false without
// blocking if the ring is currently full.
func (r *Ring[T]) TryPush(v T) bool {
	if r.wait != nil && r.wait.Stopped() {
		return false
	}

	pos := r.tail.Load()
	var c *cell[T]
	for {
		c = &r.buf[pos&r.mask]
		seq := c.seq.Load()
		diff := int64(seq) - int64(pos)

		switch {
		case diff == 0:
			if r.tail.CompareAndSwap(pos, pos+1) {
				goto claimed
			}
			pos = r.tail.Load()
		case diff < 0:
			return false // full
		default:
			pos = r.tail.Load()
		}
	}

claimed:
	c.val = v
	c.seq.Store(pos + 1)

	if r.wait != nil {
		r.wait.WakeIfSleeping()
	}
	return true
}

// TryPop attempts a non-blocking dequeue. Single-consumer only: calling
// this concurrently from more than one goroutine is undefined.
func (r *Ring[T]) TryPop() (v T, ok bool) {
	pos := r.head.Load()
	var c *cell[T]
	for {
		c = &r.buf[pos&r.mask]
		seq := c.seq.Load()
		diff := int64(seq) - int64(pos+1)

		switch {
		case diff == 0:
			if r.head.CompareAndSwap(pos, pos+1) {
				goto claimed
			}
			pos = r.head.Load()
		case diff < 0:
			return v, false // empty
		default:
			pos = r.head.Load()
		}
	}

claimed:
	v = c.val
	var zero T
	c.val = zero
	c.seq.Store(pos + r.Capacity())
	return v, true
}

// Size returns an approximate occupancy: it may transiently include
// slots a producer has claimed via CAS but not yet published.
func (r *Ring[T]) Size() uint64 {
	tail := r.tail.Load()
	head := r.head.Load()
	if tail < head {
		return 0
	}
	return tail - head
}
