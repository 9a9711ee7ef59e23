// Package dualqueue implements a two-tier priority queue: two bounded
// rings sharing one wait block, a ~25% "hi" ring for Warn and above and
// the remaining ~75% "lo" ring for everything else, so a flood of
// low-priority events can never starve high-priority ones.
package dualqueue

import (
	"time"

	"github.com/jiannanya/chlog/internal/ring"
)

// Queue is a bounded MPSC queue with two priority tiers.
type Queue[T any] struct {
	wait *ring.Wait
	hi   *ring.Ring[T]
	lo   *ring.Ring[T]
}

// New splits totalCapacity into a hi ring sized ceil(total/4) (minimum
// 1) and a lo ring holding the remainder.
func New[T any](totalCapacity uint64) *Queue[T] {
	hiCap := (totalCapacity + 3) / 4
	if hiCap < 1 {
		hiCap = 1
	}
	loCap := totalCapacity - hiCap
	if loCap < 1 {
		loCap = 1
	}

	w := ring.NewWait()
	return &Queue[T]{
		wait: w,
		hi:   ring.New[T](hiCap, w),
		lo:   ring.New[T](loCap, w),
	}
}

// TryPush routes by weight: weight >= 3 (Warn and above) goes to the hi
// ring, everything else to lo.
func (q *Queue[T]) TryPush(v T, weight int) bool {
	if weight >= 3 {
		return q.hi.TryPush(v)
	}
	return q.lo.TryPush(v)
}

// PushBlocking spins/sleeps until the push succeeds or stop is
// signalled, trying TryPush first so the common case never sleeps. It
// reports whether the value was actually enqueued.
func (q *Queue[T]) PushBlocking(v T, weight int) bool {
	for {
		if q.wait.Stopped() {
			return false
		}
		if q.TryPush(v, weight) {
			return true
		}
		q.wait.WaitNotFull(time.Millisecond)
	}
}

// PopBatch drains up to max items, hi ring first, then fills the
// remainder from lo. It returns the drained events in admission order
// within each tier, hi before lo.
func (q *Queue[T]) PopBatch(max int) []T {
	if max <= 0 {
		max = 1
	}
	out := make([]T, 0, max)

	n := 0
	for n < max {
		v, ok := q.hi.TryPop()
		if !ok {
			break
		}
		out = append(out, v)
		n++
	}
	for n < max {
		v, ok := q.lo.TryPop()
		if !ok {
			break
		}
		out = append(out, v)
		n++
	}

	if n > 0 {
		q.wait.NotifyNotFull()
	}
	return out
}

// WaitForData parks the consumer until an item arrives or dur elapses.
// Callers should only invoke this after a PopBatch that drained zero
// items.
func (q *Queue[T]) WaitForData(dur time.Duration) {
	q.wait.SleepFor(dur)
}

// SignalStop wakes the consumer and any blocked producers and marks the
// queue stopped; further TryPush/PushBlocking calls fail cleanly.
func (q *Queue[T]) SignalStop() {
	q.wait.SignalStop()
}

// Size is the relaxed sum of both tiers' occupancy.
func (q *Queue[T]) Size() uint64 {
	return q.hi.Size() + q.lo.Size()
}
