package ring

import (
	"sync"
	"sync/atomic"
	"time"
)

// Wait is the "wait block" shared by the rings in a two-tier queue: a
// binary semaphore the single consumer sleeps on, a not-full signal
// blocking producers wait on, a sleeping hint that limits producer
// wakeups to one per consumer sleep epoch, and a stop flag.
//
// Go has no std::condition_variable with a bounded wait, so the not-full
// signal is a channel that gets closed and replaced every time a batch
// drains: waiters select on the channel they observed plus a timeout,
// exactly the broadcast-then-recreate idiom most Go channel-based
// condvars use.
type Wait struct {
	mu        sync.Mutex
	notFullCh chan struct{}

	sleeping atomic.Bool
	sem      chan struct{} // capacity 1: binary semaphore for consumer wakeups

	stopOnce sync.Once
	stopped  atomic.Bool
	stopCh   chan struct{}
}

// NewWait constructs a ready-to-use wait block.
func NewWait() *Wait {
	return &Wait{
		notFullCh: make(chan struct{}),
		sem:       make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Stopped reports whether SignalStop has been called.
func (w *Wait) Stopped() bool {
	return w.stopped.Load()
}

// SignalStop is idempotent: it marks the block stopped and wakes both a
// sleeping consumer and any blocked producers.
func (w *Wait) SignalStop() {
	w.stopOnce.Do(func() {
		w.stopped.Store(true)
		close(w.stopCh)
		w.release()
		w.notifyNotFull()
	})
}

// release wakes the consumer if it is sleeping. Safe to call even when
// the semaphore already holds a permit (saturates instead of
// accumulating, matching a binary/counting_semaphore<1>).
func (w *Wait) release() {
	select {
	case w.sem <- struct{}{}:
	default:
	}
}

// WakeIfSleeping is called by a producer right after a successful push.
// It only pays for the channel send when the consumer actually looked
// asleep, which is the whole point of the sleeping hint: most pushes
// under load see sleeping == false and skip straight past.
func (w *Wait) WakeIfSleeping() {
	if w.sleeping.CompareAndSwap(true, false) {
		w.release()
	}
}

// SleepFor parks the single consumer until data arrives or dur elapses.
// It must only ever be called by one goroutine at a time.
func (w *Wait) SleepFor(dur time.Duration) {
	w.sleeping.Store(true)
	if w.stopped.Load() {
		w.sleeping.Store(false)
		return
	}
	select {
	case <-w.sem:
	case <-time.After(dur):
	case <-w.stopCh:
	}
	w.sleeping.Store(false)
}

// notifyNotFull wakes every producer currently blocked in WaitNotFull.
func (w *Wait) notifyNotFull() {
	w.mu.Lock()
	old := w.notFullCh
	w.notFullCh = make(chan struct{})
	w.mu.Unlock()
	close(old)
}

// NotifyNotFull is called after a batch drains some elements, so
// blocked producers get a chance to retry promptly instead of waiting
// out their full timeout.
func (w *Wait) NotifyNotFull() {
	w.notifyNotFull()
}

// WaitNotFull blocks a producer spinning in PushBlocking for at most
// dur, or until a drain happens, or until stop is signalled.
func (w *Wait) WaitNotFull(dur time.Duration) {
	w.mu.Lock()
	ch := w.notFullCh
	w.mu.Unlock()

	select {
	case <-ch:
	case <-time.After(dur):
	case <-w.stopCh:
	}
}
