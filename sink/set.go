package sink

import (
	"sync"
	"sync/atomic"
)

// Set is the copy-on-write collection of active sinks: producers and the
// consumer worker load a snapshot atomically, and updates publish a
// brand-new slice rather than mutate one in place, so no reader ever
// observes a partially-built list.
type Set struct {
	adminMu  sync.Mutex
	snapshot atomic.Pointer[[]Sink]
}

// NewSet returns an empty sink set.
func NewSet() *Set {
	s := &Set{}
	empty := make([]Sink, 0)
	s.snapshot.Store(&empty)
	return s
}

// Add appends sk to the set by publishing a cloned slice — the
// "administration lock" guards only the clone-and-publish step, never
// a reader's Load.
func (s *Set) Add(sk Sink) {
	s.adminMu.Lock()
	defer s.adminMu.Unlock()

	cur := *s.snapshot.Load()
	next := make([]Sink, len(cur)+1)
	copy(next, cur)
	next[len(cur)] = sk
	s.snapshot.Store(&next)
}

// Load returns the current snapshot. The returned slice must be treated
// as immutable by the caller.
func (s *Set) Load() []Sink {
	return *s.snapshot.Load()
}

// Len reports the current sink count, used to size the thread pool
// lazily when sink_pool_size is left at its zero-value default.
func (s *Set) Len() int {
	return len(s.Load())
}

// Each applies fn to every sink in the current snapshot that admit
// accepts — dispatch to a sink only if the event's level meets that
// sink's threshold. Sink panics are recovered so one broken sink never
// stops the others or crashes the host.
func (s *Set) Each(admit func(Sink) bool, fn func(Sink)) {
	for _, sk := range s.Load() {
		if admit != nil && !admit(sk) {
			continue
		}
		safeCall(func() { fn(sk) })
	}
}

func safeCall(fn func()) {
	defer func() { _ = recover() }()
	fn()
}
