package logger

import "sync/atomic"

// Metrics holds the dropped/enqueued/dequeued/flushed/queue-size
// counters. In multi-threaded mode every field is touched only through
// atomic ops; single-threaded mode still routes through the same
// atomics for simplicity — plain ints would save nothing measurable
// here and would fork the bookkeeping code path.
type Metrics struct {
	dropped   atomic.Uint64
	enqueued  atomic.Uint64
	dequeued  atomic.Uint64
	flushed   atomic.Uint64
	queueSize atomic.Int64
}

// MetricsSnapshot is the point-in-time copy Stats() returns.
type MetricsSnapshot struct {
	Dropped   uint64
	Enqueued  uint64
	Dequeued  uint64
	Flushed   uint64
	QueueSize int64
}

func (m *Metrics) snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Dropped:   m.dropped.Load(),
		Enqueued:  m.enqueued.Load(),
		Dequeued:  m.dequeued.Load(),
		Flushed:   m.flushed.Load(),
		QueueSize: m.queueSize.Load(),
	}
}
