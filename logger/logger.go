// Package logger implements the logger component: it owns configuration,
// the async queue and its worker, the sync-mode pool, the sink set, and
// the metrics counters, and exposes the call-site API.
package logger

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"

	"github.com/jiannanya/chlog/event"
	"github.com/jiannanya/chlog/internal/dualqueue"
	"github.com/jiannanya/chlog/internal/gid"
	"github.com/jiannanya/chlog/internal/workerpool"
	"github.com/jiannanya/chlog/level"
	"github.com/jiannanya/chlog/sink"
)

// Logger is the call-site entry point. The zero value is not usable;
// construct with New.
type Logger struct {
	cfg Config

	levelMu sync.RWMutex // guards cfg.Level, cfg.Pattern, cfg.FlushOnLevel at runtime

	sinks *sink.Set

	seq atomic.Uint64

	queue *dualqueue.Queue[event.Event]
	pool  *workerpool.Pool

	metrics Metrics

	stopOnce     sync.Once
	stopped      atomic.Bool
	workerDone   chan struct{}

	poolInitOnce sync.Once
}

// New constructs a Logger from cfg, applying the documented defaults
// and the single-threaded/"{msg}"-pattern overrides. If cfg.Async is
// enabled this also allocates the two-tier queue and spawns the single
// consumer worker.
func New(cfg Config) *Logger {
	cfg = applyDefaults(cfg)

	l := &Logger{
		cfg:        cfg,
		sinks:      sink.NewSet(),
		workerDone: make(chan struct{}),
	}

	if cfg.Async.Enabled {
		l.queue = dualqueue.New[event.Event](cfg.Async.QueueCapacity)
		go l.workerLoop()
	} else {
		close(l.workerDone)
	}

	return l
}

// AddSink appends sk to the sink set, configuring its pattern and
// marking it thread-safe unless the logger is single-threaded.
func (l *Logger) AddSink(sk sink.Sink) {
	sk.SetPattern(l.Pattern())
	sk.SetThreadSafe(!l.cfg.SingleThreaded)
	l.sinks.Add(sk)

	if l.cfg.ParallelSinks && !l.cfg.SingleThreaded && !l.cfg.Async.Enabled {
		l.poolInitOnce.Do(func() {
			n := l.cfg.SinkPoolSize
			if n <= 0 {
				n = l.sinks.Len()
			}
			if n <= 0 {
				n = 1
			}
			l.pool = workerpool.New(n)
		})
	}
}

// SetLevel changes the minimum admitted level at runtime.
func (l *Logger) SetLevel(lv level.Level) {
	l.levelMu.Lock()
	l.cfg.Level = lv
	l.levelMu.Unlock()
}

// Level returns the current minimum admitted level.
func (l *Logger) Level() level.Level {
	l.levelMu.RLock()
	defer l.levelMu.RUnlock()
	return l.cfg.Level
}

// SetPattern changes the render pattern used for sinks added from this
// point on; sinks already added keep whatever pattern they were given.
func (l *Logger) SetPattern(pattern string) {
	l.levelMu.Lock()
	l.cfg.Pattern = pattern
	l.levelMu.Unlock()
}

// Pattern returns the pattern new sinks are configured with.
func (l *Logger) Pattern() string {
	l.levelMu.RLock()
	defer l.levelMu.RUnlock()
	return l.cfg.Pattern
}

// SetFlushOn changes the flush-on-level threshold at runtime.
func (l *Logger) SetFlushOn(lv level.Level) {
	l.levelMu.Lock()
	l.cfg.FlushOnLevel = lv
	l.levelMu.Unlock()
}

func (l *Logger) flushOnLevel() level.Level {
	l.levelMu.RLock()
	defer l.levelMu.RUnlock()
	return l.cfg.FlushOnLevel
}

// Stats returns a point-in-time copy of the metrics counters.
func (l *Logger) Stats() MetricsSnapshot {
	return l.metrics.snapshot()
}

// Log is the admission path: level gate, metadata capture, template
// formatting with fallback, sequence assignment, routing, and
// flush-on-level.
func (l *Logger) Log(lv level.Level, template string, args ...any) {
	l.logAt(lv, template, args, event.Caller{}, false)
}

// LogAt is Log's explicit-location variant: callers (or thin wrappers
// around Log) that already know the real call site pass it here
// instead of letting Logger capture its own immediate caller.
func (l *Logger) LogAt(lv level.Level, loc event.Caller, template string, args ...any) {
	l.logAt(lv, template, args, loc, true)
}

func (l *Logger) logAt(lv level.Level, template string, args []any, loc event.Caller, explicitLoc bool) {
	if lv < l.Level() {
		return
	}

	cfg := l.snapshotCfg()

	e := event.Event{Lvl: lv}
	if cfg.CaptureTimestamp {
		e.Ts = time.Now()
	}
	if cfg.CaptureThreadID {
		e.Tid = gid.Current()
	}
	if cfg.CaptureLoggerName {
		e.Name = cfg.Name
	}
	if cfg.CaptureSourceLocation {
		if explicitLoc {
			e.Loc = loc
		} else {
			e.Loc = event.CaptureCaller(2)
		}
	}

	e.Payload = formatPayload(template, args)
	e.Seq = l.seq.Add(1)

	l.dispatch(e)
}

// snapshotCfg copies the runtime-mutable fields under the read lock so
// the rest of logAt can run lock-free.
func (l *Logger) snapshotCfg() Config {
	l.levelMu.RLock()
	defer l.levelMu.RUnlock()
	return l.cfg
}

func (l *Logger) dispatch(e event.Event) {
	switch {
	case l.cfg.SingleThreaded:
		l.dispatchInline(e)
		l.metrics.enqueued.Add(1)
		l.maybeFlushOnLevel(e.Lvl)

	case !l.cfg.Async.Enabled && l.cfg.ParallelSinks:
		l.dispatchParallel(e)
		l.metrics.enqueued.Add(1)
		l.maybeFlushOnLevel(e.Lvl)

	case !l.cfg.Async.Enabled:
		l.dispatchInline(e)
		l.metrics.enqueued.Add(1)
		l.maybeFlushOnLevel(e.Lvl)

	default:
		l.dispatchAsync(e)
	}
}

func (l *Logger) dispatchInline(e event.Event) {
	l.sinks.Each(func(sk sink.Sink) bool {
		return e.Lvl >= sk.LevelThreshold()
	}, func(sk sink.Sink) {
		sk.Log(e)
	})
}

// dispatchParallel never blocks on sinks: it submits one task per sink
// to the pool and returns immediately. flush-on-level races ahead of
// these pending writes under this mode — a flush issued right after
// this call may not yet observe every sink's write.
func (l *Logger) dispatchParallel(e event.Event) {
	if l.pool == nil {
		l.dispatchInline(e)
		return
	}
	snapshot := l.sinks.Load()
	for _, sk := range snapshot {
		if e.Lvl < sk.LevelThreshold() {
			continue
		}
		sk := sk
		l.pool.Submit(func() {
			sk.Log(e)
		})
	}
}

func (l *Logger) maybeFlushOnLevel(lv level.Level) {
	if lv >= l.flushOnLevel() {
		_ = l.Flush()
		l.metrics.flushed.Add(1)
	}
}

// dispatchAsync tries a non-blocking push; on failure it either drops
// (low priority, drop policy) or degrades to a blocking push (warn and
// above, or drop_when_full false).
func (l *Logger) dispatchAsync(e event.Event) {
	if l.stopped.Load() {
		return
	}

	weight := e.Lvl.Weight()
	if l.queue.TryPush(e, weight) {
		l.metrics.enqueued.Add(1)
		return
	}

	if l.cfg.Async.DropWhenFull && e.Lvl < level.Warn {
		l.metrics.dropped.Add(1)
		return
	}

	if l.queue.PushBlocking(e, weight) {
		l.metrics.enqueued.Add(1)
	}
}

// workerLoop is the single async consumer.
func (l *Logger) workerLoop() {
	defer close(l.workerDone)

	batchMax := l.cfg.Async.BatchMax
	lastFlush := time.Now()

	for {
		batch := l.queue.PopBatch(batchMax)
		if len(batch) == 0 {
			if l.stopped.Load() && l.queue.Size() == 0 {
				l.drainAndExit(batchMax, &lastFlush)
				return
			}
			l.queue.WaitForData(100 * time.Millisecond)
			l.maybePeriodicFlush(&lastFlush)
			continue
		}

		l.handleBatch(batch)
		l.maybePeriodicFlush(&lastFlush)

		if l.stopped.Load() && l.queue.Size() == 0 {
			l.drainAndExit(batchMax, &lastFlush)
			return
		}
	}
}

func (l *Logger) drainAndExit(batchMax int, lastFlush *time.Time) {
	for {
		batch := l.queue.PopBatch(batchMax)
		if len(batch) == 0 {
			break
		}
		l.handleBatch(batch)
	}
	_ = l.Flush()
	l.metrics.flushed.Add(1)
}

func (l *Logger) handleBatch(batch []event.Event) {
	l.metrics.dequeued.Add(uint64(len(batch)))
	snapshot := l.sinks.Load()

	flushOn := l.flushOnLevel()
	for _, e := range batch {
		for _, sk := range snapshot {
			if e.Lvl < sk.LevelThreshold() {
				continue
			}
			l.safeSinkLog(sk, e)
		}
		if e.Lvl >= flushOn {
			_ = l.Flush()
			l.metrics.flushed.Add(1)
		}
	}

	l.metrics.queueSize.Store(int64(l.queue.Size()))
}

func (l *Logger) safeSinkLog(sk sink.Sink, e event.Event) {
	defer func() { _ = recover() }()
	sk.Log(e)
}

func (l *Logger) maybePeriodicFlush(lastFlush *time.Time) {
	every := l.cfg.Async.FlushEvery
	if every <= 0 {
		return
	}
	if time.Since(*lastFlush) < every {
		return
	}
	_ = l.Flush()
	l.metrics.flushed.Add(1)
	*lastFlush = time.Now()
}

// Flush flushes every sink in the current snapshot, aggregating
// per-sink errors with multierr rather than stopping at the first
// failure — a sink's I/O error must never keep its siblings from
// flushing. The async worker itself discards per-event sink errors;
// this is the one path that surfaces them, to the caller of Flush or
// Shutdown rather than the call site that logged the event.
func (l *Logger) Flush() error {
	var err error
	l.sinks.Each(nil, func(sk sink.Sink) {
		if ferr := sk.Flush(); ferr != nil {
			err = multierr.Append(err, ferr)
		}
	})
	return err
}

// Shutdown is idempotent: it sets the stop flag, wakes and joins the
// async worker if one is running, shuts down the sync-mode pool if one
// was allocated, and performs a final flush. Safe to call more than
// once. A Logger that is never shut down keeps its async worker
// goroutine, if it has one, running and so keeps the Logger and its
// queue reachable.
func (l *Logger) Shutdown() error {
	var err error
	l.stopOnce.Do(func() {
		l.stopped.Store(true)

		if l.queue != nil {
			l.queue.SignalStop()
			<-l.workerDone
		}

		if l.pool != nil {
			l.pool.Shutdown()
		}

		err = l.Flush()

		l.sinks.Each(nil, func(sk sink.Sink) {
			if closer, ok := sk.(sink.Closer); ok {
				if cerr := closer.Close(); cerr != nil {
					err = multierr.Append(err, cerr)
				}
			}
		})
	})
	return err
}
