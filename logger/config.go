package logger

import (
	"time"

	"github.com/jiannanya/chlog/level"
	"github.com/jiannanya/chlog/sink"
)

// AsyncConfig holds the async-queue knobs.
type AsyncConfig struct {
	Enabled bool
	// QueueCapacity is the total capacity split across the two tiers
	// (about 25% hi, 75% lo); each tier's ring is rounded up to a power
	// of two.
	QueueCapacity uint64
	// BatchMax caps how many events the worker pops per iteration. 0 is
	// treated as 1.
	BatchMax int
	// FlushEvery triggers a periodic flush of all sinks even when no
	// event at flush_on_level has arrived.
	FlushEvery time.Duration
	// DropWhenFull controls overflow policy: true drops low-priority
	// events and degrades warn+ to a blocking push; false always
	// blocks.
	DropWhenFull bool
	// WeightedQueue is informational only: the two-tier split is always
	// in effect once async is enabled.
	WeightedQueue bool
}

// Config is the logger configuration value object, captured at
// construction and lightly mutable at runtime via Logger's setters.
type Config struct {
	Name  string
	Level level.Level

	// SingleThreaded disables the worker thread, the sync pool, and all
	// internal sink locking.
	SingleThreaded bool

	Pattern string

	CaptureTimestamp       bool
	CaptureThreadID        bool
	CaptureLoggerName      bool
	CaptureSourceLocation  bool

	FlushOnLevel level.Level

	Async AsyncConfig

	// ParallelSinks fans a sync-mode dispatch out across a worker pool,
	// one task per sink per event. Ignored when SingleThreaded.
	ParallelSinks bool
	// SinkPoolSize sizes that pool; 0 means "size it to the current
	// sink count" the first time it's needed.
	SinkPoolSize int
}

// DefaultConfig returns the library's baseline configuration.
func DefaultConfig() Config {
	return Config{
		Level:                 level.Info,
		Pattern:               sink.DefaultPattern,
		CaptureTimestamp:      true,
		CaptureThreadID:       true,
		CaptureLoggerName:     true,
		CaptureSourceLocation: true,
		FlushOnLevel:          level.Error,
		Async: AsyncConfig{
			Enabled:       false,
			QueueCapacity: 16384,
			BatchMax:      256,
			FlushEvery:    500 * time.Millisecond,
			DropWhenFull:  true,
			WeightedQueue: true,
		},
		ParallelSinks: true,
		SinkPoolSize:  0,
	}
}

// applyDefaults fills in the handful of fields where the Go zero value
// is unambiguously "caller didn't set this" (an empty pattern, a zero
// queue capacity, ...), then applies two construction-time overrides:
// a single-threaded logger never runs async or a sink pool, and a bare
// "{msg}" pattern forces off all four capture flags since none of
// their output would ever be rendered.
//
// Level, the capture flags, and FlushOnLevel are deliberately left
// alone here: their zero values (Trace, false, Trace) are legitimate
// settings in their own right, so there is no way to tell "unset" from
// "explicitly chosen" by inspecting the value. Callers who want the
// documented defaults start from DefaultConfig() and override only what
// they need.
func applyDefaults(cfg Config) Config {
	def := DefaultConfig()

	if cfg.Pattern == "" {
		cfg.Pattern = def.Pattern
	}
	if cfg.Async.Enabled {
		if cfg.Async.QueueCapacity == 0 {
			cfg.Async.QueueCapacity = def.Async.QueueCapacity
		}
		if cfg.Async.BatchMax <= 0 {
			cfg.Async.BatchMax = 1
		}
		if cfg.Async.FlushEvery == 0 {
			cfg.Async.FlushEvery = def.Async.FlushEvery
		}
	}

	if cfg.Pattern == "{msg}" {
		cfg.CaptureTimestamp = false
		cfg.CaptureThreadID = false
		cfg.CaptureLoggerName = false
		cfg.CaptureSourceLocation = false
	}

	if cfg.SingleThreaded {
		cfg.Async.Enabled = false
		cfg.ParallelSinks = false
	}

	return cfg
}
