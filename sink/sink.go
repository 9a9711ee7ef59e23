// Package sink defines the pluggable output contract, the pattern/JSON
// renderer every sink implementation shares, and the copy-on-write sink
// set producers and the consumer load atomically.
package sink

import (
	"github.com/jiannanya/chlog/event"
	"github.com/jiannanya/chlog/level"
)

// Sink is the capability set every output collaborator implements:
// consume an event, flush, and accept runtime reconfiguration. Concrete
// sinks (sinks/console, sinks/rotatingfile, ...) own their own state —
// files, mutexes — and their own threshold.
type Sink interface {
	Log(e event.Event)
	Flush() error
	SetPattern(pattern string)
	SetLevel(lv level.Level)
	SetThreadSafe(enabled bool)
	LevelThreshold() level.Level
}

// Closer is implemented by sinks that hold a resource (an open file)
// needing an explicit release on logger shutdown. It is not part of the
// Sink contract itself; Logger.Shutdown checks for it via a type
// assertion, an optional-capability pattern rather than a required
// method.
type Closer interface {
	Close() error
}
