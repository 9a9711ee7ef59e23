// Package event defines the immutable unit that flows from a producer's
// call site, through the queue, to every sink: Event.
package event

import (
	"path/filepath"
	"runtime"
	"time"

	"github.com/jiannanya/chlog/level"
)

// Caller is the source location captured at admission, when the logger's
// capture-source-location flag is on. The zero value (Defined == false)
// is what a disabled capture flag, or a failed runtime.Caller lookup,
// produces; renderers must treat it as the empty token.
type Caller struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// CaptureCaller walks the call stack skip frames up from its own caller
// and returns the resulting location: 0 means the line calling
// CaptureCaller itself, 1 that function's caller, and so on.
func CaptureCaller(skip int) Caller {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Caller{}
	}
	var fn string
	if f := runtime.FuncForPC(pc); f != nil {
		fn = f.Name()
	}
	return Caller{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  fn,
		Defined:   true,
	}
}

// Event is one logged record. It is immutable after construction: once
// admitted into the queue or handed to a sink, no field is mutated.
// Every field but Payload and Level takes a defined empty/zero default
// when its capture flag is disabled.
type Event struct {
	Ts      time.Time
	Lvl     level.Level
	Tid     string
	Name    string
	Payload string
	Seq     uint64
	Loc     Caller
}

// MillisecondOfSecond returns the event timestamp's millisecond
// component. Zero-padded rendering is the renderer's job; this just
// extracts the integer the {ms} token needs.
func (e Event) MillisecondOfSecond() int {
	return e.Ts.Nanosecond() / 1_000_000
}
