// Package console implements ConsoleSink, a plain or ANSI-colored sink
// writing rendered lines to stdout or any io.Writer.
package console

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/jiannanya/chlog/event"
	"github.com/jiannanya/chlog/level"
	"github.com/jiannanya/chlog/sink"
)

// Style selects plain or ANSI-colored output, keyed by level.
type Style int

const (
	Plain Style = iota
	Color
)

var ansiByLevel = [...]string{
	level.Trace:    "\x1b[37m",
	level.Debug:    "\x1b[36m",
	level.Info:     "\x1b[32m",
	level.Warn:     "\x1b[33m",
	level.Error:    "\x1b[31m",
	level.Critical: "\x1b[1;31m",
	level.Off:      "\x1b[0m",
}

const ansiReset = "\x1b[0m"

// ConsoleSink writes rendered lines to an io.Writer (os.Stdout by
// default). When ThreadSafe is enabled (the default set by
// Logger.AddSink) writes are serialized under a mutex; a logger that
// runs single-threaded disables this lock entirely via SetThreadSafe.
type ConsoleSink struct {
	mu sync.Mutex

	w          io.Writer
	style      Style
	pattern    string
	threshold  level.Level
	threadSafe bool
}

// New creates a ConsoleSink writing to w (os.Stdout if w is nil).
func New(w io.Writer, style Style) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleSink{
		w:          w,
		style:      style,
		pattern:    sink.DefaultPattern,
		threshold:  level.Trace,
		threadSafe: true,
	}
}

var _ sink.Sink = (*ConsoleSink)(nil)

func (s *ConsoleSink) Log(e event.Event) {
	var buf bytes.Buffer
	if s.style == Color {
		buf.WriteString(ansiByLevel[e.Lvl])
	}
	sink.RenderTo(&buf, s.pattern, e)
	if s.style == Color {
		buf.WriteString(ansiReset)
	}
	buf.WriteByte('\n')

	if s.threadSafe {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	_, _ = s.w.Write(buf.Bytes())
}

func (s *ConsoleSink) Flush() error {
	if f, ok := s.w.(interface{ Sync() error }); ok {
		if s.threadSafe {
			s.mu.Lock()
			defer s.mu.Unlock()
		}
		return f.Sync()
	}
	if f, ok := s.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (s *ConsoleSink) SetPattern(pattern string)   { s.pattern = pattern }
func (s *ConsoleSink) SetLevel(lv level.Level)      { s.threshold = lv }
func (s *ConsoleSink) SetThreadSafe(enabled bool)   { s.threadSafe = enabled }
func (s *ConsoleSink) LevelThreshold() level.Level  { return s.threshold }
