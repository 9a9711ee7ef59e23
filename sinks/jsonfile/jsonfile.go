// Package jsonfile implements JSONFileSink, a rotating file sink
// permanently pinned to the {json} render pattern.
package jsonfile

import (
	"github.com/jiannanya/chlog/event"
	"github.com/jiannanya/chlog/level"
	"github.com/jiannanya/chlog/sink"
	"github.com/jiannanya/chlog/sinks/rotatingfile"
)

// Config controls rotation, reusing rotatingfile's size/backup policy.
type Config struct {
	Path       string
	MaxBytes   int64
	MaxBackups int
}

// JSONFileSink wraps a rotatingfile.RotatingFileSink and refuses to
// change away from the JSON pattern: there is no setter that can move
// it off that.
type JSONFileSink struct {
	inner *rotatingfile.RotatingFileSink
}

var _ sink.Sink = (*JSONFileSink)(nil)
var _ sink.Closer = (*JSONFileSink)(nil)

// New opens cfg.Path and returns a sink that always renders events as
// JSON lines, regardless of any later SetPattern call.
func New(cfg Config) (*JSONFileSink, error) {
	inner, err := rotatingfile.New(rotatingfile.Config{
		Path:       cfg.Path,
		MaxBytes:   cfg.MaxBytes,
		MaxBackups: cfg.MaxBackups,
	})
	if err != nil {
		return nil, err
	}
	inner.SetPattern(sink.JSONPattern)
	return &JSONFileSink{inner: inner}, nil
}

func (s *JSONFileSink) Log(e event.Event) { s.inner.Log(e) }
func (s *JSONFileSink) Flush() error      { return s.inner.Flush() }
func (s *JSONFileSink) Close() error      { return s.inner.Close() }

// SetPattern is a documented no-op: a JSONFileSink always renders
// {json} and never exposes a way to change its pattern after
// construction.
func (s *JSONFileSink) SetPattern(pattern string) {}

func (s *JSONFileSink) SetLevel(lv level.Level)        { s.inner.SetLevel(lv) }
func (s *JSONFileSink) SetThreadSafe(enabled bool)     { s.inner.SetThreadSafe(enabled) }
func (s *JSONFileSink) LevelThreshold() level.Level    { return s.inner.LevelThreshold() }
