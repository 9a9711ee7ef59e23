// Package rotatingfile implements RotatingFileSink, a size-triggered
// rotating file sink with numbered backups.
package rotatingfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jiannanya/chlog/event"
	"github.com/jiannanya/chlog/level"
	"github.com/jiannanya/chlog/sink"
)

// Config controls rotation behavior.
type Config struct {
	// Path is the active log file path.
	Path string
	// MaxBytes rotates the file once it reaches this size. 0 disables
	// size-based rotation (the file grows without bound).
	MaxBytes int64
	// MaxBackups caps how many numbered backups (<path>.1 .. <path>.N)
	// are retained; 0 means "keep 1".
	MaxBackups int
}

// RotatingFileSink is a size-rotating file sink.
type RotatingFileSink struct {
	mu sync.Mutex

	cfg        Config
	file       *os.File
	bytes      int64
	pattern    string
	threshold  level.Level
	threadSafe bool
}

var _ sink.Sink = (*RotatingFileSink)(nil)
var _ sink.Closer = (*RotatingFileSink)(nil)

// New opens (or creates) cfg.Path for append and returns a ready sink.
func New(cfg Config) (*RotatingFileSink, error) {
	if cfg.MaxBackups < 1 {
		cfg.MaxBackups = 1
	}
	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	s := &RotatingFileSink{
		cfg:        cfg,
		pattern:    sink.DefaultPattern,
		threshold:  level.Trace,
		threadSafe: true,
	}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *RotatingFileSink) open() error {
	f, err := os.OpenFile(s.cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	s.file = f
	s.bytes = info.Size()
	return nil
}

func (s *RotatingFileSink) Log(e event.Event) {
	if s.threadSafe {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	if s.file == nil {
		return
	}

	var buf bytes.Buffer
	sink.RenderTo(&buf, s.pattern, e)
	buf.WriteByte('\n')

	n, _ := s.file.Write(buf.Bytes())
	s.bytes += int64(n)

	if s.cfg.MaxBytes > 0 && s.bytes >= s.cfg.MaxBytes {
		_ = s.rotate()
	}
}

// rotate flushes and closes the active file, shifts numbered backups
// up by one slot, and reopens a fresh active file. Must be called with
// mu held.
func (s *RotatingFileSink) rotate() error {
	if s.file == nil {
		return nil
	}
	_ = s.file.Sync()
	if err := s.file.Close(); err != nil {
		return err
	}

	last := fmt.Sprintf("%s.%d", s.cfg.Path, s.cfg.MaxBackups)
	if _, err := os.Stat(last); err == nil {
		_ = os.Remove(last)
	}
	for i := s.cfg.MaxBackups - 1; i >= 1; i-- {
		src := fmt.Sprintf("%s.%d", s.cfg.Path, i)
		dst := fmt.Sprintf("%s.%d", s.cfg.Path, i+1)
		if _, err := os.Stat(src); err == nil {
			_ = os.Rename(src, dst)
		}
	}
	if _, err := os.Stat(s.cfg.Path); err == nil {
		_ = os.Rename(s.cfg.Path, s.cfg.Path+".1")
	}

	return s.open()
}

func (s *RotatingFileSink) Flush() error {
	if s.threadSafe {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	if s.file == nil {
		return nil
	}
	return s.file.Sync()
}

func (s *RotatingFileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *RotatingFileSink) SetPattern(pattern string)  { s.pattern = pattern }
func (s *RotatingFileSink) SetLevel(lv level.Level)     { s.threshold = lv }
func (s *RotatingFileSink) SetThreadSafe(enabled bool)  { s.threadSafe = enabled }
func (s *RotatingFileSink) LevelThreshold() level.Level { return s.threshold }
