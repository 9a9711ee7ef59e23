// Package dailyfile implements DailyFileSink, a file sink that rolls
// onto a fresh file at the first write of each new calendar day.
package dailyfile

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	"github.com/jiannanya/chlog/event"
	"github.com/jiannanya/chlog/level"
	"github.com/jiannanya/chlog/sink"
)

// Config controls the daily file sink.
type Config struct {
	// Dir is the directory log files are written into.
	Dir string
	// BaseName is combined with the current date to form each day's
	// file name: "<BaseName>-2006-01-02.log".
	BaseName string
}

// DailyFileSink rolls onto a new file whenever the local calendar date
// of an incoming event differs from the date of the file currently
// open.
type DailyFileSink struct {
	mu sync.Mutex

	cfg        Config
	file       *os.File
	day        string
	pattern    string
	threshold  level.Level
	threadSafe bool
}

var _ sink.Sink = (*DailyFileSink)(nil)
var _ sink.Closer = (*DailyFileSink)(nil)

// New creates a DailyFileSink rooted at cfg.Dir. The first file is
// opened lazily on the first Log call so construction never touches
// the filesystem with the wrong date.
func New(cfg Config) (*DailyFileSink, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}
	return &DailyFileSink{
		cfg:        cfg,
		pattern:    sink.DefaultPattern,
		threshold:  level.Trace,
		threadSafe: true,
	}, nil
}

func (s *DailyFileSink) pathFor(day string) string {
	return filepath.Join(s.cfg.Dir, s.cfg.BaseName+"-"+day+".log")
}

func (s *DailyFileSink) rollTo(day string) error {
	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
	}
	f, err := os.OpenFile(s.pathFor(day), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	s.file = f
	s.day = day
	return nil
}

func (s *DailyFileSink) Log(e event.Event) {
	if s.threadSafe {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	day := e.Ts.Local().Format("2006-01-02")
	if day != s.day || s.file == nil {
		if err := s.rollTo(day); err != nil {
			return
		}
	}

	var buf bytes.Buffer
	sink.RenderTo(&buf, s.pattern, e)
	buf.WriteByte('\n')
	_, _ = s.file.Write(buf.Bytes())
}

func (s *DailyFileSink) Flush() error {
	if s.threadSafe {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	if s.file == nil {
		return nil
	}
	return s.file.Sync()
}

func (s *DailyFileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *DailyFileSink) SetPattern(pattern string)  { s.pattern = pattern }
func (s *DailyFileSink) SetLevel(lv level.Level)     { s.threshold = lv }
func (s *DailyFileSink) SetThreadSafe(enabled bool)  { s.threadSafe = enabled }
func (s *DailyFileSink) LevelThreshold() level.Level { return s.threshold }
