package rotatingfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jiannanya/chlog/event"
	"github.com/jiannanya/chlog/level"
)

func TestNewCreatesParentDirAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "app.log")

	s, err := New(Config{Path: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}

func TestLogAppendsRenderedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	s, err := New(Config{Path: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.SetPattern("{msg}")
	defer s.Close()

	s.Log(event.Event{Lvl: level.Info, Payload: "one"})
	s.Log(event.Event{Lvl: level.Info, Payload: "two"})
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got := string(data); got != "one\ntwo\n" {
		t.Fatalf("file contents = %q, want %q", got, "one\ntwo\n")
	}
}

func TestRotatesAtMaxBytesAndKeepsBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	s, err := New(Config{Path: path, MaxBytes: 10, MaxBackups: 2})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.SetPattern("{msg}")
	defer s.Close()

	// Each line is "xxxxxxxxxx\n" (11 bytes) — every write should push past
	// the 10 byte threshold and trigger a rotation.
	for i := 0; i < 5; i++ {
		s.Log(event.Event{Payload: "xxxxxxxxxx"})
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected active file to exist: %v", err)
	}
	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("expected backup .1 to exist: %v", err)
	}
	if _, err := os.Stat(path + ".3"); err == nil {
		t.Fatalf("expected at most MaxBackups=2 backups, found .3")
	}
}

func TestSetThreadSafeFalseSkipsLocking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	s, err := New(Config{Path: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	s.SetPattern("{msg}")
	s.SetThreadSafe(false)
	s.Log(event.Event{Payload: "solo"})

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "solo") {
		t.Fatal("expected the write to still land with locking disabled")
	}
}

func TestLogAfterCloseIsANoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	s, err := New(Config{Path: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s.Log(event.Event{Payload: "after close"}) // must not panic
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() should be a no-op, got %v", err)
	}
}
