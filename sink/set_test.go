package sink

import (
	"testing"

	"github.com/jiannanya/chlog/event"
	"github.com/jiannanya/chlog/level"
)

type stubSink struct {
	threshold level.Level
	logged    int
	panics    bool
}

func (s *stubSink) Log(event.Event) {
	if s.panics {
		panic("boom")
	}
	s.logged++
}
func (s *stubSink) Flush() error               { return nil }
func (s *stubSink) SetPattern(string)          {}
func (s *stubSink) SetLevel(lv level.Level)    { s.threshold = lv }
func (s *stubSink) SetThreadSafe(bool)         {}
func (s *stubSink) LevelThreshold() level.Level { return s.threshold }

func TestSetAddAndLoad(t *testing.T) {
	s := NewSet()
	if got := s.Len(); got != 0 {
		t.Fatalf("new set Len() = %d, want 0", got)
	}

	a, b := &stubSink{}, &stubSink{}
	s.Add(a)
	s.Add(b)

	if got := s.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	snap := s.Load()
	if len(snap) != 2 || snap[0] != Sink(a) || snap[1] != Sink(b) {
		t.Fatalf("Load() did not return sinks in insertion order")
	}
}

func TestSetAddDoesNotMutateEarlierSnapshot(t *testing.T) {
	s := NewSet()
	s.Add(&stubSink{})
	first := s.Load()

	s.Add(&stubSink{})
	if len(first) != 1 {
		t.Fatalf("earlier snapshot mutated: len = %d, want 1", len(first))
	}
	if len(s.Load()) != 2 {
		t.Fatalf("current snapshot len = %d, want 2", len(s.Load()))
	}
}

func TestEachSkipsSinksAdmitRejects(t *testing.T) {
	s := NewSet()
	a := &stubSink{threshold: level.Info}
	b := &stubSink{threshold: level.Error}
	s.Add(a)
	s.Add(b)

	e := event.Event{Lvl: level.Warn}
	s.Each(func(sk Sink) bool {
		return e.Lvl >= sk.LevelThreshold()
	}, func(sk Sink) {
		sk.Log(e)
	})

	if a.logged != 1 {
		t.Errorf("sink below threshold should have logged, got %d", a.logged)
	}
	if b.logged != 0 {
		t.Errorf("sink above threshold should not have logged, got %d", b.logged)
	}
}

func TestEachRecoversFromPanickingSink(t *testing.T) {
	s := NewSet()
	bad := &stubSink{panics: true}
	good := &stubSink{}
	s.Add(bad)
	s.Add(good)

	s.Each(nil, func(sk Sink) { sk.Log(event.Event{}) })

	if good.logged != 1 {
		t.Fatalf("a panicking sink must not stop the remaining sinks from being called")
	}
}

func TestEmptySetEachIsNoop(t *testing.T) {
	s := NewSet()
	called := false
	s.Each(nil, func(Sink) { called = true })
	if called {
		t.Fatal("Each on an empty set must not invoke fn")
	}
}
