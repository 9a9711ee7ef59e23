package ring

import (
	"sync"
	"testing"
)

func TestRoundUpPow2(t *testing.T) {
	cases := map[uint64]uint64{0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 16384: 16384, 16385: 32768}
	for in, want := range cases {
		if got := RoundUpPow2(in); got != want {
			t.Errorf("RoundUpPow2(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestTryPushTryPopFIFO(t *testing.T) {
	r := New[int](4, nil)
	for i := 0; i < 4; i++ {
		if !r.TryPush(i) {
			t.Fatalf("push %d should have succeeded", i)
		}
	}
	if r.TryPush(99) {
		t.Fatal("ring should be full")
	}
	for i := 0; i < 4; i++ {
		v, ok := r.TryPop()
		if !ok || v != i {
			t.Fatalf("pop %d: got (%d, %v)", i, v, ok)
		}
	}
	if _, ok := r.TryPop(); ok {
		t.Fatal("ring should be empty")
	}
}

func TestWrapAround(t *testing.T) {
	r := New[int](2, nil)
	for lap := 0; lap < 5; lap++ {
		if !r.TryPush(lap) {
			t.Fatalf("lap %d: push should succeed on an empty ring", lap)
		}
		v, ok := r.TryPop()
		if !ok || v != lap {
			t.Fatalf("lap %d: got (%d, %v)", lap, v, ok)
		}
	}
}

func TestConcurrentProducersNeverExceedCapacity(t *testing.T) {
	r := New[int](8, nil)
	var wg sync.WaitGroup
	var succeeded int32Counter

	for p := 0; p < 16; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if r.TryPush(i) {
					succeeded.add(1)
				}
			}
		}()
	}
	wg.Wait()

	if got := succeeded.load(); got > 8 {
		t.Fatalf("more pushes succeeded than capacity allows: %d", got)
	}
	if got := r.Size(); got != uint64(succeeded.load()) {
		t.Fatalf("Size() = %d, want %d", got, succeeded.load())
	}
}

type int32Counter struct {
	mu sync.Mutex
	n  int
}

func (c *int32Counter) add(n int) {
	c.mu.Lock()
	c.n += n
	c.mu.Unlock()
}

func (c *int32Counter) load() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
