package level

import "testing"

func TestOrdering(t *testing.T) {
	order := []Level{Trace, Debug, Info, Warn, Error, Critical, Off}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Errorf("expected %v < %v", order[i-1], order[i])
		}
	}
}

func TestWeightHighPriorityThreshold(t *testing.T) {
	cases := []struct {
		lv   Level
		high bool
	}{
		{Trace, false},
		{Debug, false},
		{Info, false},
		{Warn, true},
		{Error, true},
		{Critical, true},
	}
	for _, c := range cases {
		if got := c.lv.HighPriority(); got != c.high {
			t.Errorf("%v.HighPriority() = %v, want %v", c.lv, got, c.high)
		}
	}
}

func TestString(t *testing.T) {
	cases := map[Level]string{
		Trace: "TRACE", Debug: "DEBUG", Info: "INFO",
		Warn: "WARN", Error: "ERROR", Critical: "CRITICAL", Off: "OFF",
	}
	for lv, want := range cases {
		if got := lv.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", lv, got, want)
		}
	}
}

func TestParseDefaultsToInfo(t *testing.T) {
	if Parse("bogus") != Info {
		t.Error("expected unrecognized input to default to Info")
	}
	if Parse("warning") != Warn {
		t.Error("expected \"warning\" alias to parse as Warn")
	}
}
