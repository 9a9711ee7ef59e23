package sink

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jiannanya/chlog/event"
	"github.com/jiannanya/chlog/level"
)

func sampleEvent() event.Event {
	return event.Event{
		Ts:      time.Date(2026, 3, 4, 9, 8, 7, 123_000_000, time.Local),
		Lvl:     level.Warn,
		Tid:     "7",
		Name:    "svc",
		Payload: "u=7",
		Seq:     42,
		Loc:     event.Caller{File: "/x/y.go", ShortFile: "y.go", Line: 10, Function: "x.f", Defined: true},
	}
}

func TestRenderTokenSubstitution(t *testing.T) {
	got := Render(DefaultPattern, sampleEvent())
	want := "[2026-03-04 09:08:07.123][WARN][tid=7][svc] u=7"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderUnknownTokenLeftAsIs(t *testing.T) {
	got := Render("{msg} {nope}", sampleEvent())
	want := "u=7 {nope}"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderFileLineFunc(t *testing.T) {
	got := Render("{file}:{line} {func}", sampleEvent())
	want := "/x/y.go:10 x.f"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderJSONShape(t *testing.T) {
	e := sampleEvent()
	got := Render(JSONPattern, e)

	if !strings.HasPrefix(got, `{"ts":"`) || !strings.HasSuffix(got, `"}`) {
		t.Fatalf("unexpected JSON shape: %s", got)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("output did not parse as JSON: %v", err)
	}
	if parsed["lvl"] != "WARN" {
		t.Errorf("lvl = %v, want WARN", parsed["lvl"])
	}
	if parsed["msg"] != "u=7" {
		t.Errorf("msg = %v, want u=7", parsed["msg"])
	}
	if parsed["name"] != "svc" {
		t.Errorf("name = %v, want svc", parsed["name"])
	}
	if int(parsed["seq"].(float64)) != 42 {
		t.Errorf("seq = %v, want 42", parsed["seq"])
	}
	if int(parsed["line"].(float64)) != 10 {
		t.Errorf("line = %v, want 10", parsed["line"])
	}
}

func TestJSONEscapesControlCharsAndQuotes(t *testing.T) {
	e := sampleEvent()
	e.Payload = "line1\nline2\ttab\"quote\\slash"
	got := Render(JSONPattern, e)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("output did not parse as JSON: %v\n%s", err, got)
	}
	if parsed["msg"] != e.Payload {
		t.Errorf("round-tripped msg = %q, want %q", parsed["msg"], e.Payload)
	}
	if !strings.Contains(got, `\n`) || !strings.Contains(got, `\t`) {
		t.Errorf("expected literal \\n and \\t escapes in %s", got)
	}
}

func TestJSONEscapesLowControlCharAsUnicodeEscape(t *testing.T) {
	e := sampleEvent()
	e.Payload = "bell\x07end"
	got := Render(JSONPattern, e)
	if !strings.Contains(got, `\u0007`) {
		t.Errorf("expected \\u0007 escape in %s", got)
	}
}

func TestMillisecondZeroPadding(t *testing.T) {
	cases := map[int]string{7: "007", 42: "042", 123: "123"}
	for ms, want := range cases {
		e := sampleEvent()
		e.Ts = time.Date(2026, 1, 1, 0, 0, 0, ms*1_000_000, time.Local)
		got := Render("{ms}", e)
		if got != want {
			t.Errorf("ms=%d: got %q, want %q", ms, got, want)
		}
	}
}

func TestRenderToMatchesRender(t *testing.T) {
	e := sampleEvent()
	var buf bytes.Buffer
	RenderTo(&buf, "{lvl}:{msg}", e)
	if got, want := buf.String(), Render("{lvl}:{msg}", e); got != want {
		t.Fatalf("RenderTo/Render disagreement: %q vs %q", got, want)
	}
}
