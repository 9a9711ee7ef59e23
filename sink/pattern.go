package sink

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/jiannanya/chlog/event"
)

// JSONPattern is the special pattern literal that switches a sink from
// token substitution to the fixed JSON line shape.
const JSONPattern = "{json}"

// DefaultPattern is the pattern every sink starts with until
// Logger.AddSink overrides it with the logger's configured pattern.
const DefaultPattern = "[{date} {time}.{ms}][{lvl}][tid={tid}][{name}] {msg}"

// Render renders one event according to pattern, dispatching to the
// JSON shape when pattern is the literal "{json}".
func Render(pattern string, e event.Event) string {
	var buf bytes.Buffer
	RenderTo(&buf, pattern, e)
	return buf.String()
}

// RenderTo renders directly into buf, avoiding an intermediate string
// allocation on the hot path.
func RenderTo(buf *bytes.Buffer, pattern string, e event.Event) {
	if pattern == JSONPattern {
		renderJSONTo(buf, e)
		return
	}

	ts := e.Ts
	ms := e.MillisecondOfSecond()

	line := ""
	if e.Loc.Defined {
		line = strconv.Itoa(e.Loc.Line)
	}

	r := strings.NewReplacer(
		"{ts}", formatTimestamp(ts, ms),
		"{date}", formatDate(ts),
		"{time}", formatClock(ts),
		"{ms}", zeroPad3(ms),
		"{lvl}", e.Lvl.String(),
		"{tid}", e.Tid,
		"{name}", e.Name,
		"{msg}", e.Payload,
		"{file}", e.Loc.File,
		"{line}", line,
		"{func}", e.Loc.Function,
	)
	_, _ = r.WriteString(buf, pattern)
}

// formatDate renders {date} = YYYY-MM-DD in local time.
func formatDate(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// formatClock renders {time} = HH:MM:SS in local time.
func formatClock(t time.Time) string {
	return t.Local().Format("15:04:05")
}

// formatTimestamp renders {ts} = {date} {time}.{ms}.
func formatTimestamp(t time.Time, ms int) string {
	return formatDate(t) + " " + formatClock(t) + "." + zeroPad3(ms)
}

func zeroPad3(ms int) string {
	s := strconv.Itoa(ms)
	switch len(s) {
	case 1:
		return "00" + s
	case 2:
		return "0" + s
	default:
		return s
	}
}

// renderJSONTo writes a fixed key order and spacing:
// {"ts":"...","lvl":"...","tid":"...","name":"...",
// "seq":n,"file":"...","line":n,"func":"...","msg":"..."}.
func renderJSONTo(buf *bytes.Buffer, e event.Event) {
	ms := e.MillisecondOfSecond()

	buf.WriteString(`{"ts":"`)
	buf.WriteString(formatTimestamp(e.Ts, ms))
	buf.WriteString(`","lvl":"`)
	buf.WriteString(e.Lvl.String())
	buf.WriteString(`","tid":"`)
	appendJSONEscaped(buf, e.Tid)
	buf.WriteString(`","name":"`)
	appendJSONEscaped(buf, e.Name)
	buf.WriteString(`","seq":`)
	buf.WriteString(strconv.FormatUint(e.Seq, 10))
	buf.WriteString(`,"file":"`)
	appendJSONEscaped(buf, e.Loc.File)
	buf.WriteString(`","line":`)
	buf.WriteString(strconv.Itoa(e.Loc.Line))
	buf.WriteString(`,"func":"`)
	appendJSONEscaped(buf, e.Loc.Function)
	buf.WriteString(`","msg":"`)
	appendJSONEscaped(buf, e.Payload)
	buf.WriteString(`"}`)
}

var hexDigits = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'A', 'B', 'C', 'D', 'E', 'F'}

// appendJSONEscaped writes s into buf, JSON-escaping quotes, backslashes
// and control characters below 0x20: \b, \f, \n, \r and \t get their
// short escapes, every other control character is written as \u00XX.
// Deliberately hand-rolled
// rather than routed through encoding/json: that encoder also escapes
// <, >, and & for HTML safety, which would corrupt message bodies that
// legitimately contain them.
func appendJSONEscaped(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexDigits[c>>4])
			buf.WriteByte(hexDigits[c&0x0f])
		}
		start = i + 1
	}
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}
