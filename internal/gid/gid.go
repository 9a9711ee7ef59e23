// Package gid captures a best-effort goroutine identifier for the {tid}
// pattern token. Go does not expose an OS thread id to user code (and a
// goroutine is not pinned to one thread anyway), so this parses the
// "goroutine NNN [...]" header every runtime.Stack dump starts with —
// the same trick profiling and logging tools reach for when they want a
// stable-enough-to-eyeball identifier without an external dependency.
package gid

import (
	"strconv"
)

// Current returns the calling goroutine's id as a decimal string, or ""
// if the runtime's stack header could not be parsed.
func Current() string {
	var buf [64]byte
	n := stackHeader(buf[:])
	// Header looks like "goroutine 123 [running]:\n..."
	const prefix = "goroutine "
	if n < len(prefix) || string(buf[:len(prefix)]) != prefix {
		return ""
	}
	rest := buf[len(prefix):n]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return ""
	}
	id := string(rest[:end])
	// Validate it actually parses; guards against a runtime format change.
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return ""
	}
	return id
}
