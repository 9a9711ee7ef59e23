package gid

import "runtime"

// stackHeader writes the start of the current goroutine's stack trace
// into buf and returns the number of bytes written. A 64-byte buffer is
// always enough to capture the "goroutine NNN [state]:" header line.
func stackHeader(buf []byte) int {
	return runtime.Stack(buf, false)
}
