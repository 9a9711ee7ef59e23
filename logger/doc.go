// Package logger is chlog's public entry point. Most programs only
// need to import this package plus whichever sinks/* packages they
// plan to attach.
//
// A Logger owns its configuration, its sink set, and — when async is
// enabled — the two-tier queue and the single consumer goroutine that
// drains it:
//
//	log := logger.New(logger.DefaultConfig())
//	log.AddSink(console.New(nil, console.Color))
//	log.Info("listening on {}", addr)
//	defer log.Shutdown()
//
// Level checks happen before any capture or formatting work, so a
// filtered-out call costs one comparison against a level read under a
// read lock.
//
// Templates use positional "{}" placeholders; a malformed template or
// an argument-count mismatch never panics the caller — the event is
// still emitted, with the literal template as its payload.
package logger
