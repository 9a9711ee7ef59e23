package logger

import (
	"sync"

	"github.com/jiannanya/chlog/event"
	"github.com/jiannanya/chlog/sinks/console"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	cfg := DefaultConfig()
	l := New(cfg)
	l.AddSink(console.New(nil, console.Plain))
	defaultLogger = l
}

// Default returns the process-wide default Logger, which this package
// creates at init from DefaultConfig with a plain console sink on
// stdout. The package-level Debug/Info/... functions below log through
// it.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide default Logger.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions delegating to Default(). These
// capture the location here, at the package-level wrapper, and forward
// it through the *At variants — otherwise the Logger would report this
// wrapper as the call site instead of the program's actual caller.

func Trace(template string, args ...any) {
	Default().TraceAt(event.CaptureCaller(1), template, args...)
}

func Debug(template string, args ...any) {
	Default().DebugAt(event.CaptureCaller(1), template, args...)
}

func Info(template string, args ...any) {
	Default().InfoAt(event.CaptureCaller(1), template, args...)
}

func Warn(template string, args ...any) {
	Default().WarnAt(event.CaptureCaller(1), template, args...)
}

func Error(template string, args ...any) {
	Default().ErrorAt(event.CaptureCaller(1), template, args...)
}

func Critical(template string, args ...any) {
	Default().CriticalAt(event.CaptureCaller(1), template, args...)
}
