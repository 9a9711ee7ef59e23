package logger

import (
	"github.com/jiannanya/chlog/event"
	"github.com/jiannanya/chlog/level"
)

// Per-level convenience wrappers. Each calls logAt directly (not Log)
// so CaptureCaller's skip count stays correct: every one of these sits
// exactly as many frames above logAt as Log does.

func (l *Logger) Trace(template string, args ...any) {
	l.logAt(level.Trace, template, args, event.Caller{}, false)
}

func (l *Logger) Debug(template string, args ...any) {
	l.logAt(level.Debug, template, args, event.Caller{}, false)
}

func (l *Logger) Info(template string, args ...any) {
	l.logAt(level.Info, template, args, event.Caller{}, false)
}

func (l *Logger) Warn(template string, args ...any) {
	l.logAt(level.Warn, template, args, event.Caller{}, false)
}

func (l *Logger) Error(template string, args ...any) {
	l.logAt(level.Error, template, args, event.Caller{}, false)
}

func (l *Logger) Critical(template string, args ...any) {
	l.logAt(level.Critical, template, args, event.Caller{}, false)
}

// Explicit-location variants, for thin wrappers that want to forward
// their own caller's location instead of reporting their own.

func (l *Logger) TraceAt(loc event.Caller, template string, args ...any) {
	l.logAt(level.Trace, template, args, loc, true)
}

func (l *Logger) DebugAt(loc event.Caller, template string, args ...any) {
	l.logAt(level.Debug, template, args, loc, true)
}

func (l *Logger) InfoAt(loc event.Caller, template string, args ...any) {
	l.logAt(level.Info, template, args, loc, true)
}

func (l *Logger) WarnAt(loc event.Caller, template string, args ...any) {
	l.logAt(level.Warn, template, args, loc, true)
}

func (l *Logger) ErrorAt(loc event.Caller, template string, args ...any) {
	l.logAt(level.Error, template, args, loc, true)
}

func (l *Logger) CriticalAt(loc event.Caller, template string, args ...any) {
	l.logAt(level.Critical, template, args, loc, true)
}
