// Package logging defines the small logger interface injected into
// components that report soft failures (size-table fallbacks, skipped
// render elements). The zero value everywhere is the nop logger; callers
// that want output wrap a slog handler.
package logging

import "log/slog"

// Logger accepts slog-style alternating key/value fields.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
}

type nop struct{}

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Warn(string, ...any)  {}
func (nop) Error(string, ...any) {}

// Nop returns a logger that discards everything.
func Nop() Logger { return nop{} }

// Or returns l if non-nil, otherwise the nop logger. Components call this
// on injected options so a zero Options value stays usable.
func Or(l Logger) Logger {
	if l == nil {
		return nop{}
	}
	return l
}

type slogLogger struct{ l *slog.Logger }

func (s slogLogger) Debug(msg string, kv ...any) { s.l.Debug(msg, kv...) }
func (s slogLogger) Info(msg string, kv ...any)  { s.l.Info(msg, kv...) }
func (s slogLogger) Warn(msg string, kv ...any)  { s.l.Warn(msg, kv...) }
func (s slogLogger) Error(msg string, kv ...any) { s.l.Error(msg, kv...) }

// Slog adapts a *slog.Logger. A nil argument yields the default slog logger.
func Slog(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return slogLogger{l: l}
}
