package types

import (
	"log/slog"
	"time"
)

// Clock abstracts time for testability. The engine never reads the system
// clock directly; callers inject one.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the real system time (always UTC).
type RealClock struct{}

// Now returns the current time in UTC.
func (RealClock) Now() time.Time { return time.Now().UTC() }

// FixedClock is a Clock that always returns the same instant.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.T }

// Logger defines the structured logging interface used by components that
// should not depend on a concrete *slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	With(args ...any) Logger
}

// SlogLogger adapts *slog.Logger to Logger.
type SlogLogger struct {
	L *slog.Logger
}

// NewSlogLogger wraps l; a nil l uses slog.Default.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{L: l}
}

func (a *SlogLogger) Info(msg string, args ...any)  { a.L.Info(msg, args...) }
func (a *SlogLogger) Error(msg string, args ...any) { a.L.Error(msg, args...) }
func (a *SlogLogger) Warn(msg string, args ...any)  { a.L.Warn(msg, args...) }

// With returns a Logger carrying the extra attributes.
func (a *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{L: a.L.With(args...)}
}

var _ Logger = (*SlogLogger)(nil)
