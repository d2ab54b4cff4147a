// FILE: dobrawek/drlogger/logger.go
package drlogger

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Logger dispatches records to its registered listeners.
// A Logger is created explicitly and passed to the code that logs through it.
type Logger struct {
	mu        sync.RWMutex
	listeners []Listener
	started   atomic.Bool
	now       func() time.Time
}

// Option configures a Logger
type Option func(*Logger)

// WithListeners registers listeners at construction time
func WithListeners(listeners ...Listener) Option {
	return func(l *Logger) {
		l.listeners = append(l.listeners, listeners...)
	}
}

// WithClock replaces the time source used to stamp records
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// New creates a Logger
func New(opts ...Option) *Logger {
	l := &Logger{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add registers a listener. On a started logger the listener is started immediately.
func (l *Logger) Add(listener Listener) error {
	if listener == nil {
		return fmtErrorf("listener cannot be nil")
	}

	l.mu.Lock()
	for _, existing := range l.listeners {
		if existing.Name() == listener.Name() {
			l.mu.Unlock()
			return fmtErrorf("listener '%s' already registered", listener.Name())
		}
	}
	l.listeners = append(l.listeners, listener)
	l.mu.Unlock()

	if l.started.Load() {
		return listener.Start(context.Background())
	}
	return nil
}

// Remove stops and unregisters the listener with the given name
func (l *Logger) Remove(name string) bool {
	l.mu.Lock()
	var removed Listener
	for i, existing := range l.listeners {
		if existing.Name() == name {
			removed = existing
			l.listeners = append(l.listeners[:i:i], l.listeners[i+1:]...)
			break
		}
	}
	l.mu.Unlock()

	if removed == nil {
		return false
	}
	if l.started.Load() {
		_ = removed.Stop()
	}
	return true
}

// Listeners returns a copy of the registered listeners
func (l *Logger) Listeners() []Listener {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Listener, len(l.listeners))
	copy(out, l.listeners)
	return out
}

// Start starts every registered listener. Daily file listeners run retention before returning.
func (l *Logger) Start(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return nil
	}

	var err error
	for _, listener := range l.Listeners() {
		if startErr := listener.Start(ctx); startErr != nil {
			err = combineErrors(err, fmtErrorf("start listener '%s': %w", listener.Name(), startErr))
		}
	}
	return err
}

// Stop stops every registered listener
func (l *Logger) Stop() error {
	if !l.started.CompareAndSwap(true, false) {
		return nil
	}

	var err error
	for _, listener := range l.Listeners() {
		if stopErr := listener.Stop(); stopErr != nil {
			err = combineErrors(err, fmtErrorf("stop listener '%s': %w", listener.Name(), stopErr))
		}
	}
	return err
}

// Log dispatches one record to every listener whose filter accepts it
func (l *Logger) Log(level Level, tag, message string, err error) {
	l.dispatch(Record{
		Time:    l.now(),
		Level:   level,
		Tag:     tag,
		Message: message,
		Err:     err,
	})
}

// LogContext is Log with the trace id of the span in ctx attached to the record
func (l *Logger) LogContext(ctx context.Context, level Level, tag, message string, err error) {
	l.dispatch(Record{
		Time:    l.now(),
		Level:   level,
		Tag:     tag,
		Message: message,
		Err:     err,
		TraceID: traceIDFromContext(ctx),
	})
}

// Trace logs a message at trace level
func (l *Logger) Trace(tag, message string, args ...any) {
	l.logArgs(LevelTrace, tag, message, args)
}

// Debug logs a message at debug level
func (l *Logger) Debug(tag, message string, args ...any) {
	l.logArgs(LevelDebug, tag, message, args)
}

// Info logs a message at info level
func (l *Logger) Info(tag, message string, args ...any) {
	l.logArgs(LevelInfo, tag, message, args)
}

// Warn logs a message at warning level
func (l *Logger) Warn(tag, message string, args ...any) {
	l.logArgs(LevelWarn, tag, message, args)
}

// Error logs a message at error level
func (l *Logger) Error(tag, message string, args ...any) {
	l.logArgs(LevelError, tag, message, args)
}

// Fatal logs a message at fatal level. It does not terminate the process.
func (l *Logger) Fatal(tag, message string, args ...any) {
	l.logArgs(LevelFatal, tag, message, args)
}

func (l *Logger) logArgs(level Level, tag, message string, args []any) {
	msg, err := formatMessage(message, args)
	l.Log(level, tag, msg, err)
}

func (l *Logger) dispatch(r Record) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, listener := range l.listeners {
		if listener.Filter().Accepts(r) {
			listener.WriteLog(r)
		}
	}
}

// traceIDFromContext returns the trace id of the span in ctx, or "" when there is none
func traceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
