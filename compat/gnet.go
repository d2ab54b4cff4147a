package compat

import (
	"fmt"
	"os"

	"github.com/dobrawek/drlogger"
	"github.com/panjf2000/gnet/v2/pkg/logging"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter wraps drlogger.Logger to implement the gnet logging.Logger interface
type GnetAdapter struct {
	logger       *drlogger.Logger
	tag          string
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *drlogger.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		tag:    "gnet",
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// WithGnetTag sets the tag attached to every record
func WithGnetTag(tag string) GnetOption {
	return func(a *GnetAdapter) {
		a.tag = tag
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logger.Log(drlogger.LevelDebug, a.tag, fmt.Sprintf(format, args...), nil)
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logger.Log(drlogger.LevelInfo, a.tag, fmt.Sprintf(format, args...), nil)
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logger.Log(drlogger.LevelWarn, a.tag, fmt.Sprintf(format, args...), nil)
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logger.Log(drlogger.LevelError, a.tag, fmt.Sprintf(format, args...), nil)
}

// Fatalf logs at fatal level and triggers the fatal handler.
// Writes are synchronous, so the record is on disk before the handler runs.
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Log(drlogger.LevelFatal, a.tag, msg, nil)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
