// FILE: interface.go
package drlogger

import (
	"context"
	"regexp"
	"sync"
)

// Listener receives records dispatched by a Logger
type Listener interface {
	// Name identifies the listener inside a Logger
	Name() string
	// Filter returns the filter the Logger applies before calling WriteLog
	Filter() *Filter
	// Start prepares the listener; it is called once by Logger.Start or Logger.Add on a started logger
	Start(ctx context.Context) error
	Stop() error
	// WriteLog must not block for long and must never panic or return failures to the caller
	WriteLog(r Record)
}

// Filter decides which records a listener accepts
type Filter struct {
	mu           sync.RWMutex
	enabled      bool
	minLevel     Level
	tagRegex     *regexp.Regexp
	messageRegex *regexp.Regexp
}

// NewFilter returns an enabled filter accepting records at minLevel and above
func NewFilter(minLevel Level) *Filter {
	return &Filter{enabled: true, minLevel: minLevel}
}

// Accepts reports whether r passes the level, tag and message checks
func (f *Filter) Accepts(r Record) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if !f.enabled || r.Level < f.minLevel {
		return false
	}
	if f.tagRegex != nil && !f.tagRegex.MatchString(r.Tag) {
		return false
	}
	if f.messageRegex != nil && !f.messageRegex.MatchString(r.Message) {
		return false
	}
	return true
}

func (f *Filter) Enabled() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.enabled
}

func (f *Filter) SetEnabled(enabled bool) {
	f.mu.Lock()
	f.enabled = enabled
	f.mu.Unlock()
}

func (f *Filter) MinLevel() Level {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.minLevel
}

func (f *Filter) SetMinLevel(level Level) {
	f.mu.Lock()
	f.minLevel = level
	f.mu.Unlock()
}

// SetTagRegex restricts accepted records to tags matching expr. An empty expr removes the restriction.
func (f *Filter) SetTagRegex(expr string) error {
	re, err := compileOptional(expr)
	if err != nil {
		return fmtErrorf("invalid tag regex '%s': %w", expr, err)
	}
	f.mu.Lock()
	f.tagRegex = re
	f.mu.Unlock()
	return nil
}

// SetMessageRegex restricts accepted records to messages matching expr. An empty expr removes the restriction.
func (f *Filter) SetMessageRegex(expr string) error {
	re, err := compileOptional(expr)
	if err != nil {
		return fmtErrorf("invalid message regex '%s': %w", expr, err)
	}
	f.mu.Lock()
	f.messageRegex = re
	f.mu.Unlock()
	return nil
}

func compileOptional(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, nil
	}
	return regexp.Compile(expr)
}
