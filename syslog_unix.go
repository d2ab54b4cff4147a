//go:build !windows && !plan9

package drlogger

import (
	"context"
	"log/syslog"
	"sync"
)

// syslogWriter is the subset of *syslog.Writer used by SyslogListener
type syslogWriter interface {
	Crit(m string) error
	Err(m string) error
	Warning(m string) error
	Info(m string) error
	Debug(m string) error
	Close() error
}

// SyslogListener forwards records to the system syslog daemon
type SyslogListener struct {
	ident    string
	facility SyslogFacility
	network  string
	raddr    string
	filter   *Filter
	diag     *diagnostics

	mu     sync.Mutex
	writer syslogWriter
	dial   func() (syslogWriter, error)
}

// SyslogOption configures a SyslogListener
type SyslogOption func(*SyslogListener)

// WithSyslogAddress sends to a remote or non-default daemon instead of the local socket
func WithSyslogAddress(network, raddr string) SyslogOption {
	return func(s *SyslogListener) {
		s.network = network
		s.raddr = raddr
	}
}

// NewSyslogListener creates a listener that logs as ident with the given facility.
// The connection is opened on Start.
func NewSyslogListener(ident string, facility SyslogFacility, opts ...SyslogOption) (*SyslogListener, error) {
	if ident == "" {
		ident = "drlogger"
	}
	if !facility.valid() {
		return nil, fmtErrorf("invalid syslog facility: %d", int(facility))
	}

	s := &SyslogListener{
		ident:    ident,
		facility: facility,
		filter:   NewFilter(LevelTrace),
		diag:     newDiagnostics(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dial = func() (syslogWriter, error) {
		priority := syslog.Priority(int(s.facility)<<3) | syslog.LOG_INFO
		return syslog.Dial(s.network, s.raddr, priority, s.ident)
	}
	return s, nil
}

func (s *SyslogListener) Name() string {
	return SyslogListenerName
}

func (s *SyslogListener) Filter() *Filter {
	return s.filter
}

// Start opens the syslog connection
func (s *SyslogListener) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writer != nil {
		return nil
	}
	w, err := s.dial()
	if err != nil {
		return fmtErrorf("open syslog: %w", err)
	}
	s.writer = w
	return nil
}

// Stop closes the syslog connection
func (s *SyslogListener) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writer == nil {
		return nil
	}
	err := s.writer.Close()
	s.writer = nil
	return err
}

// WriteLog sends r with the priority matching its level
func (s *SyslogListener) WriteLog(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writer == nil {
		return
	}

	msg := syslogMessage(r)
	var err error
	switch r.Level {
	case LevelFatal:
		err = s.writer.Crit(msg)
	case LevelError:
		err = s.writer.Err(msg)
	case LevelWarn:
		err = s.writer.Warning(msg)
	case LevelInfo:
		err = s.writer.Info(msg)
	default:
		err = s.writer.Debug(msg)
	}
	if err != nil {
		s.diag.printf("CAN NOT WRITE: %s %s %s (%v)", r.Level, r.Tag, r.Message, err)
	}
}
