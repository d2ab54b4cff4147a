//go:build windows || plan9

package drlogger

import "context"

// SyslogListener is unavailable on this platform
type SyslogListener struct {
	filter *Filter
}

// SyslogOption configures a SyslogListener
type SyslogOption func(*SyslogListener)

// WithSyslogAddress is accepted for API compatibility
func WithSyslogAddress(network, raddr string) SyslogOption {
	return func(*SyslogListener) {}
}

// NewSyslogListener always fails: syslog is not available on this platform
func NewSyslogListener(ident string, facility SyslogFacility, opts ...SyslogOption) (*SyslogListener, error) {
	return nil, fmtErrorf("syslog is not supported on this platform")
}

func (s *SyslogListener) Name() string                    { return SyslogListenerName }
func (s *SyslogListener) Filter() *Filter                 { return s.filter }
func (s *SyslogListener) Start(ctx context.Context) error { return nil }
func (s *SyslogListener) Stop() error                     { return nil }
func (s *SyslogListener) WriteLog(r Record)               {}
