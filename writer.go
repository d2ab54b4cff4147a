// FILE: dobrawek/drlogger/writer.go
package drlogger

import (
	"context"
	"io"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// WriterListener writes records in the daily file line format to an io.Writer
type WriterListener struct {
	name   string
	filter *Filter
	diag   *diagnostics

	mu  sync.Mutex
	w   io.Writer
	buf []byte
}

// NewWriterListener creates a listener writing to w. Closing w on Stop is
// done when w implements io.Closer.
func NewWriterListener(name string, w io.Writer) *WriterListener {
	return &WriterListener{
		name:   name,
		filter: NewFilter(LevelTrace),
		diag:   newDiagnostics(nil),
		w:      w,
		buf:    make([]byte, 0, 256),
	}
}

func (wl *WriterListener) Name() string {
	return wl.name
}

func (wl *WriterListener) Filter() *Filter {
	return wl.filter
}

func (wl *WriterListener) Start(ctx context.Context) error {
	return nil
}

// Stop closes the underlying writer when it is an io.Closer
func (wl *WriterListener) Stop() error {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	if c, ok := wl.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// WriteLog writes one line; write errors and writer panics go to console diagnostics
func (wl *WriterListener) WriteLog(r Record) {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	defer func() {
		if p := recover(); p != nil {
			wl.diag.printf("CAN NOT WRITE: %s %s %s (%v)", r.Level, r.Tag, r.Message, errPanic(p))
		}
	}()

	if wl.w == nil {
		wl.diag.printf("CAN NOT WRITE: %s %s %s (no writer)", r.Level, r.Tag, r.Message)
		return
	}
	wl.buf = appendLine(wl.buf[:0], r, r.Tag)
	if _, err := wl.w.Write(wl.buf); err != nil {
		wl.diag.printf("CAN NOT WRITE: %s %s %s (%v)", r.Level, r.Tag, r.Message, err)
	}
}

// RollingConfig configures a size-rotated file writer
type RollingConfig struct {
	Filename   string
	MaxSizeMB  int // Megabytes before rotation
	MaxBackups int // Rotated files kept; 0 keeps all
	MaxAgeDays int // Days rotated files are kept; 0 keeps them regardless of age
	LocalTime  bool
}

// NewRollingWriter returns a size-rotated file writer for use with a
// WriterListener. Rotated files are never compressed.
func NewRollingWriter(cfg RollingConfig) (io.WriteCloser, error) {
	if cfg.Filename == "" {
		return nil, fmtErrorf("rolling writer filename cannot be empty")
	}
	if cfg.MaxSizeMB < 0 || cfg.MaxBackups < 0 || cfg.MaxAgeDays < 0 {
		return nil, fmtErrorf("rolling writer limits cannot be negative")
	}
	return &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		LocalTime:  cfg.LocalTime,
		Compress:   false,
	}, nil
}
