package drlogger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// diagnostics is the console side channel for failures that are never
// returned to the caller: failed writes, failed rotations and cleanup results.
type diagnostics struct {
	mu      sync.Mutex
	w       io.Writer
	enabled atomic.Bool
}

func newDiagnostics(w io.Writer) *diagnostics {
	if w == nil {
		w = os.Stderr
	}
	d := &diagnostics{w: w}
	d.enabled.Store(true)
	return d
}

// printf writes one prefixed line
func (d *diagnostics) printf(format string, args ...any) {
	if d == nil || !d.enabled.Load() {
		return
	}
	msg := fmt.Sprintf(format, args...)

	d.mu.Lock()
	defer d.mu.Unlock()
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	fmt.Fprint(d.w, diagnosticPrefix+msg)
}

func (d *diagnostics) setWriter(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	d.mu.Lock()
	d.w = w
	d.mu.Unlock()
}
