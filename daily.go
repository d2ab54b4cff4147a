// FILE: dobrawek/drlogger/daily.go
package drlogger

import (
	"context"
	"io"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dobrawek/drlogger/filesystem"
	"github.com/dobrawek/drlogger/sanitizer"
)

// DailyFileListener writes records to one file per day and bounds disk usage.
//
// Files are named <prefix><yyyyMMdd>.log. When a maximum file size is set the
// current file is rotated nginx-style: the main file always holds the newest
// lines and <prefix><yyyyMMdd>.<N>.log holds older content as N grows.
// Retention runs on Start and removes files older than the age limit and the
// oldest files beyond the count limit.
type DailyFileListener struct {
	name   string
	filter *Filter
	fs     filesystem.FileSystem
	diag   *diagnostics
	now    func() time.Time
	stats  Stats

	path              atomic.Pointer[string]
	rotationFailedFor atomic.Pointer[string]

	// mu serializes resolve, rotate and append, and covers whole retention passes
	mu             sync.Mutex
	namePrefix     string
	maxFileCount   int
	maxFileAgeDays int
	maxFileSize    *filesystem.Size
	tagSanitizer   *sanitizer.Sanitizer
	buf            []byte

	running   atomic.Bool
	schedMu   sync.Mutex
	scheduler *CleanupScheduler
}

// DailyFileOption configures a DailyFileListener
type DailyFileOption func(*DailyFileListener)

// WithFileSystem replaces the storage used by the listener
func WithFileSystem(fsys filesystem.FileSystem) DailyFileOption {
	return func(d *DailyFileListener) {
		if fsys != nil {
			d.fs = fsys
		}
	}
}

// WithDiagnostics redirects the listener's console diagnostics
func WithDiagnostics(w io.Writer) DailyFileOption {
	return func(d *DailyFileListener) {
		d.diag.setWriter(w)
	}
}

// WithTimeSource replaces the clock used for file dates and retention cutoffs
func WithTimeSource(now func() time.Time) DailyFileOption {
	return func(d *DailyFileListener) {
		if now != nil {
			d.now = now
		}
	}
}

// WithName sets the listener name, which is also the tag of its own records
func WithName(name string) DailyFileOption {
	return func(d *DailyFileListener) {
		if name != "" {
			d.name = name
		}
	}
}

// NewDailyFileListener creates a listener with default retention and no path.
// Until SetPath is called every write is a silent no-op.
func NewDailyFileListener(opts ...DailyFileOption) *DailyFileListener {
	d := &DailyFileListener{
		name:           DailyFileListenerName,
		filter:         NewFilter(LevelTrace),
		fs:             filesystem.Default,
		diag:           newDiagnostics(nil),
		now:            time.Now,
		maxFileCount:   DefaultMaxFileCount,
		maxFileAgeDays: DefaultMaxFileAgeDays,
		buf:            make([]byte, 0, 512),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *DailyFileListener) Name() string {
	return d.name
}

func (d *DailyFileListener) Filter() *Filter {
	return d.filter
}

// Stats exposes the listener counters
func (d *DailyFileListener) Stats() *Stats {
	return &d.stats
}

// Path returns the configured log directory, or "" when unset
func (d *DailyFileListener) Path() string {
	if p := d.path.Load(); p != nil {
		return *p
	}
	return ""
}

// SetPath sets the log directory and creates it when missing.
// The path is stored even when creation fails; writes stay no-ops while the
// directory is not writable. An empty path disables the listener.
func (d *DailyFileListener) SetPath(path string) error {
	if path == "" {
		d.path.Store(nil)
		return nil
	}
	err := filesystem.MkdirAll(d.fs, path)
	d.path.Store(&path)
	if err != nil {
		return fmtErrorf("create log directory '%s': %w", path, err)
	}
	return nil
}

func (d *DailyFileListener) NamePrefix() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.namePrefix
}

func (d *DailyFileListener) SetNamePrefix(prefix string) {
	d.mu.Lock()
	d.namePrefix = prefix
	d.mu.Unlock()
}

func (d *DailyFileListener) MaxFileCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maxFileCount
}

// SetMaxFileCount sets the retention cap. Values below zero behave like zero.
func (d *DailyFileListener) SetMaxFileCount(n int) {
	d.mu.Lock()
	d.maxFileCount = n
	d.mu.Unlock()
}

func (d *DailyFileListener) MaxFileAgeDays() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maxFileAgeDays
}

func (d *DailyFileListener) SetMaxFileAgeDays(days int) {
	d.mu.Lock()
	d.maxFileAgeDays = days
	d.mu.Unlock()
}

// MaxFileSize returns the rotation ceiling, or nil when size rotation is disabled
func (d *DailyFileListener) MaxFileSize() *filesystem.Size {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.maxFileSize == nil {
		return nil
	}
	size := *d.maxFileSize
	return &size
}

// SetMaxFileSize sets the rotation ceiling; nil disables size rotation
func (d *DailyFileListener) SetMaxFileSize(size *filesystem.Size) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if size == nil {
		d.maxFileSize = nil
		return
	}
	copied := *size
	d.maxFileSize = &copied
}

// SetSanitizeTags hex-encodes non-printable runes in tags before writing
func (d *DailyFileListener) SetSanitizeTags(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if enabled {
		d.tagSanitizer = sanitizer.New().Policy(sanitizer.PolicyTxt)
	} else {
		d.tagSanitizer = nil
	}
}

// Start runs one retention pass before returning, then starts the cleanup schedule if one is set
func (d *DailyFileListener) Start(ctx context.Context) error {
	d.Cleanup()

	d.schedMu.Lock()
	defer d.schedMu.Unlock()
	d.running.Store(true)
	if d.scheduler != nil {
		return d.scheduler.Start()
	}
	return nil
}

// Stop halts scheduled retention. Appends are synchronous, so nothing is flushed.
func (d *DailyFileListener) Stop() error {
	d.schedMu.Lock()
	defer d.schedMu.Unlock()
	d.running.Store(false)
	if d.scheduler != nil {
		d.scheduler.Stop()
	}
	return nil
}

// WriteLog appends one line for r. Failures are reported on the diagnostics
// channel and never returned.
func (d *DailyFileListener) WriteLog(r Record) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writeLocked(r)
}

func (d *DailyFileListener) writeLocked(r Record) {
	defer func() {
		if p := recover(); p != nil {
			d.stats.WriteFailures.Add(1)
			d.diag.printf("CAN NOT WRITE: %s %s %s (%v)", r.Level, r.Tag, r.Message, errPanic(p))
		}
	}()

	dir := d.Path()
	if dir == "" || !d.fs.CanWrite(dir) {
		return
	}

	// Resolve first: a failed rotation writes its own warning through here
	target, ok := d.resolveFilename(dir)
	if !ok {
		return
	}

	tag := r.Tag
	if d.tagSanitizer != nil {
		tag = d.tagSanitizer.Sanitize(tag)
	}
	d.buf = appendLine(d.buf[:0], r, tag)

	if err := d.fs.Append(target, d.buf); err != nil {
		d.stats.WriteFailures.Add(1)
		d.diag.printf("CAN NOT WRITE: %s %s %s (%v)", r.Level, r.Tag, r.Message, err)
		return
	}
	d.stats.Writes.Add(1)
}

// CurrentFile returns the path the next write would target without rotating
func (d *DailyFileListener) CurrentFile() string {
	dir := d.Path()
	if dir == "" {
		return ""
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fs.Join(dir, d.baseFilename(d.now())+logExtension)
}

func (d *DailyFileListener) baseFilename(t time.Time) string {
	return d.namePrefix + t.Format(dateLayout)
}

// resolveFilename returns the file the next append should target, rotating
// the main file first when it has reached the size ceiling. Callers hold mu.
func (d *DailyFileListener) resolveFilename(dir string) (string, bool) {
	if dir == "" {
		return "", false
	}

	baseFilename := d.baseFilename(d.now())
	mainPath := d.fs.Join(dir, baseFilename+logExtension)

	if d.maxFileSize == nil {
		return mainPath, true
	}

	// Rotation already failed for this file today
	if failed := d.rotationFailedFor.Load(); failed != nil && *failed == baseFilename {
		return mainPath, true
	}

	mainSize := d.fs.Size(mainPath)
	if mainSize < 0 || mainSize < d.maxFileSize.Bytes() {
		return mainPath, true
	}

	if !d.rotateFiles(dir, baseFilename) {
		d.stats.RotationFailures.Add(1)
		d.rotationFailedFor.Store(&baseFilename)
		d.writeLocked(Record{
			Time:    d.now(),
			Level:   LevelWarn,
			Tag:     d.name,
			Message: "File rotation failed for " + baseFilename + ", size limit will be exceeded",
		})
		return mainPath, true
	}
	d.stats.Rotations.Add(1)
	return mainPath, true
}

// rotateFiles shifts <base>.N.log to <base>.N+1.log from the highest index
// down, then renames <base>.log to <base>.1.log. Only the final rename
// decides the result.
func (d *DailyFileListener) rotateFiles(dir, baseFilename string) bool {
	highest := 0
	for d.fs.Size(d.indexedPath(dir, baseFilename, highest+1)) >= 0 {
		highest++
	}

	for i := highest; i >= 1; i-- {
		from := d.indexedPath(dir, baseFilename, i)
		to := d.indexedPath(dir, baseFilename, i+1)
		if err := d.fs.Rename(from, to); err != nil {
			d.diag.printf("Failed to shift rotated log file %s: %v", from, err)
		}
	}

	mainPath := d.fs.Join(dir, baseFilename+logExtension)
	if err := d.fs.Rename(mainPath, d.indexedPath(dir, baseFilename, 1)); err != nil {
		d.diag.printf("Failed to rotate log file %s: %v", mainPath, err)
		return false
	}
	return true
}

func (d *DailyFileListener) indexedPath(dir, baseFilename string, index int) string {
	return d.fs.Join(dir, baseFilename+"."+strconv.Itoa(index)+logExtension)
}
