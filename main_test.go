package drlogger

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dobrawek/drlogger/filesystem"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// lumberjack starts its mill goroutine lazily and never stops it
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("gopkg.in/natefinch/lumberjack%2ev2.(*Logger).millRun"),
		goleak.IgnoreAnyFunction("gopkg.in/natefinch/lumberjack.v2.(*Logger).millRun"),
	)
}

// syncBuffer is a goroutine-safe bytes.Buffer used to capture diagnostics
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// faultyFS wraps the OS filesystem and injects failures
type faultyFS struct {
	filesystem.OS

	mu          sync.Mutex
	failRename  bool
	renameCalls int
	failRemove  map[string]bool
	appendErr   error
	panicAppend bool
}

func (f *faultyFS) Rename(from, to string) error {
	f.mu.Lock()
	f.renameCalls++
	fail := f.failRename
	f.mu.Unlock()
	if fail {
		return os.ErrPermission
	}
	return f.OS.Rename(from, to)
}

func (f *faultyFS) Remove(path string) error {
	f.mu.Lock()
	fail := f.failRemove[filepath.Base(path)]
	f.mu.Unlock()
	if fail {
		return os.ErrPermission
	}
	return f.OS.Remove(path)
}

func (f *faultyFS) Append(path string, data []byte) error {
	f.mu.Lock()
	err, panics := f.appendErr, f.panicAppend
	f.mu.Unlock()
	if panics {
		panic("disk on fire")
	}
	if err != nil {
		return err
	}
	return f.OS.Append(path, data)
}

func (f *faultyFS) renames() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.renameCalls
}

// newTestListener creates a listener writing test-<date>.log files into a temp directory
func newTestListener(t *testing.T, opts ...DailyFileOption) (*DailyFileListener, string, *syncBuffer) {
	t.Helper()
	dir := t.TempDir()
	diag := &syncBuffer{}

	l := NewDailyFileListener(append([]DailyFileOption{WithDiagnostics(diag)}, opts...)...)
	l.SetNamePrefix("test-")
	require.NoError(t, l.SetPath(dir))
	return l, dir, diag
}

// createLogFile creates a file in dir whose modification time is daysAgo days in the past
func createLogFile(t *testing.T, dir, name string, daysAgo int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("test content\n"), 0644))
	modTime := time.Now().Add(-time.Duration(daysAgo) * 24 * time.Hour)
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

// listFiles returns the sorted names of regular files in dir
func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func countLines(s string) int {
	return strings.Count(s, "\n")
}

func infoRecord(tag, message string) Record {
	return Record{Time: time.Now(), Level: LevelInfo, Tag: tag, Message: message}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
