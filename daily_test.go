// FILE: dobrawek/drlogger/daily_test.go
package drlogger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dobrawek/drlogger/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizePtr(s filesystem.Size) *filesystem.Size {
	return &s
}

func today() string {
	return time.Now().Format("20060102")
}

func TestDailyFileListenerCreatesFileOnWrite(t *testing.T) {
	l, dir, _ := newTestListener(t)

	l.WriteLog(infoRecord("TEST", "Test message"))

	files := listFiles(t, dir)
	require.Len(t, files, 1)
	assert.Equal(t, "test-"+today()+".log", files[0])
	assert.Contains(t, readFile(t, filepath.Join(dir, files[0])), "Test message")
	assert.Equal(t, uint64(1), l.Stats().Writes.Load())
}

func TestDailyFileListenerLineFormat(t *testing.T) {
	l, _, _ := newTestListener(t)

	ts := time.Date(2024, 3, 15, 10, 20, 30, 123_000_000, time.Local)
	l.WriteLog(Record{Time: ts, Level: LevelWarn, Tag: "net", Message: "connection reset"})
	l.WriteLog(Record{Time: ts, Level: LevelError, Tag: "db", Message: "query failed", Err: errors.New("timeout")})
	l.WriteLog(Record{Time: ts, Level: LevelInfo, Tag: "api", Message: "handled", TraceID: "abc123"})

	content := readFile(t, l.CurrentFile())
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "10:20:30.123 [WARN] net: connection reset", lines[0])
	assert.Equal(t, "10:20:30.123 [ERROR] db: query failed", lines[1])
	assert.Equal(t, "timeout", lines[2])
	assert.Equal(t, "10:20:30.123 [INFO] api: handled trace_id=abc123", lines[3])
}

func TestDailyFileListenerWithoutPath(t *testing.T) {
	diag := &syncBuffer{}
	l := NewDailyFileListener(WithDiagnostics(diag))

	assert.Equal(t, "", l.Path())
	assert.Equal(t, "", l.CurrentFile())

	l.WriteLog(infoRecord("TEST", "dropped"))
	l.Cleanup()

	assert.Empty(t, diag.String())
	assert.Zero(t, l.Stats().Writes.Load())
	assert.Zero(t, l.Stats().WriteFailures.Load())
}

func TestDailyFileListenerSetPath(t *testing.T) {
	t.Run("creates missing directories", func(t *testing.T) {
		nested := filepath.Join(t.TempDir(), "a", "b", "c")
		l := NewDailyFileListener(WithDiagnostics(&syncBuffer{}))

		require.NoError(t, l.SetPath(nested))
		assert.DirExists(t, nested)
		assert.Equal(t, nested, l.Path())

		l.WriteLog(infoRecord("TEST", "nested"))
		assert.FileExists(t, filepath.Join(nested, today()+".log"))
	})

	t.Run("stores path when creation fails", func(t *testing.T) {
		base := t.TempDir()
		blocker := filepath.Join(base, "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		diag := &syncBuffer{}
		l := NewDailyFileListener(WithDiagnostics(diag))
		target := filepath.Join(blocker, "logs")

		assert.Error(t, l.SetPath(target))
		assert.Equal(t, target, l.Path())

		// Not writable, so the record is silently dropped
		l.WriteLog(infoRecord("TEST", "dropped"))
		assert.Empty(t, diag.String())
	})

	t.Run("empty path disables writes", func(t *testing.T) {
		l, dir, _ := newTestListener(t)
		require.NoError(t, l.SetPath(""))
		l.WriteLog(infoRecord("TEST", "dropped"))
		assert.Empty(t, listFiles(t, dir))
	})
}

func TestDailyFileListenerRollsWhenMaxSizeExceeded(t *testing.T) {
	l, dir, _ := newTestListener(t)
	l.SetMaxFileSize(sizePtr(100))

	for i := 0; i < 10; i++ {
		l.WriteLog(infoRecord("TEST", fmt.Sprintf("Test log message number %d with some padding to make it longer", i)))
	}

	files := listFiles(t, dir)
	assert.GreaterOrEqual(t, len(files), 2, "size rolling should create at least 2 files")
	assert.Greater(t, l.Stats().Rotations.Load(), uint64(0))
}

func TestDailyFileListenerCreatesIndexedFilesInSequence(t *testing.T) {
	l, dir, _ := newTestListener(t)
	l.SetMaxFileSize(sizePtr(50))

	for i := 0; i < 20; i++ {
		l.WriteLog(infoRecord("TEST", fmt.Sprintf("Message %d", i)))
	}

	files := listFiles(t, dir)
	assert.GreaterOrEqual(t, len(files), 2)
	assert.Contains(t, files, "test-"+today()+".log", "main file should exist")
	assert.Contains(t, files, "test-"+today()+".1.log", "first indexed file should exist")

	// The main file always holds the newest line
	assert.Contains(t, readFile(t, filepath.Join(dir, "test-"+today()+".log")), "Message 19")
}

func TestDailyFileListenerRotationOrder(t *testing.T) {
	l, dir, _ := newTestListener(t)
	l.SetMaxFileSize(sizePtr(1))

	for i := 1; i <= 3; i++ {
		l.WriteLog(infoRecord("TEST", fmt.Sprintf("msg-%d", i)))
	}

	base := filepath.Join(dir, "test-"+today())
	assert.Equal(t, []string{
		"test-" + today() + ".1.log",
		"test-" + today() + ".2.log",
		"test-" + today() + ".log",
	}, listFiles(t, dir))

	assert.Contains(t, readFile(t, base+".log"), "msg-3")
	assert.Contains(t, readFile(t, base+".1.log"), "msg-2")
	assert.Contains(t, readFile(t, base+".2.log"), "msg-1")
	assert.Equal(t, uint64(2), l.Stats().Rotations.Load())
}

func TestDailyFileListenerRotationFillsGaps(t *testing.T) {
	l, dir, _ := newTestListener(t)
	l.SetMaxFileSize(sizePtr(1))

	base := filepath.Join(dir, "test-"+today())
	require.NoError(t, os.WriteFile(base+".log", []byte("main\n"), 0644))
	require.NoError(t, os.WriteFile(base+".1.log", []byte("one\n"), 0644))
	// .2 is missing, so .3 is beyond the probe and left alone
	require.NoError(t, os.WriteFile(base+".3.log", []byte("three\n"), 0644))

	l.WriteLog(infoRecord("TEST", "newest"))

	assert.Equal(t, "one\n", readFile(t, base+".2.log"))
	assert.Equal(t, "main\n", readFile(t, base+".1.log"))
	assert.Equal(t, "three\n", readFile(t, base+".3.log"))
	assert.Contains(t, readFile(t, base+".log"), "newest")
}

func TestDailyFileListenerNoRollingWithoutMaxSize(t *testing.T) {
	l, dir, _ := newTestListener(t)
	require.Nil(t, l.MaxFileSize())

	for i := 0; i < 50; i++ {
		l.WriteLog(infoRecord("TEST", fmt.Sprintf("Message %d with some additional text to make it longer", i)))
	}

	files := listFiles(t, dir)
	require.Len(t, files, 1, "size rolling disabled should keep a single file")
	assert.Equal(t, 50, countLines(readFile(t, filepath.Join(dir, files[0]))))
}

func TestDailyFileListenerRotationFailure(t *testing.T) {
	current := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	fsys := &faultyFS{failRename: true}
	l, dir, diag := newTestListener(t, WithFileSystem(fsys), WithTimeSource(func() time.Time { return current }))
	l.SetMaxFileSize(sizePtr(1))

	for i := 0; i < 5; i++ {
		l.WriteLog(Record{Time: current, Level: LevelInfo, Tag: "TEST", Message: fmt.Sprintf("day one %d", i)})
	}

	// One attempt, one warning, then the file keeps growing
	assert.Equal(t, 1, fsys.renames())
	mainFile := filepath.Join(dir, "test-20240315.log")
	content := readFile(t, mainFile)
	assert.Equal(t, 1, strings.Count(content, "[WARN] DailyFileListener: File rotation failed for test-20240315, size limit will be exceeded"))
	assert.Equal(t, 6, countLines(content))
	assert.Contains(t, diag.String(), "Failed to rotate log file")
	assert.Equal(t, uint64(1), l.Stats().RotationFailures.Load())

	// The suppression is bound to the day's file
	current = current.Add(24 * time.Hour)
	l.WriteLog(Record{Time: current, Level: LevelInfo, Tag: "TEST", Message: "day two 0"})
	assert.Equal(t, 1, fsys.renames(), "a new file below the limit is not rotated")
	l.WriteLog(Record{Time: current, Level: LevelInfo, Tag: "TEST", Message: "day two 1"})
	assert.Equal(t, 2, fsys.renames())

	next := readFile(t, filepath.Join(dir, "test-20240316.log"))
	assert.Contains(t, next, "File rotation failed for test-20240316")
	assert.Equal(t, uint64(2), l.Stats().RotationFailures.Load())
}

func TestDailyFileListenerWriteFailure(t *testing.T) {
	t.Run("append error", func(t *testing.T) {
		fsys := &faultyFS{appendErr: errors.New("disk full")}
		l, _, diag := newTestListener(t, WithFileSystem(fsys))

		assert.NotPanics(t, func() {
			l.WriteLog(Record{Time: time.Now(), Level: LevelError, Tag: "db", Message: "lost"})
		})
		assert.Contains(t, diag.String(), "CAN NOT WRITE: ERROR db lost (disk full)")
		assert.Equal(t, uint64(1), l.Stats().WriteFailures.Load())
	})

	t.Run("panic is recovered", func(t *testing.T) {
		fsys := &faultyFS{panicAppend: true}
		l, _, diag := newTestListener(t, WithFileSystem(fsys))

		assert.NotPanics(t, func() {
			l.WriteLog(infoRecord("api", "boom"))
		})
		assert.Contains(t, diag.String(), "CAN NOT WRITE: INFO api boom")
		assert.Contains(t, diag.String(), "disk on fire")
	})
}

func TestDailyFileListenerSanitizeTags(t *testing.T) {
	l, _, _ := newTestListener(t)
	l.SetSanitizeTags(true)

	l.WriteLog(infoRecord("bad\x00tag", "hello"))
	assert.Contains(t, readFile(t, l.CurrentFile()), "[INFO] bad<00>tag: hello")
}

func TestDailyFileListenerCurrentFile(t *testing.T) {
	current := time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)
	l, dir, _ := newTestListener(t, WithTimeSource(func() time.Time { return current }))

	assert.Equal(t, filepath.Join(dir, "test-20250102.log"), l.CurrentFile())
	l.SetNamePrefix("")
	assert.Equal(t, filepath.Join(dir, "20250102.log"), l.CurrentFile())
}

func TestDailyFileListenerSettings(t *testing.T) {
	l := NewDailyFileListener()

	assert.Equal(t, DailyFileListenerName, l.Name())
	assert.Equal(t, DefaultMaxFileCount, l.MaxFileCount())
	assert.Equal(t, DefaultMaxFileAgeDays, l.MaxFileAgeDays())
	assert.Nil(t, l.MaxFileSize())

	l.SetMaxFileCount(5)
	l.SetMaxFileAgeDays(2)
	size := filesystem.Size(10 * filesystem.MB)
	l.SetMaxFileSize(&size)

	// The listener keeps its own copy
	size = 1
	assert.Equal(t, 5, l.MaxFileCount())
	assert.Equal(t, 2, l.MaxFileAgeDays())
	require.NotNil(t, l.MaxFileSize())
	assert.Equal(t, filesystem.Size(10*filesystem.MB), *l.MaxFileSize())

	l.SetMaxFileSize(nil)
	assert.Nil(t, l.MaxFileSize())

	named := NewDailyFileListener(WithName("audit"))
	assert.Equal(t, "audit", named.Name())
}

func TestDailyFileListenerConcurrentWrites(t *testing.T) {
	l, dir, _ := newTestListener(t)
	l.SetMaxFileSize(sizePtr(1024))

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				l.WriteLog(infoRecord("worker", fmt.Sprintf("w%d-%d", w, i)))
			}
		}(w)
	}
	wg.Wait()

	total := 0
	for _, name := range listFiles(t, dir) {
		total += countLines(readFile(t, filepath.Join(dir, name)))
	}
	assert.Equal(t, workers*perWorker, total, "no line is lost or split across rotations")
	assert.Equal(t, uint64(workers*perWorker), l.Stats().Writes.Load())
}
