// FILE: storage.go
package drlogger

import (
	"regexp"
	"sort"
	"time"

	"github.com/dobrawek/drlogger/filesystem"
)

// Cleanup runs one retention pass over the log directory.
// Files matching <prefix><8 digits>[.<index>].log older than the age limit are
// removed, then the oldest remaining files beyond the count limit. Other files
// are never touched. Failures are reported as diagnostics and never returned.
func (d *DailyFileListener) Cleanup() {
	dir := d.Path()
	if dir == "" {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			d.diag.printf("Error during log cleanup: %v", errPanic(p))
		}
	}()

	if err := d.cleanupLocked(dir); err != nil {
		d.diag.printf("Error during log cleanup: %v", err)
		return
	}
	d.stats.Cleanups.Add(1)
}

func (d *DailyFileListener) cleanupLocked(dir string) error {
	pattern, err := retentionPattern(d.namePrefix)
	if err != nil {
		return err
	}

	entries, err := d.fs.ListFiles(dir)
	if err != nil {
		return err
	}

	var logs []filesystem.FileInfo
	for _, entry := range entries {
		if pattern.MatchString(entry.Name) {
			logs = append(logs, entry)
		}
	}
	if len(logs) == 0 {
		return nil
	}

	for _, name := range selectExpired(logs, d.now(), d.maxFileAgeDays, d.maxFileCount) {
		if err := d.fs.Remove(d.fs.Join(dir, name)); err != nil {
			d.stats.DeleteFailures.Add(1)
			d.diag.printf("Failed to delete log file %s: %v", name, err)
			continue
		}
		d.stats.Deletions.Add(1)
		d.diag.printf("Deleted old log file: %s", name)
	}
	return nil
}

// retentionPattern matches main and indexed daily files for prefix
func retentionPattern(prefix string) (*regexp.Regexp, error) {
	pattern, err := regexp.Compile(`^` + regexp.QuoteMeta(prefix) + `\d{8}(\.\d+)?\.log$`)
	if err != nil {
		return nil, fmtErrorf("compile retention pattern for prefix '%s': %w", prefix, err)
	}
	return pattern, nil
}

// selectExpired returns the names to delete, oldest first: every file older
// than maxAgeDays, then the oldest survivors until at most maxCount remain.
// A negative maxCount keeps nothing.
func selectExpired(logs []filesystem.FileInfo, now time.Time, maxAgeDays, maxCount int) []string {
	sorted := make([]filesystem.FileInfo, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ModTime.Before(sorted[j].ModTime) })

	cutoff := now.Add(-time.Duration(maxAgeDays) * 24 * time.Hour)

	var expired []string
	remaining := sorted[:0:0]
	for _, f := range sorted {
		if f.ModTime.Before(cutoff) {
			expired = append(expired, f.Name)
		} else {
			remaining = append(remaining, f)
		}
	}

	if maxCount < 0 {
		maxCount = 0
	}
	if len(remaining) > maxCount {
		for _, f := range remaining[:len(remaining)-maxCount] {
			expired = append(expired, f.Name)
		}
	}
	return expired
}
