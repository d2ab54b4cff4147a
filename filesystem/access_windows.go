//go:build windows

package filesystem

import (
	"os"
	"path/filepath"
)

// canWrite probes by opening the file for append, or creating and removing a
// temporary file when path is a directory
func canWrite(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
		if err != nil {
			return false
		}
		f.Close()
		return true
	}

	f, err := os.CreateTemp(path, ".drlogger-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(filepath.Clean(name))
	return true
}
