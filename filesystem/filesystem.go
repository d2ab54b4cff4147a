// FILE: dobrawek/drlogger/filesystem/filesystem.go
// Package filesystem provides the storage primitives used by the daily file
// listener: size probes, appends, renames, deletes, directory listing and
// single-segment directory creation.
package filesystem

import (
	"errors"
	"path/filepath"
	"time"
)

// ErrInvalidSize is returned when a size string cannot be parsed
var ErrInvalidSize = errors.New("filesystem: invalid size")

// FileInfo describes a regular file found by ListFiles
type FileInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// FileSystem is the set of operations the log sink needs from storage.
// Implementations must be safe for concurrent use.
type FileSystem interface {
	// Size returns the file size in bytes, or -1 if the file does not exist or cannot be read
	Size(path string) int64
	// Append creates the file if needed and appends data at its end
	Append(path string, data []byte) error
	// CanWrite reports whether path is writable, or for a missing path whether its parent directory is
	CanWrite(path string) bool
	// ListFiles returns regular files only; a missing directory yields an empty result
	ListFiles(dir string) ([]FileInfo, error)
	Remove(path string) error
	Rename(from, to string) error
	Join(dir, name string) string
	// Mkdir creates exactly one directory segment
	Mkdir(path string) error
	Exists(path string) bool
}

// MkdirAll creates path and every missing parent using single-segment Mkdir calls
func MkdirAll(fsys FileSystem, path string) error {
	if path == "" || fsys.Exists(path) {
		return nil
	}

	var missing []string
	for p := filepath.Clean(path); !fsys.Exists(p); {
		missing = append(missing, p)
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		p = parent
	}

	// Create from the outermost missing segment inwards
	for i := len(missing) - 1; i >= 0; i-- {
		if err := fsys.Mkdir(missing[i]); err != nil && !fsys.Exists(missing[i]) {
			return err
		}
	}
	return nil
}
