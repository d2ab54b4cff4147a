package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	filePerm = 0644
	dirPerm  = 0755
)

// OS implements FileSystem on top of the host operating system
type OS struct{}

// Default is the shared OS file system
var Default FileSystem = OS{}

// Size returns the file size or -1 when the file is missing or unreadable
func (OS) Size(path string) int64 {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return -1
	}
	return info.Size()
}

// Append opens the file in append mode and writes data
func (OS) Append(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("filesystem: open %s: %w", path, err)
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("filesystem: write %s: %w", path, werr)
	}
	if cerr != nil {
		return fmt.Errorf("filesystem: close %s: %w", path, cerr)
	}
	return nil
}

// CanWrite reports whether path, or its parent directory when path is missing, accepts writes
func (OS) CanWrite(path string) bool {
	if path == "" {
		return false
	}
	if _, err := os.Stat(path); err == nil {
		return canWrite(path)
	}
	parent := filepath.Dir(path)
	info, err := os.Stat(parent)
	if err != nil || !info.IsDir() {
		return false
	}
	return canWrite(parent)
}

// ListFiles lists regular files in dir
func (OS) ListFiles(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		var pathErr *fs.PathError
		if errors.Is(err, fs.ErrNotExist) || (errors.As(err, &pathErr) && !isDir(dir)) {
			return nil, nil
		}
		return nil, fmt.Errorf("filesystem: read dir %s: %w", dir, err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info
			continue
		}
		files = append(files, FileInfo{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return files, nil
}

func (OS) Remove(path string) error {
	return os.Remove(path)
}

func (OS) Rename(from, to string) error {
	return os.Rename(from, to)
}

func (OS) Join(dir, name string) string {
	return filepath.Join(dir, name)
}

// Mkdir creates a single directory segment
func (OS) Mkdir(path string) error {
	return os.Mkdir(path, dirPerm)
}

func (OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
