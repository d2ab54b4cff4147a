// FILE: dobrawek/drlogger/filesystem/filesystem_test.go
package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingFS records Mkdir calls so composition can be checked
type recordingFS struct {
	OS
	mkdirs  []string
	failDir string
}

func (r *recordingFS) Mkdir(path string) error {
	r.mkdirs = append(r.mkdirs, path)
	if path == r.failDir {
		return errors.New("mkdir refused")
	}
	return r.OS.Mkdir(path)
}

func TestOSSize(t *testing.T) {
	dir := t.TempDir()
	fsys := OS{}

	assert.Equal(t, int64(-1), fsys.Size(filepath.Join(dir, "missing.log")))
	assert.Equal(t, int64(-1), fsys.Size(dir), "directories report as missing files")

	path := filepath.Join(dir, "app.log")
	require.NoError(t, fsys.Append(path, []byte("hello")))
	assert.Equal(t, int64(5), fsys.Size(path))
}

func TestOSAppend(t *testing.T) {
	dir := t.TempDir()
	fsys := OS{}
	path := filepath.Join(dir, "app.log")

	require.NoError(t, fsys.Append(path, []byte("line 1\n")))
	require.NoError(t, fsys.Append(path, []byte("line 2\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line 1\nline 2\n", string(data))

	err = fsys.Append(filepath.Join(dir, "no", "such", "dir.log"), []byte("x"))
	assert.Error(t, err)
}

func TestOSListFiles(t *testing.T) {
	dir := t.TempDir()
	fsys := OS{}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.log"), []byte("aa"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.log"), []byte("b"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	files, err := fsys.ListFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2, "subdirectories must be skipped")

	sizes := map[string]int64{}
	for _, f := range files {
		sizes[f.Name] = f.Size
		assert.False(t, f.ModTime.IsZero())
	}
	assert.Equal(t, map[string]int64{"a.log": 2, "b.log": 1}, sizes)

	t.Run("missing directory", func(t *testing.T) {
		files, err := fsys.ListFiles(filepath.Join(dir, "nope"))
		assert.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("path is a file", func(t *testing.T) {
		files, err := fsys.ListFiles(filepath.Join(dir, "a.log"))
		assert.NoError(t, err)
		assert.Empty(t, files)
	})
}

func TestOSCanWrite(t *testing.T) {
	dir := t.TempDir()
	fsys := OS{}

	assert.True(t, fsys.CanWrite(dir))
	assert.True(t, fsys.CanWrite(filepath.Join(dir, "new.log")), "missing file in writable dir")
	assert.False(t, fsys.CanWrite(filepath.Join(dir, "missing", "new.log")), "missing parent")
	assert.False(t, fsys.CanWrite(""))
}

func TestOSRenameRemoveExists(t *testing.T) {
	dir := t.TempDir()
	fsys := OS{}
	from := fsys.Join(dir, "a.log")
	to := fsys.Join(dir, "a.1.log")

	require.NoError(t, fsys.Append(from, []byte("x")))
	require.NoError(t, fsys.Rename(from, to))
	assert.False(t, fsys.Exists(from))
	assert.True(t, fsys.Exists(to))

	require.NoError(t, fsys.Remove(to))
	assert.False(t, fsys.Exists(to))
	assert.Error(t, fsys.Remove(to))
}

func TestMkdirAll(t *testing.T) {
	t.Run("creates every missing segment", func(t *testing.T) {
		base := t.TempDir()
		fsys := &recordingFS{}
		target := filepath.Join(base, "a", "b", "c")

		require.NoError(t, MkdirAll(fsys, target))
		assert.DirExists(t, target)
		assert.Equal(t, []string{
			filepath.Join(base, "a"),
			filepath.Join(base, "a", "b"),
			target,
		}, fsys.mkdirs)
	})

	t.Run("existing path is a no-op", func(t *testing.T) {
		base := t.TempDir()
		fsys := &recordingFS{}
		require.NoError(t, MkdirAll(fsys, base))
		assert.Empty(t, fsys.mkdirs)
	})

	t.Run("stops at first failure", func(t *testing.T) {
		base := t.TempDir()
		failing := filepath.Join(base, "a", "b")
		fsys := &recordingFS{failDir: failing}

		err := MkdirAll(fsys, filepath.Join(failing, "c"))
		assert.Error(t, err)
		assert.DirExists(t, filepath.Join(base, "a"))
		assert.NoDirExists(t, failing)
	})
}
