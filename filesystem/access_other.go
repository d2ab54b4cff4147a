//go:build !unix && !windows

package filesystem

import "os"

// canWrite falls back to the permission bits where no access check exists
func canWrite(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o200 != 0
}
