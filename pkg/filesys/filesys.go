// Package filesys holds the small filesystem helpers ignite needs around
// its database directory.
package filesys

import (
	"errors"
	"os"
)

var (
	ErrIsNotDir = errors.New("path isn't a directory")
)

// CreateDir ensures a directory exists at dirPath with the given
// permissions, creating any missing parents.
//
// If the path already exists:
//   - with force true, an existing directory is accepted as-is;
//   - with force false, an existing path is an error.
//
// An existing path that is a file rather than a directory is always an
// error.
func CreateDir(dirPath string, permission os.FileMode, force bool) error {
	stat, err := os.Stat(dirPath)
	if !force && err == nil {
		return os.ErrExist
	}
	if !force && !os.IsNotExist(err) {
		return err
	}
	if stat != nil && !stat.IsDir() {
		return ErrIsNotDir
	}

	if err := os.MkdirAll(dirPath, permission); err != nil {
		return err
	}

	// MkdirAll's mode is filtered through the process umask; chmod so the
	// directory ends up with exactly the requested permissions.
	return os.Chmod(dirPath, permission)
}
