// Package files holds small filesystem helpers shared across the project.
package files

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// DefaultFilePerm is the permission used for files created by WriteFileAtomic.
const DefaultFilePerm = os.FileMode(0644)

// DefaultDirCreationPerm is the permission used when creating parent directories.
const DefaultDirCreationPerm = os.FileMode(0755)

// Exists returns true if the given path exists (file or directory).
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteFileAtomic writes data to filePath such that a concurrent reader never
// observes a partially-written file: the data is first written to
// filePath+".tmp" and then moved into place with os.Rename, which is atomic on
// POSIX filesystems when source and destination share a volume.
//
// Parent directories are created as needed. On any error the temporary file is
// removed.
func WriteFileAtomic(filePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(filePath), DefaultDirCreationPerm); err != nil {
		return errors.Wrapf(err, "failed to create directory for file %q", filePath)
	}

	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, DefaultFilePerm); err != nil {
		return errors.Wrapf(err, "failed to write temporary file %q", tmpPath)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to move %q to %q", tmpPath, filePath)
	}
	return nil
}
