package secrets

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/triplo-webui/internal/utils"
)

// WriteFileAtomic writes data to a temp file in the destination directory
// and renames it over path, so readers see either the old or the new file.
// The result is readable only by the owner.
func WriteFileAtomic(path string, data []byte) error {
	if err := utils.EnsureParentDir(path); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	restrictFilePermissions(tmp)
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}

	restrictPermissions(path)
	return nil
}

// restrictPermissions limits path to owner read/write. Failures are ignored:
// some filesystems do not support POSIX modes.
func restrictPermissions(path string) {
	_ = os.Chmod(path, 0600)
}

func restrictFilePermissions(f *os.File) {
	_ = f.Chmod(0600)
}
