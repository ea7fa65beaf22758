package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading ~ to the user's home directory. Everything
// else, including '$', is taken literally.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return path
}

// EnsureParentDir creates the parent directory of path with 0700 permissions
// if it does not exist yet.
func EnsureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0700)
}
