package files_utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// CleanFolder removes everything inside folder and returns how many entries
// were removed. A missing folder is not an error.
func CleanFolder(folder string) (int, error) {
	entries, err := os.ReadDir(folder)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read directory %s: %w", folder, err)
	}

	for i, entry := range entries {
		itemPath := filepath.Join(folder, entry.Name())
		if err := os.RemoveAll(itemPath); err != nil {
			return i, fmt.Errorf("failed to remove %s: %w", itemPath, err)
		}
	}

	return len(entries), nil
}

// RemoveFileIfExists reports whether a file was removed.
func RemoveFileIfExists(path string) (bool, error) {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return true, nil
}
