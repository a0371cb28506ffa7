package files_utils

import (
	"fmt"
	"os"
)

const directoryPermissions = 0o755

// EnsureDirectories creates every missing directory, parents included.
func EnsureDirectories(directories []string) error {
	for _, directory := range directories {
		if directory == "" {
			continue
		}

		if err := os.MkdirAll(directory, directoryPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", directory, err)
		}
	}

	return nil
}
