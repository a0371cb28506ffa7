package files_utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CleanFolder_RemovesEntriesAndIgnoresMissingFolder(t *testing.T) {
	folder := t.TempDir()
	require.NoError(t, EnsureDirectories([]string{filepath.Join(folder, "nested", "deep")}))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "a.txt"), []byte("a"), 0o600))

	removed, err := CleanFolder(folder)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	entries, err := os.ReadDir(folder)
	require.NoError(t, err)
	assert.Empty(t, entries)

	removed, err = CleanFolder(filepath.Join(folder, "missing"))
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func Test_RemoveFileIfExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.bin")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))

	removed, err := RemoveFileIfExists(path)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = RemoveFileIfExists(path)
	require.NoError(t, err)
	assert.False(t, removed)
}
