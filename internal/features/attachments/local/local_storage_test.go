package local_storage

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LocalStorage_SaveGetDelete(t *testing.T) {
	root := t.TempDir()
	storage := NewLocalStorage(filepath.Join(root, "data"), filepath.Join(root, "temp"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	content := []byte("attachment body")

	err := storage.SaveFile(
		context.Background(),
		logger,
		"task-1/file-1",
		bytes.NewReader(content),
		int64(len(content)),
		"text/plain",
	)
	require.NoError(t, err)

	reader, err := storage.GetFile(context.Background(), "task-1/file-1")
	require.NoError(t, err)
	stored, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	assert.Equal(t, content, stored)

	entries, err := os.ReadDir(filepath.Join(root, "temp"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, storage.DeleteFile(context.Background(), "task-1/file-1"))
	_, err = storage.GetFile(context.Background(), "task-1/file-1")
	assert.Error(t, err)

	assert.NoError(t, storage.DeleteFile(context.Background(), "task-1/file-1"))
}

func Test_LocalStorage_RejectsKeysOutsideDataFolder(t *testing.T) {
	root := t.TempDir()
	storage := NewLocalStorage(filepath.Join(root, "data"), filepath.Join(root, "temp"))

	_, err := storage.GetFile(context.Background(), "../secret")
	assert.Error(t, err)

	err = storage.SaveFile(
		context.Background(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		"/etc/passwd",
		bytes.NewReader(nil),
		0,
		"text/plain",
	)
	assert.Error(t, err)
}
