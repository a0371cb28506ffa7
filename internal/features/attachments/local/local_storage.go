package local_storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	files_utils "picktask-backend/internal/util/files"

	"github.com/google/uuid"
)

const localChunkSize = 1024 * 1024

// LocalStorage writes attachments under DataFolder. Files are first written
// to TempFolder and renamed into place once complete.
type LocalStorage struct {
	DataFolder string
	TempFolder string
}

func NewLocalStorage(dataFolder, tempFolder string) *LocalStorage {
	return &LocalStorage{DataFolder: dataFolder, TempFolder: tempFolder}
}

func (l *LocalStorage) SaveFile(
	ctx context.Context,
	logger *slog.Logger,
	key string,
	file io.Reader,
	size int64,
	contentType string,
) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	finalPath, err := l.pathFor(key)
	if err != nil {
		return err
	}

	err = files_utils.EnsureDirectories([]string{l.TempFolder, filepath.Dir(finalPath)})
	if err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	tempFilePath := filepath.Join(l.TempFolder, uuid.NewString())
	tempFile, err := os.Create(tempFilePath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		_ = tempFile.Close()
		_ = os.Remove(tempFilePath)
	}()

	written, err := copyWithContext(ctx, tempFile, file)
	if err != nil {
		logger.Error("Failed to write attachment to temp file", "key", key, "error", err)
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err = tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	// closed before rename for Windows
	if err = tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err = os.Rename(tempFilePath, finalPath); err != nil {
		return fmt.Errorf("failed to move attachment into place: %w", err)
	}

	logger.Info("Attachment saved to local storage", "key", key, "bytes", written)

	return nil
}

func (l *LocalStorage) GetFile(ctx context.Context, key string) (io.ReadCloser, error) {
	filePath, err := l.pathFor(key)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", key)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

func (l *LocalStorage) DeleteFile(ctx context.Context, key string) error {
	filePath, err := l.pathFor(key)
	if err != nil {
		return err
	}

	if _, err := files_utils.RemoveFileIfExists(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

func (l *LocalStorage) pathFor(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == "." || filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("invalid object key: %s", key)
	}

	return filepath.Join(l.DataFolder, cleaned), nil
}

func copyWithContext(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, localChunkSize)
	var written int64

	for {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		nr, readErr := src.Read(buf)
		if nr > 0 {
			nw, writeErr := dst.Write(buf[:nr])
			written += int64(nw)
			if writeErr != nil {
				return written, writeErr
			}
			if nr != nw {
				return written, io.ErrShortWrite
			}
		}

		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}
