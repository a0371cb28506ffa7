package attachments

import (
	"context"
	"io"
	"log/slog"
)

// FileStorage keeps attachment bytes outside the database, addressed by
// object key.
type FileStorage interface {
	SaveFile(
		ctx context.Context,
		logger *slog.Logger,
		key string,
		file io.Reader,
		size int64,
		contentType string,
	) error

	GetFile(ctx context.Context, key string) (io.ReadCloser, error)

	DeleteFile(ctx context.Context, key string) error
}
