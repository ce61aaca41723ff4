package storage

import (
	"context"
	"io"
	"time"
)

// StorageInterface abstracts where identification documents live. The local
// implementation keeps them on the server filesystem behind presigned-style
// URLs; a cloud backend can replace it without touching the services.
type StorageInterface interface {
	// GenerateUploadURL returns a one-time URL the client PUTs the
	// document to.
	GenerateUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	// GenerateDownloadURL returns a URL serving the stored document.
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// FileExists checks if a document exists and returns its size.
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a document from storage.
	DeleteFile(ctx context.Context, key string) error

	// SaveFile persists an uploaded document (used by the local HTTP
	// upload handler).
	SaveFile(key string, reader io.Reader) error

	// ReadFile opens a stored document for reading (used by the local
	// HTTP download handler).
	ReadFile(key string) (io.ReadCloser, error)
}
