// internal/core/ports/storage.go
package ports

import (
	"context"
	"io"
	"time"
)

// ArchiveStorage stores generated ledger exports
type ArchiveStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
