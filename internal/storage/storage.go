package storage

import (
	"context"
	"io"
	"path/filepath"
	"time"
)

// DefaultPresignedURLExpiry is used when a caller passes a non-positive expiry.
const DefaultPresignedURLExpiry = 15 * time.Minute

// Placement is where one document goes. Dir is absolute, RelPath is relative
// to the documents root with forward slashes and is what records reference.
type Placement struct {
	Dir      string
	FileName string
	RelPath  string
}

// Path is the absolute destination file path.
func (p Placement) Path() string {
	return filepath.Join(p.Dir, p.FileName)
}

// WriteResult describes bytes that were durably written.
type WriteResult struct {
	Size   int64
	Digest string // BLAKE3, hex
}

// Mirror copies stored documents to object storage and hands out temporary
// download links for them. Keys are document RelPaths.
type Mirror interface {
	PutObject(ctx context.Context, objectKey string, body io.Reader, size int64, contentType string) error
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}
