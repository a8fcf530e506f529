package storage

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"interntrack/intern-track/internal/apperrors"
	"interntrack/intern-track/internal/logger"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

// LocalDocumentStore writes documents under a Planner's root.
type LocalDocumentStore struct {
	*Planner
	maxSize int64
}

func NewLocalDocumentStore(planner *Planner, maxSize int64) *LocalDocumentStore {
	return &LocalDocumentStore{Planner: planner, maxSize: maxSize}
}

// MaxSize is the largest document accepted, in bytes.
func (s *LocalDocumentStore) MaxSize() int64 {
	return s.maxSize
}

// Write streams r into pl exactly once. Bytes land in a uniquely named temp
// file in the same directory and are renamed into place only after the
// whole body was read, so the final path never holds a partial document.
// A body longer than MaxSize is a validation failure.
func (s *LocalDocumentStore) Write(ctx context.Context, pl Placement, r io.Reader) (WriteResult, error) {
	tmpPath := filepath.Join(pl.Dir, ".upload-"+uuid.NewString()+".tmp")
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return WriteResult{}, apperrors.Storage(fmt.Errorf("create temp file: %w", err))
	}

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
				logger.Warn().Err(rmErr).Str("path", tmpPath).Msg("Failed to remove partial upload")
			}
		}
	}()

	hasher := blake3.New()
	limit := s.maxSize
	if limit <= 0 {
		limit = 1<<63 - 1
	} else {
		limit++
	}
	n, err := io.Copy(io.MultiWriter(tmp, hasher), io.LimitReader(&contextReader{ctx: ctx, r: r}, limit))
	if err != nil {
		if ctx.Err() != nil {
			return WriteResult{}, ctx.Err()
		}
		return WriteResult{}, apperrors.Storage(fmt.Errorf("write document: %w", err))
	}
	if s.maxSize > 0 && n > s.maxSize {
		return WriteResult{}, apperrors.Validation(fmt.Sprintf("File too large (max %d bytes)", s.maxSize))
	}

	if err := tmp.Sync(); err != nil {
		return WriteResult{}, apperrors.Storage(fmt.Errorf("sync document: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return WriteResult{}, apperrors.Storage(fmt.Errorf("close document: %w", err))
	}
	if err := os.Rename(tmpPath, pl.Path()); err != nil {
		return WriteResult{}, apperrors.Storage(fmt.Errorf("move document into place: %w", err))
	}
	committed = true

	return WriteResult{Size: n, Digest: hex.EncodeToString(hasher.Sum(nil))}, nil
}

// Open opens a stored document by its relative path.
func (s *LocalDocumentStore) Open(relPath string) (*os.File, error) {
	abs, err := s.Resolve(relPath)
	if err != nil {
		return nil, err
	}
	return os.Open(abs)
}

// contextReader stops a copy once the request is cancelled.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
