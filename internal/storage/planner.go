package storage

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"interntrack/intern-track/internal/apperrors"
	"interntrack/intern-track/internal/domain"
)

var (
	unsafeSegmentChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	unsafeExtChars     = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// SanitizeSegment strips every character outside [A-Za-z0-9_-]. The result
// can never contain a separator, a dot or whitespace.
func SanitizeSegment(s string) string {
	return unsafeSegmentChars.ReplaceAllString(s, "")
}

func sanitizeExt(name string) string {
	ext := filepath.Ext(filepath.Base(name))
	if ext == "" {
		return ""
	}
	clean := unsafeExtChars.ReplaceAllString(ext[1:], "")
	if clean == "" {
		return ""
	}
	return "." + clean
}

// Planner computes destinations under a documents root:
// <root>/<batch>/<registerNumber>/<registerNumber>-<Kind><ext>.
// The same inputs always map to the same path, so a later upload for the
// same register number and kind replaces the earlier file.
type Planner struct {
	root string

	mkdirAll func(string, os.FileMode) error
	stat     func(string) (os.FileInfo, error)
}

// NewPlanner resolves root to an absolute path and creates it.
func NewPlanner(root string) (*Planner, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve documents root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create documents root %s: %w", abs, err)
	}
	return &Planner{root: abs, mkdirAll: os.MkdirAll, stat: os.Stat}, nil
}

// Root returns the absolute documents root.
func (p *Planner) Root() string {
	return p.root
}

// Plan sanitizes batch and registerNumber independently and derives the
// destination. It touches nothing on disk.
func (p *Planner) Plan(batch, registerNumber string, kind domain.DocumentKind, originalName string) (Placement, error) {
	if strings.TrimSpace(batch) == "" || strings.TrimSpace(registerNumber) == "" {
		return Placement{}, apperrors.Validation("Batch and Register Number are required for folder creation")
	}
	safeBatch := SanitizeSegment(batch)
	safeRegNo := SanitizeSegment(registerNumber)
	if safeBatch == "" || safeRegNo == "" {
		return Placement{}, apperrors.Validation("Batch and Register Number must contain letters or digits")
	}
	if kind == "" {
		kind = domain.DocumentKindOther
	}

	fileName := fmt.Sprintf("%s-%s%s", safeRegNo, kind, sanitizeExt(originalName))
	dir := filepath.Join(p.root, safeBatch, safeRegNo)
	if !p.contains(dir) {
		return Placement{}, apperrors.Validation("invalid document location")
	}

	return Placement{
		Dir:      dir,
		FileName: fileName,
		RelPath:  path.Join(safeBatch, safeRegNo, fileName),
	}, nil
}

// Prepare creates the placement directory and its parents, then checks it
// really exists. A directory missing right after a successful create is a
// storage failure and is not retried.
func (p *Planner) Prepare(pl Placement) error {
	if !p.contains(pl.Dir) {
		return apperrors.Validation("invalid document location")
	}
	if err := p.mkdirAll(pl.Dir, 0o755); err != nil {
		return apperrors.Storage(fmt.Errorf("create directory %s: %w", pl.Dir, err))
	}
	info, err := p.stat(pl.Dir)
	if err != nil {
		return apperrors.Storage(fmt.Errorf("verify directory %s: %w", pl.Dir, err))
	}
	if !info.IsDir() {
		return apperrors.Storage(errors.New("failed to verify directory creation: " + pl.Dir))
	}
	return nil
}

// Resolve maps a stored relative path back to an absolute path inside the root.
func (p *Planner) Resolve(relPath string) (string, error) {
	abs := filepath.Join(p.root, filepath.FromSlash(relPath))
	if !p.contains(abs) {
		return "", apperrors.Validation("invalid document path")
	}
	return abs, nil
}

// contains reports whether target is strictly below the root.
func (p *Planner) contains(target string) bool {
	rel, err := filepath.Rel(p.root, filepath.Clean(target))
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
