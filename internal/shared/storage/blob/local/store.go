package local

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/karaksak1338/ChaosOrganizer/internal/shared/storage/blob"
)

// Store implements blob.Store using the local filesystem.
type Store struct {
	baseDir       string
	publicBaseURL string
}

// New creates a local blob store rooted at baseDir. publicBaseURL is the
// prefix from which stored paths are served (dev setups typically point a
// static file route at baseDir).
func New(baseDir, publicBaseURL string) *Store {
	return &Store{
		baseDir:       baseDir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Put writes the reader contents at path. O_EXCL gives the no-overwrite
// guarantee: an occupied path yields blob.ErrAlreadyExists.
func (s *Store) Put(ctx context.Context, path string, r io.Reader, contentType string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	clean, err := cleanPath(path)
	if err != nil {
		return 0, err
	}

	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return 0, fmt.Errorf("mkdir: %w", err)
	}

	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return 0, blob.ErrAlreadyExists
		}
		return 0, fmt.Errorf("open file: %w", err)
	}

	written, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(fullPath)
		return 0, fmt.Errorf("write body: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close file: %w", err)
	}
	_ = contentType // the filesystem carries no content type
	return written, nil
}

// PublicURL derives the public locator for a stored path.
func (s *Store) PublicURL(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return s.publicBaseURL + "/" + strings.Join(parts, "/")
}

// Delete removes the blob at path. A missing file is not an error.
func (s *Store) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, err := cleanPath(path)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(clean))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func cleanPath(path string) (string, error) {
	clean := filepath.ToSlash(filepath.Clean(path))
	if clean == "." || strings.HasPrefix(clean, "..") || strings.HasPrefix(clean, "/") {
		return "", fmt.Errorf("invalid storage path")
	}
	return clean, nil
}

var _ blob.Store = (*Store)(nil)
