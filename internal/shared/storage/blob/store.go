package blob

import (
	"context"
	"errors"
	"io"
)

// ErrAlreadyExists is returned by Put when the target path is already occupied.
// Paths are allocated fresh per upload, so hitting this indicates an internal
// path collision, not a caller mistake.
var ErrAlreadyExists = errors.New("blob already exists")

// Store defines the contract for the binary half of a document: writing a
// blob to a generated path, deriving its public locator, and removing it.
type Store interface {
	// Put writes the reader contents at path with the given content type and
	// returns the number of bytes written. It never overwrites: an occupied
	// path yields ErrAlreadyExists.
	Put(ctx context.Context, path string, r io.Reader, contentType string) (int64, error)

	// PublicURL derives the publicly resolvable locator for a stored path.
	// It is a pure computation; locators are recomputed on every read rather
	// than persisted.
	PublicURL(path string) string

	// Delete removes the blob at path. A missing blob is not an error.
	Delete(ctx context.Context, path string) error
}
