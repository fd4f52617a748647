package documents

import (
	"context"
	"time"
)

// Repo defines persistence operations for document metadata rows.
type Repo interface {
	// Insert stores a new record.
	Insert(ctx context.Context, doc Document) error

	// GetByID fetches a record regardless of its deletion state.
	GetByID(ctx context.Context, id string) (Document, error)

	// ListActive returns non-deleted records in creation order. An empty
	// result is an empty slice, not an error.
	ListActive(ctx context.Context) ([]Document, error)

	// SoftDelete stamps deleted_at and updated_at with the given time and
	// returns the updated record. Re-stamping an already-deleted record
	// succeeds. Returns ErrNotFound when no record has the id.
	SoftDelete(ctx context.Context, id string, at time.Time) (Document, error)

	// HardDelete removes the row. Returns ErrNotFound when no record has
	// the id.
	HardDelete(ctx context.Context, id string) error
}
