package documents

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used when no database is configured and
// as a collaborator fake in tests. Insertion order is preserved so that
// ListActive matches the creation-order contract.
type MemoryRepo struct {
	mu    sync.RWMutex
	docs  map[string]Document
	order []string

	// InsertErr, when set, is returned by Insert to simulate an unavailable
	// metadata table.
	InsertErr error
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{docs: make(map[string]Document)}
}

// Insert stores a new record.
func (r *MemoryRepo) Insert(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.InsertErr != nil {
		return r.InsertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[doc.ID]; !ok {
		r.order = append(r.order, doc.ID)
	}
	r.docs[doc.ID] = doc
	return nil
}

// GetByID fetches a record, including soft-deleted ones.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// ListActive returns non-deleted records in insertion order.
func (r *MemoryRepo) ListActive(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Document{}
	for _, id := range r.order {
		if doc, ok := r.docs[id]; ok && doc.Active() {
			out = append(out, doc)
		}
	}
	return out, nil
}

// SoftDelete stamps deleted_at/updated_at, re-stamping already-deleted rows.
func (r *MemoryRepo) SoftDelete(ctx context.Context, id string, at time.Time) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	stamp := at
	doc.DeletedAt = &stamp
	doc.UpdatedAt = at
	r.docs[id] = doc
	return doc, nil
}

// HardDelete removes the record.
func (r *MemoryRepo) HardDelete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	delete(r.docs, id)
	for i, ordered := range r.order {
		if ordered == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
