package memory

import (
	"context"
	"io"
	"sync"

	"github.com/karaksak1338/ChaosOrganizer/internal/shared/storage/blob"
)

// Store is an in-memory blob.Store for tests. PutErr and DeleteErr, when
// set, are returned by the corresponding operation to simulate an
// unavailable backend.
type Store struct {
	mu        sync.RWMutex
	objects   map[string][]byte
	types     map[string]string
	PutErr    error
	DeleteErr error
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

// Put stores the reader contents at path.
func (s *Store) Put(ctx context.Context, path string, r io.Reader, contentType string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.PutErr != nil {
		return 0, s.PutErr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[path]; ok {
		return 0, blob.ErrAlreadyExists
	}
	s.objects[path] = data
	s.types[path] = contentType
	return int64(len(data)), nil
}

// PublicURL derives a memory:// locator for a stored path.
func (s *Store) PublicURL(path string) string {
	return "memory://" + path
}

// Delete removes the blob at path. A missing blob is not an error.
func (s *Store) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.DeleteErr != nil {
		return s.DeleteErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, path)
	delete(s.types, path)
	return nil
}

// Get returns the stored bytes and whether the path is occupied.
func (s *Store) Get(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[path]
	return data, ok
}

// ContentType returns the content type recorded for a stored path.
func (s *Store) ContentType(path string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.types[path]
}

// Len reports the number of stored blobs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

var _ blob.Store = (*Store)(nil)
