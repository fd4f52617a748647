package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/karaksak1338/ChaosOrganizer/internal/shared/metrics"
	"github.com/karaksak1338/ChaosOrganizer/internal/shared/storage/blob"
	"github.com/karaksak1338/ChaosOrganizer/internal/shared/telemetry"
	"github.com/karaksak1338/ChaosOrganizer/internal/shared/util"
)

const defaultContentType = "application/octet-stream"

// Service coordinates the document lifecycle across the two backing
// resources. Within one call the blob write is strictly sequenced before
// the metadata write (create) and the blob removal before the row removal
// (hard delete); there is no cross-request ordering and no distributed
// transaction. Collaborator failures propagate to the caller, except for
// best-effort cleanup whose failure is logged but never overrides the
// primary outcome.
type Service struct {
	Blob     blob.Store
	Repo     Repo
	Identity IdentityResolver
}

// Create uploads the file to the blob store and records its metadata row.
// The blob write happens first; if the insert then fails, the just-written
// blob is compensated away so the caller never observes a half-created
// document.
func (s *Service) Create(ctx context.Context, token, fileName, contentType string, r io.Reader) (Document, error) {
	cleanName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if contentType == "" {
		contentType = defaultContentType
	}

	userID := s.Identity.Resolve(token)
	storagePath := AllocatePath(userID, cleanName)

	size, err := s.Blob.Put(ctx, storagePath, r, contentType)
	if err != nil {
		metrics.IncUploadFailed()
		if errors.Is(err, blob.ErrAlreadyExists) {
			// Paths are freshly generated, so an occupied one means the
			// allocator's uniqueness assumption broke.
			telemetry.Error("document.path_collision", map[string]any{
				"user_id":      userID,
				"storage_path": storagePath,
			})
			return Document{}, fmt.Errorf("storage path collision at %s: %w", storagePath, err)
		}
		return Document{}, fmt.Errorf("write blob: %w", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	doc := Document{
		ID:          uuid.NewString(),
		UserID:      userID,
		FileName:    cleanName,
		StoragePath: storagePath,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Repo.Insert(ctx, doc); err != nil {
		metrics.IncUploadFailed()
		s.compensatePut(ctx, doc)
		return Document{}, fmt.Errorf("insert document metadata: %w", err)
	}

	metrics.IncUpload(size)
	doc.FileURL = s.Blob.PublicURL(storagePath)
	return doc, nil
}

// compensatePut removes a blob whose metadata insert failed. The orphaned
// blob is a bounded inconsistency: its removal is attempted once and a
// failure only logged, so the caller still sees the original insert error.
func (s *Service) compensatePut(ctx context.Context, doc Document) {
	cleanupCtx := context.WithoutCancel(ctx)
	if err := s.Blob.Delete(cleanupCtx, doc.StoragePath); err != nil {
		telemetry.Error("document.compensation_failed", map[string]any{
			"document_id":  doc.ID,
			"storage_path": doc.StoragePath,
			"error":        err.Error(),
		})
	}
}

// List returns all active documents in creation order with locators
// recomputed from their storage paths.
func (s *Service) List(ctx context.Context) ([]Document, error) {
	docs, err := s.Repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	for i := range docs {
		docs[i].FileURL = s.Blob.PublicURL(docs[i].StoragePath)
	}
	return docs, nil
}

// Get fetches one document by id, soft-deleted ones included.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Document{}, err
	}
	doc.FileURL = s.Blob.PublicURL(doc.StoragePath)
	return doc, nil
}

// SoftDelete marks the document deleted, leaving the blob in place. Deleting
// an already-deleted document re-stamps the terminal state rather than
// failing, so concurrent soft deletes converge.
func (s *Service) SoftDelete(ctx context.Context, id string) (Document, error) {
	now := time.Now().UTC().Truncate(time.Second)
	doc, err := s.Repo.SoftDelete(ctx, id, now)
	if err != nil {
		return Document{}, err
	}
	metrics.IncSoftDelete()
	doc.FileURL = s.Blob.PublicURL(doc.StoragePath)
	return doc, nil
}

// HardDelete removes the blob and then the row. The blob goes first: a
// failure mid-sequence leaves at worst a row with a dangling storage path,
// which is detectable, rather than an undiscoverable orphaned blob. A
// missing blob is tolerated; a missing row is reported as ErrNotFound,
// including to the loser of a concurrent hard-delete race.
func (s *Service) HardDelete(ctx context.Context, id string) error {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Blob.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}

	if err := s.Repo.HardDelete(ctx, id); err != nil {
		return err
	}
	metrics.IncHardDelete()
	return nil
}
