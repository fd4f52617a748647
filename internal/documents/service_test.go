package documents

import (
	"context"
	"errors"
	"strings"
	"testing"

	memorystore "github.com/karaksak1338/ChaosOrganizer/internal/shared/storage/blob/memory"
)

func newTestService(store *memorystore.Store, repo *MemoryRepo) *Service {
	return &Service{
		Blob:     store,
		Repo:     repo,
		Identity: IdentityResolver{Fallback: "00000000-0000-0000-0000-000000000001"},
	}
}

func TestCreateStoresBlobAndRecordTogether(t *testing.T) {
	store := memorystore.New()
	repo := NewMemoryRepo()
	svc := newTestService(store, repo)
	ctx := context.Background()

	doc, err := svc.Create(ctx, "", "invoice.pdf", "application/pdf", strings.NewReader("0123456789"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if doc.ID == "" {
		t.Fatalf("expected generated id")
	}
	if doc.UserID != "00000000-0000-0000-0000-000000000001" {
		t.Fatalf("expected fallback user id, got %s", doc.UserID)
	}
	if doc.FileName != "invoice.pdf" {
		t.Fatalf("expected original file name, got %s", doc.FileName)
	}
	if !strings.HasPrefix(doc.StoragePath, doc.UserID+"/") || !strings.HasSuffix(doc.StoragePath, ".pdf") {
		t.Fatalf("unexpected storage path: %s", doc.StoragePath)
	}
	if doc.DeletedAt != nil {
		t.Fatalf("expected deleted_at unset")
	}
	if !doc.CreatedAt.Equal(doc.UpdatedAt) {
		t.Fatalf("expected created_at == updated_at at birth")
	}
	if doc.FileURL != store.PublicURL(doc.StoragePath) {
		t.Fatalf("expected derived locator, got %s", doc.FileURL)
	}

	data, ok := store.Get(doc.StoragePath)
	if !ok {
		t.Fatalf("expected blob at %s", doc.StoragePath)
	}
	if string(data) != "0123456789" {
		t.Fatalf("blob content mismatch: %q", data)
	}
	if got := store.ContentType(doc.StoragePath); got != "application/pdf" {
		t.Fatalf("content type mismatch: %s", got)
	}

	docs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != doc.ID {
		t.Fatalf("expected created record in list, got %v", docs)
	}
}

func TestCreateUsesHeaderIdentityVerbatim(t *testing.T) {
	store := memorystore.New()
	svc := newTestService(store, NewMemoryRepo())

	doc, err := svc.Create(context.Background(), "abc", "a.txt", "text/plain", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if doc.UserID != "abc" {
		t.Fatalf("expected user id abc, got %s", doc.UserID)
	}
}

func TestCreateDefaultsContentType(t *testing.T) {
	store := memorystore.New()
	svc := newTestService(store, NewMemoryRepo())

	doc, err := svc.Create(context.Background(), "", "blob.bin", "", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := store.ContentType(doc.StoragePath); got != "application/octet-stream" {
		t.Fatalf("expected generic content type, got %s", got)
	}
}

func TestCreateRejectsInvalidFileName(t *testing.T) {
	store := memorystore.New()
	svc := newTestService(store, NewMemoryRepo())

	_, err := svc.Create(context.Background(), "", "", "text/plain", strings.NewReader("x"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected no blob written for rejected input")
	}
}

func TestCreateBlobFailureLeavesNoRecord(t *testing.T) {
	store := memorystore.New()
	store.PutErr = errors.New("blob store unavailable")
	repo := NewMemoryRepo()
	svc := newTestService(store, repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "", "a.txt", "text/plain", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error")
	}

	docs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected no records after failed blob write, got %d", len(docs))
	}
}

func TestCreateCompensatesBlobOnInsertFailure(t *testing.T) {
	store := memorystore.New()
	repo := NewMemoryRepo()
	insertErr := errors.New("metadata table unavailable")
	repo.InsertErr = insertErr
	svc := newTestService(store, repo)

	_, err := svc.Create(context.Background(), "", "a.txt", "text/plain", strings.NewReader("x"))
	if !errors.Is(err, insertErr) {
		t.Fatalf("expected the insert failure surfaced, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected compensating delete to remove the blob, got %d left", store.Len())
	}
}

func TestCreateCompensationFailureKeepsInsertError(t *testing.T) {
	store := memorystore.New()
	store.DeleteErr = errors.New("delete unavailable")
	repo := NewMemoryRepo()
	insertErr := errors.New("metadata table unavailable")
	repo.InsertErr = insertErr
	svc := newTestService(store, repo)

	_, err := svc.Create(context.Background(), "", "a.txt", "text/plain", strings.NewReader("x"))
	if !errors.Is(err, insertErr) {
		t.Fatalf("expected the insert failure surfaced despite compensation failure, got %v", err)
	}
}

func TestSoftDeleteHidesFromListButKeepsRecord(t *testing.T) {
	store := memorystore.New()
	repo := NewMemoryRepo()
	svc := newTestService(store, repo)
	ctx := context.Background()

	doc, err := svc.Create(ctx, "", "a.txt", "text/plain", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := svc.SoftDelete(ctx, doc.ID)
	if err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if deleted.DeletedAt == nil {
		t.Fatalf("expected deleted_at set")
	}
	if !deleted.UpdatedAt.Equal(*deleted.DeletedAt) {
		t.Fatalf("expected updated_at re-stamped with deleted_at")
	}

	docs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected soft-deleted record hidden from list")
	}

	got, err := svc.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get after soft delete: %v", err)
	}
	if got.DeletedAt == nil {
		t.Fatalf("expected direct lookup to show deleted_at")
	}
	if _, ok := store.Get(doc.StoragePath); !ok {
		t.Fatalf("soft delete must leave the blob in place")
	}
}

func TestSoftDeleteIsIdempotent(t *testing.T) {
	store := memorystore.New()
	svc := newTestService(store, NewMemoryRepo())
	ctx := context.Background()

	doc, err := svc.Create(ctx, "", "a.txt", "text/plain", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, err := svc.SoftDelete(ctx, doc.ID)
	if err != nil {
		t.Fatalf("first SoftDelete: %v", err)
	}
	second, err := svc.SoftDelete(ctx, doc.ID)
	if err != nil {
		t.Fatalf("second SoftDelete: %v", err)
	}
	if second.UpdatedAt.Before(first.UpdatedAt) {
		t.Fatalf("expected second updated_at >= first, got %v < %v", second.UpdatedAt, first.UpdatedAt)
	}
}

func TestSoftDeleteUnknownIDReturnsNotFound(t *testing.T) {
	svc := newTestService(memorystore.New(), NewMemoryRepo())
	if _, err := svc.SoftDelete(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHardDeleteRemovesBlobAndRow(t *testing.T) {
	store := memorystore.New()
	svc := newTestService(store, NewMemoryRepo())
	ctx := context.Background()

	doc, err := svc.Create(ctx, "", "a.txt", "text/plain", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.HardDelete(ctx, doc.ID); err != nil {
		t.Fatalf("HardDelete: %v", err)
	}
	if _, ok := store.Get(doc.StoragePath); ok {
		t.Fatalf("expected blob removed")
	}
	if _, err := svc.Get(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected row removed, got %v", err)
	}
	if err := svc.HardDelete(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected NotFound on repeat hard delete, got %v", err)
	}
}

func TestHardDeleteWorksOnSoftDeletedRecord(t *testing.T) {
	store := memorystore.New()
	svc := newTestService(store, NewMemoryRepo())
	ctx := context.Background()

	doc, err := svc.Create(ctx, "", "a.txt", "text/plain", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.SoftDelete(ctx, doc.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if err := svc.HardDelete(ctx, doc.ID); err != nil {
		t.Fatalf("HardDelete after soft delete: %v", err)
	}
	if _, ok := store.Get(doc.StoragePath); ok {
		t.Fatalf("expected blob removed")
	}
}

func TestHardDeleteToleratesMissingBlob(t *testing.T) {
	store := memorystore.New()
	repo := NewMemoryRepo()
	svc := newTestService(store, repo)
	ctx := context.Background()

	doc, err := svc.Create(ctx, "", "a.txt", "text/plain", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Delete(ctx, doc.StoragePath); err != nil {
		t.Fatalf("prime blob removal: %v", err)
	}

	if err := svc.HardDelete(ctx, doc.ID); err != nil {
		t.Fatalf("expected missing blob tolerated, got %v", err)
	}
}

func TestHardDeleteBlobFailureKeepsRow(t *testing.T) {
	store := memorystore.New()
	repo := NewMemoryRepo()
	svc := newTestService(store, repo)
	ctx := context.Background()

	doc, err := svc.Create(ctx, "", "a.txt", "text/plain", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	store.DeleteErr = errors.New("blob store unavailable")
	if err := svc.HardDelete(ctx, doc.ID); err == nil {
		t.Fatalf("expected error when blob removal fails")
	}
	// The row must survive so the dangling path stays detectable.
	if _, err := svc.Get(ctx, doc.ID); err != nil {
		t.Fatalf("expected row retained, got %v", err)
	}
}

func TestListEmptyReturnsEmptySlice(t *testing.T) {
	svc := newTestService(memorystore.New(), NewMemoryRepo())
	docs, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Fatalf("expected empty slice, got %v", docs)
	}
}

func TestListPreservesCreationOrder(t *testing.T) {
	svc := newTestService(memorystore.New(), NewMemoryRepo())
	ctx := context.Background()

	names := []string{"a.txt", "b.txt", "c.txt"}
	for _, name := range names {
		if _, err := svc.Create(ctx, "", name, "text/plain", strings.NewReader("x")); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	docs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != len(names) {
		t.Fatalf("expected %d docs, got %d", len(names), len(docs))
	}
	for i, name := range names {
		if docs[i].FileName != name {
			t.Fatalf("expected %s at index %d, got %s", name, i, docs[i].FileName)
		}
	}
}
