package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/karaksak1338/ChaosOrganizer/internal/shared/storage/blob"
)

func TestPutWritesFileUnderPath(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080/files")
	ctx := context.Background()

	n, err := store.Put(ctx, "user-1/token.pdf", strings.NewReader("content"), "application/pdf")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n != int64(len("content")) {
		t.Fatalf("expected %d bytes written, got %d", len("content"), n)
	}

	data, err := os.ReadFile(filepath.Join(store.baseDir, "user-1", "token.pdf"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "content" {
		t.Fatalf("content mismatch: %q", data)
	}
}

func TestPutRefusesToOverwrite(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080/files")
	ctx := context.Background()

	if _, err := store.Put(ctx, "u/a.txt", strings.NewReader("one"), "text/plain"); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	_, err := store.Put(ctx, "u/a.txt", strings.NewReader("two"), "text/plain")
	if !errors.Is(err, blob.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestPutRejectsTraversal(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080/files")
	for _, p := range []string{"../escape.txt", "/abs.txt", "."} {
		if _, err := store.Put(context.Background(), p, strings.NewReader("x"), "text/plain"); err == nil {
			t.Fatalf("expected rejection for path %q", p)
		}
	}
}

func TestDeleteToleratesMissingBlob(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080/files")
	if err := store.Delete(context.Background(), "u/missing.txt"); err != nil {
		t.Fatalf("expected missing blob tolerated, got %v", err)
	}
}

func TestDeleteRemovesBlob(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080/files")
	ctx := context.Background()

	if _, err := store.Put(ctx, "u/a.txt", strings.NewReader("x"), "text/plain"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(ctx, "u/a.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.baseDir, "u", "a.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err=%v", err)
	}
}

func TestPublicURLJoinsBaseAndEscapes(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080/files/")
	got := store.PublicURL("u/token a.pdf")
	want := "http://localhost:8080/files/u/token%20a.pdf"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
