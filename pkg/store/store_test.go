package store

import (
	"context"
	"errors"
	"testing"

	"github.com/causelab/causeway/pkg/diagram"
)

func testDoc(name string) diagram.Document {
	return diagram.Document{
		Name: name,
		Nodes: []diagram.Node{
			{ID: "a", Tier: diagram.TierCause},
			{ID: "b", Tier: diagram.TierEffect},
		},
		Edges: []diagram.Edge{{From: "a", To: "b"}},
	}
}

func TestFileStorePutAssignsID(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	stored, err := s.Put(ctx, testDoc("first"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if stored.ID == "" {
		t.Error("Put did not assign an id")
	}
	if stored.CreatedAt.IsZero() || stored.UpdatedAt.IsZero() {
		t.Error("Put did not assign timestamps")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	ctx := context.Background()

	stored, err := s.Put(ctx, testDoc("roundtrip"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, stored.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "roundtrip" {
		t.Errorf("Name = %q, want roundtrip", got.Name)
	}
	if len(got.Nodes) != 2 || len(got.Edges) != 1 {
		t.Errorf("got %d nodes, %d edges; want 2, 1", len(got.Nodes), len(got.Edges))
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	_, err := s.Get(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestFileStoreUpdateKeepsID(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	ctx := context.Background()

	stored, _ := s.Put(ctx, testDoc("v1"))
	stored.Name = "v2"
	updated, err := s.Put(ctx, stored)
	if err != nil {
		t.Fatalf("second Put: %v", err)
	}
	if updated.ID != stored.ID {
		t.Errorf("update changed id: %s → %s", stored.ID, updated.ID)
	}
	if updated.CreatedAt != stored.CreatedAt {
		t.Error("update changed CreatedAt")
	}

	got, _ := s.Get(ctx, stored.ID)
	if got.Name != "v2" {
		t.Errorf("Name = %q, want v2", got.Name)
	}
}

func TestFileStoreDelete(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	ctx := context.Background()

	stored, _ := s.Put(ctx, testDoc("doomed"))
	if err := s.Delete(ctx, stored.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, stored.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, stored.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: want ErrNotFound, got %v", err)
	}
}

func TestFileStoreList(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	ctx := context.Background()

	s.Put(ctx, testDoc("one"))
	s.Put(ctx, testDoc("two"))

	docs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	// Newest first.
	if docs[0].UpdatedAt.Before(docs[1].UpdatedAt) {
		t.Error("List not sorted newest first")
	}
}
