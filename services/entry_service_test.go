package services

import (
	"context"
	"errors"
	"testing"
)

func TestEntryServiceCreateValidates(t *testing.T) {
	svc := NewEntryService(setupTestStore(t), nil)
	ctx := context.Background()

	for _, in := range []NewEntry{
		{Title: "", Content: "c"},
		{Title: "t", Content: "   "},
	} {
		if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Create(%+v): expected ErrInvalidInput, got %v", in, err)
		}
	}

	blank := "  "
	id, err := svc.Create(ctx, NewEntry{Title: " Title ", Content: "Body", Location: &blank})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Title" || got.Location != nil || got.LikesCount != 0 {
		t.Errorf("Unexpected entry %+v", got)
	}
}

func TestEntryServiceListIncludesLikes(t *testing.T) {
	store := setupTestStore(t)
	svc := NewEntryService(store, nil)
	likes := NewLikeService(store, nil, nil)
	ctx := context.Background()

	a := createTestEntry(t, store, "a")
	b := createTestEntry(t, store, "b")
	likes.Like(ctx, a, "v1")
	likes.Like(ctx, a, "v2")

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(list))
	}
	if list[0].ID != b || list[0].LikesCount != 0 || list[1].ID != a || list[1].LikesCount != 2 {
		t.Errorf("Unexpected list %+v", list)
	}

	if err := svc.Delete(ctx, a); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, a); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}
