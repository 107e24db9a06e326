package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "module:bst", []byte(`{"title":"BST"}`), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, ok, err := store.Get(ctx, "module:bst")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(value) != `{"title":"BST"}` {
		t.Fatalf("unexpected value %q", value)
	}

	if _, ok, _ := store.Get(ctx, "module:missing"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Unix(1700000000, 0)
	store := NewMemoryStoreWithClock(func() time.Time { return now })
	ctx := context.Background()

	if err := store.Set(ctx, "module:bst", []byte("x"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	now = now.Add(30 * time.Second)
	if _, ok, _ := store.Get(ctx, "module:bst"); !ok {
		t.Fatal("entry expired too early")
	}

	now = now.Add(31 * time.Second)
	if _, ok, _ := store.Get(ctx, "module:bst"); ok {
		t.Fatal("entry should have expired")
	}
}

func TestMemoryStoreDeleteByPrefix(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "user:7:modules", []byte("a"), time.Minute)
	_ = store.Set(ctx, "user:7:path", []byte("b"), time.Minute)
	_ = store.Set(ctx, "user:8:modules", []byte("c"), time.Minute)

	deleted, err := store.DeleteByPrefix(ctx, "user:7:")
	if err != nil {
		t.Fatalf("delete by prefix: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deletions, got %d", deleted)
	}
	if _, ok, _ := store.Get(ctx, "user:8:modules"); !ok {
		t.Fatal("other user's entry should survive")
	}
}
