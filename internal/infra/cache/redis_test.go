package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewRedisStore(newClient(mr))
	ctx := context.Background()

	if err := store.Set(ctx, "module:heaps", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, ok, err := store.Get(ctx, "module:heaps")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(value) != "payload" {
		t.Fatalf("unexpected value %q", value)
	}

	if _, ok, _ := store.Get(ctx, "module:absent"); ok {
		t.Fatal("expected miss")
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewRedisStore(newClient(mr))
	ctx := context.Background()

	if err := store.Set(ctx, "youtube:graphs", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, ok, _ := store.Get(ctx, "youtube:graphs"); ok {
		t.Fatal("entry should have expired")
	}
}

func TestRedisStoreDeleteByPrefix(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewRedisStore(newClient(mr))
	ctx := context.Background()

	_ = store.Set(ctx, "user:1:modules", []byte("a"), time.Hour)
	_ = store.Set(ctx, "user:1:path", []byte("b"), time.Hour)
	_ = store.Set(ctx, "user:2:modules", []byte("c"), time.Hour)

	deleted, err := store.DeleteByPrefix(ctx, "user:1:")
	if err != nil {
		t.Fatalf("delete by prefix: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deletions, got %d", deleted)
	}
	if _, ok, _ := store.Get(ctx, "user:2:modules"); !ok {
		t.Fatal("unrelated key should survive")
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}
