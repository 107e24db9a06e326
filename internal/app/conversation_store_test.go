package app

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestConversationStoreBoundsHistory(t *testing.T) {
	store := NewConversationStore(3, time.Hour)

	for i := 0; i < 5; i++ {
		store.Append(1, fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	history := store.History(1)
	if len(history) != 3 {
		t.Fatalf("expected cap of 3 exchanges, got %d", len(history))
	}
	if history[0].User != "q2" || history[2].User != "q4" {
		t.Fatalf("expected the newest exchanges retained, got %+v", history)
	}
}

func TestConversationStoreIsolatesUsers(t *testing.T) {
	store := NewConversationStore(10, time.Hour)
	store.Append(1, "hello", "hi")
	store.Append(2, "hey", "yo")

	if len(store.History(1)) != 1 || len(store.History(2)) != 1 {
		t.Fatal("users should not share history")
	}
	store.Clear(1)
	if store.History(1) != nil {
		t.Fatal("cleared user should have no history")
	}
	if len(store.History(2)) != 1 {
		t.Fatal("clearing one user must not touch another")
	}
}

func TestConversationStoreEvictsIdleConversations(t *testing.T) {
	now := time.Unix(1700000000, 0)
	store := NewConversationStoreWithClock(10, time.Minute, func() time.Time { return now })

	store.Append(1, "hello", "hi")
	now = now.Add(2 * time.Minute)

	if got := store.History(1); got != nil {
		t.Fatalf("idle conversation should be evicted, got %+v", got)
	}
}

func TestConversationStoreConcurrentAppends(t *testing.T) {
	store := NewConversationStore(100, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.Append(7, fmt.Sprintf("q%d", i), "a")
		}(i)
	}
	wg.Wait()

	if got := len(store.History(7)); got != 50 {
		t.Fatalf("expected 50 retained exchanges, got %d (lost updates)", got)
	}
}
