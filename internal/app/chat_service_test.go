package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestChatReplyKeywordFallback(t *testing.T) {
	service := NewChatService(nil, NewConversationStore(10, time.Hour), zap.NewNop())

	reply, err := service.Reply(context.Background(), 1, "what is a stack?", "", nil)
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if reply.Source != "keyword_match" {
		t.Fatalf("expected keyword match, got source %q", reply.Source)
	}
	if !strings.Contains(reply.Response, "LIFO") {
		t.Fatalf("unexpected stack reply: %q", reply.Response)
	}
}

func TestChatReplyMultiKeywordIsDeterministic(t *testing.T) {
	service := NewChatService(nil, NewConversationStore(10, time.Hour), zap.NewNop())

	// "help" precedes "stack" in the reply table; the earlier entry must win
	// on every call.
	for i := 0; i < 20; i++ {
		reply, err := service.Reply(context.Background(), 1, "help with a stack", "", nil)
		if err != nil {
			t.Fatalf("reply: %v", err)
		}
		if !strings.Contains(reply.Response, "data structures, algorithms") {
			t.Fatalf("call %d picked a different keyword: %q", i, reply.Response)
		}
	}
}

func TestChatReplyDefaultWhenNoKeyword(t *testing.T) {
	service := NewChatService(nil, NewConversationStore(10, time.Hour), zap.NewNop())

	reply, err := service.Reply(context.Background(), 1, "tell me about волк", "", nil)
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if reply.Source != "default" {
		t.Fatalf("expected default reply, got %q", reply.Source)
	}
}

func TestChatReplyModelFailureFallsBack(t *testing.T) {
	model := &scriptedModel{err: errors.New("timeout")}
	service := NewChatService(model, NewConversationStore(10, time.Hour), zap.NewNop())

	reply, err := service.Reply(context.Background(), 1, "explain heaps", "", nil)
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if reply.Source != "keyword_match" {
		t.Fatalf("expected fallback reply, got %q", reply.Source)
	}
}

func TestChatReplyRecordsHistory(t *testing.T) {
	model := &scriptedModel{response: "Trees organize data hierarchically."}
	history := NewConversationStore(10, time.Hour)
	service := NewChatService(model, history, zap.NewNop())

	if _, err := service.Reply(context.Background(), 42, "what is a tree?", "", nil); err != nil {
		t.Fatalf("reply: %v", err)
	}

	exchanges := history.History(42)
	if len(exchanges) != 1 {
		t.Fatalf("expected 1 recorded exchange, got %d", len(exchanges))
	}
	if exchanges[0].User != "what is a tree?" {
		t.Fatalf("unexpected recorded message %q", exchanges[0].User)
	}
	if exchanges[0].Assistant != "Trees organize data hierarchically." {
		t.Fatalf("unexpected recorded reply %q", exchanges[0].Assistant)
	}
}

func TestChatClearHistory(t *testing.T) {
	history := NewConversationStore(10, time.Hour)
	service := NewChatService(nil, history, zap.NewNop())

	_, _ = service.Reply(context.Background(), 42, "hello", "", nil)
	service.ClearHistory(42)
	if history.History(42) != nil {
		t.Fatal("history should be cleared")
	}
}
