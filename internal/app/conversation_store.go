package app

import (
	"sync"
	"time"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
)

// ConversationStore keeps bounded per-user chat history in memory. It is an
// injected collaborator, never a package-level singleton, so tests get an
// isolated instance. Safe for concurrent use across users; appends for the
// same user are serialized by the store lock.
type ConversationStore struct {
	max   int
	ttl   time.Duration
	clock func() time.Time

	mu     sync.Mutex
	byUser map[int64]*conversation
}

type conversation struct {
	exchanges []domain.Exchange
	touchedAt time.Time
}

// NewConversationStore caps each user at max exchanges; idle conversations
// are evicted after ttl. Zero values select 10 exchanges and 1 hour.
func NewConversationStore(max int, ttl time.Duration) *ConversationStore {
	if max <= 0 {
		max = 10
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ConversationStore{
		max:    max,
		ttl:    ttl,
		clock:  time.Now,
		byUser: make(map[int64]*conversation),
	}
}

// NewConversationStoreWithClock is test-only for deterministic eviction.
func NewConversationStoreWithClock(max int, ttl time.Duration, clock func() time.Time) *ConversationStore {
	store := NewConversationStore(max, ttl)
	store.clock = clock
	return store
}

// Append records one completed user/assistant turn.
func (s *ConversationStore) Append(userID int64, userMsg, assistantMsg string) {
	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictIdleLocked(now)

	conv, ok := s.byUser[userID]
	if !ok {
		conv = &conversation{}
		s.byUser[userID] = conv
	}
	conv.exchanges = append(conv.exchanges, domain.Exchange{User: userMsg, Assistant: assistantMsg, At: now})
	if len(conv.exchanges) > s.max {
		conv.exchanges = conv.exchanges[len(conv.exchanges)-s.max:]
	}
	conv.touchedAt = now
}

// History returns a copy of the user's retained exchanges, oldest first.
func (s *ConversationStore) History(userID int64) []domain.Exchange {
	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictIdleLocked(now)

	conv, ok := s.byUser[userID]
	if !ok {
		return nil
	}
	return append([]domain.Exchange(nil), conv.exchanges...)
}

// Clear forgets a user's conversation.
func (s *ConversationStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
}

func (s *ConversationStore) evictIdleLocked(now time.Time) {
	for userID, conv := range s.byUser {
		if now.Sub(conv.touchedAt) > s.ttl {
			delete(s.byUser, userID)
		}
	}
}
