package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
)

// keywordReplies backs the chat service when no model is available. Matching
// is substring-based on the lowered message; the first matching entry wins,
// so a message hitting several keywords always gets the same reply.
var keywordReplies = []struct {
	keyword string
	reply   string
}{
	{"hello", "Hello! I'm here to help you with your learning journey."},
	{"help", "I can help you with data structures, algorithms, and programming concepts."},
	{"heap", "A heap is a complete binary tree where each parent node is greater (max-heap) or smaller (min-heap) than its children."},
	{"stack", "A stack is a Last-In-First-Out (LIFO) data structure. Think of it like a stack of plates."},
	{"queue", "A queue is a First-In-First-Out (FIFO) data structure. Think of it like a line at a store."},
	{"tree", "A tree is a hierarchical data structure with nodes connected by edges, starting from a root node."},
	{"graph", "A graph is a collection of nodes (vertices) connected by edges. It can be directed or undirected."},
	{"algorithm", "An algorithm is a step-by-step procedure to solve a problem."},
}

const defaultReply = "That's an interesting question! I recommend checking out our learning modules for more detailed information."

// ChatService answers learner messages with conversation context. Model
// failures degrade to keyword-matched canned replies; a chat request never
// fails except on caller cancellation.
type ChatService struct {
	model   TextModel
	history *ConversationStore
	log     *zap.Logger
}

func NewChatService(model TextModel, history *ConversationStore, log *zap.Logger) *ChatService {
	return &ChatService{model: model, history: history, log: log}
}

// Reply generates the assistant's answer and records the exchange.
// currentModule, when non-empty, anchors the reply to the lesson the user is
// viewing.
func (s *ChatService) Reply(ctx context.Context, userID int64, message, currentModule string, progress []domain.CompletedModule) (domain.ChatReply, error) {
	if err := ctx.Err(); err != nil {
		return domain.ChatReply{}, err
	}

	reply := s.resolveReply(ctx, userID, message, currentModule, progress)
	s.history.Append(userID, message, reply.Response)
	return reply, nil
}

// ClearHistory forgets a user's conversation.
func (s *ChatService) ClearHistory(userID int64) {
	s.history.Clear(userID)
}

func (s *ChatService) resolveReply(ctx context.Context, userID int64, message, currentModule string, progress []domain.CompletedModule) domain.ChatReply {
	if s.model == nil {
		return keywordReply(message)
	}

	raw, err := s.model.Complete(ctx, s.chatPrompt(userID, message, currentModule, progress))
	if err != nil {
		s.log.Warn("chat model call failed, using keyword reply",
			zap.Int64("user_id", userID), zap.Error(err))
		return keywordReply(message)
	}

	return domain.ChatReply{
		Response:    strings.TrimSpace(raw),
		Suggestions: []string{"Ask about concepts", "Request explanations", "Get study tips"},
		Source:      "model",
	}
}

func keywordReply(message string) domain.ChatReply {
	lowered := strings.ToLower(message)
	for _, entry := range keywordReplies {
		if strings.Contains(lowered, entry.keyword) {
			return domain.ChatReply{Response: entry.reply, Source: "keyword_match"}
		}
	}
	return domain.ChatReply{Response: defaultReply, Source: "default"}
}

func (s *ChatService) chatPrompt(userID int64, message, currentModule string, progress []domain.CompletedModule) string {
	var sb strings.Builder
	sb.WriteString("You are GyanForge AI, an educational assistant. Answer the student's question clearly and encourage them.\n\n")

	if len(progress) > 0 {
		sb.WriteString("STUDENT PROGRESS:\n")
		for _, m := range progress {
			fmt.Fprintf(&sb, "- %s (score %.0f)\n", m.Title, m.Score)
		}
	}
	if currentModule != "" {
		fmt.Fprintf(&sb, "CURRENT MODULE: %s\n", currentModule)
	}

	if history := s.history.History(userID); len(history) > 0 {
		recent := history
		if len(recent) > 4 {
			recent = recent[len(recent)-4:]
		}
		sb.WriteString("PREVIOUS CONVERSATION:\n")
		for _, ex := range recent {
			fmt.Fprintf(&sb, "Student: %s\nAssistant: %s\n", ex.User, ex.Assistant)
		}
	}

	fmt.Fprintf(&sb, "\nSTUDENT MESSAGE: %s\n", message)
	return sb.String()
}
