package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/SSHRIHARI006/GyanForge/internal/app"
	"github.com/SSHRIHARI006/GyanForge/internal/domain"
)

type ChatHandler struct {
	chat     *app.ChatService
	progress ProgressReader
	upgrader websocket.Upgrader
	log      *zap.Logger
}

func NewChatHandler(chat *app.ChatService, progress ProgressReader, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chat:     chat,
		progress: progress,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

type chatRequest struct {
	Message       string `json:"message"`
	CurrentModule string `json:"currentModule"`
}

func (h *ChatHandler) Message(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(h.log, w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.log, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		respondError(h.log, w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := h.chat.Reply(r.Context(), user.ID, req.Message, req.CurrentModule, h.completed(r))
	if err != nil {
		respondDomainError(h.log, w, err)
		return
	}
	respondJSON(h.log, w, http.StatusOK, reply)
}

func (h *ChatHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(h.log, w, http.StatusUnauthorized, "authentication required")
		return
	}
	h.chat.ClearHistory(user.ID)
	w.WriteHeader(http.StatusNoContent)
}

type wsInbound struct {
	Message       string `json:"message"`
	CurrentModule string `json:"currentModule"`
}

type wsOutbound struct {
	Type    string           `json:"type"`
	Payload domain.ChatReply `json:"payload"`
}

type wsError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ServeWS runs a chat session over one websocket connection. Messages are
// answered in order on a single goroutine, so writes never interleave.
func (h *ChatHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(h.log, w, http.StatusUnauthorized, "authentication required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	completed := h.completed(r)

	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("ws read failed", zap.Int64("user_id", user.ID), zap.Error(err))
			}
			return
		}
		if in.Message == "" {
			conn.WriteJSON(wsError{Type: "error", Message: "message is required"})
			continue
		}

		reply, err := h.chat.Reply(r.Context(), user.ID, in.Message, in.CurrentModule, completed)
		if err != nil {
			conn.WriteJSON(wsError{Type: "error", Message: "chat unavailable"})
			continue
		}
		if err := conn.WriteJSON(wsOutbound{Type: "reply", Payload: reply}); err != nil {
			h.log.Warn("ws write failed", zap.Int64("user_id", user.ID), zap.Error(err))
			return
		}
	}
}

func (h *ChatHandler) completed(r *http.Request) []domain.CompletedModule {
	user, ok := userFrom(r.Context())
	if !ok {
		return nil
	}
	completed, err := h.progress.ListCompleted(r.Context(), user.ID)
	if err != nil {
		h.log.Warn("progress lookup failed for chat context", zap.Error(err))
		return nil
	}
	return completed
}
