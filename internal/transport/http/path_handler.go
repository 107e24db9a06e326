package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/SSHRIHARI006/GyanForge/internal/app"
)

type PathHandler struct {
	paths    *app.PathService
	progress ProgressReader
	log      *zap.Logger
}

func NewPathHandler(paths *app.PathService, progress ProgressReader, log *zap.Logger) *PathHandler {
	return &PathHandler{paths: paths, progress: progress, log: log}
}

type pathRequest struct {
	Goal       string `json:"goal"`
	Background string `json:"background"`
}

func (h *PathHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(h.log, w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req pathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.log, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Goal == "" {
		respondError(h.log, w, http.StatusBadRequest, "goal is required")
		return
	}

	completed, err := h.progress.ListCompleted(r.Context(), user.ID)
	if err != nil {
		h.log.Warn("progress lookup failed, suggesting without history", zap.Error(err))
		completed = nil
	}

	path, err := h.paths.Suggest(r.Context(), user.ID, req.Goal, req.Background, completed)
	if err != nil {
		respondDomainError(h.log, w, err)
		return
	}
	respondJSON(h.log, w, http.StatusOK, path)
}
