package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/SSHRIHARI006/GyanForge/internal/app"
	"github.com/SSHRIHARI006/GyanForge/internal/domain"
)

// ProgressWriter records quiz outcomes.
type ProgressWriter interface {
	Upsert(ctx context.Context, userID, moduleID int64, score float64) (domain.Progress, error)
	ListCompleted(ctx context.Context, userID int64) ([]domain.CompletedModule, error)
}

type QuizHandler struct {
	quizzes  *app.QuizService
	modules  ModuleRepository
	progress ProgressWriter
	log      *zap.Logger
}

func NewQuizHandler(quizzes *app.QuizService, modules ModuleRepository, progress ProgressWriter, log *zap.Logger) *QuizHandler {
	return &QuizHandler{quizzes: quizzes, modules: modules, progress: progress, log: log}
}

type generateQuizRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
}

func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(h.log, w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req generateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.log, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Topic == "" {
		respondError(h.log, w, http.StatusBadRequest, "topic is required")
		return
	}
	difficulty := domain.ParseDifficulty(req.Difficulty)

	history, err := h.progress.ListCompleted(r.Context(), user.ID)
	if err != nil {
		h.log.Warn("progress lookup failed, generating without history", zap.Error(err))
		history = nil
	}

	quiz, err := h.quizzes.Generate(r.Context(), req.Topic, difficulty, history)
	if err != nil {
		respondDomainError(h.log, w, err)
		return
	}
	respondJSON(h.log, w, http.StatusOK, quiz)
}

type submitQuizRequest struct {
	ModuleID int64             `json:"moduleId"`
	Answers  map[string]string `json:"answers"`
}

type submitQuizResponse struct {
	Score    float64                   `json:"score"`
	Feedback []domain.QuestionFeedback `json:"feedback"`
	Message  string                    `json:"message"`
	Advance  bool                      `json:"advance"`
}

// Submit grades the answers against the module's stored quiz and records
// the score.
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(h.log, w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req submitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.log, w, http.StatusBadRequest, "invalid request body")
		return
	}

	module, err := h.modules.ByID(r.Context(), req.ModuleID)
	if err != nil {
		respondDomainError(h.log, w, err)
		return
	}
	if module.UserID != user.ID {
		respondError(h.log, w, http.StatusForbidden, "forbidden")
		return
	}

	answers := make(map[int]string, len(req.Answers))
	for key, value := range req.Answers {
		idx, err := strconv.Atoi(key)
		if err != nil {
			respondError(h.log, w, http.StatusBadRequest, "answer keys must be question indexes")
			return
		}
		answers[idx] = value
	}

	result := app.Grade(module.Lesson.Quiz, answers)
	message, advance := app.NextStep(result.Score)

	if _, err := h.progress.Upsert(r.Context(), user.ID, module.ID, result.Score); err != nil {
		// Grading already happened; report the result but log the miss.
		h.log.Error("record progress", zap.Int64("module_id", module.ID), zap.Error(err))
	}

	respondJSON(h.log, w, http.StatusOK, submitQuizResponse{
		Score:    result.Score,
		Feedback: result.Feedback,
		Message:  message,
		Advance:  advance,
	})
}
