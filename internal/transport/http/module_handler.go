package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/SSHRIHARI006/GyanForge/internal/app"
	"github.com/SSHRIHARI006/GyanForge/internal/domain"
	"github.com/SSHRIHARI006/GyanForge/internal/infra/cache"
	"github.com/SSHRIHARI006/GyanForge/internal/infra/pdf"
)

// ModuleRepository is the persistence surface the module endpoints need.
type ModuleRepository interface {
	Save(ctx context.Context, module *domain.Module) error
	ByID(ctx context.Context, id int64) (domain.Module, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Module, error)
	Delete(ctx context.Context, id, userID int64) error
}

// ProgressReader supplies prior scores for generation prompts.
type ProgressReader interface {
	ListCompleted(ctx context.Context, userID int64) ([]domain.CompletedModule, error)
}

type ModuleHandler struct {
	lessons  *app.LessonService
	modules  ModuleRepository
	progress ProgressReader
	renderer pdf.Renderer
	store    cache.Store
	log      *zap.Logger
}

func NewModuleHandler(lessons *app.LessonService, modules ModuleRepository, progress ProgressReader, renderer pdf.Renderer, store cache.Store, log *zap.Logger) *ModuleHandler {
	return &ModuleHandler{lessons: lessons, modules: modules, progress: progress, renderer: renderer, store: store, log: log}
}

type generateModuleRequest struct {
	Topic      string `json:"topic"`
	Background string `json:"background"`
}

func (h *ModuleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(h.log, w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req generateModuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.log, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Topic == "" {
		respondError(h.log, w, http.StatusBadRequest, "topic is required")
		return
	}

	completed, err := h.progress.ListCompleted(r.Context(), user.ID)
	if err != nil {
		h.log.Warn("progress lookup failed, generating without history", zap.Error(err))
		completed = nil
	}

	lesson, err := h.lessons.Generate(r.Context(), req.Topic, req.Background, completed)
	if err != nil {
		respondDomainError(h.log, w, err)
		return
	}

	module := domain.Module{UserID: user.ID, Lesson: lesson}
	if err := h.modules.Save(r.Context(), &module); err != nil {
		respondDomainError(h.log, w, err)
		return
	}
	respondJSON(h.log, w, http.StatusCreated, module)
}

func (h *ModuleHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(h.log, w, http.StatusUnauthorized, "authentication required")
		return
	}

	modules, err := h.modules.ListByUser(r.Context(), user.ID)
	if err != nil {
		respondDomainError(h.log, w, err)
		return
	}
	respondJSON(h.log, w, http.StatusOK, modules)
}

func (h *ModuleHandler) Get(w http.ResponseWriter, r *http.Request) {
	module, ok := h.ownedModule(w, r)
	if !ok {
		return
	}
	respondJSON(h.log, w, http.StatusOK, module)
}

func (h *ModuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(h.log, w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := moduleID(r)
	if err != nil {
		respondError(h.log, w, http.StatusBadRequest, "invalid module id")
		return
	}

	if err := h.modules.Delete(r.Context(), id, user.ID); err != nil {
		respondDomainError(h.log, w, err)
		return
	}
	// Clears only user-prefixed entries (learning paths); lesson, quiz and
	// video caches are topic-keyed and shared across users.
	if _, err := h.store.DeleteByPrefix(r.Context(), fmt.Sprintf("user:%d:", user.ID)); err != nil {
		h.log.Warn("cache invalidation failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// Assignment renders the lesson's LaTeX assignment sheet as PDF.
func (h *ModuleHandler) Assignment(w http.ResponseWriter, r *http.Request) {
	module, ok := h.ownedModule(w, r)
	if !ok {
		return
	}
	h.servePDF(w, r, module.Lesson.AssignmentLatex, fmt.Sprintf("assignment-%d.pdf", module.ID))
}

// Notes renders the lesson body as a printable PDF.
func (h *ModuleHandler) Notes(w http.ResponseWriter, r *http.Request) {
	module, ok := h.ownedModule(w, r)
	if !ok {
		return
	}
	h.servePDF(w, r, pdf.NotesDocument(module.Lesson), fmt.Sprintf("notes-%d.pdf", module.ID))
}

func (h *ModuleHandler) servePDF(w http.ResponseWriter, r *http.Request, latex, filename string) {
	data, err := h.renderer.Render(r.Context(), latex)
	if errors.Is(err, domain.ErrRendererUnavailable) {
		// No pdflatex on this host; the source document is still useful.
		h.log.Warn("pdf renderer unavailable, serving latex source")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+strings.TrimSuffix(filename, ".pdf")+`.tex"`)
		w.Write([]byte(latex))
		return
	}
	if err != nil {
		respondDomainError(h.log, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(data)
}

// ownedModule loads the requested module and enforces ownership.
func (h *ModuleHandler) ownedModule(w http.ResponseWriter, r *http.Request) (domain.Module, bool) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(h.log, w, http.StatusUnauthorized, "authentication required")
		return domain.Module{}, false
	}
	id, err := moduleID(r)
	if err != nil {
		respondError(h.log, w, http.StatusBadRequest, "invalid module id")
		return domain.Module{}, false
	}

	module, err := h.modules.ByID(r.Context(), id)
	if err != nil {
		respondDomainError(h.log, w, err)
		return domain.Module{}, false
	}
	if module.UserID != user.ID {
		respondError(h.log, w, http.StatusForbidden, "forbidden")
		return domain.Module{}, false
	}
	return module, true
}

func moduleID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
