// Package http exposes the REST and websocket API.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps collects everything the router mounts.
type RouterDeps struct {
	Auth    *AuthHandler
	AuthMw  func(http.Handler) http.Handler
	Modules *ModuleHandler
	Quizzes *QuizHandler
	Chat    *ChatHandler
	Paths   *PathHandler

	CORSOrigins []string
	Readiness   []Pinger
	Log         *zap.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logging(deps.Log))
	r.Use(Recovery(deps.Log))
	r.Use(CORS(deps.CORSOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(deps.Log, w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		for _, p := range deps.Readiness {
			if err := p.Ping(ctx); err != nil {
				deps.Log.Warn("readiness probe failed", zap.Error(err))
				respondError(deps.Log, w, http.StatusServiceUnavailable, "not ready")
				return
			}
		}
		respondJSON(deps.Log, w, http.StatusOK, map[string]string{"status": "ready"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			// Credential endpoints are the brute-force surface.
			r.Use(httprate.LimitByIP(20, time.Minute))
			r.Post("/auth/register", deps.Auth.Register)
			r.Post("/auth/login", deps.Auth.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMw)

			r.Get("/auth/me", deps.Auth.Me)

			r.Post("/modules", deps.Modules.Generate)
			r.Get("/modules", deps.Modules.List)
			r.Get("/modules/{id}", deps.Modules.Get)
			r.Delete("/modules/{id}", deps.Modules.Delete)
			r.Get("/modules/{id}/assignment.pdf", deps.Modules.Assignment)
			r.Get("/modules/{id}/notes.pdf", deps.Modules.Notes)

			r.Post("/quizzes/generate", deps.Quizzes.Generate)
			r.Post("/quizzes/submit", deps.Quizzes.Submit)

			r.Post("/chat", deps.Chat.Message)
			r.Delete("/chat/history", deps.Chat.ClearHistory)
			r.Get("/chat/ws", deps.Chat.ServeWS)

			r.Post("/paths", deps.Paths.Suggest)
		})
	})

	return r
}
