package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
)

func respondJSON(log *zap.Logger, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("encode response", zap.Error(err))
	}
}

func respondError(log *zap.Logger, w http.ResponseWriter, status int, message string) {
	respondJSON(log, w, status, map[string]string{"error": message})
}

// respondDomainError maps sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body so internals never leak.
func respondDomainError(log *zap.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(log, w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		respondError(log, w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		respondError(log, w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrEmailTaken):
		respondError(log, w, http.StatusConflict, "email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(log, w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, domain.ErrValidationFailed):
		respondError(log, w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrRendererUnavailable):
		respondError(log, w, http.StatusServiceUnavailable, "pdf rendering unavailable")
	default:
		log.Error("request failed", zap.Error(err))
		respondError(log, w, http.StatusInternalServerError, "internal server error")
	}
}
