package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/SSHRIHARI006/GyanForge/internal/app"
	"github.com/SSHRIHARI006/GyanForge/internal/domain"
)

type AuthHandler struct {
	auth *app.AuthService
	log  *zap.Logger
}

func NewAuthHandler(auth *app.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.log, w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.auth.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		respondDomainError(h.log, w, err)
		return
	}
	respondJSON(h.log, w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.log, w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(h.log, w, err)
		return
	}
	respondJSON(h.log, w, http.StatusOK, authResponse{Token: token, User: user})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(h.log, w, http.StatusUnauthorized, "authentication required")
		return
	}
	respondJSON(h.log, w, http.StatusOK, user)
}
