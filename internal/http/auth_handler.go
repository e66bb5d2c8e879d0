package http

import (
	"encoding/json"
	"net/http"

	"github.com/agencydesk/agencydesk/internal/domain"
	"github.com/agencydesk/agencydesk/internal/service"
	"github.com/agencydesk/agencydesk/pkg/logger"
)

type AuthHandler struct {
	service *service.AuthService
	logger  logger.Logger
}

func NewAuthHandler(service *service.AuthService, logger logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth.signIn", h.handleSignIn)
	mux.HandleFunc("/api/auth.signInOAuth", h.handleSignInOAuth)
	mux.HandleFunc("/api/auth.signOut", h.handleSignOut)
	mux.HandleFunc("/api/auth.session", h.handleSession)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.SignInWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		if _, ok := err.(domain.ValidationError); ok {
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to sign in")
		WriteJSONError(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
	})
}

type signInOAuthRequest struct {
	Provider string `json:"provider"`
}

func (h *AuthHandler) handleSignInOAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req signInOAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.SignInWithOAuth(r.Context(), req.Provider)
	if err != nil {
		if _, ok := err.(domain.ValidationError); ok {
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to sign in with OAuth")
		WriteJSONError(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
	})
}

func (h *AuthHandler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.service.SignOut(r.Context()); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to sign out")
		WriteJSONError(w, "Failed to sign out", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *AuthHandler) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := h.service.GetSession()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
	})
}
