package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/handler/dto"
	"github.com/taskdeck/taskdeck/internal/metrics"
)

// AuthHandler handles HTTP requests for the session lifecycle.
type AuthHandler struct {
	sessions *auth.SessionManager
	metrics  metrics.Recorder
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions *auth.SessionManager, recorder metrics.Recorder, logger *slog.Logger) *AuthHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthHandler{sessions: sessions, metrics: recorder, logger: logger}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeValidationError(w, "Email and password are required")
		return
	}

	if err := h.sessions.Login(r.Context(), w, strings.TrimSpace(req.Email), req.Password); err != nil {
		// Infrastructure trouble is not a failed login attempt.
		if apperr.KindOf(err) == apperr.KindAuthenticationFailed {
			h.metrics.IncLoginFailure()
		}
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.metrics.IncLoginSuccess()

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Login successful"})
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Refresh(w, r); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.metrics.IncTokenRefreshed()

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Token refreshed"})
}

// Logout handles POST /api/auth/logout. Always succeeds, with or
// without a live session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(w)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Logout successful"})
}
