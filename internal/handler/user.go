package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/taskdeck/taskdeck/internal/handler/dto"
	"github.com/taskdeck/taskdeck/internal/service"
)

// minPasswordLength is the floor for new account passwords.
const minPasswordLength = 8

// UserHandler handles HTTP requests for account registration.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// Register handles POST /api/users/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}

	if msg, ok := validateRegister(req); !ok {
		writeValidationError(w, msg)
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("user registered", slog.Int64("user_id", user.ID))

	writeJSON(w, http.StatusCreated, dto.MessageResponse{
		Message: "User registered successfully",
	})
}

func validateRegister(req dto.RegisterRequest) (string, bool) {
	if strings.TrimSpace(req.Name) == "" {
		return "Name is required", false
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return "Email is required", false
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "Email is not valid", false
	}
	if len(req.Password) < minPasswordLength {
		return "Password must be at least 8 characters", false
	}
	return "", true
}
