package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/metrics"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// UserService handles account registration.
type UserService struct {
	users   UserStore
	metrics metrics.Recorder
}

// NewUserService creates a UserService.
func NewUserService(users UserStore, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{users: users, metrics: recorder}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new account with a hashed password.
// A duplicate email fails with CONFLICT.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", fmt.Errorf("hash password: %w", err))
	}

	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, apperr.New(apperr.KindConflict, "Email is already registered")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}
