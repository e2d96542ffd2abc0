package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/internal/token"
)

// Cookie names for the two token transport artifacts.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// UserFinder is the slice of the user store the session manager needs.
type UserFinder interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// SessionManager orchestrates the login, refresh, and logout
// transitions. Tokens are bearer-style: there is no server-side session
// or refresh-token store, so logout only clears the client's cookies
// and an outstanding refresh token stays usable until it expires.
type SessionManager struct {
	users        UserFinder
	tokens       *token.Service
	logger       *slog.Logger
	cookieSecure bool
}

// NewSessionManager creates a SessionManager.
func NewSessionManager(users UserFinder, tokens *token.Service, logger *slog.Logger, cookieSecure bool) *SessionManager {
	return &SessionManager{
		users:        users,
		tokens:       tokens,
		logger:       logger,
		cookieSecure: cookieSecure,
	}
}

// Login verifies the credentials and, on success, sets both token
// cookies on the response. An unknown email and a wrong password fail
// identically so the response never reveals which one it was.
func (m *SessionManager) Login(ctx context.Context, w http.ResponseWriter, email, password string) error {
	user, err := m.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperr.New(apperr.KindAuthenticationFailed, "Invalid credentials")
		}
		return apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}

	match, err := VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		return apperr.New(apperr.KindAuthenticationFailed, "Invalid credentials")
	}

	accessToken, err := m.tokens.IssueAccess(user.Email)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}

	refreshToken, err := m.tokens.IssueRefresh(user.Email)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}

	m.setCookie(w, AccessTokenCookie, accessToken, int(m.tokens.AccessTTL().Seconds()))
	m.setCookie(w, RefreshTokenCookie, refreshToken, int(m.tokens.RefreshTTL().Seconds()))

	m.logger.Info("user logged in", slog.Int64("user_id", user.ID))

	return nil
}

// Refresh validates the refresh-token cookie and, if valid, sets a
// fresh access-token cookie for the same subject. The refresh token is
// not rotated.
func (m *SessionManager) Refresh(w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		return apperr.New(apperr.KindAuthenticationFailed, "Missing or invalid refresh token")
	}

	if !m.tokens.Validate(cookie.Value) {
		return apperr.New(apperr.KindAuthenticationFailed, "Missing or invalid refresh token")
	}

	subject, err := m.tokens.Subject(cookie.Value)
	if err != nil {
		return apperr.New(apperr.KindAuthenticationFailed, "Missing or invalid refresh token")
	}

	accessToken, err := m.tokens.IssueAccess(subject)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}

	m.setCookie(w, AccessTokenCookie, accessToken, int(m.tokens.AccessTTL().Seconds()))

	return nil
}

// Logout overwrites both token cookies with empty values and zero
// max-age, expiring them client-side immediately. Idempotent.
func (m *SessionManager) Logout(w http.ResponseWriter) {
	m.expireCookie(w, AccessTokenCookie)
	m.expireCookie(w, RefreshTokenCookie)
}

func (m *SessionManager) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *SessionManager) expireCookie(w http.ResponseWriter, name string) {
	// MaxAge < 0 serializes as "Max-Age=0", expiring the cookie now.
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
