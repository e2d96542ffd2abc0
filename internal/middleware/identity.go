package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/token"
)

// UserFinder is the slice of the user store the identity resolver needs.
type UserFinder interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// IdentityConfig holds configuration for the identity middleware.
type IdentityConfig struct {
	Logger *slog.Logger
	Tokens *token.Service
	Users  UserFinder
}

// Identity resolves the caller's identity from the access-token cookie
// and injects it into the request context. It never rejects a request:
// a missing, invalid, or unresolvable token leaves the request
// anonymous, and denial is enforced downstream by the ownership guard.
func Identity(cfg IdentityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := auth.Anonymous()

			if cookie, err := r.Cookie(auth.AccessTokenCookie); err == nil && cookie.Value != "" {
				principal = cfg.resolve(r.Context(), cookie.Value)
			}

			ctx := auth.ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (cfg IdentityConfig) resolve(ctx context.Context, tokenString string) *auth.Principal {
	if !cfg.Tokens.Validate(tokenString) {
		return auth.Anonymous()
	}

	subject, err := cfg.Tokens.Subject(tokenString)
	if err != nil {
		return auth.Anonymous()
	}

	user, err := cfg.Users.GetUserByEmail(ctx, subject)
	if err != nil {
		cfg.Logger.Debug("token subject did not resolve to a user",
			slog.String("error", err.Error()),
		)
		return auth.Anonymous()
	}

	return auth.Authenticated(user)
}
