package auth

import (
	"context"

	"github.com/taskdeck/taskdeck/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const principalKey contextKey = "principal"

// Principal is the per-request authorization context. It is either
// anonymous (User is nil) or authenticated as a resolved user. It lives
// for exactly one request and is always threaded explicitly.
type Principal struct {
	User *model.User
}

// Anonymous returns the unauthenticated principal.
func Anonymous() *Principal {
	return &Principal{}
}

// Authenticated returns a principal for a resolved user.
func Authenticated(user *model.User) *Principal {
	return &Principal{User: user}
}

// IsAuthenticated reports whether the principal carries an identity.
func (p *Principal) IsAuthenticated() bool {
	return p != nil && p.User != nil
}

// ContextWithPrincipal stores the principal in the context.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext retrieves the principal from the context.
// Requests that did not pass through the identity middleware resolve
// to the anonymous principal.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, ok := ctx.Value(principalKey).(*Principal)
	if !ok || p == nil {
		return Anonymous()
	}
	return p
}
