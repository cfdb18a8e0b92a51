package auth

import (
	"context"
	"time"

	"github.com/hongminglow/staffly-be/internal/models"
)

// Identity is the verified caller attached to a request.
type Identity struct {
	UserID    string
	Email     string
	Role      models.Role
	TokenID   string
	ExpiresAt time.Time
}

func identityFromClaims(c *Claims) Identity {
	id := Identity{
		UserID:  c.Subject,
		Email:   c.Email,
		Role:    c.Role,
		TokenID: c.ID,
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
	}
	return id
}

type identityContextKey struct{}
type tokenContextKey struct{}

// ContextWithIdentity attaches the verified caller to the context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, &id)
}

// IdentityFromContext extracts the verified caller from the context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	v, ok := ctx.Value(identityContextKey{}).(*Identity)
	if !ok || v == nil {
		return Identity{}, false
	}
	return *v, true
}

// ContextWithToken stores the raw bearer token inside the context.
func ContextWithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext returns the bearer token if it was previously attached.
func TokenFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(tokenContextKey{}).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
