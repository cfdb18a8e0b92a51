package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/hongminglow/staffly-be/internal/apperr"
	"github.com/hongminglow/staffly-be/internal/auth"
	"github.com/hongminglow/staffly-be/internal/http/respond"
	"github.com/hongminglow/staffly-be/internal/models"
	"github.com/hongminglow/staffly-be/internal/obs"
	"github.com/hongminglow/staffly-be/internal/storage"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "

	msgUnauthorized = "Unauthorized access"
	msgForbidden    = "Forbidden access"
)

// Verifier checks a bearer token and returns the caller it identifies.
type Verifier interface {
	Verify(ctx context.Context, token string) (auth.Identity, error)
}

// Guard is the access control layer: token authentication, role checks
// against the stored user, and ownership checks.
type Guard struct {
	tokens  Verifier
	users   storage.UserStore
	metrics *obs.Metrics
}

// NewGuard builds a Guard. metrics may be nil.
func NewGuard(tokens Verifier, users storage.UserStore, metrics *obs.Metrics) *Guard {
	return &Guard{tokens: tokens, users: users, metrics: metrics}
}

// Authenticate requires a valid bearer token and stores the caller's identity
// in the request context.
func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			g.deny(w, obs.DenyNoToken, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		id, err := g.tokens.Verify(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				g.deny(w, obs.DenyInvalidToken, http.StatusUnauthorized, msgUnauthorized)
				return
			}
			slog.ErrorContext(r.Context(), "token verification failed", "error", err)
			respond.InternalError(w)
			return
		}

		ctx := auth.ContextWithIdentity(r.Context(), id)
		ctx = auth.ContextWithToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole admits callers whose stored role is one of roles. It must run
// after Authenticate. Fired users are refused even if their token is valid.
func (g *Guard) RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.IdentityFromContext(r.Context())
			if !ok {
				g.deny(w, obs.DenyNoToken, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			user, err := g.users.FindByEmail(r.Context(), id.Email)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					g.deny(w, obs.DenyRole, http.StatusForbidden, msgForbidden)
					return
				}
				respond.FromError(w, r, err)
				return
			}
			if !user.Active() || !slices.Contains(roles, user.Role) {
				g.deny(w, obs.DenyRole, http.StatusForbidden, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSelf fails with Forbidden unless the caller's email is email.
func (g *Guard) RequireSelf(ctx context.Context, email string) error {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		g.metrics.AccessDenied(obs.DenyNoToken)
		return apperr.Unauthorized(msgUnauthorized)
	}
	if !strings.EqualFold(id.Email, strings.TrimSpace(email)) {
		g.metrics.AccessDenied(obs.DenyNotOwner)
		return apperr.Forbidden(msgForbidden)
	}
	return nil
}

// RequireSelfPath applies RequireSelf to the {name} path value.
func (g *Guard) RequireSelfPath(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := g.RequireSelf(r.Context(), r.PathValue(name)); err != nil {
				respond.FromError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (g *Guard) deny(w http.ResponseWriter, reason string, status int, message string) {
	g.metrics.AccessDenied(reason)
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="staffly"`)
	}
	respond.Error(w, status, message)
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if len(header) < len(bearer) || !strings.EqualFold(header[:len(bearer)], bearer) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

// Chain applies middlewares so the first one listed runs first.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
