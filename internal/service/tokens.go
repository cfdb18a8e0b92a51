package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hongminglow/staffly-be/internal/apperr"
	"github.com/hongminglow/staffly-be/internal/auth"
	"github.com/hongminglow/staffly-be/internal/models"
	"github.com/hongminglow/staffly-be/internal/models/dto"
	"github.com/hongminglow/staffly-be/internal/obs"
	"github.com/hongminglow/staffly-be/internal/storage"
)

const invalidCredentials = "Invalid credentials"

// TokenIssuer is the part of auth.TokenManager used for login and logout.
type TokenIssuer interface {
	Issue(user models.User) (string, time.Time, error)
	Invalidate(ctx context.Context, token string) error
}

// Tokens exchanges credentials for access tokens.
type Tokens struct {
	users             storage.UserStore
	tokens            TokenIssuer
	metrics           *obs.Metrics
	allowPasswordless bool
}

func NewTokens(users storage.UserStore, tokens TokenIssuer, metrics *obs.Metrics, allowPasswordless bool) *Tokens {
	return &Tokens{users: users, tokens: tokens, metrics: metrics, allowPasswordless: allowPasswordless}
}

// Issue authenticates req against the stored user and signs a token whose
// claims come from that record.
func (s *Tokens) Issue(ctx context.Context, req dto.TokenRequest) (string, time.Time, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return "", time.Time{}, apperr.BadRequest("email is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", time.Time{}, apperr.Unauthorized(invalidCredentials)
		}
		return "", time.Time{}, storeError(err, "")
	}

	switch {
	case user.PasswordHash != "":
		if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
			return "", time.Time{}, apperr.Unauthorized(invalidCredentials)
		}
	case !s.allowPasswordless:
		slog.InfoContext(ctx, "passwordless token refused", "email", email)
		return "", time.Time{}, apperr.Unauthorized(invalidCredentials)
	}
	if !user.Active() {
		return "", time.Time{}, apperr.Forbidden("Account is deactivated")
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return "", time.Time{}, apperr.Wrap(apperr.CodeInternal, "failed to generate token", err)
	}
	s.metrics.TokenIssued()
	return token, expiresAt, nil
}

// Logout revokes token when a revocation list is configured.
func (s *Tokens) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Invalidate(ctx, token); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to revoke token", err)
	}
	return nil
}
