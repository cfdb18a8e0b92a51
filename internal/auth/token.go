package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hongminglow/staffly-be/internal/models"
)

// ErrInvalidToken covers every reason a bearer token is rejected.
var ErrInvalidToken = errors.New("invalid token")

// Revoker records token ids that must no longer be accepted.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Claims are the signed token contents. Email and role are copied from the
// stored user when the token is issued.
type Claims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// TokenManager issues and verifies signed JWTs.
type TokenManager struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	revoker Revoker
	now     func() time.Time
}

// NewTokenManager creates a manager with the provided secret, issuer, and lifetime.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithRevoker enables server-side invalidation.
func (t *TokenManager) WithRevoker(r Revoker) *TokenManager {
	t.revoker = r
	return t
}

// Issue signs a token for user and reports when it expires.
func (t *TokenManager) Issue(user models.User) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
		Email: user.Email,
		Role:  user.Role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, algorithm, issuer, lifetime, and revocation.
func (t *TokenManager) Verify(ctx context.Context, token string) (Identity, error) {
	claims, err := t.parse(token)
	if err != nil {
		return Identity{}, err
	}
	if t.revoker != nil {
		revoked, err := t.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return Identity{}, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return Identity{}, ErrInvalidToken
		}
	}
	return identityFromClaims(claims), nil
}

// Invalidate revokes token until its natural expiry. Without a revoker it is
// a no-op and the token stays valid until it expires.
func (t *TokenManager) Invalidate(ctx context.Context, token string) error {
	if t.revoker == nil || token == "" {
		return nil
	}
	claims, err := t.parse(token)
	if err != nil {
		// Nothing to revoke for a token that would be refused anyway.
		return nil
	}
	return t.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (t *TokenManager) parse(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
