package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/staffly-be/internal/models"
)

var hrUser = models.User{ID: "01J8Z3Q9Y6X1M2N3P4Q5R6S7T8", Email: "hr@x.com", Role: models.RoleHR}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", "staffly", time.Hour)
	tok, expiresAt, err := tm.Issue(hrUser)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	id, err := tm.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, hrUser.ID, id.UserID)
	assert.Equal(t, "hr@x.com", id.Email)
	assert.Equal(t, models.RoleHR, id.Role)
	assert.NotEmpty(t, id.TokenID)
}

func TestVerifyRejects(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("right-secret", "staffly", time.Hour)
	good, _, err := tm.Issue(hrUser)
	require.NoError(t, err)

	expired := NewTokenManager("right-secret", "staffly", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredTok, _, err := expired.Issue(hrUser)
	require.NoError(t, err)

	wrongSecret, _, err := NewTokenManager("other-secret", "staffly", time.Hour).Issue(hrUser)
	require.NoError(t, err)

	wrongIssuer, _, err := NewTokenManager("right-secret", "someone-else", time.Hour).Issue(hrUser)
	require.NoError(t, err)

	parts := strings.Split(good, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "staffly",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			ID:        "x",
		},
		Email: "hr@x.com",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"empty":        "",
		"malformed":    "not-a-jwt",
		"expired":      expiredTok,
		"wrong secret": wrongSecret,
		"wrong issuer": wrongIssuer,
		"tampered":     tampered,
		"alg none":     none,
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tm.Verify(context.Background(), tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

type memoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func (m *memoryRevoker) Revoke(_ context.Context, id string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.revoked == nil {
		m.revoked = map[string]time.Time{}
	}
	m.revoked[id] = until
	return nil
}

func (m *memoryRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[id]
	return ok, m.err
}

func TestInvalidateRevokesUntilExpiry(t *testing.T) {
	t.Parallel()

	rev := &memoryRevoker{}
	tm := NewTokenManager("secret", "staffly", time.Hour).WithRevoker(rev)
	tok, expiresAt, err := tm.Issue(hrUser)
	require.NoError(t, err)

	_, err = tm.Verify(context.Background(), tok)
	require.NoError(t, err)

	require.NoError(t, tm.Invalidate(context.Background(), tok))
	_, err = tm.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
	require.Len(t, rev.revoked, 1)
	for _, until := range rev.revoked {
		assert.WithinDuration(t, expiresAt, until, time.Second)
	}

	// Garbage is ignored rather than reported.
	assert.NoError(t, tm.Invalidate(context.Background(), "garbage"))
}

func TestInvalidateWithoutRevokerKeepsTokenValid(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", "staffly", time.Hour)
	tok, _, err := tm.Issue(hrUser)
	require.NoError(t, err)

	require.NoError(t, tm.Invalidate(context.Background(), tok))
	_, err = tm.Verify(context.Background(), tok)
	assert.NoError(t, err)
}

func TestVerifySurfacesRevokerFailure(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", "staffly", time.Hour).WithRevoker(&memoryRevoker{err: errors.New("redis down")})
	tok, _, err := tm.Issue(hrUser)
	require.NoError(t, err)

	_, err = tm.Verify(context.Background(), tok)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)

	ctx := ContextWithIdentity(context.Background(), Identity{Email: "a@x.com"})
	ctx = ContextWithToken(ctx, "tok")
	id, ok := IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", id.Email)
	tok, ok := TokenFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok", tok)
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NoError(t, VerifyPassword(hash, "correct horse"))
	assert.Error(t, VerifyPassword(hash, "battery staple"))
	assert.Error(t, VerifyPassword("", "anything"))
}
