package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPrefixDefault(t *testing.T) {
	d := NewDenylist(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "")
	t.Cleanup(func() { _ = d.Close() })
	assert.Equal(t, "staffly:revoked:abc", d.key("abc"))
}

func TestRevokeSkipsExpiredTokens(t *testing.T) {
	// No round trip happens for a token that has already expired, so an
	// unreachable client is fine here.
	d := NewDenylist(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "test:")
	t.Cleanup(func() { _ = d.Close() })
	assert.NoError(t, d.Revoke(context.Background(), "gone", time.Now().Add(-time.Minute)))
}

func TestDenylistIntegration(t *testing.T) {
	if os.Getenv("RUN_STORE_INTEGRATION") != "true" {
		t.Skip("set RUN_STORE_INTEGRATION=true to run against a live Redis")
	}
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	d, err := Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	id := uuid.NewString()
	revoked, err := d.IsRevoked(ctx, id)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, id, time.Now().Add(time.Minute)))
	revoked, err = d.IsRevoked(ctx, id)
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := d.client.TTL(ctx, d.key(id)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
