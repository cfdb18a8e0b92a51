// Package redis keeps revoked token ids in Redis until the token expires.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "staffly:revoked:"

// Denylist implements auth.Revoker on top of a Redis client.
type Denylist struct {
	client    *redis.Client
	keyPrefix string
	now       func() time.Time
}

// Open parses url (redis://...), connects, and verifies the server answers.
func Open(ctx context.Context, url string) (*Denylist, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewDenylist(client, ""), nil
}

// NewDenylist wraps an existing client. keyPrefix defaults to "staffly:revoked:".
func NewDenylist(client *redis.Client, keyPrefix string) *Denylist {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &Denylist{client: client, keyPrefix: keyPrefix, now: time.Now}
}

// Revoke marks tokenID as revoked until the given time. Already expired
// tokens are skipped.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID is on the list.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}

func (d *Denylist) Ping(ctx context.Context) error {
	return d.client.Ping(ctx).Err()
}

func (d *Denylist) Close() error {
	return d.client.Close()
}

func (d *Denylist) key(tokenID string) string {
	return d.keyPrefix + tokenID
}
