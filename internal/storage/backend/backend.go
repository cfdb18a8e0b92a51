// Package backend picks a storage implementation from a connection URL.
package backend

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/hongminglow/staffly-be/internal/storage"
	"github.com/hongminglow/staffly-be/internal/storage/memory"
	"github.com/hongminglow/staffly-be/internal/storage/mongodb"
	"github.com/hongminglow/staffly-be/internal/storage/postgres"
)

// Kind names a storage implementation.
type Kind string

const (
	KindMemory   Kind = "memory"
	KindPostgres Kind = "postgres"
	KindMongo    Kind = "mongodb"
)

// Detect maps a DATABASE_URL scheme to a Kind.
func Detect(databaseURL string) (Kind, error) {
	u, err := url.Parse(strings.TrimSpace(databaseURL))
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "memory":
		return KindMemory, nil
	case "postgres", "postgresql":
		return KindPostgres, nil
	case "mongodb", "mongodb+srv":
		return KindMongo, nil
	default:
		return "", fmt.Errorf("unsupported database url scheme %q", u.Scheme)
	}
}

// Open connects to the store named by databaseURL. mongoDatabase is only used
// for Mongo URLs.
func Open(ctx context.Context, databaseURL, mongoDatabase string) (storage.Store, Kind, error) {
	kind, err := Detect(databaseURL)
	if err != nil {
		return nil, "", err
	}

	var store storage.Store
	switch kind {
	case KindMemory:
		store = memory.New()
	case KindPostgres:
		store, err = postgres.NewStore(ctx, databaseURL)
	case KindMongo:
		store, err = mongodb.NewStore(ctx, databaseURL, mongoDatabase)
	}
	if err != nil {
		return nil, "", err
	}
	return store, kind, nil
}
