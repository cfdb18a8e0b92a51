package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/staffly-be/internal/ids"
	"github.com/hongminglow/staffly-be/internal/storage"
	"github.com/hongminglow/staffly-be/internal/storage/storagetest"
)

func TestStoreConformance(t *testing.T) {
	if os.Getenv("RUN_STORE_INTEGRATION") != "true" {
		t.Skip("set RUN_STORE_INTEGRATION=true to run against a live Postgres")
	}
	url := os.Getenv("POSTGRES_URL")
	if url == "" {
		t.Skip("POSTGRES_URL not set")
	}

	storagetest.Run(t, func(t *testing.T) storage.Store {
		ctx := context.Background()
		store, err := NewStore(ctx, url)
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close(context.Background()) })

		require.NoError(t, store.Migrate(ctx))
		_, err = store.db.ExecContext(ctx, `TRUNCATE users, payrolls, tasks`)
		require.NoError(t, err)
		return store
	}, ids.New())
}
