package migrations

import "embed"

// FS holds the goose migrations applied by the postgres store.
//
//go:embed *.sql
var FS embed.FS
