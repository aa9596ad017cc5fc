// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursemap/internal/app/migrations"
	"github.com/yigit/coursemap/internal/db"
)

// Open returns a fresh, fully migrated SQLite database that is closed when t ends.
func Open(t testing.TB) *db.Database {
	t.Helper()

	ctx := context.Background()
	database, err := db.Open(ctx, "sqlite://:memory:", db.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, migrations.NewMigrator(database, zerolog.Nop()).Migrate(ctx))
	return database
}
