package migrations

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursemap/internal/db"
)

func TestMigrate_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	database, err := db.Open(ctx, "sqlite://:memory:", db.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	migrator := NewMigrator(database, zerolog.Nop())
	require.NoError(t, migrator.Migrate(ctx))
	require.NoError(t, migrator.Migrate(ctx))

	var applied int
	require.NoError(t, database.DB.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 1, applied)

	for _, table := range []string{"courses", "prerequisites", "users", "student_progress"} {
		var n int
		err := database.DB.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}
}

func TestMigrate_SchemaRejectsSelfPrerequisite(t *testing.T) {
	ctx := context.Background()
	database, err := db.Open(ctx, "sqlite://:memory:", db.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, NewMigrator(database, zerolog.Nop()).Migrate(ctx))

	_, err = database.DB.Exec(`INSERT INTO courses (id, name, cycle, credits) VALUES ('A', 'Intro', 1, 4)`)
	require.NoError(t, err)

	_, err = database.DB.Exec(`INSERT INTO prerequisites (course_id, requirement_id) VALUES ('A', 'A')`)
	assert.Error(t, err)

	_, err = database.DB.Exec(`INSERT INTO prerequisites (course_id, requirement_id) VALUES ('A', 'missing')`)
	assert.Error(t, err, "foreign keys must be enforced")
}

func TestSplitStatements(t *testing.T) {
	statements := splitStatements(`
-- comment only
CREATE TABLE a (id INT);

CREATE INDEX i ON a(id);
`)
	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE INDEX i ON a(id)"}, statements)
}
