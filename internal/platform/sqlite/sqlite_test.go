package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/platform/sqlstore"
	"github.com/withoutfanfare/developer-test/internal/store"
)

func TestOpenMemory_MigratesSchema(t *testing.T) {
	db, err := OpenMemory(context.Background(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, table := range []string{"users", "tasks", "task_comments", sqlstore.MigrationTableName} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}

	var indexes int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name LIKE 'idx_%'`,
	).Scan(&indexes))
	assert.Equal(t, 8, indexes)
}

func TestUnicodeLower(t *testing.T) {
	db, err := OpenMemory(context.Background(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tests := []struct {
		in   any
		want any
	}{
		{in: "ÉMILE Zola", want: "émile zola"},
		{in: "ÄÖÜ", want: "äöü"},
		{in: "plain", want: "plain"},
		{in: nil, want: nil},
	}

	for _, tc := range tests {
		var got any
		require.NoError(t, db.QueryRow(`SELECT `+LowerFunc+`(?)`, tc.in).Scan(&got))
		assert.Equal(t, tc.want, got, "%v", tc.in)
	}

	var builtin string
	require.NoError(t, db.QueryRow(`SELECT LOWER('É')`).Scan(&builtin))
	assert.Equal(t, "É", builtin, "built-in LOWER leaves non-ASCII alone")
}

func TestMapError_Constraints(t *testing.T) {
	ctx := context.Background()
	db, err := OpenMemory(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	w := sqlstore.NewTaskWriter(db, Dialect(), nil)

	require.NoError(t, w.CreateUser(ctx, &domain.User{Name: "Ada", Email: "ada@example.com"}))

	err = w.CreateUser(ctx, &domain.User{Name: "Ada Again", Email: "ada@example.com"})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	err = w.CreateTask(ctx, &domain.Task{
		Title:    "orphan",
		Status:   domain.TaskStatusPending,
		Priority: domain.TaskPriorityLow,
		OwnerID:  9999,
	})
	assert.ErrorIs(t, err, store.ErrInvalidEntity, "foreign keys must be enforced")
}

func TestIsMemory(t *testing.T) {
	assert.True(t, IsMemory(":memory:"))
	assert.True(t, IsMemory("file::memory:?cache=shared"))
	assert.True(t, IsMemory("file:reports?mode=memory"))
	assert.False(t, IsMemory("file:/var/lib/tasks.db"))
}

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, "tasks.db?_pragma=foreign_keys(1)", withForeignKeys("tasks.db"))
	assert.Equal(t, "file:tasks.db?mode=ro&_pragma=foreign_keys(1)", withForeignKeys("file:tasks.db?mode=ro"))
	assert.Equal(t, "x.db?_pragma=foreign_keys(0)", withForeignKeys("x.db?_pragma=foreign_keys(0)"))
}
