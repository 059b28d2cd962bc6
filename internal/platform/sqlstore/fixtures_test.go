package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/platform/sqlite"
	"github.com/withoutfanfare/developer-test/internal/platform/sqlstore"
)

var base = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	t      *testing.T
	ctx    context.Context
	db     *sql.DB
	writer *sqlstore.TaskWriter
	store  *sqlstore.ReportStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.OpenMemory(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &fixture{
		t:      t,
		ctx:    ctx,
		db:     db,
		writer: sqlstore.NewTaskWriter(db, sqlite.Dialect(), nil),
		store:  sqlstore.NewReportStore(sqlx.NewDb(db, sqlite.DriverName), sqlite.Dialect(), nil),
	}
}

func (f *fixture) user(name, email string) domain.User {
	f.t.Helper()
	u := domain.User{Name: name, Email: email, CreatedAt: base.AddDate(-1, 0, 0)}
	require.NoError(f.t, f.writer.CreateUser(f.ctx, &u))
	return u
}

type taskOption func(*domain.Task)

func withCategory(c string) taskOption {
	return func(t *domain.Task) { t.Category = &c }
}

func withStatus(s domain.TaskStatus) taskOption {
	return func(t *domain.Task) { t.Status = s }
}

func withPriority(p domain.TaskPriority) taskOption {
	return func(t *domain.Task) { t.Priority = p }
}

func withActualHours(h float64) taskOption {
	return func(t *domain.Task) { t.ActualHours = &h }
}

func withAssignee(id int64) taskOption {
	return func(t *domain.Task) { t.AssigneeID = &id }
}

func withMetadata(m map[string]any) taskOption {
	return func(t *domain.Task) { t.Metadata = m }
}

func (f *fixture) task(ownerID int64, createdAt time.Time, opts ...taskOption) domain.Task {
	f.t.Helper()
	task := domain.Task{
		Title:     "Task created " + createdAt.Format(time.RFC3339),
		Status:    domain.TaskStatusPending,
		Priority:  domain.TaskPriorityMedium,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
	}
	for _, opt := range opts {
		opt(&task)
	}
	require.NoError(f.t, f.writer.CreateTask(f.ctx, &task))
	return task
}

func (f *fixture) comment(taskID, authorID int64, content *string, at time.Time) domain.TaskComment {
	f.t.Helper()
	c := domain.TaskComment{TaskID: taskID, AuthorID: authorID, Content: content, CreatedAt: at}
	require.NoError(f.t, f.writer.CreateComment(f.ctx, &c))
	return c
}

func strPtr(s string) *string { return &s }

func lastWeek() (time.Time, time.Time) {
	return domain.StartOfDay(base.AddDate(0, 0, -7)), domain.EndOfDay(base)
}
