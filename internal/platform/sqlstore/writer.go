package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/store"
)

const insertUserQuery = `
INSERT INTO users (name, email, created_at)
VALUES (?, ?, ?)
RETURNING id`

const insertTaskQuery = `
INSERT INTO tasks (
	title, description, status, priority, user_id, assigned_to, due_date,
	metadata, estimated_hours, actual_hours, category, notes, created_at, updated_at
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`

const insertCommentQuery = `
INSERT INTO task_comments (task_id, user_id, comment, attachments, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id`

// TaskWriter implements store.TaskWriter.
type TaskWriter struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
	now     func() time.Time
}

// NewTaskWriter creates a TaskWriter. db may be a *sql.DB or *sql.Tx.
// If logger is nil, a default logger will be used.
func NewTaskWriter(db store.DBTX, dialect Dialect, logger *slog.Logger) *TaskWriter {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskWriter{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "task_writer")),
		now:     time.Now,
	}
}

// Ensure TaskWriter implements store.TaskWriter interface
var _ store.TaskWriter = (*TaskWriter)(nil)

// CreateUser implements store.TaskWriter.CreateUser.
func (w *TaskWriter) CreateUser(ctx context.Context, user *domain.User) error {
	if strings.TrimSpace(user.Name) == "" || strings.TrimSpace(user.Email) == "" {
		return store.NewStoreError("user", "create", "name and email are required", store.ErrInvalidEntity)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = w.now().UTC()
	}

	err := w.db.QueryRowContext(ctx, w.dialect.rebind(insertUserQuery),
		user.Name, user.Email, w.dialect.timeArg(user.CreatedAt),
	).Scan(&user.ID)
	if err != nil {
		return store.NewStoreError("user", "create", "insert failed", w.dialect.mapError(err))
	}
	return nil
}

// CreateTask implements store.TaskWriter.CreateTask.
func (w *TaskWriter) CreateTask(ctx context.Context, task *domain.Task) error {
	if err := validateTask(task); err != nil {
		return store.NewStoreError("task", "create", err.Error(), store.ErrInvalidEntity)
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = w.now().UTC()
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}

	metadata, err := jsonArg(task.Metadata, len(task.Metadata) == 0)
	if err != nil {
		return store.NewStoreError("task", "create", "encode metadata", err)
	}

	var due any
	if task.DueDate != nil {
		due = w.dialect.timeArg(*task.DueDate)
	}

	err = w.db.QueryRowContext(ctx, w.dialect.rebind(insertTaskQuery),
		task.Title,
		stringArg(task.Description),
		string(task.Status),
		string(task.Priority),
		task.OwnerID,
		int64Arg(task.AssigneeID),
		due,
		metadata,
		float64Arg(task.EstimatedHours),
		float64Arg(task.ActualHours),
		stringArg(task.Category),
		stringArg(task.Notes),
		w.dialect.timeArg(task.CreatedAt),
		w.dialect.timeArg(task.UpdatedAt),
	).Scan(&task.ID)
	if err != nil {
		return store.NewStoreError("task", "create", "insert failed", w.dialect.mapError(err))
	}
	return nil
}

// CreateComment implements store.TaskWriter.CreateComment.
func (w *TaskWriter) CreateComment(ctx context.Context, comment *domain.TaskComment) error {
	if comment.TaskID <= 0 || comment.AuthorID <= 0 {
		return store.NewStoreError("comment", "create", "task and author are required", store.ErrInvalidEntity)
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = w.now().UTC()
	}

	attachments, err := jsonArg(comment.Attachments, len(comment.Attachments) == 0)
	if err != nil {
		return store.NewStoreError("comment", "create", "encode attachments", err)
	}

	err = w.db.QueryRowContext(ctx, w.dialect.rebind(insertCommentQuery),
		comment.TaskID,
		comment.AuthorID,
		stringArg(comment.Content),
		attachments,
		w.dialect.timeArg(comment.CreatedAt),
	).Scan(&comment.ID)
	if err != nil {
		return store.NewStoreError("comment", "create", "insert failed", w.dialect.mapError(err))
	}
	return nil
}

func validateTask(task *domain.Task) error {
	switch {
	case strings.TrimSpace(task.Title) == "":
		return fmt.Errorf("title is required")
	case !task.Status.Valid():
		return fmt.Errorf("unknown status %q", task.Status)
	case !task.Priority.Valid():
		return fmt.Errorf("unknown priority %q", task.Priority)
	case task.OwnerID <= 0:
		return fmt.Errorf("owner is required")
	}
	return nil
}

func jsonArg(v any, empty bool) (any, error) {
	if empty {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
