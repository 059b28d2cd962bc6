package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/perf"
	"github.com/withoutfanfare/developer-test/internal/store"
)

const tasksQuery = `
SELECT
	t.id, t.title, t.description, t.status, t.priority, t.user_id, t.assigned_to,
	t.due_date, t.estimated_hours, t.actual_hours, t.category, t.metadata, t.notes,
	t.created_at, t.updated_at,
	o.id AS owner_ref_id, o.name AS owner_name, o.email AS owner_email,
	a.id AS assignee_ref_id, a.name AS assignee_name, a.email AS assignee_email
FROM tasks t
LEFT JOIN users o ON o.id = t.user_id
LEFT JOIN users a ON a.id = t.assigned_to
WHERE t.created_at BETWEEN ? AND ?%s
ORDER BY t.created_at DESC, t.id DESC`

const commentsQuery = `
SELECT c.id, c.task_id, c.user_id, c.comment, c.attachments, c.created_at
FROM task_comments c
JOIN tasks t ON t.id = c.task_id%s
WHERE t.created_at BETWEEN ? AND ?%s
ORDER BY c.task_id, c.created_at, c.id`

const ownerJoin = `
LEFT JOIN users o ON o.id = t.user_id`

const ownerNamePredicate = `
	AND %s LIKE ? ESCAPE '\'`

const categoryQuery = `
SELECT category, COUNT(*) AS task_count, CAST(AVG(actual_hours) AS DOUBLE PRECISION) AS avg_hours
FROM tasks
WHERE created_at BETWEEN ? AND ? AND category IS NOT NULL
GROUP BY category`

const userQuery = `
SELECT user_id, COUNT(*) AS total_tasks,
	SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS completed_tasks
FROM tasks
WHERE created_at BETWEEN ? AND ?
GROUP BY user_id`

const priorityQuery = `
SELECT priority AS bucket, COUNT(*) AS task_count
FROM tasks
WHERE created_at BETWEEN ? AND ?
GROUP BY priority`

const statusQuery = `
SELECT status AS bucket, COUNT(*) AS task_count
FROM tasks
WHERE created_at BETWEEN ? AND ?
GROUP BY status`

type taskRow struct {
	ID             int64           `db:"id"`
	Title          string          `db:"title"`
	Description    sql.NullString  `db:"description"`
	Status         string          `db:"status"`
	Priority       string          `db:"priority"`
	OwnerID        int64           `db:"user_id"`
	AssigneeID     sql.NullInt64   `db:"assigned_to"`
	DueDate        sqlTime         `db:"due_date"`
	EstimatedHours sql.NullFloat64 `db:"estimated_hours"`
	ActualHours    sql.NullFloat64 `db:"actual_hours"`
	Category       sql.NullString  `db:"category"`
	Metadata       []byte          `db:"metadata"`
	Notes          sql.NullString  `db:"notes"`
	CreatedAt      sqlTime         `db:"created_at"`
	UpdatedAt      sqlTime         `db:"updated_at"`

	OwnerRefID    sql.NullInt64  `db:"owner_ref_id"`
	OwnerName     sql.NullString `db:"owner_name"`
	OwnerEmail    sql.NullString `db:"owner_email"`
	AssigneeRefID sql.NullInt64  `db:"assignee_ref_id"`
	AssigneeName  sql.NullString `db:"assignee_name"`
	AssigneeEmail sql.NullString `db:"assignee_email"`
}

type commentRow struct {
	ID          int64          `db:"id"`
	TaskID      int64          `db:"task_id"`
	AuthorID    int64          `db:"user_id"`
	Comment     sql.NullString `db:"comment"`
	Attachments []byte         `db:"attachments"`
	CreatedAt   sqlTime        `db:"created_at"`
}

type categoryRow struct {
	Category string          `db:"category"`
	Count    int64           `db:"task_count"`
	AvgHours sql.NullFloat64 `db:"avg_hours"`
}

type userRow struct {
	UserID    int64         `db:"user_id"`
	Total     int64         `db:"total_tasks"`
	Completed sql.NullInt64 `db:"completed_tasks"`
}

type bucketRow struct {
	Bucket string `db:"bucket"`
	Count  int64  `db:"task_count"`
}

// ReportStore implements store.ReportStore.
type ReportStore struct {
	db      sqlx.QueryerContext
	dialect Dialect
	logger  *slog.Logger
}

// NewReportStore creates a ReportStore reading through db, which may be a
// *sqlx.DB or a *sqlx.Tx. If logger is nil, a default logger will be used.
func NewReportStore(db sqlx.QueryerContext, dialect Dialect, logger *slog.Logger) *ReportStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "report_store")),
	}
}

// Ensure ReportStore implements store.ReportStore interface
var _ store.ReportStore = (*ReportStore)(nil)

// selectContext runs one counted round trip.
func (s *ReportStore) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	perf.RecordQuery(ctx)
	return sqlx.SelectContext(ctx, s.db, dest, s.dialect.rebind(query), args...)
}

func (s *ReportStore) fail(operation string, err error) error {
	s.logger.Error("report query failed",
		slog.String("operation", operation),
		slog.String("error", err.Error()))
	return store.Unavailable("task", operation, s.dialect.mapError(err))
}

// EscapeLike escapes LIKE wildcards so value matches literally with
// ESCAPE '\'.
func EscapeLike(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(value)
}

// FetchTasksInRange implements store.ReportStore.FetchTasksInRange.
func (s *ReportStore) FetchTasksInRange(
	ctx context.Context,
	start, end time.Time,
	nameSubstring string,
) ([]domain.Task, error) {
	args := []any{s.dialect.timeArg(start), s.dialect.timeArg(end)}
	predicate := ""
	join := ""
	if nameSubstring != "" {
		predicate = fmt.Sprintf(ownerNamePredicate, s.dialect.lower("o.name"))
		join = ownerJoin
		args = append(args, "%"+EscapeLike(strings.ToLower(nameSubstring))+"%")
	}

	var rows []taskRow
	if err := s.selectContext(ctx, &rows, fmt.Sprintf(tasksQuery, predicate), args...); err != nil {
		return nil, s.fail("fetch_tasks", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	index := make(map[int64]int, len(rows))
	for _, row := range rows {
		task, err := row.toDomain()
		if err != nil {
			return nil, s.fail("decode_task", err)
		}
		index[task.ID] = len(tasks)
		tasks = append(tasks, task)
	}

	if len(tasks) == 0 {
		return tasks, nil
	}

	var comments []commentRow
	if err := s.selectContext(ctx, &comments, fmt.Sprintf(commentsQuery, join, predicate), args...); err != nil {
		return nil, s.fail("fetch_comments", err)
	}

	for _, row := range comments {
		i, ok := index[row.TaskID]
		if !ok {
			continue
		}
		comment, err := row.toDomain()
		if err != nil {
			return nil, s.fail("decode_comment", err)
		}
		tasks[i].Comments = append(tasks[i].Comments, comment)
	}

	s.logger.Debug("fetched tasks for report",
		slog.Int("task_count", len(tasks)),
		slog.Int("comment_count", len(comments)),
		slog.Bool("filtered", nameSubstring != ""))
	return tasks, nil
}

// CategoryAggregates implements store.ReportStore.CategoryAggregates.
func (s *ReportStore) CategoryAggregates(
	ctx context.Context,
	start, end time.Time,
) (map[string]domain.CategoryStat, error) {
	var rows []categoryRow
	if err := s.selectContext(ctx, &rows, categoryQuery, s.dialect.timeArg(start), s.dialect.timeArg(end)); err != nil {
		return nil, s.fail("category_aggregates", err)
	}

	out := make(map[string]domain.CategoryStat, len(rows))
	for _, row := range rows {
		out[row.Category] = domain.CategoryStat{
			Count:    row.Count,
			AvgHours: domain.Round2(row.AvgHours.Float64),
		}
	}
	return out, nil
}

// UserAggregates implements store.ReportStore.UserAggregates.
func (s *ReportStore) UserAggregates(
	ctx context.Context,
	start, end time.Time,
) (map[int64]domain.UserStat, error) {
	var rows []userRow
	err := s.selectContext(ctx, &rows, userQuery,
		string(domain.TaskStatusCompleted), s.dialect.timeArg(start), s.dialect.timeArg(end))
	if err != nil {
		return nil, s.fail("user_aggregates", err)
	}

	out := make(map[int64]domain.UserStat, len(rows))
	for _, row := range rows {
		out[row.UserID] = domain.NewUserStat(row.Total, row.Completed.Int64)
	}
	return out, nil
}

// PriorityCounts implements store.ReportStore.PriorityCounts.
func (s *ReportStore) PriorityCounts(ctx context.Context, start, end time.Time) (map[string]int64, error) {
	return s.buckets(ctx, "priority_counts", priorityQuery, start, end)
}

// StatusCounts implements store.ReportStore.StatusCounts.
func (s *ReportStore) StatusCounts(ctx context.Context, start, end time.Time) (map[string]int64, error) {
	return s.buckets(ctx, "status_counts", statusQuery, start, end)
}

func (s *ReportStore) buckets(
	ctx context.Context,
	operation, query string,
	start, end time.Time,
) (map[string]int64, error) {
	var rows []bucketRow
	if err := s.selectContext(ctx, &rows, query, s.dialect.timeArg(start), s.dialect.timeArg(end)); err != nil {
		return nil, s.fail(operation, err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Bucket] = row.Count
	}
	return out, nil
}

func (r taskRow) toDomain() (domain.Task, error) {
	metadata, err := domain.DecodeMetadata(r.Metadata)
	if err != nil {
		return domain.Task{}, err
	}

	task := domain.Task{
		ID:             r.ID,
		Title:          r.Title,
		Description:    nullString(r.Description),
		Status:         domain.TaskStatus(r.Status),
		Priority:       domain.TaskPriority(r.Priority),
		OwnerID:        r.OwnerID,
		AssigneeID:     nullInt64(r.AssigneeID),
		DueDate:        r.DueDate.ptr(),
		EstimatedHours: nullFloat64(r.EstimatedHours),
		ActualHours:    nullFloat64(r.ActualHours),
		Category:       nullString(r.Category),
		Metadata:       metadata,
		Notes:          nullString(r.Notes),
		CreatedAt:      r.CreatedAt.Time,
		UpdatedAt:      r.UpdatedAt.Time,
	}
	if r.OwnerRefID.Valid {
		task.Owner = &domain.User{ID: r.OwnerRefID.Int64, Name: r.OwnerName.String, Email: r.OwnerEmail.String}
	}
	if r.AssigneeRefID.Valid {
		task.Assignee = &domain.User{ID: r.AssigneeRefID.Int64, Name: r.AssigneeName.String, Email: r.AssigneeEmail.String}
	}
	return task, nil
}

func (r commentRow) toDomain() (domain.TaskComment, error) {
	attachments, err := domain.DecodeAttachments(r.Attachments)
	if err != nil {
		return domain.TaskComment{}, err
	}
	return domain.TaskComment{
		ID:          r.ID,
		TaskID:      r.TaskID,
		AuthorID:    r.AuthorID,
		Content:     nullString(r.Comment),
		Attachments: attachments,
		CreatedAt:   r.CreatedAt.Time,
	}, nil
}
