package report

import (
	"time"

	"github.com/withoutfanfare/developer-test/internal/domain"
)

// UnknownOwner stands in for the name and email of an owner that could not
// be resolved.
const UnknownOwner = "Unknown"

// TaskRecord is one denormalized row of the report. Field order is the
// JSON key order.
type TaskRecord struct {
	TaskID                 int64          `json:"task_id"`
	Title                  string         `json:"title"`
	Description            *string        `json:"description"`
	Status                 string         `json:"status"`
	Priority               string         `json:"priority"`
	Category               *string        `json:"category"`
	EstimatedHours         *float64       `json:"estimated_hours"`
	ActualHours            *float64       `json:"actual_hours"`
	DueDate                *time.Time     `json:"due_date"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	OwnerName              string         `json:"owner_name"`
	OwnerEmail             string         `json:"owner_email"`
	AssigneeName           *string        `json:"assignee_name"`
	AssigneeEmail          *string        `json:"assignee_email"`
	CommentCount           int            `json:"comment_count"`
	TotalCommentLength     int            `json:"total_comment_length"`
	CategoryTasksCount     int64          `json:"category_tasks_count"`
	UserTotalTasks         int64          `json:"user_total_tasks"`
	UserCompletedTasks     int64          `json:"user_completed_tasks"`
	UserCompletionRate     float64        `json:"user_completion_rate"`
	AverageTimeForCategory float64        `json:"average_time_for_category"`
	Metadata               map[string]any `json:"metadata"`
}

// FormatTasks builds one record per task using map lookups into agg. It
// never touches the store and does not modify its inputs.
func FormatTasks(tasks []domain.Task, agg domain.Aggregates) []TaskRecord {
	records := make([]TaskRecord, 0, len(tasks))
	for i := range tasks {
		records = append(records, formatTask(&tasks[i], agg))
	}
	return records
}

func formatTask(t *domain.Task, agg domain.Aggregates) TaskRecord {
	rec := TaskRecord{
		TaskID:         t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		Category:       t.Category,
		EstimatedHours: t.EstimatedHours,
		ActualHours:    t.ActualHours,
		DueDate:        t.DueDate,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		OwnerName:      UnknownOwner,
		OwnerEmail:     UnknownOwner,
		CommentCount:   len(t.Comments),
		Metadata:       t.Metadata,
	}

	if t.Owner != nil {
		rec.OwnerName = t.Owner.Name
		rec.OwnerEmail = t.Owner.Email
	}
	if t.Assignee != nil {
		name, email := t.Assignee.Name, t.Assignee.Email
		rec.AssigneeName = &name
		rec.AssigneeEmail = &email
	}

	for _, c := range t.Comments {
		rec.TotalCommentLength += c.ContentLength()
	}

	if t.Category != nil {
		if stat, ok := agg.Categories[*t.Category]; ok {
			rec.CategoryTasksCount = stat.Count
			rec.AverageTimeForCategory = stat.AvgHours
		}
	}

	if stat, ok := agg.Users[t.OwnerID]; ok {
		rec.UserTotalTasks = stat.TotalTasks
		rec.UserCompletedTasks = stat.CompletedTasks
		rec.UserCompletionRate = stat.CompletionRate
	}

	if rec.Metadata == nil {
		rec.Metadata = map[string]any{}
	}
	return rec
}
