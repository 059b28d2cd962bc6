package domain

import (
	"encoding/json"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// TaskStatuses lists every valid status in display order.
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// TaskPriority represents how urgent a task is.
type TaskPriority string

// Possible task priority values
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// TaskPriorities lists every valid priority from lowest to highest.
var TaskPriorities = []TaskPriority{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
	TaskPriorityUrgent,
}

// Valid reports whether p is one of the known priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// Task is a unit of work owned by a user and optionally assigned to another.
//
// Owner, Assignee and Comments are populated by the store when the task is
// fetched for a report. Owner is nil only when the owning user record could
// not be resolved.
type Task struct {
	ID             int64          `json:"id"`
	Title          string         `json:"title"`
	Description    *string        `json:"description"`
	Status         TaskStatus     `json:"status"`
	Priority       TaskPriority   `json:"priority"`
	OwnerID        int64          `json:"user_id"`
	AssigneeID     *int64         `json:"assigned_to"`
	DueDate        *time.Time     `json:"due_date"`
	EstimatedHours *float64       `json:"estimated_hours"`
	ActualHours    *float64       `json:"actual_hours"`
	Category       *string        `json:"category"`
	Metadata       map[string]any `json:"metadata"`
	Notes          *string        `json:"notes"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	Owner    *User         `json:"owner,omitempty"`
	Assignee *User         `json:"assignee,omitempty"`
	Comments []TaskComment `json:"comments,omitempty"`
}

// Attachment describes a file attached to a comment.
type Attachment struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// TaskComment is a note left on a task. Content may be absent.
type TaskComment struct {
	ID          int64        `json:"id"`
	TaskID      int64        `json:"task_id"`
	AuthorID    int64        `json:"user_id"`
	Content     *string      `json:"comment"`
	Attachments []Attachment `json:"attachments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ContentLength returns the byte length of the comment body, counting a
// missing body as zero.
func (c TaskComment) ContentLength() int {
	if c.Content == nil {
		return 0
	}
	return len(*c.Content)
}

// DecodeMetadata parses a JSON object column into a metadata map.
// Empty input and JSON null both decode to nil.
func DecodeMetadata(raw []byte) (map[string]any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeAttachments parses a JSON array column into attachments.
func DecodeAttachments(raw []byte) ([]Attachment, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var a []Attachment
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	return a, nil
}
