//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether the task status is supported.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// TaskAssignee identifies the user a task is assigned to.
type TaskAssignee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Task represents a unit of work within a project.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    Priority     `json:"priority"`
	ProjectID   string       `json:"project_id,omitempty"`
	Assignee    TaskAssignee `json:"assignee"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// CreateTaskRequest represents parameters to create a Task.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	ProjectID   string     `json:"project_id,omitempty"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Validate checks the request for obvious problems before it leaves the process.
func (r *CreateTaskRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("task title is required")
	}
	if r.Priority != "" && !r.Priority.Valid() {
		return errors.New("invalid task priority")
	}
	return nil
}

// UpdateTaskRequest represents parameters to update a Task.
type UpdateTaskRequest struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	Priority    *Priority   `json:"priority,omitempty"`
	AssigneeID  *string     `json:"assignee_id,omitempty"`
	DueDate     *time.Time  `json:"due_date,omitempty"`
}

// TasksListOptions controls filtering for listing tasks.
type TasksListOptions struct {
	ProjectID string
	MyTasks   bool
	Filter    string // optional JMESPath expression applied to the result set
}
