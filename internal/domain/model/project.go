//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// ProjectStatus is the lifecycle state of a research project.
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on-hold"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// Valid reports whether the project status is supported.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted:
		return true
	default:
		return false
	}
}

// Priority is shared by projects and tasks.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether the priority is supported.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// ProjectMember is a user participating in a project.
type ProjectMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// Project represents a research project.
type Project struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Status      ProjectStatus   `json:"status"`
	Priority    Priority        `json:"priority"`
	OwnerID     string          `json:"owner_id"`
	Progress    int             `json:"progress"`
	Members     []ProjectMember `json:"members,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateProjectRequest represents parameters to create a Project.
type CreateProjectRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status,omitempty"`
	Priority    Priority      `json:"priority,omitempty"`
}

// Validate checks the request for obvious problems before it leaves the process.
func (r *CreateProjectRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("project title is required")
	}
	if r.Status != "" && !r.Status.Valid() {
		return errors.New("invalid project status")
	}
	if r.Priority != "" && !r.Priority.Valid() {
		return errors.New("invalid project priority")
	}
	return nil
}

// UpdateProjectRequest represents parameters to update a Project.
type UpdateProjectRequest struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty"`
	Priority    *Priority      `json:"priority,omitempty"`
	Progress    *int           `json:"progress,omitempty"`
}

// ProjectsListOptions controls filtering for listing projects.
// MyProjects restricts the list to projects owned by the caller.
type ProjectsListOptions struct {
	MyProjects bool
	Filter     string // optional JMESPath expression applied to the result set
}
