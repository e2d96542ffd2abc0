package dto

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/service"
)

// CreateProjectRequest represents the request body for creating a project.
type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// UpdateProjectRequest represents the request body for updating a project.
// Both fields are replaced as a unit; the owner never changes.
type UpdateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ProjectResponse represents a project in API responses, including its
// derived progress snapshot.
type ProjectResponse struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	OwnerID            int64     `json:"owner_id"`
	TotalTasks         int       `json:"total_tasks"`
	CompletedTasks     int       `json:"completed_tasks"`
	ProgressPercentage int       `json:"progress_percentage"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ProgressResponse represents the dedicated progress endpoint payload.
type ProgressResponse struct {
	ProjectID          int64 `json:"project_id"`
	TotalTasks         int   `json:"total_tasks"`
	CompletedTasks     int   `json:"completed_tasks"`
	ProgressPercentage int   `json:"progress_percentage"`
}

// ToProjectResponse converts a project with progress to its API
// representation.
func ToProjectResponse(p service.ProjectWithProgress) ProjectResponse {
	return ProjectResponse{
		ID:                 p.Project.ID,
		Title:              p.Project.Title,
		Description:        p.Project.Description,
		OwnerID:            p.Project.OwnerID,
		TotalTasks:         p.Progress.TotalTasks,
		CompletedTasks:     p.Progress.CompletedTasks,
		ProgressPercentage: p.Progress.Percentage,
		CreatedAt:          p.Project.CreatedAt,
		UpdatedAt:          p.Project.UpdatedAt,
	}
}
