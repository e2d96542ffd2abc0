// Package model defines domain entities for the application.
package model

import "time"

// Project is owned by exactly one user. OwnerID never changes after
// creation; deleting a project removes all of its tasks with it.
type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProgressSnapshot is the derived completion state of a project's tasks.
// It is computed on read and never persisted.
type ProgressSnapshot struct {
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	Percentage     int `json:"progress_percentage"`
}

// NewProgressSnapshot computes a snapshot from task counts.
// Percentage uses integer truncation, and is 0 for an empty project.
func NewProgressSnapshot(total, completed int) ProgressSnapshot {
	percentage := 0
	if total > 0 {
		percentage = completed * 100 / total
	}
	return ProgressSnapshot{
		TotalTasks:     total,
		CompletedTasks: completed,
		Percentage:     percentage,
	}
}
