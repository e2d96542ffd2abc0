// Package service provides business logic for the application.
// Services depend on narrow store interfaces satisfied by the
// repository layer; ownership checks all go through the Guard.
package service

import (
	"context"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// UserStore is the slice of the repository the user service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// ProjectStore is the slice of the repository the project service and
// the Guard need.
type ProjectStore interface {
	CreateProject(ctx context.Context, project *model.Project) error
	GetProjectByID(ctx context.Context, id int64) (*model.Project, error)
	ListProjectsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*model.Project, int64, error)
	UpdateProject(ctx context.Context, project *model.Project) error
	DeleteProject(ctx context.Context, id int64) error
	GetTaskCounts(ctx context.Context, projectID int64) (repository.TaskCounts, error)
	GetTaskCountsByOwner(ctx context.Context, ownerID int64) (map[int64]repository.TaskCounts, error)
}

// TaskStore is the slice of the repository the task service and the
// Guard need.
type TaskStore interface {
	CreateTask(ctx context.Context, task *model.Task) error
	GetTaskByID(ctx context.Context, id int64) (*model.Task, error)
	ListTasksByProject(ctx context.Context, projectID int64, filter repository.TaskFilter, limit, offset int) ([]*model.Task, int64, error)
	UpdateTask(ctx context.Context, task *model.Task) error
	DeleteTask(ctx context.Context, id int64) error
}
