package service

import (
	"context"
	"errors"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// Guard makes ALLOW/DENY ownership decisions. Checks are read-only and
// always walk the ownership chain root-first: identity, then project,
// then task. Existence is checked strictly before ownership, so a
// missing resource reports not-found to any caller.
type Guard struct {
	projects ProjectStore
	tasks    TaskStore
}

// NewGuard creates a Guard.
func NewGuard(projects ProjectStore, tasks TaskStore) *Guard {
	return &Guard{projects: projects, tasks: tasks}
}

// CheckProjectOwnership resolves the project and verifies the caller
// owns it. Returns PROJECT_NOT_FOUND for unknown ids and ACCESS_DENIED
// for anonymous or non-owner callers.
func (g *Guard) CheckProjectOwnership(ctx context.Context, projectID int64, principal *auth.Principal) (*model.Project, error) {
	project, err := g.projects.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperr.New(apperr.KindProjectNotFound, "Project not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}

	if !principal.IsAuthenticated() || principal.User.ID != project.OwnerID {
		return nil, apperr.New(apperr.KindAccessDenied, "You don't have permission to access this project")
	}

	return project, nil
}

// CheckTaskOwnership resolves the task and verifies it belongs to the
// given (already ownership-checked) project. Returns TASK_NOT_FOUND
// for unknown ids and ACCESS_DENIED when the task belongs to another
// project.
func (g *Guard) CheckTaskOwnership(ctx context.Context, taskID int64, project *model.Project) (*model.Task, error) {
	task, err := g.tasks.GetTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperr.New(apperr.KindTaskNotFound, "Task not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}

	if task.ProjectID != project.ID {
		return nil, apperr.New(apperr.KindAccessDenied, "This task does not belong to the specified project")
	}

	return task, nil
}

// requireAuthenticated rejects anonymous callers for operations that
// have no target resource to existence-check first (create, list).
func requireAuthenticated(principal *auth.Principal) error {
	if !principal.IsAuthenticated() {
		return apperr.New(apperr.KindAccessDenied, "Authentication required")
	}
	return nil
}
