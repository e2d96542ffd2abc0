package service

import (
	"context"
	"errors"
	"time"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/metrics"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// defaultProjectPageSize is the page size when the client gives none.
const defaultProjectPageSize = 10

// ProjectWithProgress pairs a project with its derived snapshot.
type ProjectWithProgress struct {
	Project  *model.Project
	Progress model.ProgressSnapshot
}

// ProjectService handles project business logic. Every operation on an
// existing project goes through the Guard first.
type ProjectService struct {
	projects ProjectStore
	guard    *Guard
	metrics  metrics.Recorder
}

// NewProjectService creates a ProjectService.
func NewProjectService(projects ProjectStore, guard *Guard, recorder metrics.Recorder) *ProjectService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ProjectService{projects: projects, guard: guard, metrics: recorder}
}

// CreateProject persists a new project owned by the caller.
// The returned snapshot is always 0/0/0 for a fresh project.
func (s *ProjectService) CreateProject(ctx context.Context, principal *auth.Principal, title, description string) (*ProjectWithProgress, error) {
	if err := requireAuthenticated(principal); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := &model.Project{
		Title:       title,
		Description: description,
		OwnerID:     principal.User.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projects.CreateProject(ctx, project); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}

	s.metrics.IncProjectCreated()

	return &ProjectWithProgress{
		Project:  project,
		Progress: model.NewProgressSnapshot(0, 0),
	}, nil
}

// ListProjects returns one page of the caller's projects, each
// annotated with its progress snapshot.
func (s *ProjectService) ListProjects(ctx context.Context, principal *auth.Principal, page PageRequest) (Page[ProjectWithProgress], error) {
	if err := requireAuthenticated(principal); err != nil {
		return Page[ProjectWithProgress]{}, err
	}

	page = page.Normalize(defaultProjectPageSize)

	projects, total, err := s.projects.ListProjectsByOwner(ctx, principal.User.ID, page.limit(), page.offset())
	if err != nil {
		return Page[ProjectWithProgress]{}, apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}

	counts, err := s.projects.GetTaskCountsByOwner(ctx, principal.User.ID)
	if err != nil {
		return Page[ProjectWithProgress]{}, apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}

	items := make([]ProjectWithProgress, 0, len(projects))
	for _, project := range projects {
		c := counts[project.ID]
		items = append(items, ProjectWithProgress{
			Project:  project,
			Progress: model.NewProgressSnapshot(c.Total, c.Completed),
		})
	}

	return newPage(items, page, total), nil
}

// GetProject returns an ownership-checked project with its snapshot.
func (s *ProjectService) GetProject(ctx context.Context, principal *auth.Principal, id int64) (*ProjectWithProgress, error) {
	project, err := s.guard.CheckProjectOwnership(ctx, id, principal)
	if err != nil {
		return nil, err
	}

	return s.withProgress(ctx, project)
}

// UpdateProject replaces the project's title and description in place.
// Id and owner never change.
func (s *ProjectService) UpdateProject(ctx context.Context, principal *auth.Principal, id int64, title, description string) (*ProjectWithProgress, error) {
	project, err := s.guard.CheckProjectOwnership(ctx, id, principal)
	if err != nil {
		return nil, err
	}

	project.Title = title
	project.Description = description
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.UpdateProject(ctx, project); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperr.New(apperr.KindProjectNotFound, "Project not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}

	s.metrics.IncProjectUpdated()

	return s.withProgress(ctx, project)
}

// DeleteProject removes the project and all of its tasks.
func (s *ProjectService) DeleteProject(ctx context.Context, principal *auth.Principal, id int64) error {
	if _, err := s.guard.CheckProjectOwnership(ctx, id, principal); err != nil {
		return err
	}

	if err := s.projects.DeleteProject(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return apperr.New(apperr.KindProjectNotFound, "Project not found")
		}
		return apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}

	s.metrics.IncProjectDeleted()

	return nil
}

// GetProgress computes the progress snapshot for an ownership-checked
// project.
func (s *ProjectService) GetProgress(ctx context.Context, principal *auth.Principal, id int64) (model.ProgressSnapshot, error) {
	if _, err := s.guard.CheckProjectOwnership(ctx, id, principal); err != nil {
		return model.ProgressSnapshot{}, err
	}

	counts, err := s.projects.GetTaskCounts(ctx, id)
	if err != nil {
		return model.ProgressSnapshot{}, apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}

	return model.NewProgressSnapshot(counts.Total, counts.Completed), nil
}

func (s *ProjectService) withProgress(ctx context.Context, project *model.Project) (*ProjectWithProgress, error) {
	counts, err := s.projects.GetTaskCounts(ctx, project.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}

	return &ProjectWithProgress{
		Project:  project,
		Progress: model.NewProgressSnapshot(counts.Total, counts.Completed),
	}, nil
}
