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

// defaultTaskPageSize is the page size when the client gives none.
const defaultTaskPageSize = 20

// TaskService handles task business logic. Every operation walks the
// ownership chain root-first: the project is ownership-checked, then
// the task is checked against that project.
type TaskService struct {
	tasks   TaskStore
	guard   *Guard
	metrics metrics.Recorder
}

// NewTaskService creates a TaskService.
func NewTaskService(tasks TaskStore, guard *Guard, recorder metrics.Recorder) *TaskService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TaskService{tasks: tasks, guard: guard, metrics: recorder}
}

// TaskListInput defines optional filters for listing tasks.
// Filters compose with AND; absent filters impose no constraint.
type TaskListInput struct {
	Completed *bool
	Search    string
}

// ListTasks returns one page of the project's tasks matching the
// filters.
func (s *TaskService) ListTasks(ctx context.Context, principal *auth.Principal, projectID int64, input TaskListInput, page PageRequest) (Page[*model.Task], error) {
	project, err := s.guard.CheckProjectOwnership(ctx, projectID, principal)
	if err != nil {
		return Page[*model.Task]{}, err
	}

	page = page.Normalize(defaultTaskPageSize)

	filter := repository.TaskFilter{
		Completed: input.Completed,
		Search:    input.Search,
	}

	tasks, total, err := s.tasks.ListTasksByProject(ctx, project.ID, filter, page.limit(), page.offset())
	if err != nil {
		return Page[*model.Task]{}, apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}

	return newPage(tasks, page, total), nil
}

// GetTask returns a single ownership-checked task.
func (s *TaskService) GetTask(ctx context.Context, principal *auth.Principal, projectID, taskID int64) (*model.Task, error) {
	project, err := s.guard.CheckProjectOwnership(ctx, projectID, principal)
	if err != nil {
		return nil, err
	}

	return s.guard.CheckTaskOwnership(ctx, taskID, project)
}

// CreateTaskInput defines input for creating or updating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
}

// CreateTask persists a new task under the project.
// New tasks always start incomplete.
func (s *TaskService) CreateTask(ctx context.Context, principal *auth.Principal, projectID int64, input CreateTaskInput) (*model.Task, error) {
	project, err := s.guard.CheckProjectOwnership(ctx, projectID, principal)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &model.Task{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Completed:   false,
		ProjectID:   project.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}

	s.metrics.IncTaskCreated()

	return task, nil
}

// UpdateTask replaces the task's title, description, and due date.
// Project membership never changes.
func (s *TaskService) UpdateTask(ctx context.Context, principal *auth.Principal, projectID, taskID int64, input CreateTaskInput) (*model.Task, error) {
	task, err := s.GetTask(ctx, principal, projectID, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.DueDate = input.DueDate
	task.UpdatedAt = time.Now().UTC()

	if err := s.saveTask(ctx, task); err != nil {
		return nil, err
	}

	s.metrics.IncTaskUpdated()

	return task, nil
}

// MarkCompleted marks the task as completed.
func (s *TaskService) MarkCompleted(ctx context.Context, principal *auth.Principal, projectID, taskID int64) (*model.Task, error) {
	return s.SetCompleted(ctx, principal, projectID, taskID, true)
}

// SetCompleted sets the task's completed flag.
func (s *TaskService) SetCompleted(ctx context.Context, principal *auth.Principal, projectID, taskID int64, completed bool) (*model.Task, error) {
	task, err := s.GetTask(ctx, principal, projectID, taskID)
	if err != nil {
		return nil, err
	}

	task.Completed = completed
	task.UpdatedAt = time.Now().UTC()

	if err := s.saveTask(ctx, task); err != nil {
		return nil, err
	}

	if completed {
		s.metrics.IncTaskCompleted()
	} else {
		s.metrics.IncTaskUpdated()
	}

	return task, nil
}

// DeleteTask removes the task.
func (s *TaskService) DeleteTask(ctx context.Context, principal *auth.Principal, projectID, taskID int64) error {
	task, err := s.GetTask(ctx, principal, projectID, taskID)
	if err != nil {
		return err
	}

	if err := s.tasks.DeleteTask(ctx, task.ID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return apperr.New(apperr.KindTaskNotFound, "Task not found")
		}
		return apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}

	s.metrics.IncTaskDeleted()

	return nil
}

func (s *TaskService) saveTask(ctx context.Context, task *model.Task) error {
	if err := s.tasks.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return apperr.New(apperr.KindTaskNotFound, "Task not found")
		}
		return apperr.Wrap(apperr.KindInternal, "Unexpected error occurred", err)
	}
	return nil
}
