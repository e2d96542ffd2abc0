package service

import (
	"context"
	"sort"
	"strings"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// memStore is an in-memory stand-in for the repository, mirroring its
// ordering and filter semantics.
type memStore struct {
	users    map[string]*model.User
	projects map[int64]*model.Project
	tasks    map[int64]*model.Task
	nextID   int64

	failWith error // when set, every call fails with this error
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*model.User),
		projects: make(map[int64]*model.Project),
		tasks:    make(map[int64]*model.Task),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateUser(ctx context.Context, user *model.User) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.users[user.Email]; ok {
		return repository.ErrEmailExists
	}
	user.ID = m.id()
	m.users[user.Email] = user
	return nil
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	user, ok := m.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *memStore) CreateProject(ctx context.Context, project *model.Project) error {
	if m.failWith != nil {
		return m.failWith
	}
	project.ID = m.id()
	m.projects[project.ID] = project
	return nil
}

func (m *memStore) GetProjectByID(ctx context.Context, id int64) (*model.Project, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	project, ok := m.projects[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	return project, nil
}

func (m *memStore) ListProjectsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*model.Project, int64, error) {
	if m.failWith != nil {
		return nil, 0, m.failWith
	}
	var owned []*model.Project
	for _, p := range m.projects {
		if p.OwnerID == ownerID {
			owned = append(owned, p)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })

	total := int64(len(owned))
	if offset >= len(owned) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], total, nil
}

func (m *memStore) UpdateProject(ctx context.Context, project *model.Project) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.projects[project.ID]; !ok {
		return repository.ErrProjectNotFound
	}
	m.projects[project.ID] = project
	return nil
}

func (m *memStore) DeleteProject(ctx context.Context, id int64) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.projects[id]; !ok {
		return repository.ErrProjectNotFound
	}
	delete(m.projects, id)
	for taskID, task := range m.tasks {
		if task.ProjectID == id {
			delete(m.tasks, taskID)
		}
	}
	return nil
}

func (m *memStore) GetTaskCounts(ctx context.Context, projectID int64) (repository.TaskCounts, error) {
	if m.failWith != nil {
		return repository.TaskCounts{}, m.failWith
	}
	var counts repository.TaskCounts
	for _, task := range m.tasks {
		if task.ProjectID != projectID {
			continue
		}
		counts.Total++
		if task.Completed {
			counts.Completed++
		}
	}
	return counts, nil
}

func (m *memStore) GetTaskCountsByOwner(ctx context.Context, ownerID int64) (map[int64]repository.TaskCounts, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	result := make(map[int64]repository.TaskCounts)
	for _, task := range m.tasks {
		project, ok := m.projects[task.ProjectID]
		if !ok || project.OwnerID != ownerID {
			continue
		}
		counts := result[project.ID]
		counts.Total++
		if task.Completed {
			counts.Completed++
		}
		result[project.ID] = counts
	}
	return result, nil
}

func (m *memStore) CreateTask(ctx context.Context, task *model.Task) error {
	if m.failWith != nil {
		return m.failWith
	}
	task.ID = m.id()
	m.tasks[task.ID] = task
	return nil
}

func (m *memStore) GetTaskByID(ctx context.Context, id int64) (*model.Task, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	task, ok := m.tasks[id]
	if !ok {
		return nil, repository.ErrTaskNotFound
	}
	return task, nil
}

func (m *memStore) ListTasksByProject(ctx context.Context, projectID int64, filter repository.TaskFilter, limit, offset int) ([]*model.Task, int64, error) {
	if m.failWith != nil {
		return nil, 0, m.failWith
	}
	var matched []*model.Task
	for _, task := range m.tasks {
		if task.ProjectID != projectID {
			continue
		}
		if filter.Completed != nil && task.Completed != *filter.Completed {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(task.Title), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, task)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *memStore) UpdateTask(ctx context.Context, task *model.Task) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.tasks[task.ID]; !ok {
		return repository.ErrTaskNotFound
	}
	m.tasks[task.ID] = task
	return nil
}

func (m *memStore) DeleteTask(ctx context.Context, id int64) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.tasks[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// Test fixtures shared across the service tests.

func principalFor(id int64) *auth.Principal {
	return auth.Authenticated(&model.User{ID: id, Email: "user@example.com"})
}

func (m *memStore) seedProject(ownerID int64, title string) *model.Project {
	project := &model.Project{Title: title, OwnerID: ownerID}
	_ = m.CreateProject(context.Background(), project)
	return project
}

func (m *memStore) seedTask(projectID int64, title string, completed bool) *model.Task {
	task := &model.Task{Title: title, ProjectID: projectID, Completed: completed}
	_ = m.CreateTask(context.Background(), task)
	return task
}
