package handler

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// memStore backs handler tests with repository-shaped in-memory state.
type memStore struct {
	users    map[string]*model.User
	projects map[int64]*model.Project
	tasks    map[int64]*model.Task
	nextID   int64
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
	if _, ok := m.users[user.Email]; ok {
		return repository.ErrEmailExists
	}
	user.ID = m.id()
	m.users[user.Email] = user
	return nil
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *memStore) CreateProject(ctx context.Context, project *model.Project) error {
	project.ID = m.id()
	m.projects[project.ID] = project
	return nil
}

func (m *memStore) GetProjectByID(ctx context.Context, id int64) (*model.Project, error) {
	project, ok := m.projects[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	return project, nil
}

func (m *memStore) ListProjectsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*model.Project, int64, error) {
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
	if _, ok := m.projects[project.ID]; !ok {
		return repository.ErrProjectNotFound
	}
	m.projects[project.ID] = project
	return nil
}

func (m *memStore) DeleteProject(ctx context.Context, id int64) error {
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
	task.ID = m.id()
	m.tasks[task.ID] = task
	return nil
}

func (m *memStore) GetTaskByID(ctx context.Context, id int64) (*model.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, repository.ErrTaskNotFound
	}
	return task, nil
}

func (m *memStore) ListTasksByProject(ctx context.Context, projectID int64, filter repository.TaskFilter, limit, offset int) ([]*model.Task, int64, error) {
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
	if _, ok := m.tasks[task.ID]; !ok {
		return repository.ErrTaskNotFound
	}
	m.tasks[task.ID] = task
	return nil
}

func (m *memStore) DeleteTask(ctx context.Context, id int64) error {
	if _, ok := m.tasks[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// asPrincipal injects a fixed principal, standing in for the identity
// middleware.
func asPrincipal(p *auth.Principal) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.ContextWithPrincipal(r.Context(), p)))
		})
	}
}
