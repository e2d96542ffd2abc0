package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskdeck/taskdeck/internal/model"
)

// ErrProjectNotFound is returned when no project exists for an id.
var ErrProjectNotFound = errors.New("project not found")

// TaskCounts holds per-project task totals used for progress snapshots.
type TaskCounts struct {
	Total     int
	Completed int
}

// CreateProject inserts a new project and fills in the generated id.
func (r *Repository) CreateProject(ctx context.Context, project *model.Project) error {
	query := `
		INSERT INTO projects (title, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		project.Title,
		project.Description,
		project.OwnerID,
		project.CreatedAt,
		project.UpdatedAt,
	).Scan(&project.ID)

	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetProjectByID retrieves a project by its ID.
func (r *Repository) GetProjectByID(ctx context.Context, id int64) (*model.Project, error) {
	query := `
		SELECT id, title, description, owner_id, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	var project model.Project
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&project.OwnerID,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project by ID: %w", err)
	}

	return &project, nil
}

// ListProjectsByOwner retrieves one page of the owner's projects plus
// the total count, ordered by id.
func (r *Repository) ListProjectsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*model.Project, int64, error) {
	query := `
		SELECT id, title, description, owner_id, created_at, updated_at
		FROM projects
		WHERE owner_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		var project model.Project
		if err := rows.Scan(
			&project.ID,
			&project.Title,
			&project.Description,
			&project.OwnerID,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, &project)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating projects: %w", err)
	}

	var total int64
	countQuery := `SELECT count(*) FROM projects WHERE owner_id = $1`
	if err := r.pool.QueryRow(ctx, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	return projects, total, nil
}

// UpdateProject replaces a project's title and description.
// Owner and id are immutable.
func (r *Repository) UpdateProject(ctx context.Context, project *model.Project) error {
	query := `
		UPDATE projects
		SET title = $1, description = $2, updated_at = $3
		WHERE id = $4
	`

	tag, err := r.pool.Exec(ctx, query,
		project.Title,
		project.Description,
		project.UpdatedAt,
		project.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProjectNotFound
	}

	return nil
}

// DeleteProject removes a project and all of its tasks in one
// transaction, so the cascade is never partially observable.
func (r *Repository) DeleteProject(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE project_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete project tasks: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProjectNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}

	return nil
}

// GetTaskCounts returns total and completed task counts for a project.
func (r *Repository) GetTaskCounts(ctx context.Context, projectID int64) (TaskCounts, error) {
	query := `
		SELECT count(*), count(*) FILTER (WHERE completed)
		FROM tasks
		WHERE project_id = $1
	`

	var counts TaskCounts
	if err := r.pool.QueryRow(ctx, query, projectID).Scan(&counts.Total, &counts.Completed); err != nil {
		return TaskCounts{}, fmt.Errorf("failed to count tasks: %w", err)
	}

	return counts, nil
}

// GetTaskCountsByOwner returns task counts keyed by project id for all
// of the owner's projects. Projects with no tasks are absent.
func (r *Repository) GetTaskCountsByOwner(ctx context.Context, ownerID int64) (map[int64]TaskCounts, error) {
	query := `
		SELECT t.project_id, count(*), count(*) FILTER (WHERE t.completed)
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE p.owner_id = $1
		GROUP BY t.project_id
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by owner: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]TaskCounts)
	for rows.Next() {
		var projectID int64
		var c TaskCounts
		if err := rows.Scan(&projectID, &c.Total, &c.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan task counts: %w", err)
		}
		counts[projectID] = c
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task counts: %w", err)
	}

	return counts, nil
}
