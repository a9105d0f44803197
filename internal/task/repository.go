package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for task persistence.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context, scope Scope) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite-backed task repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a new task. The ID is generated if empty and the
// status defaults to pending.
func (r *SQLiteRepository) Create(ctx context.Context, t *Task) error {
	if t.ID == "" {
		t.ID = "tsk-" + uuid.NewString()[:8]
	}
	if t.Status == "" {
		t.Status = StatusPending
	}

	now := time.Now().UTC().Truncate(time.Second)
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, status, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, string(t.Status), t.UserID,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by its unique ID.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Task, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, title, description, status, user_id, created_at, updated_at FROM tasks WHERE id = ?", id)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns the tasks visible under the given scope, oldest first.
//
// On an unrestricted scope with owner annotation, each task is joined
// with its owner's name and email. The join happens only on this
// branch: scoped listings return the caller's own tasks, where owner
// details would be redundant.
func (r *SQLiteRepository) List(ctx context.Context, scope Scope) ([]Task, error) {
	if scope.Unrestricted() && scope.AnnotateOwner {
		return r.listWithOwners(ctx)
	}

	query := "SELECT id, title, description, status, user_id, created_at, updated_at FROM tasks"
	var args []any
	if !scope.Unrestricted() {
		query += " WHERE user_id = ?"
		args = append(args, scope.OwnerID)
	}
	query += " ORDER BY created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

// listWithOwners lists every task joined with its owner's display details.
func (r *SQLiteRepository) listWithOwners(ctx context.Context) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.title, t.description, t.status, t.user_id, t.created_at, t.updated_at,
		       u.name, u.email
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing tasks with owners: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var status, createdAt, updatedAt string
		var owner OwnerInfo

		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &status, &t.UserID,
			&createdAt, &updatedAt, &owner.Name, &owner.Email); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		t.Status = Status(status)
		t.Owner = &owner
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
		t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// Update modifies a task's content fields. The owner is never touched.
func (r *SQLiteRepository) Update(ctx context.Context, t *Task) error {
	now := time.Now().UTC().Truncate(time.Second)
	t.UpdatedAt = now

	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, updated_at = ? WHERE id = ?`,
		t.Title, t.Description, string(t.Status), now.Format(time.RFC3339), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanTask scans a task from any scanner (Row or Rows).
func scanTask(s scanner) (*Task, error) {
	var t Task
	var status, createdAt, updatedAt string

	err := s.Scan(&t.ID, &t.Title, &t.Description, &status, &t.UserID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Status = Status(status)
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled

	return &t, nil
}

// collectTasks drains rows into a task slice.
func collectTasks(rows *sql.Rows) ([]Task, error) {
	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}
