// Package tasks provides the PostgreSQL-backed task store. Mutating queries
// carry both the task id and the owner id in a single statement, so an id
// belonging to another user is indistinguishable from a missing one.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// PostgresRepository implements task storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a task for its owner.
func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, description, status)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, task.Status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByOwner returns all tasks belonging to ownerID, oldest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	query := `
		SELECT id, user_id, title, description, status, created_at, updated_at FROM tasks
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	var result []*models.Task
	for rows.Next() {
		var item models.Task
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Title, &item.Description, &item.Status,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns the task only if it belongs to ownerID.
func (r *PostgresRepository) GetByID(ctx context.Context, ownerID string, taskID string) (*models.Task, error) {
	query := `
		SELECT id, user_id, title, description, status, created_at, updated_at FROM tasks
		WHERE id = $1 AND user_id = $2
	`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, taskID, ownerID).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description, &task.Status,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

// Update edits title and description of the owner's task.
func (r *PostgresRepository) Update(ctx context.Context, ownerID string, taskID string, title, description string) error {
	query := `
		UPDATE tasks SET title = $3, description = $4, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, taskID, ownerID, title, description)
	return checkAffected(res, err)
}

// UpdateWithStatus edits title, description and status of the owner's task.
func (r *PostgresRepository) UpdateWithStatus(ctx context.Context, ownerID string, taskID string, title, description, status string) error {
	query := `
		UPDATE tasks SET title = $3, description = $4, status = $5, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, taskID, ownerID, title, description, status)
	return checkAffected(res, err)
}

// UpdateStatus changes only the status of the owner's task.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, ownerID string, taskID string, status string) error {
	query := `
		UPDATE tasks SET status = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, taskID, ownerID, status)
	return checkAffected(res, err)
}

// Delete removes the owner's task.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID string, taskID string) error {
	query := `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, taskID, ownerID)
	return checkAffected(res, err)
}

// checkAffected maps a mutating statement's outcome to the error taxonomy:
// zero affected rows means the task does not exist for this owner.
func checkAffected(res sql.Result, err error) error {
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
