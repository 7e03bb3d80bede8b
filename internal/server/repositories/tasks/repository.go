package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository is the owner-scoped task store. Every operation takes the
// owner's user id; implementations must apply it as a query predicate so a
// task is never visible to or mutable by anyone but its owner.
type Repository interface {
	Create(ctx context.Context, task *models.Task) error
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error)
	GetByID(ctx context.Context, ownerID string, taskID string) (*models.Task, error)
	Update(ctx context.Context, ownerID string, taskID string, title, description string) error
	UpdateWithStatus(ctx context.Context, ownerID string, taskID string, title, description, status string) error
	UpdateStatus(ctx context.Context, ownerID string, taskID string, status string) error
	Delete(ctx context.Context, ownerID string, taskID string) error
}
