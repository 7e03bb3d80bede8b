package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TaskService implements the ownership-enforced task operations. Every call
// is parameterized by the authenticated owner id, which the repository folds
// into its query predicates.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService over the given repositories.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// normalizeStatus maps form input to the canonical status vocabulary
// ("in progress" and "in-progress" are the same status).
func normalizeStatus(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "-")
}

// Create stamps the new task with ownerID and the default pending status.
// The owner comes from the authenticated identity only; callers cannot
// supply one.
func (s *TaskService) Create(ctx context.Context, ownerID, title, description string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, common.ErrorValidation
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Title:       title,
		Description: description,
		Status:      models.StatusPending,
	}

	repo := s.repomanager.Tasks(s.db)
	if err := repo.Create(ctx, task); err != nil {
		return nil, common.ErrorInternal
	}
	return task, nil
}

// List returns all of the owner's tasks.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	result, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// Get returns the owner's task or common.ErrorNotFound.
func (s *TaskService) Get(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	return repo.GetByID(ctx, ownerID, taskID)
}

// Update edits title and description of the owner's task.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID, title, description string) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return common.ErrorValidation
	}
	repo := s.repomanager.Tasks(s.db)
	return repo.Update(ctx, ownerID, taskID, title, description)
}

// UpdateWithStatus edits title, description and status in one operation.
func (s *TaskService) UpdateWithStatus(ctx context.Context, ownerID, taskID, title, description, status string) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	status = normalizeStatus(status)
	if title == "" || description == "" || !models.ValidStatus(status) {
		return common.ErrorValidation
	}
	repo := s.repomanager.Tasks(s.db)
	return repo.UpdateWithStatus(ctx, ownerID, taskID, title, description, status)
}

// UpdateStatus changes only the status. Transitions are unrestricted.
func (s *TaskService) UpdateStatus(ctx context.Context, ownerID, taskID, status string) error {
	status = normalizeStatus(status)
	if !models.ValidStatus(status) {
		return common.ErrorValidation
	}
	repo := s.repomanager.Tasks(s.db)
	return repo.UpdateStatus(ctx, ownerID, taskID, status)
}

// Delete removes the owner's task.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	repo := s.repomanager.Tasks(s.db)
	return repo.Delete(ctx, ownerID, taskID)
}
