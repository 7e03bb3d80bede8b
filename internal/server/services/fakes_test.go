package services

import (
	"context"
	"database/sql"
	"sort"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	tasksrepo "github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	usersrepo "github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
	"github.com/google/uuid"
)

// --- in-memory repository fakes ---

type fakeUsersRepo struct {
	byID map[string]*models.User

	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.ID = uuid.NewString()
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type fakeTasksRepo struct {
	byID map[string]*models.Task

	err error
}

func newFakeTasksRepo() *fakeTasksRepo {
	return &fakeTasksRepo{byID: map[string]*models.Task{}}
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) error {
	if f.err != nil {
		return f.err
	}
	f.byID[task.ID] = task
	return nil
}

func (f *fakeTasksRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []*models.Task
	for _, t := range f.byID {
		if t.UserID == ownerID {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// find mirrors the SQL predicate: id and owner must both match.
func (f *fakeTasksRepo) find(ownerID, taskID string) (*models.Task, error) {
	t, ok := f.byID[taskID]
	if !ok || t.UserID != ownerID {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (f *fakeTasksRepo) GetByID(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.find(ownerID, taskID)
}

func (f *fakeTasksRepo) Update(ctx context.Context, ownerID, taskID, title, description string) error {
	t, err := f.find(ownerID, taskID)
	if err != nil {
		return err
	}
	t.Title, t.Description = title, description
	return nil
}

func (f *fakeTasksRepo) UpdateWithStatus(ctx context.Context, ownerID, taskID, title, description, status string) error {
	t, err := f.find(ownerID, taskID)
	if err != nil {
		return err
	}
	t.Title, t.Description, t.Status = title, description, status
	return nil
}

func (f *fakeTasksRepo) UpdateStatus(ctx context.Context, ownerID, taskID, status string) error {
	t, err := f.find(ownerID, taskID)
	if err != nil {
		return err
	}
	t.Status = status
	return nil
}

func (f *fakeTasksRepo) Delete(ctx context.Context, ownerID, taskID string) error {
	if _, err := f.find(ownerID, taskID); err != nil {
		return err
	}
	delete(f.byID, taskID)
	return nil
}

// --- repo manager over the fakes ---

type fakeRepoManager struct {
	users *fakeUsersRepo
	tasks *fakeTasksRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{users: newFakeUsersRepo(), tasks: newFakeTasksRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.users }
func (m *fakeRepoManager) Tasks(dbx.DBTX) tasksrepo.Repository          { return m.tasks }
