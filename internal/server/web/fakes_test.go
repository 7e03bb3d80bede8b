package web

import (
	"context"
	"sort"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/google/uuid"
)

var testSecret = []byte("test-secret")

// fakeUsers keeps users in memory but issues and validates real signed
// tokens, so the middleware is exercised end to end.
type fakeUsers struct {
	byID     map[string]*models.User
	tokenTTL time.Duration
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*models.User{}, tokenTTL: time.Hour}
}

func (f *fakeUsers) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, common.ErrorValidation
	}
	for _, u := range f.byID {
		if u.Email == email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u := &models.User{ID: uuid.NewString(), Name: name, Email: email, PasswordHash: []byte(password)}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (string, error) {
	for _, u := range f.byID {
		if u.Email == email {
			if string(u.PasswordHash) != password {
				return "", common.ErrorUnauthorized
			}
			return f.IssueToken(u.ID)
		}
	}
	return "", common.ErrorUnauthorized
}

func (f *fakeUsers) IssueToken(userID string) (string, error) {
	return auth.GenerateToken(userID, testSecret, f.tokenTTL)
}

func (f *fakeUsers) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := auth.GetUserIDFromToken(token, testSecret)
	if err != nil {
		return nil, err
	}
	u, ok := f.byID[userID]
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	return u, nil
}

// fakeTasks mirrors the repository's owner predicate: id and owner must both
// match or the task does not exist.
type fakeTasks struct {
	byID map[string]*models.Task
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{byID: map[string]*models.Task{}}
}

func (f *fakeTasks) Create(ctx context.Context, ownerID, title, description string) (*models.Task, error) {
	if title == "" || description == "" {
		return nil, common.ErrorValidation
	}
	t := &models.Task{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Title:       title,
		Description: description,
		Status:      models.StatusPending,
	}
	f.byID[t.ID] = t
	return t, nil
}

func (f *fakeTasks) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	var result []*models.Task
	for _, t := range f.byID {
		if t.UserID == ownerID {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeTasks) find(ownerID, taskID string) (*models.Task, error) {
	t, ok := f.byID[taskID]
	if !ok || t.UserID != ownerID {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (f *fakeTasks) Get(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	return f.find(ownerID, taskID)
}

func (f *fakeTasks) Update(ctx context.Context, ownerID, taskID, title, description string) error {
	t, err := f.find(ownerID, taskID)
	if err != nil {
		return err
	}
	t.Title, t.Description = title, description
	return nil
}

func (f *fakeTasks) UpdateWithStatus(ctx context.Context, ownerID, taskID, title, description, status string) error {
	t, err := f.find(ownerID, taskID)
	if err != nil {
		return err
	}
	t.Title, t.Description, t.Status = title, description, status
	return nil
}

func (f *fakeTasks) UpdateStatus(ctx context.Context, ownerID, taskID, status string) error {
	t, err := f.find(ownerID, taskID)
	if err != nil {
		return err
	}
	t.Status = status
	return nil
}

func (f *fakeTasks) Delete(ctx context.Context, ownerID, taskID string) error {
	if _, err := f.find(ownerID, taskID); err != nil {
		return err
	}
	delete(f.byID, taskID)
	return nil
}
