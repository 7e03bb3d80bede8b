// Package web exposes the server-rendered HTTP surface: registration and
// login forms, the task dashboard, and the task CRUD routes. It is the only
// layer that knows about cookies, redirects, and HTML.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// UserService is the slice of the user service the HTTP layer needs.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	IssueToken(userID string) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// TaskService is the slice of the task service the HTTP layer needs. All
// operations are owner-scoped.
type TaskService interface {
	Create(ctx context.Context, ownerID, title, description string) (*models.Task, error)
	List(ctx context.Context, ownerID string) ([]*models.Task, error)
	Get(ctx context.Context, ownerID, taskID string) (*models.Task, error)
	Update(ctx context.Context, ownerID, taskID, title, description string) error
	UpdateWithStatus(ctx context.Context, ownerID, taskID, title, description, status string) error
	UpdateStatus(ctx context.Context, ownerID, taskID, status string) error
	Delete(ctx context.Context, ownerID, taskID string) error
}

// HTTPServer serves the web UI.
type HTTPServer struct {
	address  string
	users    UserService
	tasks    TaskService
	logger   logging.Logger
	tokenTTL time.Duration
}

// NewHTTPServer constructs the server; tokenTTL bounds the auth cookie's
// lifetime to the token's.
func NewHTTPServer(a string, l logging.Logger, us UserService, ts TaskService, tokenTTL time.Duration) (*HTTPServer, error) {
	return &HTTPServer{
		address:  a,
		logger:   l.With("module", "http_server"),
		users:    us,
		tasks:    ts,
		tokenTTL: tokenTTL,
	}, nil
}

// Router builds the route tree. Split out from Run so tests can drive it
// with httptest.
func (s *HTTPServer) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		s.methodOverride,
	)

	// public pages
	r.Get("/", s.index)
	r.Get("/login", s.loginForm)
	r.Get("/register", s.registerForm)
	r.Post("/auth/register", s.register)
	r.Post("/auth/login", s.login)

	// everything below requires a valid session token
	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/dashboard", s.dashboard)
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.listTasks)
			r.Post("/", s.createTask)
			r.Get("/{taskID}/edit", s.editTaskForm)
			r.Put("/{taskID}", s.updateTask)
			r.Patch("/{taskID}", s.patchTask)
			r.Patch("/{taskID}/status", s.patchTaskStatus)
			r.Delete("/{taskID}", s.deleteTask)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
