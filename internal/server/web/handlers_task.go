package web

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type taskListView struct {
	User  *models.User
	Tasks []*models.Task
}

// taskError maps service errors to the response taxonomy. Not-found covers
// both missing ids and other users' tasks, so existence is never confirmed
// to a non-owner.
func (s *HTTPServer) taskError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		http.Error(w, "Task not found", http.StatusNotFound)
	case errors.Is(err, common.ErrorValidation):
		http.Error(w, "Invalid task fields", http.StatusBadRequest)
	default:
		s.logger.Error(r.Context(), "task operation failed", "error", err.Error())
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}

func (s *HTTPServer) renderTaskList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, ok := userFromContext(ctx)
	if !ok {
		http.Error(w, "User not found, please log in again.", http.StatusUnauthorized)
		return
	}

	tasks, err := s.tasks.List(ctx, user.ID)
	if err != nil {
		s.logger.Error(ctx, "listing tasks failed", "error", err.Error())
		http.Error(w, "Error retrieving tasks", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "dashboard.html", taskListView{User: user, Tasks: tasks})
}

func (s *HTTPServer) dashboard(w http.ResponseWriter, r *http.Request) {
	s.renderTaskList(w, r)
}

func (s *HTTPServer) listTasks(w http.ResponseWriter, r *http.Request) {
	s.renderTaskList(w, r)
}

func (s *HTTPServer) createTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, ok := userFromContext(ctx)
	if !ok {
		http.Error(w, "User not found, please log in again.", http.StatusUnauthorized)
		return
	}

	_, err := s.tasks.Create(ctx, user.ID, r.FormValue("title"), r.FormValue("description"))
	if err != nil {
		s.taskError(w, r, err)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (s *HTTPServer) editTaskForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, ok := userFromContext(ctx)
	if !ok {
		http.Error(w, "User not found, please log in again.", http.StatusUnauthorized)
		return
	}

	task, err := s.tasks.Get(ctx, user.ID, chi.URLParam(r, "taskID"))
	if err != nil {
		s.taskError(w, r, err)
		return
	}

	s.render(w, r, "edit.html", task)
}

func (s *HTTPServer) updateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, ok := userFromContext(ctx)
	if !ok {
		http.Error(w, "User not found, please log in again.", http.StatusUnauthorized)
		return
	}

	err := s.tasks.Update(ctx, user.ID, chi.URLParam(r, "taskID"),
		r.FormValue("title"), r.FormValue("description"))
	if err != nil {
		s.taskError(w, r, err)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (s *HTTPServer) patchTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, ok := userFromContext(ctx)
	if !ok {
		http.Error(w, "User not found, please log in again.", http.StatusUnauthorized)
		return
	}

	err := s.tasks.UpdateWithStatus(ctx, user.ID, chi.URLParam(r, "taskID"),
		r.FormValue("title"), r.FormValue("description"), r.FormValue("status"))
	if err != nil {
		s.taskError(w, r, err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *HTTPServer) patchTaskStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, ok := userFromContext(ctx)
	if !ok {
		http.Error(w, "User not found, please log in again.", http.StatusUnauthorized)
		return
	}

	err := s.tasks.UpdateStatus(ctx, user.ID, chi.URLParam(r, "taskID"), r.FormValue("status"))
	if err != nil {
		s.taskError(w, r, err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *HTTPServer) deleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, ok := userFromContext(ctx)
	if !ok {
		http.Error(w, "User not found, please log in again.", http.StatusUnauthorized)
		return
	}

	err := s.tasks.Delete(ctx, user.ID, chi.URLParam(r, "taskID"))
	if err != nil {
		s.taskError(w, r, err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
