package web

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

func (s *HTTPServer) index(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "index.html", nil)
}

func (s *HTTPServer) loginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", nil)
}

func (s *HTTPServer) registerForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register.html", nil)
}

// setAuthCookie stores the session token in an HTTP-only cookie whose
// lifetime matches the token's.
func (s *HTTPServer) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := s.users.Register(ctx, r.FormValue("name"), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			http.Error(w, "User already exists", http.StatusBadRequest)
		case errors.Is(err, common.ErrorValidation):
			http.Error(w, "Name, email and password are required", http.StatusBadRequest)
		default:
			s.logger.Error(ctx, "registration failed", "error", err.Error())
			http.Error(w, "Server error", http.StatusInternalServerError)
		}
		return
	}

	token, err := s.users.IssueToken(user.ID)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "error", err.Error())
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	s.logger.Info(ctx, "registered", "email", user.Email)
	s.setAuthCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, err := s.users.Login(ctx, r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			http.Error(w, "Invalid credentials", http.StatusBadRequest)
			return
		}
		s.logger.Error(ctx, "login failed", "error", err.Error())
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	s.setAuthCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
