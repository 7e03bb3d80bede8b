package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// AuthCookieName is the cookie carrying the signed session token.
const AuthCookieName = "auth_token"

type ctxKey string

const userKey ctxKey = "user"

// authenticate is the authorization gate. It extracts the session token from
// the auth cookie, verifies signature and expiry, resolves the subject to a
// stored user, and attaches the user to the request context. Any failure,
// including a valid token whose user no longer exists, answers 401.
func (s *HTTPServer) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(AuthCookieName)
		if err != nil || cookie.Value == "" {
			http.Error(w, "No token, authorization denied", http.StatusUnauthorized)
			return
		}

		user, err := s.users.Authenticate(r.Context(), cookie.Value)
		if err != nil {
			s.logger.Warn(r.Context(), "token rejected", "error", err.Error())
			http.Error(w, "Token is not valid", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFromContext returns the authenticated user attached by authenticate.
func userFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// methodOverride lets HTML forms issue PUT/PATCH/DELETE by POSTing with a
// _method field or query parameter, the way the original browser forms do.
func (s *HTTPServer) methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			override := r.URL.Query().Get("_method")
			if override == "" {
				if err := r.ParseForm(); err == nil {
					override = r.PostFormValue("_method")
				}
			}
			switch strings.ToUpper(override) {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = strings.ToUpper(override)
			}
		}
		next.ServeHTTP(w, r)
	})
}
