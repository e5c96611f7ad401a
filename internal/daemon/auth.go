package daemon

import (
	"crypto/subtle"
	"net/http"
	"slices"
	"strings"
)

// allowMethods rejects requests whose method is not listed with status before
// next runs. Mutating routes answer 403, read-only routes 405.
func (s *APIServer) allowMethods(status int, next http.HandlerFunc, methods ...string) http.HandlerFunc {
	message := "forbidden"
	if status == http.StatusMethodNotAllowed {
		message = "method not allowed"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !slices.Contains(methods, r.Method) {
			if status == http.StatusMethodNotAllowed {
				w.Header().Set("Allow", strings.Join(methods, ", "))
			}
			s.writeError(w, status, message)
			return
		}
		next(w, r)
	}
}

// authMiddleware validates bearer tokens. An empty token disables
// authentication; otherwise requests must carry "Authorization: Bearer <token>".
func (s *APIServer) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	if s.token == "" {
		return next
	}
	expected := []byte(s.token)
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		provided := []byte(strings.TrimPrefix(auth, "Bearer "))
		if subtle.ConstantTimeCompare(provided, expected) != 1 {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}
