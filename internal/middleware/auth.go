package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/harborlane/specials/internal/auth"
)

// RequireSession wraps admin data handlers with a session-token
// check. Requests without a valid Bearer token get a 401 JSON body
// and never reach the handler (or storage).
func RequireSession(sessions *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, r, auth.ErrMissingToken)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, r, auth.ErrInvalidToken)
				return
			}

			if err := sessions.Verify(parts[1]); err != nil {
				unauthorized(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	slog.Debug("Rejected unauthenticated request",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
