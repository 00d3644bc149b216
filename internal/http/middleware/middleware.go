// Package middleware wraps handlers with authentication checks.
//
// Each function takes the next handler and returns a new one, so routes
// can be composed in main.go:
//
//	router.HandleFunc("GET /api/me", middleware.RequireStudent(tokens, student.GetProfile(db)))
package middleware

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aanand-mishra/exam-portal/internal/auth"
	"github.com/aanand-mishra/exam-portal/internal/utils/response"
)

// AdminKeyHeader carries the shared secret for review endpoints.
const AdminKeyHeader = "X-Admin-Key"

// RequireStudent rejects requests without a valid "Authorization: Bearer"
// token and stores the token claims in the request context.
func RequireStudent(tokens *auth.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.WriteJSON(w, http.StatusUnauthorized,
				response.GeneralError(errors.New("authentication required")))
			return
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			slog.Info("rejected token", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusUnauthorized,
				response.GeneralError(errors.New("session expired or invalid, please log in again")))
			return
		}

		next(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	}
}

// RequireAdmin checks the X-Admin-Key header against key. An empty key
// disables the wrapped endpoint entirely.
func RequireAdmin(key string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get(AdminKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			response.WriteJSON(w, http.StatusForbidden,
				response.GeneralError(errors.New("admin access required")))
			return
		}

		next(w, r)
	}
}
