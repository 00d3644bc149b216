// Package account contains the HTTP handlers for sign-up, login and
// password changes.
//
// Like every handler package here, each exported function is a factory:
// it receives its dependencies once at startup and returns the
// http.HandlerFunc that serves every request.
package account

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/exam-portal/internal/auth"
	"github.com/aanand-mishra/exam-portal/internal/storage"
	"github.com/aanand-mishra/exam-portal/internal/types"
	"github.com/aanand-mishra/exam-portal/internal/utils/response"
	"github.com/google/uuid"
)

// ErrEmailTakenMessage is shown when a sign-up reuses an email.
const ErrEmailTakenMessage = "This email is already registered. Please log in or use a different email."

// ─────────────────────────────────────────────────────────────────────────────
// Signup handles POST /api/auth/signup
// Creates the account and a Pending registration for the chosen exam.
//
// Request body (JSON):
//
//	{ "name": "Riya Das", "email": "riya@nita.ac.in", "phone": "9876543210",
//	  "department": "Computer Science Engineering", "semester": "2",
//	  "rollNumber": "23UCS045", "examType": "SOAR13.0",
//	  "password": "secret1", "confirmPassword": "secret1", "agreeTerms": true }
//
// Success response (201 Created):
//
//	{ "id": "…uuid…", "registrationId": 1, "status": "Pending" }
//
// Error responses:
//
//	400 Bad Request : malformed body, failed validation, exam closed
//	409 Conflict    : email already registered
//	500 Internal    : database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Signup(store storage.Storage, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("signing up a student")

		var req types.SignupRequest
		if !response.DecodeAndValidate(w, r, &req) {
			return
		}

		exam, err := store.GetExamByCode(req.ExamType)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			slog.Error("error looking up exam",
				slog.String("exam", req.ExamType),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}
		if err != nil || !exam.RegistrationOpen {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("selected exam is not open for registration")))
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		at := now().UTC()
		student := types.Student{
			ID:           uuid.NewString(),
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			Department:   req.Department,
			Semester:     req.Semester,
			RollNumber:   req.RollNumber,
			PasswordHash: hash,
			CreatedAt:    at,
			UpdatedAt:    at,
		}

		reg, err := store.RegisterStudent(student, exam.ID, req.RollNumber)
		if errors.Is(err, storage.ErrEmailTaken) {
			response.WriteJSON(w, http.StatusConflict,
				response.GeneralError(errors.New(ErrEmailTakenMessage)))
			return
		}
		if err != nil {
			slog.Error("error registering student", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		slog.Info("student registered",
			slog.String("id", student.ID),
			slog.Int64("registration", reg.ID))

		response.WriteJSON(w, http.StatusCreated, map[string]any{
			"id":             student.ID,
			"registrationId": reg.ID,
			"status":         reg.Status,
		})
	}
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Student   types.Student `json:"student"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Login handles POST /api/auth/login
// Exchanges email and password for a bearer token.
//
// Error responses:
//
//	400 Bad Request : malformed body or failed validation
//	401 Unauthorized: unknown email or wrong password
//
// ─────────────────────────────────────────────────────────────────────────────
func Login(store storage.Storage, tokens *auth.TokenManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		if !response.DecodeAndValidate(w, r, &req) {
			return
		}

		slog.Info("logging in", slog.String("email", req.Email))

		student, err := store.GetStudentByEmail(req.Email)
		if err == nil {
			err = auth.CheckPassword(student.PasswordHash, req.Password)
		}
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, auth.ErrInvalidCredentials) {
			response.WriteJSON(w, http.StatusUnauthorized,
				response.GeneralError(auth.ErrInvalidCredentials))
			return
		}
		if err != nil {
			slog.Error("error logging in", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		token, expires, err := tokens.Issue(auth.Claims{StudentID: student.ID, Email: student.Email})
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, LoginResponse{
			Token:     token,
			ExpiresAt: expires,
			Student:   student,
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ChangePassword handles PUT /api/me/password (authenticated)
//
// Request body (JSON):
//
//	{ "currentPassword": "secret1", "newPassword": "secret2" }
//
// ─────────────────────────────────────────────────────────────────────────────
func ChangePassword(store storage.Storage, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())
		slog.Info("changing password", slog.String("id", claims.StudentID))

		var req types.ChangePasswordRequest
		if !response.DecodeAndValidate(w, r, &req) {
			return
		}

		student, err := store.GetStudentByID(claims.StudentID)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		if err := auth.CheckPassword(student.PasswordHash, req.CurrentPassword); err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				response.WriteJSON(w, http.StatusUnauthorized,
					response.GeneralError(errors.New("current password is incorrect")))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		if err := store.UpdatePasswordHash(student.ID, hash, now().UTC()); err != nil {
			slog.Error("error updating password",
				slog.String("id", student.ID),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
	}
}
