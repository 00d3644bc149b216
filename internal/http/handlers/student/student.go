// Package student contains the HTTP handlers a logged-in student uses:
// profile, dashboard and admit card download.
//
// Every route here sits behind middleware.RequireStudent, so the token
// claims are always present in the request context.
package student

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/aanand-mishra/exam-portal/internal/admitcard"
	"github.com/aanand-mishra/exam-portal/internal/auth"
	"github.com/aanand-mishra/exam-portal/internal/storage"
	"github.com/aanand-mishra/exam-portal/internal/types"
	"github.com/aanand-mishra/exam-portal/internal/utils/response"
)

// ErrAdmitCardUnavailable is reported while a registration is not approved.
var ErrAdmitCardUnavailable = errors.New("Admit card not available: your application is being processed")

// CardGenerator renders admit cards. *admitcard.Generator satisfies it.
type CardGenerator interface {
	Generate(ctx context.Context, rec types.StudentRecord) (*admitcard.AdmitCard, error)
}

// writeLookupError maps storage errors to 404 or 500.
func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
		return
	}
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}

// ─────────────────────────────────────────────────────────────────────────────
// GetProfile handles GET /api/me
// ─────────────────────────────────────────────────────────────────────────────
func GetProfile(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())
		slog.Info("getting profile", slog.String("id", claims.StudentID))

		student, err := store.GetStudentByID(claims.StudentID)
		if err != nil {
			slog.Error("error getting profile",
				slog.String("id", claims.StudentID),
				slog.String("error", err.Error()))
			writeLookupError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateProfile handles PUT /api/me
// Replaces the editable profile fields. Email cannot be changed.
//
// Request body (JSON):
//
//	{ "name": "Riya Das", "phone": "9876543210",
//	  "department": "Physics", "semester": "3", "rollNumber": "23UPH045" }
//
// ─────────────────────────────────────────────────────────────────────────────
func UpdateProfile(store storage.Storage, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())
		slog.Info("updating profile", slog.String("id", claims.StudentID))

		var update types.ProfileUpdate
		if !response.DecodeAndValidate(w, r, &update) {
			return
		}

		updated, err := store.UpdateStudentProfile(claims.StudentID, update, now().UTC())
		if err != nil {
			slog.Error("error updating profile",
				slog.String("id", claims.StudentID),
				slog.String("error", err.Error()))
			writeLookupError(w, err)
			return
		}

		slog.Info("profile updated", slog.String("id", claims.StudentID))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Dashboard is the body of GET /api/me/dashboard.
type Dashboard struct {
	Student          types.Student      `json:"student"`
	RegistrationCode string             `json:"registrationCode"`
	Exam             types.Exam         `json:"exam"`
	Registration     types.Registration `json:"registration"`
	HasAdmitCard     bool               `json:"hasAdmitCard"`
}

// loadRegistration fetches the three records an admit card is built from.
func loadRegistration(store storage.Storage, studentID string) (types.Student, types.Registration, types.Exam, error) {
	student, err := store.GetStudentByID(studentID)
	if err != nil {
		return types.Student{}, types.Registration{}, types.Exam{}, err
	}

	reg, err := store.GetRegistrationByStudent(studentID)
	if err != nil {
		return types.Student{}, types.Registration{}, types.Exam{}, err
	}

	exam, err := store.GetExamByID(reg.ExamID)
	if err != nil {
		return types.Student{}, types.Registration{}, types.Exam{}, err
	}

	return student, reg, exam, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetDashboard handles GET /api/me/dashboard
// Returns the profile, registration status and exam details in one call.
// ─────────────────────────────────────────────────────────────────────────────
func GetDashboard(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())
		slog.Info("getting dashboard", slog.String("id", claims.StudentID))

		student, reg, exam, err := loadRegistration(store, claims.StudentID)
		if err != nil {
			slog.Error("error loading dashboard",
				slog.String("id", claims.StudentID),
				slog.String("error", err.Error()))
			writeLookupError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, Dashboard{
			Student:          student,
			RegistrationCode: admitcard.RegistrationCode(student.RollNumber),
			Exam:             exam,
			Registration:     reg,
			HasAdmitCard:     reg.Status == types.StatusApproved,
		})
	}
}

// NewRecord assembles the admit card input from stored data. The
// registration number and the Roll Number row both come from the
// student's current roll number, so the code, the file name and the
// table always agree.
func NewRecord(student types.Student, exam types.Exam) types.StudentRecord {
	return types.StudentRecord{
		Name:       student.Name,
		RegNo:      student.RollNumber,
		Email:      student.Email,
		Phone:      student.Phone,
		Department: student.Department,
		Semester:   student.Semester,
		RollNumber: student.RollNumber,
		ExamName:   exam.AdmitCardTitle,
		ExamDate:   exam.Date,
		ExamTime:   exam.Time,
		Venue:      exam.Venue,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// DownloadAdmitCard handles GET /api/me/admit-card
// Streams the admit card PDF as an attachment named
// "{regNo}_admit_card.pdf".
//
// Error responses:
//
//	403 Forbidden   : registration not yet approved
//	404 Not Found   : no registration on record
//	500 Internal    : asset or rendering failure
//
// ─────────────────────────────────────────────────────────────────────────────
func DownloadAdmitCard(store storage.Storage, generator CardGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())
		slog.Info("downloading admit card", slog.String("id", claims.StudentID))

		student, reg, exam, err := loadRegistration(store, claims.StudentID)
		if err != nil {
			slog.Error("error loading registration",
				slog.String("id", claims.StudentID),
				slog.String("error", err.Error()))
			writeLookupError(w, err)
			return
		}

		if reg.Status != types.StatusApproved {
			response.WriteJSON(w, http.StatusForbidden, response.GeneralError(ErrAdmitCardUnavailable))
			return
		}

		card, err := generator.Generate(r.Context(), NewRecord(student, exam))
		if err != nil {
			slog.Error("error generating admit card",
				slog.String("id", claims.StudentID),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(fmt.Errorf("Admit card not available: %w", err)))
			return
		}

		if !reg.AdmitCardGenerated {
			if err := store.MarkAdmitCardGenerated(reg.ID); err != nil {
				// The card is still delivered; the flag is informational.
				slog.Error("error flagging admit card",
					slog.Int64("registration", reg.ID),
					slog.String("error", err.Error()))
			}
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			mime.FormatMediaType("attachment", map[string]string{"filename": card.Filename}))
		w.Header().Set("Content-Length", strconv.Itoa(len(card.PDF)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(card.PDF); err != nil {
			slog.Error("error writing admit card", slog.String("error", err.Error()))
			return
		}

		slog.Info("admit card delivered",
			slog.String("id", claims.StudentID),
			slog.String("file", card.Filename))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// RegisterForExam handles POST /api/me/registrations
// Signs the logged-in student up for another open exam. The new
// registration becomes the one the dashboard and admit card use.
//
// Request body (JSON):
//
//	{ "examType": "SOAR13.0" }
//
// Error responses:
//
//	400 Bad Request: malformed body, unknown or closed exam
//	404 Not Found: the account no longer exists
//	409 Conflict: already registered for that exam
//
// ─────────────────────────────────────────────────────────────────────────────
func RegisterForExam(store storage.Storage, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		var req types.ExamRegistrationRequest
		if !response.DecodeAndValidate(w, r, &req) {
			return
		}

		slog.Info("registering for exam",
			slog.String("id", claims.StudentID),
			slog.String("exam", req.ExamType))

		exam, err := store.GetExamByCode(req.ExamType)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}
		if err != nil || !exam.RegistrationOpen {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("selected exam is not open for registration")))
			return
		}

		reg, err := store.AddRegistration(claims.StudentID, exam.ID, now().UTC())
		if errors.Is(err, storage.ErrAlreadyRegistered) {
			response.WriteJSON(w, http.StatusConflict, response.GeneralError(err))
			return
		}
		if err != nil {
			slog.Error("error adding registration",
				slog.String("id", claims.StudentID),
				slog.String("error", err.Error()))
			writeLookupError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusCreated, reg)
	}
}
