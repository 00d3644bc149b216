// Package exam serves the public examination catalogue.
package exam

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/exam-portal/internal/storage"
	"github.com/aanand-mishra/exam-portal/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/exams
// Returns every exam; an empty catalogue is [] rather than null.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all exams")

		exams, err := store.GetExams()
		if err != nil {
			slog.Error("error getting exams", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, exams)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/exams/{id}
//
// Error responses:
//
//	400 Bad Request : id is not a valid integer
//	404 Not Found   : no such exam
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting an exam", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		exam, err := store.GetExamByID(intID)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
			return
		}
		if err != nil {
			slog.Error("error getting exam",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, exam)
	}
}
