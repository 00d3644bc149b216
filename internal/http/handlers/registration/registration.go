// Package registration holds the review endpoint used by organisers to
// approve or reject registrations.
package registration

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/exam-portal/internal/storage"
	"github.com/aanand-mishra/exam-portal/internal/types"
	"github.com/aanand-mishra/exam-portal/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// UpdateStatus handles PUT /api/registrations/{id}/status (admin only)
//
// Request body (JSON):
//
//	{ "status": "Approved" }
//
// Success response (200 OK): the updated registration.
// ─────────────────────────────────────────────────────────────────────────────
func UpdateStatus(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating registration status", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		var update types.StatusUpdate
		if !response.DecodeAndValidate(w, r, &update) {
			return
		}

		reg, err := store.UpdateRegistrationStatus(intID, update.Status)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
			return
		}
		if err != nil {
			slog.Error("error updating registration",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		slog.Info("registration status updated",
			slog.String("id", id),
			slog.String("status", reg.Status))
		response.WriteJSON(w, http.StatusOK, reg)
	}
}
