// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler sends JSON back to the client except the admit card
// download. Error responses always share the same envelope so API
// consumers know what to expect.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aanand-mishra/exam-portal/internal/utils/validate"
	"github.com/go-playground/validator/v10"
)

// Response is the standard envelope returned for error cases:
//
//	{ "status": "error", "error": "field Name is required" }
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
// Headers must be set before WriteHeader, so the order here matters.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError converts validator.FieldError values into a single
// human-readable Response, one sentence per failing field.
//
//	{ "status": "error", "error": "field Name is required, field Phone must be a 10-digit phone number" }
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		var msg string
		switch e.ActualTag() {
		case "required":
			msg = fmt.Sprintf("field %s is required", e.Field())
		case "email":
			msg = fmt.Sprintf("field %s must be a valid email address", e.Field())
		case "min":
			msg = fmt.Sprintf("field %s must be at least %s characters", e.Field(), e.Param())
		case "eqfield":
			msg = fmt.Sprintf("field %s must match %s", e.Field(), e.Param())
		case "oneof":
			msg = fmt.Sprintf("field %s must be one of: %s", e.Field(), e.Param())
		case "phone":
			msg = fmt.Sprintf("field %s must be a 10-digit phone number", e.Field())
		case "department":
			msg = fmt.Sprintf("field %s must be a listed department", e.Field())
		default:
			msg = fmt.Sprintf("field %s is invalid", e.Field())
		}
		errMessages = append(errMessages, msg)
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}

// DecodeAndValidate reads a JSON body into v and checks its validate
// tags. On failure it writes a 400 response and returns false; the
// handler should then return without writing anything else.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		WriteJSON(w, http.StatusBadRequest,
			GeneralError(errors.New("request body is empty")))
		return false
	}
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, GeneralError(err))
		return false
	}

	if err := validate.Struct(v); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			WriteJSON(w, http.StatusBadRequest, ValidationError(validateErrs))
		} else {
			WriteJSON(w, http.StatusBadRequest, GeneralError(err))
		}
		return false
	}

	return true
}
