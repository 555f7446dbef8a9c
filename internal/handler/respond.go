package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cinelog/cinelog/internal/domain"
)

// errorResponse is the JSON body returned for every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps a service error onto an HTTP status and writes the
// JSON error body. Internal errors are reported without their cause.
func writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrPasswordMismatch):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrMovieNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrTitleExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
