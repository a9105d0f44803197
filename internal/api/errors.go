package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Subramanya2/tasktrack-core/internal/auth"
	"github.com/Subramanya2/tasktrack-core/internal/task"
)

// envelope is the uniform response shape. Every endpoint responds with
// success plus exactly one of data, error, or errors.
type envelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Count   *int              `json:"count,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  []auth.FieldError `json:"errors,omitempty"`
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeData writes a success envelope carrying a single payload.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// writeCollection writes a success envelope for a collection, with the
// item count alongside the data.
func writeCollection(w http.ResponseWriter, status int, count int, data any) {
	writeJSON(w, status, envelope{Success: true, Count: &count, Data: data})
}

// writeErrorMessage writes a failure envelope with a single message.
func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: message})
}

// writeValidationErrors writes a 400 failure envelope carrying
// field-level errors.
func writeValidationErrors(w http.ResponseWriter, verr *auth.ValidationError) {
	writeJSON(w, http.StatusBadRequest, envelope{Success: false, Errors: verr.Fields})
}

// writeError translates a domain error into the matching HTTP response.
// Unrecognised errors become a generic 500; the detail goes to the log,
// never to the client.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	if verr, ok := auth.AsValidationError(err); ok {
		writeValidationErrors(w, verr)
		return
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorMessage(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, auth.ErrTokenMalformed),
		errors.Is(err, auth.ErrTokenSignature),
		errors.Is(err, auth.ErrTokenExpired):
		writeErrorMessage(w, http.StatusUnauthorized, "Not authorized to access this route")
	case errors.Is(err, auth.ErrForbidden):
		writeErrorMessage(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, task.ErrTaskNotFound):
		writeErrorMessage(w, http.StatusNotFound, "Task not found")
	default:
		s.logger.Error("request failed", "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "Server Error")
	}
}
