package common

import (
	"net/http"

	"fichaje.app/fichaje/shifts"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
	}
}

// StatusFor maps the shift engine's error taxonomy onto HTTP statuses:
// validation rejects the request, not-found means refresh your view,
// conflict means reconcile and retry deliberately, anything else is the
// store's problem.
func StatusFor(err error) int {
	switch {
	case shifts.IsValidation(err):
		return http.StatusUnprocessableEntity
	case shifts.IsNotFound(err):
		return http.StatusNotFound
	case shifts.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
