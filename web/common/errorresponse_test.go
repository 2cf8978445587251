package common

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"fichaje.app/fichaje/shifts"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", shifts.NewValidationError("exit before entry"), http.StatusUnprocessableEntity},
		{"not found", &shifts.NotFoundError{Resource: "time entry", ID: "abc"}, http.StatusNotFound},
		{"conflict", &shifts.ConflictError{Reason: "already clocked in"}, http.StatusConflict},
		{"wrapped validation", fmt.Errorf("clock: %w", shifts.NewValidationError("bad")), http.StatusUnprocessableEntity},
		{"unknown", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}
