package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		status   int
	}{
		{"not found", NewNotFound("folder missing"), ErrNotFound, http.StatusNotFound},
		{"validation", NewValidation("bad name"), ErrValidation, http.StatusBadRequest},
		{"unauthorized", NewUnauthorized("no token"), ErrUnauthorized, http.StatusUnauthorized},
		{"conflict", &ConflictError{Message: "dup", ResourceType: "folder"}, ErrConflict, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service call: %w", tt.err)

			assert.True(t, errors.Is(wrapped, tt.sentinel))

			var httpErr HTTPError
			assert.True(t, errors.As(wrapped, &httpErr))
			assert.Equal(t, tt.status, httpErr.StatusCode())
			assert.Equal(t, tt.err.Error(), httpErr.Error())
		})
	}
}

func TestSentinelsDoNotCrossMatch(t *testing.T) {
	err := NewNotFound("x")
	assert.False(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrValidation))
}
