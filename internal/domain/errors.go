package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a missing resource, or one owned by someone else
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates malformed or missing input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates a missing, invalid or expired credential
	UnauthorizedError struct {
		Message string
	}

	// ConflictError indicates a duplicate name or a violated constraint
	ConflictError struct {
		Message      string
		ResourceType string // folder, image, user
		ResourceID   string // existing/conflicting resource, if known
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ConflictError) Error() string     { return e.Message }

func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// Conflicts are reported as bad requests, matching the public API contract.
func (e *ConflictError) StatusCode() int { return http.StatusBadRequest }

func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
func (e *ConflictError) Is(target error) bool     { return target == ErrConflict }

// NewNotFound returns a NotFoundError with the given message
func NewNotFound(message string) error {
	return &NotFoundError{Message: message}
}

// NewValidation returns a ValidationError with the given message
func NewValidation(message string) error {
	return &ValidationError{Message: message}
}

// NewUnauthorized returns an UnauthorizedError with the given message
func NewUnauthorized(message string) error {
	return &UnauthorizedError{Message: message}
}
