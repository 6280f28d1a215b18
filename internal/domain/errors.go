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

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}

	// NotInitializedError indicates the workspace folder has not been loaded yet
	NotInitializedError struct {
		Message string
	}

	// UnknownLayoutError indicates no operation handler is registered for a view layout
	UnknownLayoutError struct {
		Layout string
	}
)

// Error implementations
func (e *NotFoundError) Error() string       { return e.Message }
func (e *ValidationError) Error() string     { return e.Message }
func (e *UnauthorizedError) Error() string   { return e.Message }
func (e *ForbiddenError) Error() string      { return e.Message }
func (e *NotInitializedError) Error() string { return e.Message }
func (e *UnknownLayoutError) Error() string {
	return "unknown layout type: " + e.Layout
}

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int       { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int     { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int   { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int      { return http.StatusForbidden }
func (e *NotInitializedError) StatusCode() int { return http.StatusServiceUnavailable }
func (e *UnknownLayoutError) StatusCode() int  { return http.StatusBadRequest }

// Is implementations so typed errors match their sentinels with errors.Is()
func (e *NotFoundError) Is(target error) bool       { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool     { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool   { return target == ErrUnauthorized }
func (e *ForbiddenError) Is(target error) bool      { return target == ErrForbidden }
func (e *NotInitializedError) Is(target error) bool { return target == ErrNotInitialized }
func (e *UnknownLayoutError) Is(target error) bool  { return target == ErrUnknownLayout }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("already exists")
	ErrValidation     = errors.New("validation failed")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotInitialized = errors.New("folder not initialized")
	ErrUnknownLayout  = errors.New("unknown layout")
	ErrInvalidParams  = errors.New("invalid params")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (view, workspace)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
