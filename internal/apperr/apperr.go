// Package apperr defines the application error taxonomy shared by the
// content engine and the HTTP layer. Errors carry the HTTP status they
// map to so handlers never have to guess.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a user-facing application error with an HTTP status code.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// NotFound reports a missing entity, draft, or collaborator reference.
func NotFound(format string, args ...any) *Error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// BadRequest reports invalid input, such as a non-image file reference.
func BadRequest(format string, args ...any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Forbidden reports an operation the current state does not allow.
func Forbidden(format string, args ...any) *Error {
	return &Error{Status: http.StatusForbidden, Message: fmt.Sprintf(format, args...)}
}

// StatusOf returns the HTTP status for err. Errors outside the taxonomy
// map to 500.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err is a NotFound application error.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}
