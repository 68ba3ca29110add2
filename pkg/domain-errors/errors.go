// Package domainerrors defines coded errors shared by services and transports.
//
// Services return these errors; the HTTP layer maps the code to a status and
// renders the message. Internal errors never expose their message to clients.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	// CodeBadRequest covers missing or malformed request fields.
	CodeBadRequest Code = "bad_request"
	// CodeInvalidInput covers values that parse but fall outside the allowed set.
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound covers absent shops, sessions and saved verifications.
	CodeNotFound Code = "not_found"
	// CodeInvalidState covers state-machine precondition violations.
	CodeInvalidState Code = "invalid_state"
	// CodeMethodNotAllowed covers shop policy violations.
	CodeMethodNotAllowed Code = "method_not_allowed"
	// CodeConflict covers uniqueness violations.
	CodeConflict Code = "conflict"
	// CodeInvariantViolation is raised by model constructors; services convert it.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeInternal covers unexpected store or infrastructure failures.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and client-facing message to an underlying error.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether any error in the chain carries code.
func HasCode(err error, code Code) bool {
	var de *Error
	for err != nil {
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// CodeOf returns the outermost domain code, or CodeInternal for foreign errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the outermost domain message, or "" for foreign errors.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidInput, CodeInvalidState, CodeMethodNotAllowed, CodeInvariantViolation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
