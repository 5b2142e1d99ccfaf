// Package apperrors defines the typed error taxonomy shared by all
// controllers: validation, not-found, ownership and transaction failures.
// Anything outside the taxonomy is translated to a generic 500 so internal
// detail never reaches a client.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP translation.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindOwnership
	KindTransaction
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports a bad request: missing required field, malformed
// identifier, duplicate branch number.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an absent referenced row.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Ownership reports a tenant-isolation violation: the dish or branch does
// not belong to the restaurant named in the request.
func Ownership(format string, args ...interface{}) *Error {
	return &Error{Kind: KindOwnership, Message: fmt.Sprintf(format, args...)}
}

// Transaction wraps an unexpected error from a multi-statement write. The
// wrapped cause is logged server-side only.
func Transaction(err error) *Error {
	return &Error{Kind: KindTransaction, Message: "Internal server error", Err: err}
}

// StatusCode maps an error to its HTTP status. Unclassified errors map
// to 500.
func StatusCode(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindOwnership:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the client-safe message for an error. Unclassified
// errors and transaction failures never leak their cause.
func PublicMessage(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Kind == KindTransaction {
		return "Internal server error"
	}
	return appErr.Message
}
