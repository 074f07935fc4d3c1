package services

import (
	"errors"
	"strings"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrAlreadyJoined   = errors.New("already joined this event")
	ErrNoPendingJoin   = errors.New("no pending join request for this user and event")
	ErrPaymentRejected = errors.New("payment proof missing or rejected")
)

// ValidationError carries field-level reasons so the client can
// re-render the form inline instead of showing a generic failure.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	reasons := make([]string, 0, len(e.Fields))
	for field, reason := range e.Fields {
		reasons = append(reasons, field+": "+reason)
	}
	return "validation failed: " + strings.Join(reasons, "; ")
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}
