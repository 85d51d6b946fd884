// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package domain

import (
	"errors"
	"fmt"

	"github.com/roombook/room-booking-service/internal/domain/models"
)

// ErrorType represents the semantic category of an error
type ErrorType int

const (
	ErrorTypeValidation  ErrorType = iota // Input validation errors (400 Bad Request)
	ErrorTypeNotFound                     // Resource not found errors (404 Not Found)
	ErrorTypeConflict                     // Resource conflict errors (409 Conflict)
	ErrorTypeInternal                     // Internal server errors (500 Internal Server Error)
	ErrorTypeUnavailable                  // Service unavailable errors (503 Service Unavailable)
)

// DomainError represents an error with semantic type information
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error // underlying error for wrapping
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// GetErrorType returns the semantic type of an error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ErrorTypeInternal // default fallback
}

// Error constructors for different types
func NewValidationError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeValidation, Message: message, Err: errors.Join(err...)}
}

func NewNotFoundError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeNotFound, Message: message, Err: errors.Join(err...)}
}

func NewConflictError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeConflict, Message: message, Err: errors.Join(err...)}
}

func NewInternalError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeInternal, Message: message, Err: errors.Join(err...)}
}

func NewUnavailableError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeUnavailable, Message: message, Err: errors.Join(err...)}
}

// NewInvalidRecurrenceTypeError reports an unrecognized recurrence type.
// This is fatal for the enclosing operation and is never retried.
func NewInvalidRecurrenceTypeError(recurrenceType models.RecurrenceType) *DomainError {
	return NewValidationError(fmt.Sprintf("invalid recurrence type %q", recurrenceType))
}

// NewRuleNotAnchoredError reports an attempt to synchronize a rule that has
// no first instance attached yet. This is a caller error.
func NewRuleNotAnchoredError(ruleUID string) *DomainError {
	return NewValidationError(fmt.Sprintf("recurrence rule %s has no anchor event", ruleUID))
}

// NewRoomConflictError reports that a candidate interval overlaps an
// existing booking. The first conflicting interval is included so callers
// can surface which occurrence failed.
func NewRoomConflictError(roomUID string, interval models.Interval) *DomainError {
	return NewConflictError(fmt.Sprintf(
		"room %s is not available for %s - %s",
		roomUID,
		interval.Start.Format("2006-01-02 15:04"),
		interval.End.Format("2006-01-02 15:04"),
	))
}
