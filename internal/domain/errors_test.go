// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roombook/room-booking-service/internal/domain/models"
)

func TestGetErrorType(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{
			name:     "validation error",
			err:      NewValidationError("bad input"),
			expected: ErrorTypeValidation,
		},
		{
			name:     "not found error",
			err:      NewNotFoundError("missing"),
			expected: ErrorTypeNotFound,
		},
		{
			name:     "conflict error",
			err:      NewConflictError("busy"),
			expected: ErrorTypeConflict,
		},
		{
			name:     "unavailable error",
			err:      NewUnavailableError("down"),
			expected: ErrorTypeUnavailable,
		},
		{
			name:     "wrapped domain error",
			err:      fmt.Errorf("outer: %w", NewNotFoundError("missing")),
			expected: ErrorTypeNotFound,
		},
		{
			name:     "plain error falls back to internal",
			err:      errors.New("something"),
			expected: ErrorTypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorType(tt.err))
		})
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	inner := errors.New("kv timeout")
	err := NewInternalError("failed to fetch event", inner)

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "failed to fetch event")
	assert.Contains(t, err.Error(), "kv timeout")
}

func TestNewInvalidRecurrenceTypeError(t *testing.T) {
	err := NewInvalidRecurrenceTypeError(models.RecurrenceType("hourly"))
	assert.Equal(t, ErrorTypeValidation, GetErrorType(err))
	assert.Contains(t, err.Error(), "hourly")
}

func TestNewRuleNotAnchoredError(t *testing.T) {
	err := NewRuleNotAnchoredError("rule-1")
	assert.Equal(t, ErrorTypeValidation, GetErrorType(err))
	assert.Contains(t, err.Error(), "rule-1")
}

func TestNewRoomConflictError(t *testing.T) {
	err := NewRoomConflictError("room-1", models.Interval{
		Start: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, ErrorTypeConflict, GetErrorType(err))
	assert.Contains(t, err.Error(), "room-1")
	assert.Contains(t, err.Error(), "2024-06-01 09:00")
}
