// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roombook/room-booking-service/internal/domain"
	"github.com/roombook/room-booking-service/internal/domain/mocks"
	"github.com/roombook/room-booking-service/internal/domain/models"
)

func interval(startHour, endHour int) models.Interval {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return models.Interval{
		Start: day.Add(time.Duration(startHour) * time.Hour),
		End:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        models.Interval
		b        models.Interval
		expected bool
	}{
		{
			name:     "disjoint",
			a:        interval(9, 10),
			b:        interval(11, 12),
			expected: false,
		},
		{
			name:     "touching endpoints do not overlap",
			a:        interval(9, 10),
			b:        interval(10, 11),
			expected: false,
		},
		{
			name:     "partial overlap",
			a:        interval(9, 11),
			b:        interval(10, 12),
			expected: true,
		},
		{
			name:     "containment",
			a:        interval(9, 12),
			b:        interval(10, 11),
			expected: true,
		},
		{
			name:     "identical",
			a:        interval(9, 10),
			b:        interval(9, 10),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.expected, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestAvailabilityService_CheckRoomAvailability(t *testing.T) {
	room := &models.Room{UID: "room-1", Name: "Boardroom", Available: true}
	booked := []*models.Event{
		{UID: "event-1", RoomUID: "room-1", StartTime: interval(9, 10).Start, EndTime: interval(9, 10).End},
		{UID: "event-2", RoomUID: "room-1", RecurrenceRuleUID: "rule-1", StartTime: interval(14, 15).Start, EndTime: interval(14, 15).End},
	}

	tests := []struct {
		name       string
		candidates []models.Interval
		opts       CheckOptions
		wantErr    bool
		errType    domain.ErrorType
	}{
		{
			name:       "free slot",
			candidates: []models.Interval{interval(11, 12)},
		},
		{
			name:       "back to back with an existing booking",
			candidates: []models.Interval{interval(10, 11)},
		},
		{
			name:       "overlapping an existing booking",
			candidates: []models.Interval{interval(9, 11)},
			wantErr:    true,
			errType:    domain.ErrorTypeConflict,
		},
		{
			name:       "one conflicting candidate fails the whole set",
			candidates: []models.Interval{interval(11, 12), interval(12, 13), interval(14, 15)},
			wantErr:    true,
			errType:    domain.ErrorTypeConflict,
		},
		{
			name:       "conflict ignored when the booking belongs to the excluded rule",
			candidates: []models.Interval{interval(14, 15)},
			opts:       CheckOptions{ExcludeRuleUID: "rule-1"},
		},
		{
			name:       "conflict ignored when the booking is the excluded event",
			candidates: []models.Interval{interval(9, 10)},
			opts:       CheckOptions{ExcludeEventUID: "event-1"},
		},
		{
			name:       "no candidates",
			candidates: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roomRepo := &mocks.MockRoomRepository{}
			eventRepo := &mocks.MockEventRepository{}
			roomRepo.On("Get", context.Background(), "room-1").Return(room, nil)
			eventRepo.On("ListByRoom", context.Background(), "room-1").Return(booked, nil)

			service := NewAvailabilityService(roomRepo, eventRepo)
			err := service.CheckRoomAvailability(context.Background(), "room-1", tt.candidates, tt.opts)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.errType, domain.GetErrorType(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAvailabilityService_CheckRoomAvailability_RoomNotBookable(t *testing.T) {
	roomRepo := &mocks.MockRoomRepository{}
	eventRepo := &mocks.MockEventRepository{}
	roomRepo.On("Get", context.Background(), "room-1").Return(
		&models.Room{UID: "room-1", Name: "Storage", Available: false}, nil)

	service := NewAvailabilityService(roomRepo, eventRepo)
	err := service.CheckRoomAvailability(context.Background(), "room-1", []models.Interval{interval(9, 10)}, CheckOptions{})

	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))
	eventRepo.AssertNotCalled(t, "ListByRoom")
}

func TestAvailabilityService_CheckRoomAvailability_RoomMissing(t *testing.T) {
	roomRepo := &mocks.MockRoomRepository{}
	eventRepo := &mocks.MockEventRepository{}
	roomRepo.On("Get", context.Background(), "room-missing").Return(
		nil, domain.NewNotFoundError("room not found"))

	service := NewAvailabilityService(roomRepo, eventRepo)
	err := service.CheckRoomAvailability(context.Background(), "room-missing", []models.Interval{interval(9, 10)}, CheckOptions{})

	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}

func TestAvailabilityService_IsRoomAvailable(t *testing.T) {
	room := &models.Room{UID: "room-1", Name: "Boardroom", Available: true}
	booked := []*models.Event{
		{UID: "event-1", RoomUID: "room-1", StartTime: interval(9, 10).Start, EndTime: interval(9, 10).End},
	}

	roomRepo := &mocks.MockRoomRepository{}
	eventRepo := &mocks.MockEventRepository{}
	roomRepo.On("Get", context.Background(), "room-1").Return(room, nil)
	eventRepo.On("ListByRoom", context.Background(), "room-1").Return(booked, nil)

	service := NewAvailabilityService(roomRepo, eventRepo)

	available, err := service.IsRoomAvailable(context.Background(), "room-1", interval(11, 12), CheckOptions{})
	require.NoError(t, err)
	assert.True(t, available)

	available, err = service.IsRoomAvailable(context.Background(), "room-1", interval(9, 10), CheckOptions{})
	require.NoError(t, err)
	assert.False(t, available)
}

func TestAvailabilityService_IsRoomAvailable_PropagatesStorageErrors(t *testing.T) {
	roomRepo := &mocks.MockRoomRepository{}
	eventRepo := &mocks.MockEventRepository{}
	roomRepo.On("Get", context.Background(), "room-1").Return(
		nil, domain.NewInternalError("kv unavailable"))

	service := NewAvailabilityService(roomRepo, eventRepo)

	available, err := service.IsRoomAvailable(context.Background(), "room-1", interval(9, 10), CheckOptions{})
	require.Error(t, err)
	assert.False(t, available)
}

func TestAvailabilityService_ServiceReady(t *testing.T) {
	service := NewAvailabilityService(&mocks.MockRoomRepository{}, &mocks.MockEventRepository{})
	assert.True(t, service.ServiceReady())

	service = &AvailabilityService{}
	assert.False(t, service.ServiceReady())

	err := service.CheckRoomAvailability(context.Background(), "room-1", nil, CheckOptions{})
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(err))
}
