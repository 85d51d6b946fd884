// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/roombook/room-booking-service/internal/domain"
	"github.com/roombook/room-booking-service/internal/domain/models"
	"github.com/roombook/room-booking-service/internal/logging"
)

// AvailabilityService decides whether a room is free for one or more
// candidate intervals. It is the only place overlap semantics live: two
// half-open intervals conflict iff they strictly intersect, so bookings that
// merely touch at an endpoint coexist.
type AvailabilityService struct {
	RoomRepository  domain.RoomRepository
	EventRepository domain.EventRepository
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(
	roomRepository domain.RoomRepository,
	eventRepository domain.EventRepository,
) *AvailabilityService {
	return &AvailabilityService{
		RoomRepository:  roomRepository,
		EventRepository: eventRepository,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *AvailabilityService) ServiceReady() bool {
	return s.RoomRepository != nil && s.EventRepository != nil
}

// CheckOptions narrows which existing bookings count when checking a room.
type CheckOptions struct {
	// ExcludeRuleUID ignores bookings belonging to the given recurrence
	// rule, used when re-validating a series against itself.
	ExcludeRuleUID string
	// ExcludeEventUID ignores one booking, used when editing a single event.
	ExcludeEventUID string
}

// CheckRoomAvailability returns nil when the room exists, is available, and
// none of the candidate intervals overlaps an existing booking. A conflict
// error identifies the first conflicting candidate interval. Rejection is
// all-or-nothing: one conflicting candidate fails the whole check.
func (s *AvailabilityService) CheckRoomAvailability(ctx context.Context, roomUID string, candidates []models.Interval, opts CheckOptions) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return domain.NewUnavailableError("availability service is not ready")
	}

	room, err := s.RoomRepository.Get(ctx, roomUID)
	if err != nil {
		return err
	}
	if !room.Available {
		return domain.NewConflictError("room " + roomUID + " is not available for booking")
	}

	booked, err := s.EventRepository.ListByRoom(ctx, roomUID)
	if err != nil {
		return err
	}

	for _, event := range booked {
		if opts.ExcludeRuleUID != "" && event.RecurrenceRuleUID == opts.ExcludeRuleUID {
			continue
		}
		if opts.ExcludeEventUID != "" && event.UID == opts.ExcludeEventUID {
			continue
		}
		for _, candidate := range candidates {
			if candidate.Overlaps(event.Interval()) {
				slog.DebugContext(ctx, "room conflict",
					"room_uid", roomUID,
					"event_uid", event.UID,
					"candidate_start", candidate.Start,
					"candidate_end", candidate.End,
				)
				return domain.NewRoomConflictError(roomUID, candidate)
			}
		}
	}

	return nil
}

// IsRoomAvailable is the boolean form of CheckRoomAvailability for callers
// that only need a yes/no answer. Storage errors are still returned.
func (s *AvailabilityService) IsRoomAvailable(ctx context.Context, roomUID string, interval models.Interval, opts CheckOptions) (bool, error) {
	err := s.CheckRoomAvailability(ctx, roomUID, []models.Interval{interval}, opts)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeConflict {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
