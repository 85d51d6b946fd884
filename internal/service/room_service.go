// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roombook/room-booking-service/internal/domain"
	"github.com/roombook/room-booking-service/internal/domain/models"
	"github.com/roombook/room-booking-service/internal/logging"
	"github.com/roombook/room-booking-service/pkg/utils"
)

// RoomService manages the bookable rooms. Room deletion policy (blocking
// while future events reference the room) belongs to the outer CRUD layer,
// so it is deliberately absent here.
type RoomService struct {
	RoomRepository  domain.RoomRepository
	EventRepository domain.EventRepository
	MessageBuilder  domain.MessageBuilder
	Clock           domain.Clock
}

// NewRoomService creates a new RoomService.
func NewRoomService(
	roomRepository domain.RoomRepository,
	eventRepository domain.EventRepository,
	messageBuilder domain.MessageBuilder,
	clock domain.Clock,
) *RoomService {
	return &RoomService{
		RoomRepository:  roomRepository,
		EventRepository: eventRepository,
		MessageBuilder:  messageBuilder,
		Clock:           clock,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *RoomService) ServiceReady() bool {
	return s.RoomRepository != nil &&
		s.EventRepository != nil &&
		s.MessageBuilder != nil &&
		s.Clock != nil
}

// CreateRoom registers a new room.
func (s *RoomService) CreateRoom(ctx context.Context, room *models.Room) (*models.Room, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("room service is not ready")
	}
	if room == nil || room.Name == "" {
		return nil, domain.NewValidationError("room name is required")
	}

	now := s.Clock.Now()
	room.UID = uuid.NewString()
	room.CreatedAt = utils.TimePtr(now)
	room.UpdatedAt = utils.TimePtr(now)

	if err := s.RoomRepository.Create(ctx, room); err != nil {
		return nil, err
	}

	if err := s.MessageBuilder.SendIndexRoom(ctx, models.ActionCreated, *room); err != nil {
		slog.ErrorContext(ctx, "error publishing room index message", logging.ErrKey, err, "room_uid", room.UID)
	}

	return room, nil
}

// GetRoom fetches a room by UID.
func (s *RoomService) GetRoom(ctx context.Context, roomUID string) (*models.Room, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("room service is not ready")
	}
	return s.RoomRepository.Get(ctx, roomUID)
}

// ListRooms lists every registered room.
func (s *RoomService) ListRooms(ctx context.Context) ([]*models.Room, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("room service is not ready")
	}
	return s.RoomRepository.ListAll(ctx)
}
