// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/roombook/room-booking-service/internal/domain/models"
)

// NatsRoomRepository is the NATS KV store repository for rooms.
type NatsRoomRepository struct {
	*NatsBaseRepository[models.Room]
}

// NewNatsRoomRepository creates a new NATS KV store repository for rooms.
func NewNatsRoomRepository(rooms INatsKeyValue) *NatsRoomRepository {
	return &NatsRoomRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Room](rooms, "room"),
	}
}

// Create stores a new room keyed by its UID.
func (r *NatsRoomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.NatsBaseRepository.Create(ctx, room.UID, room)
}
