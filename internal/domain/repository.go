// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"
	"time"

	"github.com/roombook/room-booking-service/internal/domain/models"
)

// EventRepository defines the interface for event storage operations.
// This interface can be implemented by different storage backends (NATS, PostgreSQL, etc.)
type EventRepository interface {
	// Single event operations
	Create(ctx context.Context, event *models.Event) error
	Exists(ctx context.Context, eventUID string) (bool, error)
	Get(ctx context.Context, eventUID string) (*models.Event, error)
	GetWithRevision(ctx context.Context, eventUID string) (*models.Event, uint64, error)
	Update(ctx context.Context, event *models.Event, revision uint64) error
	Delete(ctx context.Context, eventUID string, revision uint64) error

	// Bulk operations
	CreateMany(ctx context.Context, events []*models.Event) error
	ListAll(ctx context.Context) ([]*models.Event, error)
	ListByRoom(ctx context.Context, roomUID string) ([]*models.Event, error)
	ListByRule(ctx context.Context, ruleUID string) ([]*models.Event, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]*models.Event, error)

	// Series operations. LatestByRule returns nil without error when the
	// rule has no persisted instances. The deletes return the UIDs of the
	// removed events.
	LatestByRule(ctx context.Context, ruleUID string) (*models.Event, error)
	DeleteByRuleFrom(ctx context.Context, ruleUID string, from time.Time) ([]string, error)
	DeleteByRule(ctx context.Context, ruleUID string) ([]string, error)
}

// RecurrenceRuleRepository defines the interface for recurrence rule storage
// operations.
type RecurrenceRuleRepository interface {
	Create(ctx context.Context, rule *models.RecurrenceRule) error
	Get(ctx context.Context, ruleUID string) (*models.RecurrenceRule, error)
	GetWithRevision(ctx context.Context, ruleUID string) (*models.RecurrenceRule, uint64, error)
	Update(ctx context.Context, rule *models.RecurrenceRule, revision uint64) error
	Delete(ctx context.Context, ruleUID string, revision uint64) error
	ListAll(ctx context.Context) ([]*models.RecurrenceRule, error)
}

// RoomRepository defines the interface for room storage operations.
type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	Exists(ctx context.Context, roomUID string) (bool, error)
	Get(ctx context.Context, roomUID string) (*models.Room, error)
	ListAll(ctx context.Context) ([]*models.Room, error)
}
