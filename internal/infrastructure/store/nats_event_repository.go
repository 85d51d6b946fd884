// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/roombook/room-booking-service/internal/domain/models"
	"github.com/roombook/room-booking-service/internal/logging"
)

// NatsEventRepository is the NATS KV store repository for events.
type NatsEventRepository struct {
	*NatsBaseRepository[models.Event]
}

// NewNatsEventRepository creates a new NATS KV store repository for events.
func NewNatsEventRepository(events INatsKeyValue) *NatsEventRepository {
	return &NatsEventRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Event](events, "event"),
	}
}

// Create stores a new event keyed by its UID.
func (r *NatsEventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.NatsBaseRepository.Create(ctx, event.UID, event)
}

// Update replaces an event, guarded by the KV revision.
func (r *NatsEventRepository) Update(ctx context.Context, event *models.Event, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, event.UID, event, revision)
}

// CreateMany stores a batch of events. If any write fails, the events
// already written by this call are removed again so readers never observe a
// partially applied batch.
func (r *NatsEventRepository) CreateMany(ctx context.Context, events []*models.Event) error {
	for i, event := range events {
		if err := r.Create(ctx, event); err != nil {
			for _, written := range events[:i] {
				if delErr := r.DeleteWithoutRevision(ctx, written.UID); delErr != nil {
					slog.ErrorContext(ctx, "error rolling back batch event write",
						logging.ErrKey, delErr, "event_uid", written.UID)
				}
			}
			return err
		}
	}
	return nil
}

// ListByRoom returns every event booked in the given room.
func (r *NatsEventRepository) ListByRoom(ctx context.Context, roomUID string) ([]*models.Event, error) {
	return r.listWhere(ctx, func(event *models.Event) bool {
		return event.RoomUID == roomUID
	})
}

// ListByRule returns every instance of the given recurrence rule.
func (r *NatsEventRepository) ListByRule(ctx context.Context, ruleUID string) ([]*models.Event, error) {
	return r.listWhere(ctx, func(event *models.Event) bool {
		return event.RecurrenceRuleUID == ruleUID
	})
}

// ListBetween returns events whose start falls in [start, end).
func (r *NatsEventRepository) ListBetween(ctx context.Context, start, end time.Time) ([]*models.Event, error) {
	return r.listWhere(ctx, func(event *models.Event) bool {
		return !event.StartTime.Before(start) && event.StartTime.Before(end)
	})
}

// LatestByRule returns the rule's instance with the latest start time, or
// nil when the rule has no persisted instances.
func (r *NatsEventRepository) LatestByRule(ctx context.Context, ruleUID string) (*models.Event, error) {
	instances, err := r.ListByRule(ctx, ruleUID)
	if err != nil {
		return nil, err
	}

	var latest *models.Event
	for _, instance := range instances {
		if latest == nil || instance.StartTime.After(latest.StartTime) {
			latest = instance
		}
	}
	return latest, nil
}

// DeleteByRuleFrom deletes every instance of the rule starting at or after
// the given instant and returns the deleted UIDs.
func (r *NatsEventRepository) DeleteByRuleFrom(ctx context.Context, ruleUID string, from time.Time) ([]string, error) {
	return r.deleteWhere(ctx, func(event *models.Event) bool {
		return event.RecurrenceRuleUID == ruleUID && !event.StartTime.Before(from)
	})
}

// DeleteByRule deletes every instance of the rule and returns the deleted UIDs.
func (r *NatsEventRepository) DeleteByRule(ctx context.Context, ruleUID string) ([]string, error) {
	return r.deleteWhere(ctx, func(event *models.Event) bool {
		return event.RecurrenceRuleUID == ruleUID
	})
}

func (r *NatsEventRepository) listWhere(ctx context.Context, match func(*models.Event) bool) ([]*models.Event, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := []*models.Event{}
	for _, event := range all {
		if match(event) {
			matched = append(matched, event)
		}
	}
	return matched, nil
}

func (r *NatsEventRepository) deleteWhere(ctx context.Context, match func(*models.Event) bool) ([]string, error) {
	matched, err := r.listWhere(ctx, match)
	if err != nil {
		return nil, err
	}

	deleted := []string{}
	for _, event := range matched {
		if err := r.DeleteWithoutRevision(ctx, event.UID); err != nil {
			return deleted, err
		}
		deleted = append(deleted, event.UID)
	}
	return deleted, nil
}
