// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/roombook/room-booking-service/internal/domain/models"
)

// NatsRecurrenceRuleRepository is the NATS KV store repository for
// recurrence rules.
type NatsRecurrenceRuleRepository struct {
	*NatsBaseRepository[models.RecurrenceRule]
}

// NewNatsRecurrenceRuleRepository creates a new NATS KV store repository for
// recurrence rules.
func NewNatsRecurrenceRuleRepository(rules INatsKeyValue) *NatsRecurrenceRuleRepository {
	return &NatsRecurrenceRuleRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.RecurrenceRule](rules, "recurrence rule"),
	}
}

// Create stores a new rule keyed by its UID.
func (r *NatsRecurrenceRuleRepository) Create(ctx context.Context, rule *models.RecurrenceRule) error {
	return r.NatsBaseRepository.Create(ctx, rule.UID, rule)
}

// Update replaces a rule, guarded by the KV revision.
func (r *NatsRecurrenceRuleRepository) Update(ctx context.Context, rule *models.RecurrenceRule, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, rule.UID, rule, revision)
}
