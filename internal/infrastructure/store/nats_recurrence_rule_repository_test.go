// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roombook/room-booking-service/internal/domain"
	"github.com/roombook/room-booking-service/internal/domain/models"
	"github.com/roombook/room-booking-service/pkg/utils"
)

func TestNatsRecurrenceRuleRepository_CRUD(t *testing.T) {
	kv := NewMockNatsKeyValue()
	repo := NewNatsRecurrenceRuleRepository(kv)
	ctx := context.Background()

	rule := &models.RecurrenceRule{
		UID:     "rule-1",
		Type:    models.RecurrenceTypeWeekly,
		EndDate: utils.TimePtr(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)),
	}
	require.NoError(t, repo.Create(ctx, rule))

	got, revision, err := repo.GetWithRevision(ctx, "rule-1")
	require.NoError(t, err)
	assert.Equal(t, models.RecurrenceTypeWeekly, got.Type)
	assert.False(t, got.Anchored())

	got.FirstEventUID = "anchor-uid"
	require.NoError(t, repo.Update(ctx, got, revision))

	got, revision, err = repo.GetWithRevision(ctx, "rule-1")
	require.NoError(t, err)
	assert.True(t, got.Anchored())

	rules, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rules, 1)

	require.NoError(t, repo.Delete(ctx, "rule-1", revision))
	_, err = repo.Get(ctx, "rule-1")
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}

func TestNatsRoomRepository_CRUD(t *testing.T) {
	kv := NewMockNatsKeyValue()
	repo := NewNatsRoomRepository(kv)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Room{UID: "room-1", Name: "Boardroom", Available: true}))
	require.NoError(t, repo.Create(ctx, &models.Room{UID: "room-2", Name: "Storage", Available: false}))

	got, err := repo.Get(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, "Boardroom", got.Name)
	assert.True(t, got.Available)

	exists, err := repo.Exists(ctx, "room-2")
	require.NoError(t, err)
	assert.True(t, exists)

	rooms, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
}
