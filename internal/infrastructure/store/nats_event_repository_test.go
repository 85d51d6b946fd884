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
)

func storedEvent(uid, roomUID, ruleUID string, start time.Time) *models.Event {
	return &models.Event{
		UID:               uid,
		Title:             "Event " + uid,
		StartTime:         start,
		EndTime:           start.Add(time.Hour),
		RoomUID:           roomUID,
		RecurrenceRuleUID: ruleUID,
		AuthorUID:         "author-1",
	}
}

func TestNatsEventRepository_CreateAndGet(t *testing.T) {
	kv := NewMockNatsKeyValue()
	repo := NewNatsEventRepository(kv)
	ctx := context.Background()

	event := storedEvent("event-1", "room-1", "", time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, event))

	got, err := repo.Get(ctx, "event-1")
	require.NoError(t, err)
	assert.Equal(t, event.Title, got.Title)
	assert.True(t, event.StartTime.Equal(got.StartTime))

	exists, err := repo.Exists(ctx, "event-1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "event-missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNatsEventRepository_GetNotFound(t *testing.T) {
	repo := NewNatsEventRepository(NewMockNatsKeyValue())

	_, err := repo.Get(context.Background(), "event-missing")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}

func TestNatsEventRepository_UpdateRevisionConflict(t *testing.T) {
	kv := NewMockNatsKeyValue()
	repo := NewNatsEventRepository(kv)
	ctx := context.Background()

	event := storedEvent("event-1", "room-1", "", time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, event))

	got, revision, err := repo.GetWithRevision(ctx, "event-1")
	require.NoError(t, err)

	got.Title = "Renamed"
	require.NoError(t, repo.Update(ctx, got, revision))

	// The stale revision must be rejected as a conflict.
	err = repo.Update(ctx, got, revision)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))
}

func TestNatsEventRepository_Delete(t *testing.T) {
	kv := NewMockNatsKeyValue()
	repo := NewNatsEventRepository(kv)
	ctx := context.Background()

	event := storedEvent("event-1", "room-1", "", time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, event))

	_, revision, err := repo.GetWithRevision(ctx, "event-1")
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "event-1", revision))

	_, err = repo.Get(ctx, "event-1")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}

func TestNatsEventRepository_CreateMany(t *testing.T) {
	kv := NewMockNatsKeyValue()
	repo := NewNatsEventRepository(kv)
	ctx := context.Background()

	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	events := []*models.Event{
		storedEvent("uid-1", "room-1", "rule-1", day.AddDate(0, 0, 1)),
		storedEvent("uid-2", "room-1", "rule-1", day.AddDate(0, 0, 2)),
		storedEvent("uid-3", "room-1", "rule-1", day.AddDate(0, 0, 3)),
	}

	require.NoError(t, repo.CreateMany(ctx, events))
	assert.Equal(t, 3, kv.Len())
}

func TestNatsEventRepository_CreateManyRollsBackOnFailure(t *testing.T) {
	kv := NewMockNatsKeyValue()
	kv.FailPutAfter = 2
	repo := NewNatsEventRepository(kv)
	ctx := context.Background()

	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	events := []*models.Event{
		storedEvent("uid-1", "room-1", "rule-1", day.AddDate(0, 0, 1)),
		storedEvent("uid-2", "room-1", "rule-1", day.AddDate(0, 0, 2)),
		storedEvent("uid-3", "room-1", "rule-1", day.AddDate(0, 0, 3)),
	}

	err := repo.CreateMany(ctx, events)
	require.Error(t, err)

	// The two writes that succeeded before the failure are rolled back.
	assert.Equal(t, 0, kv.Len())
}

func TestNatsEventRepository_ListByRoom(t *testing.T) {
	kv := NewMockNatsKeyValue()
	repo := NewNatsEventRepository(kv)
	ctx := context.Background()

	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, storedEvent("uid-1", "room-1", "", day)))
	require.NoError(t, repo.Create(ctx, storedEvent("uid-2", "room-2", "", day.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, storedEvent("uid-3", "room-1", "", day.Add(2*time.Hour))))

	events, err := repo.ListByRoom(ctx, "room-1")
	require.NoError(t, err)
	assert.Len(t, events, 2)

	events, err = repo.ListByRoom(ctx, "room-3")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestNatsEventRepository_ListBetween(t *testing.T) {
	kv := NewMockNatsKeyValue()
	repo := NewNatsEventRepository(kv)
	ctx := context.Background()

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, storedEvent("uid-1", "room-1", "", day.AddDate(0, 0, 1))))
	require.NoError(t, repo.Create(ctx, storedEvent("uid-2", "room-1", "", day.AddDate(0, 0, 5))))
	require.NoError(t, repo.Create(ctx, storedEvent("uid-3", "room-1", "", day.AddDate(0, 0, 10))))

	// [day+1, day+10): the start boundary is inclusive, the end exclusive.
	events, err := repo.ListBetween(ctx, day.AddDate(0, 0, 1), day.AddDate(0, 0, 10))
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, event := range events {
		assert.NotEqual(t, "uid-3", event.UID)
	}
}

func TestNatsEventRepository_LatestByRule(t *testing.T) {
	kv := NewMockNatsKeyValue()
	repo := NewNatsEventRepository(kv)
	ctx := context.Background()

	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, storedEvent("uid-1", "room-1", "rule-1", day.AddDate(0, 0, 1))))
	require.NoError(t, repo.Create(ctx, storedEvent("uid-2", "room-1", "rule-1", day.AddDate(0, 0, 5))))
	require.NoError(t, repo.Create(ctx, storedEvent("uid-3", "room-1", "rule-2", day.AddDate(0, 0, 9))))

	latest, err := repo.LatestByRule(ctx, "rule-1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "uid-2", latest.UID)

	latest, err = repo.LatestByRule(ctx, "rule-none")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestNatsEventRepository_DeleteByRuleFrom(t *testing.T) {
	kv := NewMockNatsKeyValue()
	repo := NewNatsEventRepository(kv)
	ctx := context.Background()

	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, storedEvent("uid-1", "room-1", "rule-1", day.AddDate(0, 0, 1))))
	require.NoError(t, repo.Create(ctx, storedEvent("uid-2", "room-1", "rule-1", day.AddDate(0, 0, 5))))
	require.NoError(t, repo.Create(ctx, storedEvent("uid-3", "room-1", "rule-1", day.AddDate(0, 0, 9))))
	require.NoError(t, repo.Create(ctx, storedEvent("uid-4", "room-1", "rule-2", day.AddDate(0, 0, 9))))

	// Deletion is inclusive at the boundary: an instance starting exactly at
	// the cutoff goes too.
	deleted, err := repo.DeleteByRuleFrom(ctx, "rule-1", day.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"uid-2", "uid-3"}, deleted)

	remaining, err := repo.ListByRule(ctx, "rule-1")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "uid-1", remaining[0].UID)

	// The other rule's instance is untouched.
	exists, err := repo.Exists(ctx, "uid-4")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestNatsEventRepository_DeleteByRule(t *testing.T) {
	kv := NewMockNatsKeyValue()
	repo := NewNatsEventRepository(kv)
	ctx := context.Background()

	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, storedEvent("uid-1", "room-1", "rule-1", day.AddDate(0, 0, 1))))
	require.NoError(t, repo.Create(ctx, storedEvent("uid-2", "room-1", "rule-1", day.AddDate(0, 0, 2))))
	require.NoError(t, repo.Create(ctx, storedEvent("uid-3", "room-1", "", day.AddDate(0, 0, 3))))

	deleted, err := repo.DeleteByRule(ctx, "rule-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"uid-1", "uid-2"}, deleted)
	assert.Equal(t, 1, kv.Len())
}

func TestNatsEventRepository_NotReady(t *testing.T) {
	repo := NewNatsEventRepository(nil)

	err := repo.Create(context.Background(), storedEvent("event-1", "room-1", "", time.Now()))
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(err))
}
