// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roombook/room-booking-service/internal/domain/models"
)

type mockNatsConn struct {
	connected bool
	published map[string][][]byte
	err       error
}

func newMockNatsConn() *mockNatsConn {
	return &mockNatsConn{
		connected: true,
		published: make(map[string][][]byte),
	}
}

func (m *mockNatsConn) IsConnected() bool { return m.connected }

func (m *mockNatsConn) Publish(subj string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.published[subj] = append(m.published[subj], data)
	return nil
}

func TestMessageBuilder_SendIndexEvent(t *testing.T) {
	conn := newMockNatsConn()
	builder := NewMessageBuilder(conn)

	event := models.Event{
		UID:       "event-1",
		Title:     "Planning",
		StartTime: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		AuthorUID: "author-1",
	}

	require.NoError(t, builder.SendIndexEvent(context.Background(), models.ActionCreated, event))

	payloads := conn.published[models.IndexEventSubject]
	require.Len(t, payloads, 1)

	var msg models.IndexMessage
	require.NoError(t, json.Unmarshal(payloads[0], &msg))
	assert.Equal(t, models.ActionCreated, msg.Action)

	data, ok := msg.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "event-1", data["uid"])
	assert.Equal(t, "Planning", data["title"])
}

func TestMessageBuilder_SendDeleteIndexEvent(t *testing.T) {
	conn := newMockNatsConn()
	builder := NewMessageBuilder(conn)

	require.NoError(t, builder.SendDeleteIndexEvent(context.Background(), "event-1"))

	payloads := conn.published[models.IndexEventSubject]
	require.Len(t, payloads, 1)

	var msg models.IndexMessage
	require.NoError(t, json.Unmarshal(payloads[0], &msg))
	assert.Equal(t, models.ActionDeleted, msg.Action)
	assert.Equal(t, "event-1", msg.Data)
}

func TestMessageBuilder_SendIndexRecurrenceRule(t *testing.T) {
	conn := newMockNatsConn()
	builder := NewMessageBuilder(conn)

	rule := models.RecurrenceRule{UID: "rule-1", Type: models.RecurrenceTypeDaily}
	require.NoError(t, builder.SendIndexRecurrenceRule(context.Background(), models.ActionUpdated, rule))
	require.NoError(t, builder.SendDeleteIndexRecurrenceRule(context.Background(), "rule-1"))

	assert.Len(t, conn.published[models.IndexRecurrenceRuleSubject], 2)
}

func TestMessageBuilder_SendIndexRoom(t *testing.T) {
	conn := newMockNatsConn()
	builder := NewMessageBuilder(conn)

	room := models.Room{UID: "room-1", Name: "Boardroom", Available: true}
	require.NoError(t, builder.SendIndexRoom(context.Background(), models.ActionCreated, room))

	assert.Len(t, conn.published[models.IndexRoomSubject], 1)
}

func TestMessageBuilder_PublishError(t *testing.T) {
	conn := newMockNatsConn()
	conn.err = errors.New("connection closed")
	builder := NewMessageBuilder(conn)

	err := builder.SendDeleteIndexEvent(context.Background(), "event-1")
	require.Error(t, err)
}
