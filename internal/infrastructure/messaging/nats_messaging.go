// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

// Package messaging publishes the booking service's index messages to NATS.
package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/roombook/room-booking-service/internal/domain/models"
	"github.com/roombook/room-booking-service/internal/logging"
)

// INatsConn is a NATS connection interface needed for the [MessageBuilder].
type INatsConn interface {
	IsConnected() bool
	Publish(subj string, data []byte) error
}

// MessageBuilder is the builder for the message and sends it to the NATS server.
type MessageBuilder struct {
	NatsConn INatsConn
}

// NewMessageBuilder creates a new MessageBuilder.
func NewMessageBuilder(natsConn INatsConn) *MessageBuilder {
	return &MessageBuilder{
		NatsConn: natsConn,
	}
}

// sendMessage sends the message to the NATS server.
func (m *MessageBuilder) sendMessage(ctx context.Context, subject string, data []byte) error {
	err := m.NatsConn.Publish(subject, data)
	if err != nil {
		slog.ErrorContext(ctx, "error sending message to NATS", logging.ErrKey, err, "subject", subject)
		return err
	}
	slog.DebugContext(ctx, "sent message to NATS", "subject", subject)
	return nil
}

func (m *MessageBuilder) sendIndexMessage(ctx context.Context, subject string, action models.MessageAction, data any) error {
	payload, err := json.Marshal(models.IndexMessage{
		Action: action,
		Data:   data,
	})
	if err != nil {
		slog.ErrorContext(ctx, "error marshaling index message", logging.ErrKey, err, "subject", subject)
		return err
	}
	return m.sendMessage(ctx, subject, payload)
}

// SendIndexEvent sends an indexing message for the given event.
func (m *MessageBuilder) SendIndexEvent(ctx context.Context, action models.MessageAction, data models.Event) error {
	return m.sendIndexMessage(ctx, models.IndexEventSubject, action, data)
}

// SendDeleteIndexEvent sends a delete indexing message for the given event UID.
func (m *MessageBuilder) SendDeleteIndexEvent(ctx context.Context, eventUID string) error {
	return m.sendIndexMessage(ctx, models.IndexEventSubject, models.ActionDeleted, eventUID)
}

// SendIndexRecurrenceRule sends an indexing message for the given rule.
func (m *MessageBuilder) SendIndexRecurrenceRule(ctx context.Context, action models.MessageAction, data models.RecurrenceRule) error {
	return m.sendIndexMessage(ctx, models.IndexRecurrenceRuleSubject, action, data)
}

// SendDeleteIndexRecurrenceRule sends a delete indexing message for the given rule UID.
func (m *MessageBuilder) SendDeleteIndexRecurrenceRule(ctx context.Context, ruleUID string) error {
	return m.sendIndexMessage(ctx, models.IndexRecurrenceRuleSubject, models.ActionDeleted, ruleUID)
}

// SendIndexRoom sends an indexing message for the given room.
func (m *MessageBuilder) SendIndexRoom(ctx context.Context, action models.MessageAction, data models.Room) error {
	return m.sendIndexMessage(ctx, models.IndexRoomSubject, action, data)
}
