// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/roombook/room-booking-service/internal/domain/models"
)

// Message represents a domain message interface
type Message interface {
	Subject() string
	Data() []byte
	Respond(data []byte) error
	HasReply() bool
}

// MessageHandler defines how the service handles incoming messages
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg Message)
	HandlerReady() bool
}

// EventIndexSender handles indexing operations for events.
type EventIndexSender interface {
	SendIndexEvent(ctx context.Context, action models.MessageAction, data models.Event) error
	SendDeleteIndexEvent(ctx context.Context, eventUID string) error
}

// RecurrenceRuleIndexSender handles indexing operations for recurrence rules.
type RecurrenceRuleIndexSender interface {
	SendIndexRecurrenceRule(ctx context.Context, action models.MessageAction, data models.RecurrenceRule) error
	SendDeleteIndexRecurrenceRule(ctx context.Context, ruleUID string) error
}

// RoomIndexSender handles indexing operations for rooms. Rooms are never
// deleted, so there is no delete counterpart.
type RoomIndexSender interface {
	SendIndexRoom(ctx context.Context, action models.MessageAction, data models.Room) error
}

// MessageBuilder aggregates the index senders the services need.
type MessageBuilder interface {
	EventIndexSender
	RecurrenceRuleIndexSender
	RoomIndexSender
}
