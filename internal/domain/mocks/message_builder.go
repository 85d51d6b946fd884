// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/roombook/room-booking-service/internal/domain/models"
)

// MockMessageBuilder implements MessageBuilder for testing
type MockMessageBuilder struct {
	mock.Mock
}

func (m *MockMessageBuilder) SendIndexEvent(ctx context.Context, action models.MessageAction, data models.Event) error {
	args := m.Called(ctx, action, data)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendDeleteIndexEvent(ctx context.Context, eventUID string) error {
	args := m.Called(ctx, eventUID)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendIndexRecurrenceRule(ctx context.Context, action models.MessageAction, data models.RecurrenceRule) error {
	args := m.Called(ctx, action, data)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendDeleteIndexRecurrenceRule(ctx context.Context, ruleUID string) error {
	args := m.Called(ctx, ruleUID)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendIndexRoom(ctx context.Context, action models.MessageAction, data models.Room) error {
	args := m.Called(ctx, action, data)
	return args.Error(0)
}
