// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/roombook/room-booking-service/internal/domain/models"
)

// MockEventRepository implements EventRepository for testing
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) Exists(ctx context.Context, eventUID string) (bool, error) {
	args := m.Called(ctx, eventUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventRepository) Get(ctx context.Context, eventUID string) (*models.Event, error) {
	args := m.Called(ctx, eventUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) GetWithRevision(ctx context.Context, eventUID string) (*models.Event, uint64, error) {
	args := m.Called(ctx, eventUID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(uint64), args.Error(2)
	}
	return args.Get(0).(*models.Event), args.Get(1).(uint64), args.Error(2)
}

func (m *MockEventRepository) Update(ctx context.Context, event *models.Event, revision uint64) error {
	args := m.Called(ctx, event, revision)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, eventUID string, revision uint64) error {
	args := m.Called(ctx, eventUID, revision)
	return args.Error(0)
}

func (m *MockEventRepository) CreateMany(ctx context.Context, events []*models.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockEventRepository) ListAll(ctx context.Context) ([]*models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *MockEventRepository) ListByRoom(ctx context.Context, roomUID string) ([]*models.Event, error) {
	args := m.Called(ctx, roomUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *MockEventRepository) ListByRule(ctx context.Context, ruleUID string) ([]*models.Event, error) {
	args := m.Called(ctx, ruleUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *MockEventRepository) ListBetween(ctx context.Context, start, end time.Time) ([]*models.Event, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *MockEventRepository) LatestByRule(ctx context.Context, ruleUID string) (*models.Event, error) {
	args := m.Called(ctx, ruleUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) DeleteByRuleFrom(ctx context.Context, ruleUID string, from time.Time) ([]string, error) {
	args := m.Called(ctx, ruleUID, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockEventRepository) DeleteByRule(ctx context.Context, ruleUID string) ([]string, error) {
	args := m.Called(ctx, ruleUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
