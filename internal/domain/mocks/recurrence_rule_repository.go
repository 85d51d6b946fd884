// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/roombook/room-booking-service/internal/domain/models"
)

// MockRecurrenceRuleRepository implements RecurrenceRuleRepository for testing
type MockRecurrenceRuleRepository struct {
	mock.Mock
}

func (m *MockRecurrenceRuleRepository) Create(ctx context.Context, rule *models.RecurrenceRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRecurrenceRuleRepository) Exists(ctx context.Context, ruleUID string) (bool, error) {
	args := m.Called(ctx, ruleUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecurrenceRuleRepository) Get(ctx context.Context, ruleUID string) (*models.RecurrenceRule, error) {
	args := m.Called(ctx, ruleUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecurrenceRule), args.Error(1)
}

func (m *MockRecurrenceRuleRepository) GetWithRevision(ctx context.Context, ruleUID string) (*models.RecurrenceRule, uint64, error) {
	args := m.Called(ctx, ruleUID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(uint64), args.Error(2)
	}
	return args.Get(0).(*models.RecurrenceRule), args.Get(1).(uint64), args.Error(2)
}

func (m *MockRecurrenceRuleRepository) Update(ctx context.Context, rule *models.RecurrenceRule, revision uint64) error {
	args := m.Called(ctx, rule, revision)
	return args.Error(0)
}

func (m *MockRecurrenceRuleRepository) Delete(ctx context.Context, ruleUID string, revision uint64) error {
	args := m.Called(ctx, ruleUID, revision)
	return args.Error(0)
}

func (m *MockRecurrenceRuleRepository) ListAll(ctx context.Context) ([]*models.RecurrenceRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RecurrenceRule), args.Error(1)
}
