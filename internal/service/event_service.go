// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/roombook/room-booking-service/internal/domain"
	"github.com/roombook/room-booking-service/internal/domain/models"
	"github.com/roombook/room-booking-service/internal/logging"
	"github.com/roombook/room-booking-service/pkg/concurrent"
	"github.com/roombook/room-booking-service/pkg/utils"
)

// RecurrenceOptions carries the recurrence parameters of a create request.
type RecurrenceOptions struct {
	Type    models.RecurrenceType `json:"type"`
	EndDate *time.Time            `json:"end_date,omitempty"`
}

// EventService implements the booking operations around events and series.
// Mutations of a room's bookings serialize on a per-room lock held across
// the availability check and the commit, so two concurrent requests cannot
// both validate against a stale view and double-book the room.
type EventService struct {
	EventRepository domain.EventRepository
	RuleRepository  domain.RecurrenceRuleRepository
	RoomRepository  domain.RoomRepository
	MessageBuilder  domain.MessageBuilder
	Occurrence      *OccurrenceService
	Availability    *AvailabilityService
	Sync            *RecurrenceSyncService
	Clock           domain.Clock
	Config          ServiceConfig

	roomLocks *concurrent.KeyedMutex
	pool      *concurrent.WorkerPool
}

// NewEventService creates a new EventService.
func NewEventService(
	eventRepository domain.EventRepository,
	ruleRepository domain.RecurrenceRuleRepository,
	roomRepository domain.RoomRepository,
	messageBuilder domain.MessageBuilder,
	occurrence *OccurrenceService,
	availability *AvailabilityService,
	sync *RecurrenceSyncService,
	clock domain.Clock,
	config ServiceConfig,
) *EventService {
	return &EventService{
		EventRepository: eventRepository,
		RuleRepository:  ruleRepository,
		RoomRepository:  roomRepository,
		MessageBuilder:  messageBuilder,
		Occurrence:      occurrence,
		Availability:    availability,
		Sync:            sync,
		Clock:           clock,
		Config:          config,
		roomLocks:       concurrent.NewKeyedMutex(),
		pool:            concurrent.NewWorkerPool(10),
	}
}

// ServiceReady checks if the service is ready for use.
func (s *EventService) ServiceReady() bool {
	return s.EventRepository != nil &&
		s.RuleRepository != nil &&
		s.RoomRepository != nil &&
		s.MessageBuilder != nil &&
		s.Occurrence != nil &&
		s.Availability != nil &&
		s.Sync != nil &&
		s.Clock != nil
}

func (s *EventService) validateEvent(ctx context.Context, event *models.Event) error {
	if event == nil {
		return domain.NewValidationError("event payload is required")
	}
	if event.Title == "" {
		return domain.NewValidationError("event title is required")
	}
	if event.AuthorUID == "" {
		return domain.NewValidationError("event author is required")
	}
	if !event.Interval().Valid() {
		slog.WarnContext(ctx, "event end must be after start",
			"start_time", event.StartTime,
			"end_time", event.EndTime,
		)
		return domain.NewValidationError("event end must be after start")
	}
	return nil
}

// CreateEvent creates a single event or, when recurrence options are given,
// a whole recurring series anchored on the new event. The room availability
// check covers every projected occurrence; one conflicting occurrence
// rejects the entire request and nothing is persisted.
func (s *EventService) CreateEvent(ctx context.Context, event *models.Event, recurrence *RecurrenceOptions) (*models.Event, *models.RecurrenceRule, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, nil, domain.NewUnavailableError("event service is not ready")
	}

	if err := s.validateEvent(ctx, event); err != nil {
		return nil, nil, err
	}
	if recurrence != nil && !recurrence.Type.Valid() {
		return nil, nil, domain.NewInvalidRecurrenceTypeError(recurrence.Type)
	}

	if event.RoomUID != "" {
		s.roomLocks.Lock(event.RoomUID)
		defer s.roomLocks.Unlock(event.RoomUID)

		candidates := []models.Interval{event.Interval()}
		if recurrence != nil {
			projected, err := s.Occurrence.ProjectIntervals(event.Interval(), recurrence.Type, recurrence.EndDate, s.Clock.Now())
			if err != nil {
				return nil, nil, err
			}
			candidates = append(candidates, projected...)
		}
		if err := s.Availability.CheckRoomAvailability(ctx, event.RoomUID, candidates, CheckOptions{}); err != nil {
			return nil, nil, err
		}
	}

	now := s.Clock.Now()
	event.UID = uuid.NewString()
	event.Code = utils.BookingCode(event.UID)
	event.CreatedAt = utils.TimePtr(now)
	event.UpdatedAt = utils.TimePtr(now)
	event.SetMembers(event.MemberUIDs)

	var rule *models.RecurrenceRule
	if recurrence != nil {
		rule = &models.RecurrenceRule{
			UID:       uuid.NewString(),
			Type:      recurrence.Type,
			EndDate:   recurrence.EndDate,
			CreatedAt: utils.TimePtr(now),
			UpdatedAt: utils.TimePtr(now),
		}
		if err := s.RuleRepository.Create(ctx, rule); err != nil {
			return nil, nil, err
		}
		event.RecurrenceRuleUID = rule.UID
	}

	if err := s.EventRepository.Create(ctx, event); err != nil {
		s.compensateCreate(ctx, nil, rule)
		return nil, nil, err
	}

	var instances []*models.Event
	if rule != nil {
		storedRule, revision, err := s.RuleRepository.GetWithRevision(ctx, rule.UID)
		if err != nil {
			s.compensateCreate(ctx, event, rule)
			return nil, nil, err
		}
		storedRule.FirstEventUID = event.UID
		storedRule.UpdatedAt = utils.TimePtr(now)
		if err := s.RuleRepository.Update(ctx, storedRule, revision); err != nil {
			s.compensateCreate(ctx, event, rule)
			return nil, nil, err
		}
		rule = storedRule

		instances, err = s.Sync.HandleRuleAnchored(ctx, rule)
		if err != nil {
			s.compensateCreate(ctx, event, rule)
			return nil, nil, err
		}
	}

	s.publishEventsIndexed(ctx, models.ActionCreated, append([]*models.Event{event}, instances...))
	if rule != nil {
		if err := s.MessageBuilder.SendIndexRecurrenceRule(ctx, models.ActionCreated, *rule); err != nil {
			slog.ErrorContext(ctx, "error publishing rule index message", logging.ErrKey, err, "rule_uid", rule.UID)
		}
	}

	return event, rule, nil
}

// UpdateEvent updates a single non-recurring event. Events belonging to a
// series can only change through series-level operations.
func (s *EventService) UpdateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("event service is not ready")
	}

	if err := s.validateEvent(ctx, event); err != nil {
		return nil, err
	}

	existing, revision, err := s.EventRepository.GetWithRevision(ctx, event.UID)
	if err != nil {
		return nil, err
	}
	if existing.RecurrenceRuleUID != "" {
		return nil, domain.NewConflictError("cannot update an event that is part of a recurring series")
	}

	if event.RoomUID != "" {
		s.roomLocks.Lock(event.RoomUID)
		defer s.roomLocks.Unlock(event.RoomUID)

		opts := CheckOptions{ExcludeEventUID: event.UID}
		if err := s.Availability.CheckRoomAvailability(ctx, event.RoomUID, []models.Interval{event.Interval()}, opts); err != nil {
			return nil, err
		}
	}

	event.Code = existing.Code
	event.CreatedAt = existing.CreatedAt
	// Series membership is not client-writable; existing is standalone here.
	event.RecurrenceRuleUID = existing.RecurrenceRuleUID
	event.UpdatedAt = utils.TimePtr(s.Clock.Now())
	event.SetMembers(event.MemberUIDs)

	if err := s.EventRepository.Update(ctx, event, revision); err != nil {
		return nil, err
	}

	s.publishEventsIndexed(ctx, models.ActionUpdated, []*models.Event{event})

	return event, nil
}

// UpdateSeriesEnd changes the end boundary of the series the given event
// belongs to and reconciles the persisted instance set: extension appends
// instances after the latest one, truncation deletes instances starting at
// or after the new horizon. The extension is re-validated against the room,
// excluding the series' own bookings.
func (s *EventService) UpdateSeriesEnd(ctx context.Context, eventUID string, newEnd *time.Time) (*AppliedDelta, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("event service is not ready")
	}

	event, err := s.EventRepository.Get(ctx, eventUID)
	if err != nil {
		return nil, err
	}
	if event.RecurrenceRuleUID == "" {
		return nil, domain.NewConflictError("event is not part of a recurring series")
	}

	rule, revision, err := s.RuleRepository.GetWithRevision(ctx, event.RecurrenceRuleUID)
	if err != nil {
		return nil, err
	}
	if !rule.Anchored() {
		return nil, domain.NewRuleNotAnchoredError(rule.UID)
	}

	anchor, err := s.EventRepository.Get(ctx, rule.FirstEventUID)
	if err != nil {
		return nil, err
	}

	if anchor.RoomUID != "" {
		s.roomLocks.Lock(anchor.RoomUID)
		defer s.roomLocks.Unlock(anchor.RoomUID)

		projected, err := s.Occurrence.ProjectIntervals(anchor.Interval(), rule.Type, newEnd, s.Clock.Now())
		if err != nil {
			return nil, err
		}
		opts := CheckOptions{ExcludeRuleUID: rule.UID}
		if err := s.Availability.CheckRoomAvailability(ctx, anchor.RoomUID, projected, opts); err != nil {
			return nil, err
		}
	}

	previousEnd := rule.EndDate
	rule.EndDate = newEnd
	rule.UpdatedAt = utils.TimePtr(s.Clock.Now())
	if err := s.RuleRepository.Update(ctx, rule, revision); err != nil {
		return nil, err
	}

	delta, err := s.Sync.HandleRuleEndChanged(ctx, rule, previousEnd)
	if err != nil {
		return nil, err
	}

	s.publishEventsIndexed(ctx, models.ActionCreated, delta.Created)
	s.publishEventsDeleted(ctx, delta.DeletedUIDs)
	if err := s.MessageBuilder.SendIndexRecurrenceRule(ctx, models.ActionUpdated, *rule); err != nil {
		slog.ErrorContext(ctx, "error publishing rule index message", logging.ErrKey, err, "rule_uid", rule.UID)
	}

	return delta, nil
}

// DeleteEvent deletes an event. Deleting any instance of a recurring series
// deletes the whole series and its rule.
func (s *EventService) DeleteEvent(ctx context.Context, eventUID string) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return domain.NewUnavailableError("event service is not ready")
	}

	event, revision, err := s.EventRepository.GetWithRevision(ctx, eventUID)
	if err != nil {
		return err
	}

	if event.RecurrenceRuleUID == "" {
		if err := s.EventRepository.Delete(ctx, eventUID, revision); err != nil {
			return err
		}
		s.publishEventsDeleted(ctx, []string{eventUID})
		return nil
	}

	// Series instance: cascade through the rule. The rule goes first so a
	// failure partway through never leaves a live rule whose instances are
	// already gone. A missing rule means an earlier cascade was interrupted
	// after the rule delete; retrying finishes the instance cleanup.
	ruleUID := event.RecurrenceRuleUID
	rule, ruleRevision, err := s.RuleRepository.GetWithRevision(ctx, ruleUID)
	switch {
	case err == nil:
		if err := s.RuleRepository.Delete(ctx, rule.UID, ruleRevision); err != nil {
			return err
		}
	case domain.GetErrorType(err) != domain.ErrorTypeNotFound:
		return err
	}

	deletedUIDs, err := s.EventRepository.DeleteByRule(ctx, ruleUID)
	if err != nil {
		return err
	}

	s.publishEventsDeleted(ctx, deletedUIDs)
	if err := s.MessageBuilder.SendDeleteIndexRecurrenceRule(ctx, ruleUID); err != nil {
		slog.ErrorContext(ctx, "error publishing rule delete message", logging.ErrKey, err, "rule_uid", ruleUID)
	}

	return nil
}

// GetEvent fetches a single event by UID.
func (s *EventService) GetEvent(ctx context.Context, eventUID string) (*models.Event, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("event service is not ready")
	}
	return s.EventRepository.Get(ctx, eventUID)
}

// GetEventWithRule fetches an event together with the recurrence rule it
// belongs to. The rule is nil for standalone events.
func (s *EventService) GetEventWithRule(ctx context.Context, eventUID string) (*models.Event, *models.RecurrenceRule, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, nil, domain.NewUnavailableError("event service is not ready")
	}

	event, err := s.EventRepository.Get(ctx, eventUID)
	if err != nil {
		return nil, nil, err
	}
	if event.RecurrenceRuleUID == "" {
		return event, nil, nil
	}

	rule, err := s.RuleRepository.Get(ctx, event.RecurrenceRuleUID)
	if err != nil {
		return nil, nil, err
	}
	return event, rule, nil
}

// ListEventsBetween lists events whose start falls in [start, end). The
// window is clamped to the configured maximum width.
func (s *EventService) ListEventsBetween(ctx context.Context, start, end time.Time) ([]*models.Event, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("event service is not ready")
	}

	months := s.Config.ListWindowMonths
	if months <= 0 {
		months = 2
	}
	if maxEnd := start.AddDate(0, months, 0); end.After(maxEnd) {
		end = maxEnd
	}

	return s.EventRepository.ListBetween(ctx, start, end)
}

// compensateCreate undoes the partial writes of a failed create so the
// failure is not observably partial. Errors here are logged, not returned;
// the original failure is what the caller sees.
func (s *EventService) compensateCreate(ctx context.Context, event *models.Event, rule *models.RecurrenceRule) {
	if rule != nil {
		if _, err := s.EventRepository.DeleteByRule(ctx, rule.UID); err != nil {
			slog.ErrorContext(ctx, "error rolling back series instances", logging.ErrKey, err, "rule_uid", rule.UID)
		}
		storedRule, revision, err := s.RuleRepository.GetWithRevision(ctx, rule.UID)
		if err == nil {
			if err := s.RuleRepository.Delete(ctx, storedRule.UID, revision); err != nil {
				slog.ErrorContext(ctx, "error rolling back rule", logging.ErrKey, err, "rule_uid", rule.UID)
			}
		}
	}
	if event != nil {
		_, revision, err := s.EventRepository.GetWithRevision(ctx, event.UID)
		if err == nil {
			if err := s.EventRepository.Delete(ctx, event.UID, revision); err != nil {
				slog.ErrorContext(ctx, "error rolling back event", logging.ErrKey, err, "event_uid", event.UID)
			}
		}
	}
}

func (s *EventService) publishEventsIndexed(ctx context.Context, action models.MessageAction, events []*models.Event) {
	var jobs []func() error
	for _, event := range events {
		event := event
		jobs = append(jobs, func() error {
			return s.MessageBuilder.SendIndexEvent(ctx, action, *event)
		})
	}
	for _, err := range s.pool.RunAll(ctx, jobs...) {
		slog.ErrorContext(ctx, "error publishing event index message", logging.ErrKey, err)
	}
}

func (s *EventService) publishEventsDeleted(ctx context.Context, eventUIDs []string) {
	var jobs []func() error
	for _, uid := range eventUIDs {
		uid := uid
		jobs = append(jobs, func() error {
			return s.MessageBuilder.SendDeleteIndexEvent(ctx, uid)
		})
	}
	for _, err := range s.pool.RunAll(ctx, jobs...) {
		slog.ErrorContext(ctx, "error publishing event delete message", logging.ErrKey, err)
	}
}
