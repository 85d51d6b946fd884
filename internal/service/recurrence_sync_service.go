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

// AppliedDelta describes what a rule reconciliation changed.
type AppliedDelta struct {
	Created     []*models.Event
	DeletedUIDs []string
}

// RecurrenceSyncService reconciles the persisted instance set of a
// recurrence rule with the rule's current boundaries. It is invoked
// explicitly by the layer that persists rule edits; there is no implicit
// hook on field changes. Each transition is all-or-nothing and transitions
// for the same rule serialize on a per-rule lock, so the request path and
// the scheduled extension cannot both generate from the same latest
// instance.
type RecurrenceSyncService struct {
	EventRepository domain.EventRepository
	RuleRepository  domain.RecurrenceRuleRepository
	Occurrence      *OccurrenceService
	Clock           domain.Clock
	ruleLocks       *concurrent.KeyedMutex
	pool            *concurrent.WorkerPool
}

// NewRecurrenceSyncService creates a new RecurrenceSyncService.
func NewRecurrenceSyncService(
	eventRepository domain.EventRepository,
	ruleRepository domain.RecurrenceRuleRepository,
	occurrence *OccurrenceService,
	clock domain.Clock,
) *RecurrenceSyncService {
	return &RecurrenceSyncService{
		EventRepository: eventRepository,
		RuleRepository:  ruleRepository,
		Occurrence:      occurrence,
		Clock:           clock,
		ruleLocks:       concurrent.NewKeyedMutex(),
		pool:            concurrent.NewWorkerPool(4),
	}
}

// ServiceReady checks if the service is ready for use.
func (s *RecurrenceSyncService) ServiceReady() bool {
	return s.EventRepository != nil &&
		s.RuleRepository != nil &&
		s.Occurrence != nil &&
		s.Clock != nil
}

// HandleRuleAnchored reacts to a rule gaining its first instance: it
// generates and persists every remaining instance of the series up to the
// rule's horizon, each carrying the anchor's template fields and member set.
func (s *RecurrenceSyncService) HandleRuleAnchored(ctx context.Context, rule *models.RecurrenceRule) ([]*models.Event, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("recurrence sync service is not ready")
	}
	if !rule.Anchored() {
		return nil, domain.NewRuleNotAnchoredError(rule.UID)
	}

	// Serialize per rule so a concurrent reconciliation of the same rule
	// cannot generate from the same starting point twice.
	s.ruleLocks.Lock(rule.UID)
	defer s.ruleLocks.Unlock(rule.UID)

	anchor, err := s.EventRepository.Get(ctx, rule.FirstEventUID)
	if err != nil {
		return nil, err
	}

	horizon := s.Occurrence.Horizon(rule.EndDate, s.Clock.Now())
	drafts, err := s.Occurrence.Generate(anchor, rule, horizon)
	if err != nil {
		return nil, err
	}

	if err := s.persistDrafts(ctx, drafts); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "generated series instances",
		"rule_uid", rule.UID,
		"count", len(drafts),
		"horizon", horizon,
	)

	return drafts, nil
}

// HandleRuleEndChanged reacts to an edit of the rule's end boundary. The
// rule already carries the new end date; previousEnd is the boundary before
// the edit. A shortened horizon deletes every instance starting at or after
// the new horizon and generates nothing; a lengthened or unset horizon
// extends the series from the latest persisted instance, so re-running the
// same change never duplicates instances.
func (s *RecurrenceSyncService) HandleRuleEndChanged(ctx context.Context, rule *models.RecurrenceRule, previousEnd *time.Time) (*AppliedDelta, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("recurrence sync service is not ready")
	}
	if !rule.Anchored() {
		return nil, domain.NewRuleNotAnchoredError(rule.UID)
	}

	s.ruleLocks.Lock(rule.UID)
	defer s.ruleLocks.Unlock(rule.UID)

	now := s.Clock.Now()
	newHorizon := s.Occurrence.Horizon(rule.EndDate, now)
	previousHorizon := s.Occurrence.Horizon(previousEnd, now)

	if newHorizon.Before(previousHorizon) {
		deletedUIDs, err := s.EventRepository.DeleteByRuleFrom(ctx, rule.UID, newHorizon)
		if err != nil {
			return nil, err
		}
		slog.DebugContext(ctx, "truncated series",
			"rule_uid", rule.UID,
			"deleted", len(deletedUIDs),
			"horizon", newHorizon,
		)
		return &AppliedDelta{DeletedUIDs: deletedUIDs}, nil
	}

	latest, err := s.EventRepository.LatestByRule(ctx, rule.UID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		// A rule always keeps at least its anchor instance.
		latest, err = s.EventRepository.Get(ctx, rule.FirstEventUID)
		if err != nil {
			return nil, err
		}
	}

	drafts, err := s.Occurrence.Generate(latest, rule, newHorizon)
	if err != nil {
		return nil, err
	}
	if err := s.persistDrafts(ctx, drafts); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "extended series",
		"rule_uid", rule.UID,
		"created", len(drafts),
		"horizon", newHorizon,
	)

	return &AppliedDelta{Created: drafts}, nil
}

// ExtendOpenRules extends every rule whose end date is unset or still in the
// future up to the current rolling horizon. Meant to run on a schedule so
// unbounded series keep being materialized as time advances. Rules are
// reconciled independently; one failing rule does not stop the others.
func (s *RecurrenceSyncService) ExtendOpenRules(ctx context.Context) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return domain.NewUnavailableError("recurrence sync service is not ready")
	}

	rules, err := s.RuleRepository.ListAll(ctx)
	if err != nil {
		return err
	}

	now := s.Clock.Now()

	var jobs []func() error
	for _, rule := range rules {
		if !rule.Anchored() {
			continue
		}
		if rule.EndDate != nil && rule.EndDate.Before(now) {
			continue
		}
		rule := rule
		jobs = append(jobs, func() error {
			_, err := s.HandleRuleEndChanged(ctx, rule, rule.EndDate)
			if err != nil {
				slog.ErrorContext(ctx, "error extending series",
					logging.ErrKey, err,
					"rule_uid", rule.UID,
				)
			}
			return err
		})
	}

	errs := s.pool.RunAll(ctx, jobs...)
	if len(errs) > 0 {
		return domain.NewInternalError("error extending one or more series", errs...)
	}
	return nil
}

// persistDrafts assigns identities to the drafts and writes them in one
// batch. The repository guarantees the batch is not observably partial.
func (s *RecurrenceSyncService) persistDrafts(ctx context.Context, drafts []*models.Event) error {
	if len(drafts) == 0 {
		return nil
	}

	now := s.Clock.Now()
	for _, draft := range drafts {
		draft.UID = uuid.NewString()
		draft.Code = utils.BookingCode(draft.UID)
		draft.CreatedAt = utils.TimePtr(now)
		draft.UpdatedAt = utils.TimePtr(now)
	}

	return s.EventRepository.CreateMany(ctx, drafts)
}
