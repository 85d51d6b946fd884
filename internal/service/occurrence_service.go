// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"time"

	"github.com/roombook/room-booking-service/internal/domain"
	"github.com/roombook/room-booking-service/internal/domain/models"
)

// OccurrenceService maps recurrence types to calendar stepping and
// materializes the concrete instances of a recurring series. All methods are
// pure; persistence is the synchronizer's job.
type OccurrenceService struct{}

// NewOccurrenceService creates a new OccurrenceService
func NewOccurrenceService() *OccurrenceService {
	return &OccurrenceService{}
}

// StepFunc returns the period-advance operation for the recurrence type.
func (s *OccurrenceService) StepFunc(recurrenceType models.RecurrenceType) (func(time.Time) time.Time, error) {
	switch recurrenceType {
	case models.RecurrenceTypeDaily:
		return func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }, nil
	case models.RecurrenceTypeWeekly:
		return func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }, nil
	case models.RecurrenceTypeMonthly:
		return addMonthNoOverflow, nil
	case models.RecurrenceTypeYearly:
		return addYearNoOverflow, nil
	}
	return nil, domain.NewInvalidRecurrenceTypeError(recurrenceType)
}

// Horizon computes the exclusive upper bound for instance generation:
// min(ruleEnd, now + MaxGenerationWindowDays) plus one day, so a
// "start < horizon" loop includes instances on the rule's inclusive end date.
func (s *OccurrenceService) Horizon(ruleEnd *time.Time, now time.Time) time.Time {
	maxEnd := now.AddDate(0, 0, models.MaxGenerationWindowDays)
	end := maxEnd
	if ruleEnd != nil && ruleEnd.Before(maxEnd) {
		end = *ruleEnd
	}
	return end.AddDate(0, 0, 1)
}

// Generate produces the instance drafts of a series, stepping forward from
// the given event until the stepped start reaches the horizon. The first
// draft is one period after fromEvent, so generation never re-derives the
// event it starts from. Each draft copies the template fields and member set
// of fromEvent and carries its rule UID; UIDs are left empty for the
// persistence layer to assign.
func (s *OccurrenceService) Generate(fromEvent *models.Event, rule *models.RecurrenceRule, horizon time.Time) ([]*models.Event, error) {
	step, err := s.StepFunc(rule.Type)
	if err != nil {
		return nil, err
	}

	drafts := []*models.Event{}
	start := step(fromEvent.StartTime)
	end := step(fromEvent.EndTime)

	for start.Before(horizon) {
		draft := &models.Event{
			Title:             fromEvent.Title,
			Description:       fromEvent.Description,
			MeetLink:          fromEvent.MeetLink,
			StartTime:         start,
			EndTime:           end,
			RoomUID:           fromEvent.RoomUID,
			RecurrenceRuleUID: rule.UID,
			AuthorUID:         fromEvent.AuthorUID,
		}
		draft.SetMembers(fromEvent.MemberUIDs)
		drafts = append(drafts, draft)

		start = step(start)
		end = step(end)
	}

	return drafts, nil
}

// ProjectIntervals computes the time ranges a prospective series would
// occupy, without touching storage. The anchor interval itself is not
// included; callers check it separately.
func (s *OccurrenceService) ProjectIntervals(anchor models.Interval, recurrenceType models.RecurrenceType, ruleEnd *time.Time, now time.Time) ([]models.Interval, error) {
	step, err := s.StepFunc(recurrenceType)
	if err != nil {
		return nil, err
	}

	horizon := s.Horizon(ruleEnd, now)

	intervals := []models.Interval{}
	start := step(anchor.Start)
	end := step(anchor.End)
	for start.Before(horizon) {
		intervals = append(intervals, models.Interval{Start: start, End: end})
		start = step(start)
		end = step(end)
	}

	return intervals, nil
}

// addMonthNoOverflow advances by one calendar month, clamping the day of
// month to the last valid day of the target month (Jan 31 -> Feb 28/29,
// never Mar 2/3).
func addMonthNoOverflow(t time.Time) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	lastDay := daysInMonth(year, month+1, t.Location())
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month+1, day, hour, minute, sec, t.Nanosecond(), t.Location())
}

// addYearNoOverflow advances by one calendar year, clamping Feb 29 to
// Feb 28 on non-leap target years.
func addYearNoOverflow(t time.Time) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	lastDay := daysInMonth(year+1, month, t.Location())
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year+1, month, day, hour, minute, sec, t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month. The month may
// be out of the 1-12 range; time.Date normalizes it.
func daysInMonth(year int, month time.Month, loc *time.Location) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
