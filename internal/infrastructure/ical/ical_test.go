// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package ical

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roombook/room-booking-service/internal/domain"
	"github.com/roombook/room-booking-service/internal/domain/models"
	"github.com/roombook/room-booking-service/pkg/utils"
)

func calendarEvent() *models.Event {
	return &models.Event{
		UID:         "2b1f8f65-0000-4000-8000-000000000001",
		Code:        "BOOK123",
		Title:       "Quarterly review",
		Description: "Numbers and plans",
		MeetLink:    "https://meet.example.com/review",
		StartTime:   time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		RoomUID:     "room-1",
		AuthorUID:   "author-1",
	}
}

func TestGenerator_EventCalendar(t *testing.T) {
	g := NewGenerator()

	doc, err := g.EventCalendar(calendarEvent(), nil)
	require.NoError(t, err)

	assert.Contains(t, doc, "BEGIN:VCALENDAR")
	assert.Contains(t, doc, "END:VCALENDAR")
	assert.Contains(t, doc, "BEGIN:VEVENT")
	assert.Contains(t, doc, "SUMMARY:Quarterly review")
	assert.Contains(t, doc, "UID:BOOK123@roombook")
	assert.Contains(t, doc, "LOCATION:room-1")
	assert.Contains(t, doc, "URL:https://meet.example.com/review")
	assert.NotContains(t, doc, "RRULE")
}

func TestGenerator_EventCalendar_WithRule(t *testing.T) {
	g := NewGenerator()

	rule := &models.RecurrenceRule{
		UID:           "rule-1",
		Type:          models.RecurrenceTypeWeekly,
		EndDate:       utils.TimePtr(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)),
		FirstEventUID: "2b1f8f65-0000-4000-8000-000000000001",
	}

	doc, err := g.EventCalendar(calendarEvent(), rule)
	require.NoError(t, err)

	assert.Contains(t, doc, "RRULE:")
	assert.Contains(t, doc, "FREQ=WEEKLY")
	assert.Contains(t, doc, "UNTIL=20241231")

	// Only the anchor VEVENT is emitted; consumers expand the series.
	assert.Equal(t, 1, strings.Count(doc, "BEGIN:VEVENT"))
}

func TestGenerator_EventCalendar_UnboundedRule(t *testing.T) {
	g := NewGenerator()

	rule := &models.RecurrenceRule{
		UID:           "rule-1",
		Type:          models.RecurrenceTypeDaily,
		FirstEventUID: "2b1f8f65-0000-4000-8000-000000000001",
	}

	doc, err := g.EventCalendar(calendarEvent(), rule)
	require.NoError(t, err)
	assert.Contains(t, doc, "FREQ=DAILY")
	assert.NotContains(t, doc, "UNTIL=")
}

func TestGenerator_EventCalendar_Errors(t *testing.T) {
	g := NewGenerator()

	_, err := g.EventCalendar(nil, nil)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))

	_, err = g.EventCalendar(calendarEvent(), &models.RecurrenceRule{Type: models.RecurrenceType("bogus")})
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
}

func TestGenerator_EventCalendar_FallsBackToUID(t *testing.T) {
	g := NewGenerator()

	event := calendarEvent()
	event.Code = ""

	doc, err := g.EventCalendar(event, nil)
	require.NoError(t, err)
	assert.Contains(t, doc, "UID:"+event.UID+"@roombook")
}
