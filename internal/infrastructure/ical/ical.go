// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

// Package ical renders events and series as iCalendar documents so bookings
// can be imported into external calendars. Delivery (email, feeds) is out of
// scope; this package only produces the document.
package ical

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"github.com/roombook/room-booking-service/internal/domain"
	"github.com/roombook/room-booking-service/internal/domain/models"
)

const productID = "-//RoomBook//room-booking-service//EN"

// Generator builds iCalendar documents for events.
type Generator struct{}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// EventCalendar renders a single event, or a whole series when a rule is
// given, as a VCALENDAR document. For a series only the anchor VEVENT is
// emitted, carrying an RRULE; consuming calendars expand it themselves.
func (g *Generator) EventCalendar(event *models.Event, rule *models.RecurrenceRule) (string, error) {
	if event == nil {
		return "", domain.NewValidationError("event is required")
	}

	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, eventUID(event))
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	vevent.Props.SetDateTime(ical.PropDateTimeStart, event.StartTime.UTC())
	vevent.Props.SetDateTime(ical.PropDateTimeEnd, event.EndTime.UTC())
	vevent.Props.SetText(ical.PropSummary, event.Title)
	if event.Description != "" {
		vevent.Props.SetText(ical.PropDescription, event.Description)
	}
	if event.MeetLink != "" {
		vevent.Props.SetText(ical.PropURL, event.MeetLink)
	}
	if event.RoomUID != "" {
		vevent.Props.SetText(ical.PropLocation, event.RoomUID)
	}

	if rule != nil {
		rruleValue, err := recurrenceRRule(rule)
		if err != nil {
			return "", err
		}
		vevent.Props.Set(&ical.Prop{Name: ical.PropRecurrenceRule, Value: rruleValue})
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Children = append(cal.Children, vevent.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", domain.NewInternalError("failed to encode calendar", err)
	}
	return buf.String(), nil
}

// recurrenceRRule maps a rule to an RFC 5545 RRULE value. Note that RFC
// expansion of FREQ=MONTHLY skips months lacking the anchor's day of month
// instead of clamping it; exports of such series are an approximation.
func recurrenceRRule(rule *models.RecurrenceRule) (string, error) {
	var freq rrule.Frequency
	switch rule.Type {
	case models.RecurrenceTypeDaily:
		freq = rrule.DAILY
	case models.RecurrenceTypeWeekly:
		freq = rrule.WEEKLY
	case models.RecurrenceTypeMonthly:
		freq = rrule.MONTHLY
	case models.RecurrenceTypeYearly:
		freq = rrule.YEARLY
	default:
		return "", domain.NewInvalidRecurrenceTypeError(rule.Type)
	}

	opt := rrule.ROption{Freq: freq}
	if rule.EndDate != nil {
		// The rule's end date is inclusive; UNTIL is inclusive as well.
		opt.Until = rule.EndDate.UTC()
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return "", domain.NewInternalError("failed to build recurrence rule", err)
	}
	return r.String(), nil
}

func eventUID(event *models.Event) string {
	if event.Code != "" {
		return fmt.Sprintf("%s@roombook", event.Code)
	}
	return fmt.Sprintf("%s@roombook", event.UID)
}
