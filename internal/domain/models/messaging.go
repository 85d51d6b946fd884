// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package models

// NATS subjects the booking service listens on. Callers use request/reply
// on these subjects; there is deliberately no HTTP surface.
const (
	// EventCreateSubject creates a single event or, when a recurrence is
	// given, a whole series. Subject form: roombook.event.create
	EventCreateSubject = "roombook.event.create"

	// EventUpdateSubject updates a single non-recurring event.
	// Subject form: roombook.event.update
	EventUpdateSubject = "roombook.event.update"

	// EventDeleteSubject deletes an event; for a series instance the whole
	// series is deleted. Subject form: roombook.event.delete
	EventDeleteSubject = "roombook.event.delete"

	// EventGetSubject fetches an event by UID.
	// Subject form: roombook.event.get
	EventGetSubject = "roombook.event.get"

	// EventListSubject lists events in a time window.
	// Subject form: roombook.event.list
	EventListSubject = "roombook.event.list"

	// EventICSSubject renders an event, or the series it belongs to, as an
	// iCalendar document. Subject form: roombook.event.ics
	EventICSSubject = "roombook.event.ics"

	// SeriesSetEndSubject changes a recurrence rule's end boundary and
	// reconciles the instance set. Subject form: roombook.series.set_end
	SeriesSetEndSubject = "roombook.series.set_end"

	// RoomAvailabilitySubject checks whether a room is free for an interval.
	// Subject form: roombook.room.availability
	RoomAvailabilitySubject = "roombook.room.availability"

	// RoomCreateSubject registers a new room.
	// Subject form: roombook.room.create
	RoomCreateSubject = "roombook.room.create"

	// RoomListSubject lists every registered room.
	// Subject form: roombook.room.list
	RoomListSubject = "roombook.room.list"
)

// NATS subjects the booking service publishes messages about.
const (
	// IndexEventSubject is the subject for the event indexing.
	// The subject is of the form: roombook.index.event
	IndexEventSubject = "roombook.index.event"

	// IndexRecurrenceRuleSubject is the subject for the recurrence rule indexing.
	// The subject is of the form: roombook.index.recurrence_rule
	IndexRecurrenceRuleSubject = "roombook.index.recurrence_rule"

	// IndexRoomSubject is the subject for the room indexing.
	// The subject is of the form: roombook.index.room
	IndexRoomSubject = "roombook.index.room"
)

// MessageAction is the action of an indexing message.
type MessageAction string

// MessageAction constants for the indexing messages.
const (
	ActionCreated MessageAction = "created"
	ActionUpdated MessageAction = "updated"
	ActionDeleted MessageAction = "deleted"
)

// IndexMessage is the payload published on the indexing subjects.
type IndexMessage struct {
	Action MessageAction `json:"action"`
	Data   any           `json:"data"`
}
