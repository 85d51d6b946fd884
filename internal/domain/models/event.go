// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package models

import (
	"slices"
	"time"
)

// Event is the key-value store representation of a booked event.
// When RecurrenceRuleUID is set the event is one instance of a recurring
// series and must only be modified through series-level operations.
type Event struct {
	UID               string     `json:"uid"`
	Code              string     `json:"code,omitempty"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	MeetLink          string     `json:"meet_link,omitempty"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           time.Time  `json:"end_time"`
	RoomUID           string     `json:"room_uid,omitempty"`
	RecurrenceRuleUID string     `json:"recurrence_rule_uid,omitempty"`
	AuthorUID         string     `json:"author_uid"`
	MemberUIDs        []string   `json:"member_uids,omitempty"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// Interval returns the event's booked time range.
func (e *Event) Interval() Interval {
	return Interval{Start: e.StartTime, End: e.EndTime}
}

// SetMembers replaces the event's member set with the given UIDs,
// deduplicated. Order is not meaningful; the stored set is sorted so that
// two events with the same members compare equal.
func (e *Event) SetMembers(memberUIDs []string) {
	members := slices.Clone(memberUIDs)
	slices.Sort(members)
	e.MemberUIDs = slices.Compact(members)
}

// Interval is a half-open time range [Start, End). End is exclusive, so
// two bookings may share an endpoint without overlapping.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the two half-open intervals intersect.
// Touching endpoints do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Valid reports whether the interval is well-formed (end strictly after start).
func (i Interval) Valid() bool {
	return i.End.After(i.Start)
}
