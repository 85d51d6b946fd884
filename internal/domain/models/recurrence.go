// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package models

import (
	"time"
)

// RecurrenceType identifies how far apart consecutive instances of a
// recurring series are.
type RecurrenceType string

// Supported recurrence types.
const (
	RecurrenceTypeDaily   RecurrenceType = "daily"
	RecurrenceTypeWeekly  RecurrenceType = "weekly"
	RecurrenceTypeMonthly RecurrenceType = "monthly"
	RecurrenceTypeYearly  RecurrenceType = "yearly"
)

// Valid reports whether the recurrence type is one of the supported values.
func (t RecurrenceType) Valid() bool {
	switch t {
	case RecurrenceTypeDaily, RecurrenceTypeWeekly, RecurrenceTypeMonthly, RecurrenceTypeYearly:
		return true
	}
	return false
}

// MaxGenerationWindowDays bounds how far into the future instances are
// generated for unbounded or far-future rules (roughly 1.5 years).
const MaxGenerationWindowDays = 547

// RecurrenceRule is the key-value store representation of a recurrence rule.
// A rule starts unanchored; it becomes anchored once the first event of the
// series is created and FirstEventUID is set. The type is immutable after
// anchoring; only the end boundary may change.
type RecurrenceRule struct {
	UID           string         `json:"uid"`
	Type          RecurrenceType `json:"type"`
	EndDate       *time.Time     `json:"end_date,omitempty"`
	FirstEventUID string         `json:"first_event_uid,omitempty"`
	CreatedAt     *time.Time     `json:"created_at,omitempty"`
	UpdatedAt     *time.Time     `json:"updated_at,omitempty"`
}

// Anchored reports whether the rule has its first instance attached.
func (r *RecurrenceRule) Anchored() bool {
	return r.FirstEventUID != ""
}
