// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package models

import "time"

// Room is the key-value store representation of a bookable room.
// A room has capacity one: at most one event may occupy it at any instant.
type Room struct {
	UID       string     `json:"uid"`
	Name      string     `json:"name"`
	Available bool       `json:"available"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
