// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package utils

import (
	"github.com/akamensky/base58"
	"github.com/google/uuid"
)

// BookingCode derives a short, human-quotable code from an entity UID.
// The code is stable for a given UID and safe for use in calendar exports
// and support conversations.
func BookingCode(uid string) string {
	id, err := uuid.Parse(uid)
	if err != nil {
		// Non-UUID identifiers get encoded as-is.
		return base58.Encode([]byte(uid))
	}
	return base58.Encode(id[:])
}
