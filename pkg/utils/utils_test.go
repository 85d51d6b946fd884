// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBookingCode(t *testing.T) {
	uid := uuid.NewString()
	code := BookingCode(uid)

	assert.NotEmpty(t, code)
	assert.Equal(t, code, BookingCode(uid), "code is stable for a given UID")
	assert.NotEqual(t, code, BookingCode(uuid.NewString()))
}

func TestBookingCode_NonUUIDInput(t *testing.T) {
	code := BookingCode("not-a-uuid")
	assert.NotEmpty(t, code)
	assert.Equal(t, code, BookingCode("not-a-uuid"))
}

func TestTimePtr(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, now, *TimePtr(now))
}
