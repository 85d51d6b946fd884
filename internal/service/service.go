// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package service

type Service interface {
	ServiceReady() bool
}

// ServiceConfig is the configuration for the Services.
type ServiceConfig struct {
	// ListWindowMonths caps how wide an event listing window may be.
	ListWindowMonths int
}
