// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

// Package store contains the NATS JetStream KV repositories for the booking
// service.
package store

import (
	"context"

	"github.com/nats-io/nats.go/jetstream"
)

// NATS Key-Value store bucket names.
const (
	// KVStoreNameEvents is the name of the KV store for events.
	KVStoreNameEvents = "events"

	// KVStoreNameRecurrenceRules is the name of the KV store for recurrence rules.
	KVStoreNameRecurrenceRules = "recurrence-rules"

	// KVStoreNameRooms is the name of the KV store for rooms.
	KVStoreNameRooms = "rooms"
)

// tracerName is the instrumentation name for the store package.
const tracerName = "github.com/roombook/room-booking-service/internal/infrastructure/store"

// INatsKeyValue is the NATS KV interface the repositories need. It matches
// jetstream.KeyValue and allows for mocking in tests.
type INatsKeyValue interface {
	ListKeys(context.Context, ...jetstream.WatchOpt) (jetstream.KeyLister, error)
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	Put(context.Context, string, []byte) (uint64, error)
	Update(context.Context, string, []byte, uint64) (uint64, error)
	Delete(context.Context, string, ...jetstream.KVDeleteOpt) error
}
