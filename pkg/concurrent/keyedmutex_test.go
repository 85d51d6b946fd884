// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package concurrent

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	const goroutines = 20
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("room-1")
			defer km.Unlock("room-1")
			// Unsynchronized increment; the keyed lock is the only guard.
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	km := NewKeyedMutex()

	km.Lock("room-1")
	defer km.Unlock("room-1")

	done := make(chan struct{})
	go func() {
		km.Lock("room-2")
		km.Unlock("room-2")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
}

func TestKeyedMutex_EntryDroppedWhenReleased(t *testing.T) {
	km := NewKeyedMutex()

	km.Lock("room-1")
	km.Unlock("room-1")

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks)
}

func TestKeyedMutex_UnlockUnheldPanics(t *testing.T) {
	km := NewKeyedMutex()
	assert.Panics(t, func() {
		km.Unlock("room-1")
	})
}
