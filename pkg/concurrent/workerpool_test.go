// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool_Run(t *testing.T) {
	pool := NewWorkerPool(4)

	var count atomic.Int32
	var jobs []func() error
	for i := 0; i < 10; i++ {
		jobs = append(jobs, func() error {
			count.Add(1)
			return nil
		})
	}

	err := pool.Run(context.Background(), jobs...)
	require.NoError(t, err)
	assert.Equal(t, int32(10), count.Load())
}

func TestWorkerPool_RunReturnsFirstError(t *testing.T) {
	pool := NewWorkerPool(2)
	boom := errors.New("boom")

	err := pool.Run(context.Background(),
		func() error { return nil },
		func() error { return boom },
	)
	assert.ErrorIs(t, err, boom)
}

func TestWorkerPool_RunAllCollectsAllErrors(t *testing.T) {
	pool := NewWorkerPool(2)

	errs := pool.RunAll(context.Background(),
		func() error { return errors.New("first") },
		func() error { return nil },
		func() error { return errors.New("second") },
	)
	assert.Len(t, errs, 2)
}

func TestWorkerPool_EmptyJobList(t *testing.T) {
	pool := NewWorkerPool(2)
	assert.NoError(t, pool.Run(context.Background()))
	assert.Nil(t, pool.RunAll(context.Background()))
}

func TestWorkerPool_ZeroWorkersClampedToOne(t *testing.T) {
	pool := NewWorkerPool(0)
	assert.NoError(t, pool.Run(context.Background(), func() error { return nil }))
}
