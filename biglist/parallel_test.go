package biglist

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bigarray/store"
)

func TestForEachParallelVisitsEverything(t *testing.T) {
	const n = 1000
	l := New[uint64](store.WithSegmentBits(4))
	for i := uint64(0); i < n; i++ {
		l.Add(i)
	}

	var sum atomic.Uint64
	var count atomic.Uint64
	err := l.ForEachParallel(context.Background(), 4, func(i, v uint64) error {
		if i != v {
			return errors.New("index/value mismatch")
		}
		sum.Add(v)
		count.Add(1)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(n), count.Load())
	assert.Equal(t, uint64(n*(n-1)/2), sum.Load())
}

func TestForEachParallelEmpty(t *testing.T) {
	l := New[int](store.WithSegmentBits(2))
	err := l.ForEachParallel(context.Background(), 8, func(uint64, int) error {
		t.Fatal("must not be called")
		return nil
	})
	require.NoError(t, err)
}

func TestForEachParallelPropagatesError(t *testing.T) {
	l := newList(t, 100)
	sentinel := errors.New("boom")

	err := l.ForEachParallel(context.Background(), 4, func(i uint64, _ int) error {
		if i == 50 {
			return sentinel
		}
		return nil
	})

	assert.ErrorIs(t, err, sentinel)
}

func TestForEachParallelCanceledContext(t *testing.T) {
	l := newList(t, 100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.ForEachParallel(ctx, 4, func(uint64, int) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSplitBoundsAligned(t *testing.T) {
	l := New[int](store.WithSegmentBits(2))
	for i := 0; i < 41; i++ {
		l.Add(i)
	}

	bounds := l.splitBounds(4)

	require.GreaterOrEqual(t, len(bounds), 2)
	assert.Equal(t, uint64(0), bounds[0])
	assert.Equal(t, uint64(41), bounds[len(bounds)-1])
	for i := 1; i < len(bounds); i++ {
		assert.GreaterOrEqual(t, bounds[i], bounds[i-1])
	}
	// Interior bounds land on segment boundaries.
	for _, b := range bounds[1 : len(bounds)-1] {
		assert.Zero(t, b%4)
	}
}
