package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryAcquireRespectsLimit(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	assert.True(t, c.TryAcquireMemory(60))
	assert.Equal(t, int64(60), c.MemoryUsage())

	assert.False(t, c.TryAcquireMemory(50), "would exceed the limit")
	assert.Equal(t, int64(60), c.MemoryUsage())

	c.ReleaseMemory(60)
	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.True(t, c.TryAcquireMemory(100))
}

func TestAcquireBlocksUntilRelease(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})
	require.NoError(t, c.AcquireMemory(context.Background(), 100))

	done := make(chan error, 1)
	go func() {
		done <- c.AcquireMemory(context.Background(), 50)
	}()

	select {
	case <-done:
		t.Fatal("acquire should block while the budget is exhausted")
	case <-time.After(20 * time.Millisecond):
	}

	c.ReleaseMemory(100)
	require.NoError(t, <-done)
	assert.Equal(t, int64(50), c.MemoryUsage())
}

func TestAcquireHonorsContext(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 10})
	require.NoError(t, c.AcquireMemory(context.Background(), 10))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := c.AcquireMemory(ctx, 5)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestUnlimitedTrackingOnly(t *testing.T) {
	c := NewController(Config{})

	assert.True(t, c.TryAcquireMemory(1<<40))
	assert.Equal(t, int64(1<<40), c.MemoryUsage())
	c.ReleaseMemory(1 << 40)
}

func TestNilControllerIsNoop(t *testing.T) {
	var c *Controller

	require.NoError(t, c.AcquireMemory(context.Background(), 10))
	assert.True(t, c.TryAcquireMemory(10))
	c.ReleaseMemory(10)
	assert.Equal(t, int64(0), c.MemoryUsage())
}
