// Package resource provides a process-wide budget for the memory held by
// segmented array stores. One controller can be shared by many arrays so
// their combined backing storage stays under a single limit.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for tracked segment memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// AllocBytesPerSec smooths allocation bursts: growth beyond this
	// sustained rate blocks until the limiter admits it. If 0, unlimited.
	AllocBytesPerSec int64
}

// Controller tracks and limits segment memory across arrays.
// All methods are safe for concurrent use; a nil *Controller is a no-op.
type Controller struct {
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	allocLimiter *rate.Limiter // nil if unlimited
}

// NewController creates a controller for the given limits.
func NewController(cfg Config) *Controller {
	c := &Controller{}
	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.AllocBytesPerSec > 0 {
		c.allocLimiter = rate.NewLimiter(rate.Limit(cfg.AllocBytesPerSec), int(cfg.AllocBytesPerSec))
	}
	return c
}

// AcquireMemory reserves bytes before a growth allocation, blocking until the
// budget and the allocation rate admit it or ctx is canceled.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}
	if c.allocLimiter != nil {
		n := int(bytes)
		if burst := c.allocLimiter.Burst(); n > burst {
			n = burst
		}
		if err := c.allocLimiter.WaitN(ctx, n); err != nil {
			return err
		}
	}
	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}
	c.memUsed.Add(bytes)
	return nil
}

// TryAcquireMemory reserves bytes without blocking. It bypasses the
// allocation rate limiter and returns false only if the hard limit would be
// exceeded.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil || bytes <= 0 {
		return true
	}
	if c.memSem != nil && !c.memSem.TryAcquire(bytes) {
		return false
	}
	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory returns bytes to the budget after a trim or teardown.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the currently reserved bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}
