package biglist

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEachParallel invokes fn for every (index, element) pair, partitioned
// across at most workers goroutines. Partition boundaries are aligned to
// segment boundaries via NearestAlignedSplit so workers never share a
// segment.
//
// fn must not modify the list. The first error cancels the remaining work;
// context cancellation is observed between segments.
func (l *BigList[T]) ForEachParallel(ctx context.Context, workers int, fn func(index uint64, value T) error) error {
	n := l.Size()
	if n == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if uint64(workers) > n {
		workers = int(n)
	}

	bounds := l.splitBounds(uint64(workers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for w := 0; w+1 < len(bounds); w++ {
		lo, hi := bounds[w], bounds[w+1]
		g.Go(func() error {
			i := lo
			for run := range l.s.Slices(lo, hi) {
				if err := ctx.Err(); err != nil {
					return err
				}
				for _, v := range run {
					if err := fn(i, v); err != nil {
						return err
					}
					i++
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// splitBounds returns parts+1 monotonically increasing indices partitioning
// [0, Size()), with interior bounds nudged to segment boundaries.
func (l *BigList[T]) splitBounds(parts uint64) []uint64 {
	n := l.Size()
	bounds := make([]uint64, 0, parts+1)
	bounds = append(bounds, 0)
	for w := uint64(1); w < parts; w++ {
		candidate := n / parts * w
		lo := bounds[len(bounds)-1]
		if candidate < lo {
			candidate = lo
		}
		aligned := l.s.NearestAlignedSplit(candidate, lo, n)
		if aligned > lo {
			bounds = append(bounds, aligned)
		}
	}
	return append(bounds, n)
}
