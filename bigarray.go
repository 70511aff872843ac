package bigarray

import (
	"bytes"
	"context"
	"fmt"
	"time"
	"unsafe"

	"github.com/hupe1980/bigarray/biglist"
	"github.com/hupe1980/bigarray/blobstore"
	"github.com/hupe1980/bigarray/snapshot"
	"github.com/hupe1980/bigarray/store"
)

// BigArray is the high-level facade over a segmented big list: element
// access plus memory budgeting, structured logging, metrics and snapshot
// persistence.
//
// Element types are restricted to fixed-width scalars so every array is
// snapshotable. For arbitrary element types, use biglist directly.
//
// BigArray is unsynchronized; see biglist.Synchronized for shared access.
type BigArray[T snapshot.Scalar] struct {
	list *biglist.BigList[T]
	opts options

	elemSize int64
	reserved int64 // bytes accounted to the resource controller
}

// New creates an empty BigArray.
func New[T snapshot.Scalar](optFns ...Option) (*BigArray[T], error) {
	opts, err := buildOptions(optFns)
	if err != nil {
		return nil, err
	}

	var zero T
	return &BigArray[T]{
		list:     biglist.New[T](opts.storeOptions()...),
		opts:     opts,
		elemSize: int64(unsafe.Sizeof(zero)),
	}, nil
}

// List exposes the underlying big list for operations the facade does not
// mirror (sublists, iterators, selections). Structural growth through the
// list bypasses the resource budget.
func (b *BigArray[T]) List() *biglist.BigList[T] { return b.list }

// Len returns the number of elements.
func (b *BigArray[T]) Len() uint64 { return b.list.Size() }

// Cap returns the number of addressable slots without reallocation.
func (b *BigArray[T]) Cap() uint64 { return b.list.Store().Cap() }

// Get returns the element at index i. Panics with *store.IndexError when out
// of range; out-of-range access is a programming error, never clamped.
func (b *BigArray[T]) Get(i uint64) T { return b.list.Get(i) }

// Set overwrites the element at index i.
func (b *BigArray[T]) Set(i uint64, v T) { b.list.Set(i, v) }

// Fill sets every element in [from, to) to v.
func (b *BigArray[T]) Fill(from, to uint64, v T) { b.list.Fill(from, to, v) }

// CopyWithin copies n elements from srcIndex to dstIndex inside the array
// with memmove semantics for overlapping ranges.
func (b *BigArray[T]) CopyWithin(srcIndex, dstIndex, n uint64) {
	s := b.list.Store()
	s.Copy(srcIndex, s, dstIndex, n)
}

// Append adds the given elements at the end of the array. Growth is
// reserved against the resource controller first, so a budget overrun fails
// with ErrMemoryLimit before anything is allocated.
func (b *BigArray[T]) Append(vs ...T) error {
	need := b.Len() + uint64(len(vs))
	if need > b.Cap() {
		if err := b.reserve(b.amortizedTarget(need)); err != nil {
			return err
		}
	}
	b.list.AddAll(vs...)
	return nil
}

// EnsureCapacity grows the backing storage so that n slots are addressable
// without further reallocation.
func (b *BigArray[T]) EnsureCapacity(n uint64) error {
	return b.reserve(n)
}

// Trim releases backing storage beyond max(targetCapacity, Len()) and
// returns the freed bytes to the resource controller.
func (b *BigArray[T]) Trim(targetCapacity uint64) {
	oldCap := b.Cap()
	b.list.Trim(targetCapacity)
	newCap := b.Cap()
	if newCap == oldCap {
		return
	}
	freed := int64(oldCap-newCap) * b.elemSize
	// Growth through List() bypasses the budget, so never hand back more
	// than was actually reserved.
	if freed > b.reserved {
		freed = b.reserved
	}
	if freed > 0 {
		b.opts.controller.ReleaseMemory(freed)
		b.reserved -= freed
	}
	b.opts.metrics.RecordTrim(oldCap, newCap)
	b.opts.logger.LogTrim(context.Background(), oldCap, newCap)
}

// Close releases the array's storage and returns its bytes to the resource
// controller. The array is empty but reusable afterwards.
func (b *BigArray[T]) Close() {
	b.list.Clear()
	b.Trim(0)
	// Trim released everything capacity-accounted; reserved is zero now
	// unless releases raced, which the unsynchronized contract excludes.
	b.reserved = 0
}

// ForEach invokes fn for every (index, element) pair across at most workers
// goroutines, partitioned along segment boundaries. fn must not modify the
// array.
func (b *BigArray[T]) ForEach(ctx context.Context, workers int, fn func(index uint64, value T) error) error {
	return b.list.ForEachParallel(ctx, workers, fn)
}

// Save writes a snapshot of the array to the blob store under name.
func (b *BigArray[T]) Save(ctx context.Context, bs blobstore.BlobStore, name string) error {
	start := time.Now()
	err := b.save(ctx, bs, name)
	b.opts.metrics.RecordSnapshotSave(b.Len(), time.Since(start), err)
	b.opts.logger.LogSnapshotSave(ctx, name, b.Len(), err)
	return translateError(err)
}

func (b *BigArray[T]) save(ctx context.Context, bs blobstore.BlobStore, name string) error {
	var buf bytes.Buffer
	if err := snapshot.Write(&buf, b.list.Store(), snapshot.WithCompression(b.opts.compression)); err != nil {
		return err
	}
	return bs.Put(ctx, name, &buf, int64(buf.Len()))
}

// SaveFile writes a snapshot of the array to a local file atomically.
func (b *BigArray[T]) SaveFile(path string) error {
	start := time.Now()
	err := snapshot.WriteFile(path, b.list.Store(), snapshot.WithCompression(b.opts.compression))
	b.opts.metrics.RecordSnapshotSave(b.Len(), time.Since(start), err)
	b.opts.logger.LogSnapshotSave(context.Background(), path, b.Len(), err)
	return translateError(err)
}

// Load reads a snapshot from the blob store into a new BigArray.
func Load[T snapshot.Scalar](ctx context.Context, bs blobstore.BlobStore, name string, optFns ...Option) (*BigArray[T], error) {
	opts, err := buildOptions(optFns)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	b, err := load[T](ctx, bs, name, opts)
	var count uint64
	if b != nil {
		count = b.Len()
	}
	opts.metrics.RecordSnapshotLoad(count, time.Since(start), err)
	opts.logger.LogSnapshotLoad(ctx, name, count, err)
	return b, translateError(err)
}

func load[T snapshot.Scalar](ctx context.Context, bs blobstore.BlobStore, name string, opts options) (*BigArray[T], error) {
	rc, err := bs.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	s, err := snapshot.Read[T](rc, opts.storeOptions()...)
	if err != nil {
		return nil, err
	}
	return adopt[T](s, opts)
}

// LoadFile reads a snapshot from a local file into a new BigArray.
func LoadFile[T snapshot.Scalar](path string, optFns ...Option) (*BigArray[T], error) {
	opts, err := buildOptions(optFns)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	s, err := snapshot.ReadFile[T](path, opts.storeOptions()...)
	var b *BigArray[T]
	if err == nil {
		b, err = adopt[T](s, opts)
	}
	var count uint64
	if b != nil {
		count = b.Len()
	}
	opts.metrics.RecordSnapshotLoad(count, time.Since(start), err)
	opts.logger.LogSnapshotLoad(context.Background(), path, count, err)
	return b, translateError(err)
}

// adopt wraps a freshly loaded store, charging its capacity to the resource
// controller.
func adopt[T snapshot.Scalar](s *store.Store[T], opts options) (*BigArray[T], error) {
	var zero T
	elemSize := int64(unsafe.Sizeof(zero))
	reserve := int64(s.Cap()) * elemSize
	if !opts.controller.TryAcquireMemory(reserve) {
		return nil, fmt.Errorf("%w: loading requires %d bytes", ErrMemoryLimit, reserve)
	}
	return &BigArray[T]{
		list:     biglist.FromStore(s),
		opts:     opts,
		elemSize: elemSize,
		reserved: reserve,
	}, nil
}

// amortizedTarget mirrors the store's growth policy so the controller
// reservation matches what the store would allocate.
func (b *BigArray[T]) amortizedTarget(need uint64) uint64 {
	current := b.Cap()
	target := current / b.opts.growthDenominator * b.opts.growthNumerator
	if floor := current + store.MinCapacityIncrement; target < floor {
		target = floor
	}
	if target < need {
		target = need
	}
	return target
}

// reserve acquires budget for growth to target slots, then grows the store.
func (b *BigArray[T]) reserve(target uint64) error {
	segSize := uint64(1) << b.opts.segmentBits
	rounded := (target + segSize - 1) &^ (segSize - 1)
	oldCap := b.Cap()
	if rounded <= oldCap {
		return nil
	}

	delta := int64(rounded-oldCap) * b.elemSize
	if !b.opts.controller.TryAcquireMemory(delta) {
		return fmt.Errorf("%w: growth requires %d additional bytes", ErrMemoryLimit, delta)
	}
	if err := b.list.EnsureCapacity(rounded); err != nil {
		b.opts.controller.ReleaseMemory(delta)
		return translateError(err)
	}
	b.reserved += delta

	newCap := b.Cap()
	b.opts.metrics.RecordGrow(oldCap, newCap)
	b.opts.logger.LogGrow(context.Background(), oldCap, newCap)
	return nil
}
