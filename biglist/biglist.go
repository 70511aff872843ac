// Package biglist provides a 64-bit indexed list built on the segmented
// array store, together with sublist views, iterators, bulk selection
// operations and a synchronized wrapper.
//
// BigList is unsynchronized. Iterators and sublist views become undefined if
// the list is structurally modified through any path other than the iterator
// or view itself; this is a caller contract, not a runtime check.
package biglist

import (
	"github.com/hupe1980/bigarray/store"
)

// BigList is a mutable sequence of T addressed by a 64-bit logical index.
type BigList[T any] struct {
	s *store.Store[T]
}

// New creates an empty BigList. Options are forwarded to the backing store.
func New[T any](optFns ...func(*store.Options)) *BigList[T] {
	return &BigList[T]{s: store.New[T](optFns...)}
}

// FromStore wraps an existing store. The list takes ownership; the store must
// not be mutated directly afterwards.
func FromStore[T any](s *store.Store[T]) *BigList[T] {
	return &BigList[T]{s: s}
}

// Store exposes the backing store for bulk operations (snapshots, copies).
// Structural modifications through the store invalidate iterators and views.
func (l *BigList[T]) Store() *store.Store[T] { return l.s }

// Size returns the number of elements.
func (l *BigList[T]) Size() uint64 { return l.s.Len() }

// IsEmpty reports whether the list holds no elements.
func (l *BigList[T]) IsEmpty() bool { return l.s.Len() == 0 }

// Get returns the element at index i. Panics with *store.IndexError when out
// of range.
func (l *BigList[T]) Get(i uint64) T { return l.s.Get(i) }

// Set overwrites the element at index i and returns the previous value.
func (l *BigList[T]) Set(i uint64, v T) T {
	old := l.s.Get(i)
	l.s.Set(i, v)
	return old
}

// Add appends v to the end of the list.
func (l *BigList[T]) Add(v T) { l.s.Append(v) }

// AddAll appends all elements of vs in order.
func (l *BigList[T]) AddAll(vs ...T) { l.s.AppendSlice(vs) }

// InsertAt inserts v at index i, shifting subsequent elements right.
// i == Size() appends.
func (l *BigList[T]) InsertAt(i uint64, v T) {
	n := l.s.Len()
	if i > n {
		panic(&store.IndexError{Op: "InsertAt", Index: i, Length: n})
	}
	l.s.Resize(n + 1)
	if i < n {
		l.s.Copy(i, l.s, i+1, n-i)
	}
	l.s.Set(i, v)
}

// RemoveAt removes and returns the element at index i, shifting subsequent
// elements left.
func (l *BigList[T]) RemoveAt(i uint64) T {
	n := l.s.Len()
	v := l.s.Get(i)
	if i+1 < n {
		l.s.Copy(i+1, l.s, i, n-i-1)
	}
	l.s.Truncate(n - 1)
	return v
}

// Push appends v, treating the list as a stack.
func (l *BigList[T]) Push(v T) { l.s.Append(v) }

// Pop removes and returns the last element.
func (l *BigList[T]) Pop() T {
	n := l.s.Len()
	v := l.s.Get(n - 1)
	l.s.Truncate(n - 1)
	return v
}

// Top returns the last element without removing it.
func (l *BigList[T]) Top() T { return l.s.Get(l.s.Len() - 1) }

// IndexOf returns the index of the first element for which eq reports true.
// The second result is false if no element matches.
func (l *BigList[T]) IndexOf(eq func(T) bool) (uint64, bool) {
	i := uint64(0)
	for run := range l.s.Slices(0, l.s.Len()) {
		for _, v := range run {
			if eq(v) {
				return i, true
			}
			i++
		}
	}
	return 0, false
}

// LastIndexOf returns the index of the last element for which eq reports
// true.
func (l *BigList[T]) LastIndexOf(eq func(T) bool) (uint64, bool) {
	found := false
	var at uint64
	i := uint64(0)
	for run := range l.s.Slices(0, l.s.Len()) {
		for _, v := range run {
			if eq(v) {
				at = i
				found = true
			}
			i++
		}
	}
	return at, found
}

// Fill sets every element in [from, to) to v.
func (l *BigList[T]) Fill(from, to uint64, v T) { l.s.Fill(from, to, v) }

// EnsureCapacity reserves capacity for at least n elements.
func (l *BigList[T]) EnsureCapacity(n uint64) error { return l.s.EnsureCapacity(n) }

// Clear removes all elements but keeps the backing storage.
func (l *BigList[T]) Clear() { l.s.Clear() }

// Trim releases backing storage beyond max(targetCapacity, Size()).
func (l *BigList[T]) Trim(targetCapacity uint64) { l.s.Trim(targetCapacity) }
