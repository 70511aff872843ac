package biglist

import "sync"

// SynchronizedBigList serializes every operation on a BigList behind one
// mutex. The core list stays unsynchronized by design; callers that need
// concurrent access opt in through this wrapper.
//
// Compound operations (iterate, check-then-act) must run inside Do so the
// lock spans the whole sequence.
type SynchronizedBigList[T any] struct {
	mu   sync.Mutex
	list *BigList[T]
}

// Synchronized wraps list. The wrapped list must not be used directly
// afterwards.
func Synchronized[T any](list *BigList[T]) *SynchronizedBigList[T] {
	return &SynchronizedBigList[T]{list: list}
}

// Do runs fn with the lock held, exposing the underlying list for compound
// operations.
func (l *SynchronizedBigList[T]) Do(fn func(*BigList[T])) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.list)
}

// Size returns the number of elements.
func (l *SynchronizedBigList[T]) Size() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.list.Size()
}

// Get returns the element at index i.
func (l *SynchronizedBigList[T]) Get(i uint64) T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.list.Get(i)
}

// Set overwrites the element at index i and returns the previous value.
func (l *SynchronizedBigList[T]) Set(i uint64, v T) T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.list.Set(i, v)
}

// Add appends v.
func (l *SynchronizedBigList[T]) Add(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.list.Add(v)
}

// InsertAt inserts v at index i.
func (l *SynchronizedBigList[T]) InsertAt(i uint64, v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.list.InsertAt(i, v)
}

// RemoveAt removes and returns the element at index i.
func (l *SynchronizedBigList[T]) RemoveAt(i uint64) T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.list.RemoveAt(i)
}

// Push appends v, treating the list as a stack.
func (l *SynchronizedBigList[T]) Push(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.list.Push(v)
}

// Pop removes and returns the last element.
func (l *SynchronizedBigList[T]) Pop() T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.list.Pop()
}

// Clear removes all elements.
func (l *SynchronizedBigList[T]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.list.Clear()
}

// Trim releases backing storage beyond max(targetCapacity, Size()).
func (l *SynchronizedBigList[T]) Trim(targetCapacity uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.list.Trim(targetCapacity)
}
