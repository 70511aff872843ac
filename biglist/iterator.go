package biglist

import (
	"iter"

	"github.com/hupe1980/bigarray/store"
)

// Iterator is a bidirectional cursor over a BigList with the usual
// list-iterator conventions: Next/Prev move the cursor, Set and Remove act on
// the element last returned, Add inserts before the cursor.
//
// The iterator is undefined after any structural modification of the list
// performed outside its own Add/Remove.
type Iterator[T any] struct {
	list *BigList[T]
	next uint64 // index returned by the next call to Next
	last int64  // index last returned, -1 if none or consumed by Remove/Add
}

// Iterator returns a cursor positioned before index start.
func (l *BigList[T]) Iterator(start uint64) *Iterator[T] {
	if start > l.Size() {
		panic(&store.IndexError{Op: "Iterator", Index: start, Length: l.Size()})
	}
	return &Iterator[T]{list: l, next: start, last: -1}
}

// HasNext reports whether Next will succeed.
func (it *Iterator[T]) HasNext() bool { return it.next < it.list.Size() }

// HasPrev reports whether Prev will succeed.
func (it *Iterator[T]) HasPrev() bool { return it.next > 0 }

// NextIndex returns the index the next call to Next would return.
func (it *Iterator[T]) NextIndex() uint64 { return it.next }

// Next returns the next element and advances the cursor.
func (it *Iterator[T]) Next() T {
	v := it.list.Get(it.next)
	it.last = int64(it.next)
	it.next++
	return v
}

// Prev returns the previous element and moves the cursor back.
func (it *Iterator[T]) Prev() T {
	it.next--
	v := it.list.Get(it.next)
	it.last = int64(it.next)
	return v
}

// Set overwrites the element last returned by Next or Prev.
func (it *Iterator[T]) Set(v T) {
	if it.last < 0 {
		panic(&store.ArgumentError{Op: "Iterator.Set", Reason: "no element to set"})
	}
	it.list.Set(uint64(it.last), v)
}

// Remove removes the element last returned by Next or Prev.
func (it *Iterator[T]) Remove() {
	if it.last < 0 {
		panic(&store.ArgumentError{Op: "Iterator.Remove", Reason: "no element to remove"})
	}
	it.list.RemoveAt(uint64(it.last))
	if uint64(it.last) < it.next {
		it.next--
	}
	it.last = -1
}

// Add inserts v before the cursor position.
func (it *Iterator[T]) Add(v T) {
	it.list.InsertAt(it.next, v)
	it.next++
	it.last = -1
}

// All yields (index, element) pairs in ascending index order. The list must
// not be structurally modified during iteration.
func (l *BigList[T]) All() iter.Seq2[uint64, T] {
	return func(yield func(uint64, T) bool) {
		i := uint64(0)
		for run := range l.s.Slices(0, l.s.Len()) {
			for _, v := range run {
				if !yield(i, v) {
					return
				}
				i++
			}
		}
	}
}

// Backward yields (index, element) pairs in descending index order.
func (l *BigList[T]) Backward() iter.Seq2[uint64, T] {
	return func(yield func(uint64, T) bool) {
		for i := l.Size(); i > 0; i-- {
			if !yield(i-1, l.Get(i-1)) {
				return
			}
		}
	}
}
