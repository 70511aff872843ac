package biglist

import (
	"github.com/hupe1980/bigarray/store"
)

// SubList is a non-owning view of a contiguous range of a BigList.
//
// The view holds a reference to the whole backing list plus an offset range,
// never a copy and never raw segment references, so it stays valid across
// reallocations of the parent. Mutations through the view write through to
// the parent and adjust the view's own bounds.
//
// The range is revalidated against the parent on every access: if the parent
// shrinks beneath the view through another path, the next access panics with
// an *store.IndexError rather than reading stale data. Mutating the parent
// inside the view's range through another path leaves the view positioned
// over shifted elements; like iterator invalidation, avoiding that is the
// caller's responsibility.
type SubList[T any] struct {
	parent *BigList[T]
	from   uint64
	to     uint64
}

// SubList returns a view of the range [from, to).
func (l *BigList[T]) SubList(from, to uint64) *SubList[T] {
	if from > to {
		panic(&store.ArgumentError{Op: "SubList", Reason: "inverted range"})
	}
	if to > l.Size() {
		panic(&store.IndexError{Op: "SubList", Index: to, Length: l.Size()})
	}
	return &SubList[T]{parent: l, from: from, to: to}
}

// Size returns the number of elements in the view.
func (v *SubList[T]) Size() uint64 { return v.to - v.from }

// IsEmpty reports whether the view is empty.
func (v *SubList[T]) IsEmpty() bool { return v.to == v.from }

func (v *SubList[T]) revalidate(op string) {
	if v.to > v.parent.Size() {
		panic(&store.IndexError{Op: op, Index: v.to, Length: v.parent.Size()})
	}
}

func (v *SubList[T]) index(op string, i uint64) uint64 {
	v.revalidate(op)
	if i >= v.to-v.from {
		panic(&store.IndexError{Op: op, Index: i, Length: v.to - v.from})
	}
	return v.from + i
}

// Get returns the element at view index i.
func (v *SubList[T]) Get(i uint64) T {
	return v.parent.Get(v.index("SubList.Get", i))
}

// Set overwrites the element at view index i, writing through to the parent.
func (v *SubList[T]) Set(i uint64, val T) T {
	return v.parent.Set(v.index("SubList.Set", i), val)
}

// Add appends val at the end of the view, inserting into the parent.
func (v *SubList[T]) Add(val T) {
	v.revalidate("SubList.Add")
	v.parent.InsertAt(v.to, val)
	v.to++
}

// InsertAt inserts val at view index i. i == Size() appends to the view.
func (v *SubList[T]) InsertAt(i uint64, val T) {
	v.revalidate("SubList.InsertAt")
	if i > v.to-v.from {
		panic(&store.IndexError{Op: "SubList.InsertAt", Index: i, Length: v.to - v.from})
	}
	v.parent.InsertAt(v.from+i, val)
	v.to++
}

// RemoveAt removes and returns the element at view index i, removing it from
// the parent.
func (v *SubList[T]) RemoveAt(i uint64) T {
	val := v.parent.RemoveAt(v.index("SubList.RemoveAt", i))
	v.to--
	return val
}

// Fill sets every element of the view range [from, to) to val.
func (v *SubList[T]) Fill(from, to uint64, val T) {
	v.revalidate("SubList.Fill")
	if from > to || to > v.to-v.from {
		panic(&store.ArgumentError{Op: "SubList.Fill", Reason: "range outside view"})
	}
	v.parent.Fill(v.from+from, v.from+to, val)
}

// SubList returns a narrower view sharing the same parent.
func (v *SubList[T]) SubList(from, to uint64) *SubList[T] {
	v.revalidate("SubList.SubList")
	if from > to || to > v.to-v.from {
		panic(&store.ArgumentError{Op: "SubList.SubList", Reason: "range outside view"})
	}
	return &SubList[T]{parent: v.parent, from: v.from + from, to: v.from + to}
}
