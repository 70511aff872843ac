package biglist

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// RemoveSelected removes every element whose logical index is set in sel,
// compacting the survivors in one left-to-right pass. Indices in sel beyond
// the current size are ignored. It returns the number of removed elements.
//
// A roaring bitmap keeps arbitrarily large, sparse index selections cheap;
// removing k elements one RemoveAt at a time would shift the tail k times.
func (l *BigList[T]) RemoveSelected(sel *roaring64.Bitmap) uint64 {
	return l.compact(func(i uint64) bool { return !sel.Contains(i) })
}

// RetainSelected keeps only the elements whose logical index is set in sel
// and returns the number of removed elements.
func (l *BigList[T]) RetainSelected(sel *roaring64.Bitmap) uint64 {
	return l.compact(sel.Contains)
}

func (l *BigList[T]) compact(keep func(uint64) bool) uint64 {
	n := l.s.Len()
	w := uint64(0)
	for i := uint64(0); i < n; i++ {
		if !keep(i) {
			continue
		}
		if w != i {
			l.s.Set(w, l.s.Get(i))
		}
		w++
	}
	l.s.Truncate(w)
	return n - w
}
