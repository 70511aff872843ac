package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// small segments (size 4) keep segment-boundary crossings cheap to exercise.
func newSmall(t *testing.T) *Store[int64] {
	t.Helper()
	return New[int64](WithSegmentBits(2))
}

func appendRange(s *Store[int64], n int64) {
	for i := int64(0); i < n; i++ {
		s.Append(i)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := newSmall(t)
	appendRange(s, 10)

	for i := uint64(0); i < 10; i++ {
		s.Set(i, int64(i)*7)
		assert.Equal(t, int64(i)*7, s.Get(i))
	}
}

func TestAppendAcrossSegments(t *testing.T) {
	s := newSmall(t)
	appendRange(s, 10)

	// Segment size 4: 10 elements span 3 segments [0..3], [4..7], [8,9].
	assert.Equal(t, uint64(10), s.Len())
	assert.Equal(t, 3, s.Segments())
	assert.Equal(t, int64(9), s.Get(9))

	for i := uint64(0); i < 10; i++ {
		assert.Equal(t, int64(i), s.Get(i))
	}
}

func TestRoundTripSpansManySegments(t *testing.T) {
	s := newSmall(t)
	n := 5 * int64(s.SegmentSize()) // > 3x segment size
	appendRange(s, n)

	for i := uint64(0); i < uint64(n); i++ {
		require.Equal(t, int64(i), s.Get(i))
	}
}

func TestGetOutOfRangePanics(t *testing.T) {
	s := newSmall(t)
	appendRange(s, 3)

	assert.PanicsWithError(t, "store: Get index 3 out of range [0, 3)", func() {
		s.Get(3)
	})
	assert.Panics(t, func() { s.Set(100, 1) })
}

func TestEnsureCapacityNoFurtherReallocation(t *testing.T) {
	s := newSmall(t)
	require.NoError(t, s.EnsureCapacity(100))

	grows := s.Stats().Grows
	capBefore := s.Cap()

	s.Resize(100)
	for i := uint64(0); i < 100; i++ {
		s.Set(i, int64(i))
	}
	for i := uint64(0); i < 100; i++ {
		require.Equal(t, int64(i), s.Get(i))
	}

	assert.Equal(t, grows, s.Stats().Grows, "no reallocation expected below the ensured capacity")
	assert.Equal(t, capBefore, s.Cap())
}

func TestEnsureCapacityOverflow(t *testing.T) {
	s := newSmall(t)
	err := s.EnsureCapacity(MaxCapacity + 1)

	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, MaxCapacity+1, ce.Requested)
}

func TestGrowthPolicy(t *testing.T) {
	s := newSmall(t)

	// First append grows to at least the minimum increment.
	s.Append(0)
	assert.GreaterOrEqual(t, s.Cap(), uint64(MinCapacityIncrement))

	// Appending within capacity must not grow.
	grows := s.Stats().Grows
	for s.Len() < s.Cap() {
		s.Append(1)
	}
	assert.Equal(t, grows, s.Stats().Grows)

	// Exceeding capacity grows by at least 50%.
	before := s.Cap()
	s.Append(2)
	assert.GreaterOrEqual(t, s.Cap(), before+before/2)
}

func TestFill(t *testing.T) {
	s := newSmall(t)
	appendRange(s, 10)

	s.Fill(2, 7, 99)

	want := []int64{0, 1, 99, 99, 99, 99, 99, 7, 8, 9}
	for i, w := range want {
		assert.Equal(t, w, s.Get(uint64(i)), "index %d", i)
	}
}

func TestFillEmptyRange(t *testing.T) {
	s := newSmall(t)
	appendRange(s, 4)

	s.Fill(2, 2, 99)
	assert.Equal(t, int64(2), s.Get(2))
}

func TestFillBadRangePanics(t *testing.T) {
	s := newSmall(t)
	appendRange(s, 4)

	assert.Panics(t, func() { s.Fill(3, 2, 0) })
	assert.Panics(t, func() { s.Fill(0, 5, 0) })
}

func TestCopyOverlappingForward(t *testing.T) {
	s := newSmall(t)
	appendRange(s, 10)

	// copy(src=2, dst=0, n=5) over an overlapping range.
	s.Copy(2, s, 0, 5)

	want := []int64{2, 3, 4, 5, 6, 5, 6, 7, 8, 9}
	got := make([]int64, 10)
	for i := range got {
		got[i] = s.Get(uint64(i))
	}
	assert.Equal(t, want, got)
}

func TestCopyOverlappingBackward(t *testing.T) {
	s := newSmall(t)
	appendRange(s, 10)

	// Destination ahead of source: must copy right-to-left.
	s.Copy(0, s, 2, 5)

	want := []int64{0, 1, 0, 1, 2, 3, 4, 7, 8, 9}
	got := make([]int64, 10)
	for i := range got {
		got[i] = s.Get(uint64(i))
	}
	assert.Equal(t, want, got)
}

func TestCopyMatchesReferenceOnRandomOverlaps(t *testing.T) {
	const n = 23 // not a segment multiple on purpose
	for src := uint64(0); src < n; src++ {
		for dst := uint64(0); dst < n; dst++ {
			maxLen := n - src
			if n-dst < maxLen {
				maxLen = n - dst
			}
			for length := uint64(0); length <= maxLen; length++ {
				s := New[int64](WithSegmentBits(2))
				ref := make([]int64, n)
				for i := int64(0); i < n; i++ {
					s.Append(i)
					ref[i] = i
				}

				s.Copy(src, s, dst, length)
				copy(ref[dst:dst+length], append([]int64(nil), ref[src:src+length]...))

				for i := uint64(0); i < n; i++ {
					require.Equal(t, ref[i], s.Get(i), "src=%d dst=%d len=%d i=%d", src, dst, length, i)
				}
			}
		}
	}
}

func TestCopyBetweenStores(t *testing.T) {
	src := New[int64](WithSegmentBits(2))
	dst := New[int64](WithSegmentBits(3)) // different segment size on purpose
	appendRange(src, 20)
	dst.Resize(20)

	src.Copy(3, dst, 5, 12)

	for i := uint64(0); i < 12; i++ {
		assert.Equal(t, int64(3+i), dst.Get(5+i))
	}
	assert.Equal(t, int64(0), dst.Get(0))
	assert.Equal(t, int64(0), dst.Get(17))
}

func TestCopyOutOfRangePanics(t *testing.T) {
	s := newSmall(t)
	appendRange(s, 5)

	assert.Panics(t, func() { s.Copy(2, s, 0, 4) })
	assert.Panics(t, func() { s.Copy(0, s, 2, 4) })
}

func TestTrimRetentionAndReappend(t *testing.T) {
	s := newSmall(t)
	appendRange(s, 40)

	s.Truncate(0)
	s.Trim(0)
	assert.Equal(t, uint64(0), s.Cap())
	assert.Equal(t, 0, s.Segments())

	// Reserve the original size again, then appends must not reallocate.
	require.NoError(t, s.EnsureCapacity(40))
	grows := s.Stats().Grows
	appendRange(s, 40)
	assert.Equal(t, grows, s.Stats().Grows)
}

func TestTrimNeverDropsLiveElements(t *testing.T) {
	s := newSmall(t)
	appendRange(s, 10)
	require.NoError(t, s.EnsureCapacity(100))

	s.Trim(0)

	assert.Equal(t, uint64(10), s.Len())
	assert.Equal(t, 3, s.Segments()) // smallest count covering 10 elements of 4
	for i := uint64(0); i < 10; i++ {
		assert.Equal(t, int64(i), s.Get(i))
	}
}

func TestTruncateZeroesVacatedSlots(t *testing.T) {
	s := New[*int](WithSegmentBits(2))
	v := 7
	s.Append(&v)
	s.Truncate(0)

	s.Resize(1)
	assert.Nil(t, s.Get(0))
}

func TestNearestAlignedSplit(t *testing.T) {
	s := newSmall(t) // boundaries at multiples of 4

	// Result is always within [low, high].
	for low := uint64(0); low < 20; low++ {
		for high := low; high < 20; high++ {
			for cand := low; cand <= high; cand++ {
				got := s.NearestAlignedSplit(cand, low, high)
				require.GreaterOrEqual(t, got, low)
				require.LessOrEqual(t, got, high)
			}
		}
	}

	// Nearest boundary wins.
	assert.Equal(t, uint64(4), s.NearestAlignedSplit(5, 0, 20))
	assert.Equal(t, uint64(8), s.NearestAlignedSplit(7, 0, 20))
	assert.Equal(t, uint64(8), s.NearestAlignedSplit(8, 0, 20))

	// Equidistant boundaries: the strictly interior one wins over an
	// endpoint, the lower one otherwise.
	assert.Equal(t, uint64(4), s.NearestAlignedSplit(2, 0, 5))
	assert.Equal(t, uint64(4), s.NearestAlignedSplit(6, 1, 11))
	assert.Equal(t, uint64(0), s.NearestAlignedSplit(2, 0, 4))

	// A boundary strictly inside a multi-segment range yields a strictly
	// interior split for a midpoint candidate.
	low, high := uint64(1), uint64(11)
	got := s.NearestAlignedSplit((low+high)/2, low, high)
	assert.Greater(t, got, low)
	assert.Less(t, got, high)
	assert.Zero(t, got%4)

	// No boundary in range: candidate comes back unchanged.
	assert.Equal(t, uint64(6), s.NearestAlignedSplit(6, 5, 7))

	assert.Panics(t, func() { s.NearestAlignedSplit(1, 2, 3) })
}

func TestBinarySearch(t *testing.T) {
	s := newSmall(t)
	for i := int64(0); i < 30; i++ {
		s.Append(i * 2) // 0, 2, 4, ...
	}

	idx, found := s.BinarySearch(0, s.Len(), func(v int64) int { return int(v - 14) })
	assert.True(t, found)
	assert.Equal(t, uint64(7), idx)

	idx, found = s.BinarySearch(0, s.Len(), func(v int64) int { return int(v - 13) })
	assert.False(t, found)
	assert.Equal(t, uint64(7), idx) // insertion point

	_, found = s.BinarySearch(0, 5, func(v int64) int { return int(v - 20) })
	assert.False(t, found)
}

func TestSlices(t *testing.T) {
	s := newSmall(t)
	appendRange(s, 10)

	var runs [][]int64
	for run := range s.Slices(2, 9) {
		runs = append(runs, append([]int64(nil), run...))
	}

	assert.Equal(t, [][]int64{{2, 3}, {4, 5, 6, 7}, {8}}, runs)
}

func TestAppendSlice(t *testing.T) {
	s := newSmall(t)
	s.AppendSlice([]int64{0, 1, 2})
	s.AppendSlice([]int64{3, 4, 5, 6, 7, 8, 9})

	assert.Equal(t, uint64(10), s.Len())
	for i := uint64(0); i < 10; i++ {
		assert.Equal(t, int64(i), s.Get(i))
	}
}

func TestInvalidOptionsPanic(t *testing.T) {
	assert.Panics(t, func() { New[int](WithSegmentBits(0)) })
	assert.Panics(t, func() { New[int](WithSegmentBits(31)) })
	assert.Panics(t, func() { New[int](WithGrowthFactor(1, 1)) })
	assert.Panics(t, func() { New[int](WithGrowthFactor(1, 0)) })
}
