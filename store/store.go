// Package store implements a segmented array store: a logically contiguous
// sequence addressed by a 64-bit index and backed by fixed-capacity segments.
//
// Native Go slices are indexed by int and held in one contiguous allocation.
// The store splits the logical index space into power-of-two segments so that
// sequences larger than a single allocation (and larger than 2^31 elements on
// 32-bit platforms) stay addressable with two array dereferences and bit
// arithmetic:
//
//	segment = i >> shift
//	offset  = i & mask
//
// Segments are allocated contiguously and exclusively owned by the store;
// callers must never retain references to individual segments across
// structural operations. The store is unsynchronized: concurrent use requires
// an external lock (see the biglist package for a synchronized wrapper).
package store

import "iter"

const (
	// DefaultSegmentBits yields segments of 65536 elements.
	DefaultSegmentBits = 16

	// MinSegmentBits and MaxSegmentBits bound the configurable segment size.
	// Small values exist for tests; large values are capped so a single
	// segment stays a reasonable allocation.
	MinSegmentBits = 1
	MaxSegmentBits = 30

	// MinCapacityIncrement is the smallest growth step applied by the
	// amortization policy, so repeated tiny appends do not reallocate the
	// segment table over and over.
	MinCapacityIncrement = 10

	// MaxCapacity is the largest addressable logical capacity.
	MaxCapacity = uint64(1) << 62

	defaultGrowthNumerator   = 3
	defaultGrowthDenominator = 2
)

// Options configures a Store.
type Options struct {
	// SegmentBits is the log2 of the segment size. Defaults to
	// DefaultSegmentBits. Tests use small values (e.g. 2 for segments of 4).
	SegmentBits int

	// GrowthNumerator / GrowthDenominator define the amortized growth
	// factor applied when capacity is extended without an explicit hint.
	// The default 3/2 grows by 50%. This is a tuning policy, not a
	// correctness requirement; consumers that depend on exact amortization
	// can pin it.
	GrowthNumerator   uint64
	GrowthDenominator uint64
}

// Stats tracks structural changes to the backing storage. Useful in tests as
// a reallocation probe.
type Stats struct {
	Grows             uint64 // segment table reallocations that added capacity
	Shrinks           uint64 // segment table reallocations that dropped capacity
	SegmentsAllocated uint64 // cumulative segment allocations
}

// Store is a segmented array of T addressed by a 64-bit logical index.
//
// The zero value is not usable; call New.
type Store[T any] struct {
	segments [][]T
	length   uint64 // number of valid logical elements
	capacity uint64 // len(segments) << shift
	shift    uint
	mask     uint64
	segSize  uint64

	growthNum uint64
	growthDen uint64

	stats Stats
}

// New creates an empty Store.
//
// It panics with an *ArgumentError if the options are out of range;
// construction-time detection is preferred over deferred failure.
func New[T any](optFns ...func(*Options)) *Store[T] {
	opts := Options{
		SegmentBits:       DefaultSegmentBits,
		GrowthNumerator:   defaultGrowthNumerator,
		GrowthDenominator: defaultGrowthDenominator,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.SegmentBits < MinSegmentBits || opts.SegmentBits > MaxSegmentBits {
		panic(&ArgumentError{Op: "New", Reason: "SegmentBits out of range"})
	}
	if opts.GrowthDenominator == 0 || opts.GrowthNumerator <= opts.GrowthDenominator {
		panic(&ArgumentError{Op: "New", Reason: "growth factor must be greater than 1"})
	}

	shift := uint(opts.SegmentBits)
	return &Store[T]{
		shift:     shift,
		segSize:   uint64(1) << shift,
		mask:      (uint64(1) << shift) - 1,
		growthNum: opts.GrowthNumerator,
		growthDen: opts.GrowthDenominator,
	}
}

// WithSegmentBits sets the log2 of the segment size.
func WithSegmentBits(bits int) func(*Options) {
	return func(o *Options) {
		o.SegmentBits = bits
	}
}

// WithGrowthFactor sets the amortized growth factor as a fraction.
func WithGrowthFactor(numerator, denominator uint64) func(*Options) {
	return func(o *Options) {
		o.GrowthNumerator = numerator
		o.GrowthDenominator = denominator
	}
}

// Len returns the number of valid logical elements.
func (s *Store[T]) Len() uint64 { return s.length }

// Cap returns the number of addressable logical slots without reallocation.
func (s *Store[T]) Cap() uint64 { return s.capacity }

// Segments returns the current number of backing segments.
func (s *Store[T]) Segments() int { return len(s.segments) }

// SegmentSize returns the fixed capacity of each segment.
func (s *Store[T]) SegmentSize() uint64 { return s.segSize }

// Stats returns a snapshot of the structural-change counters.
func (s *Store[T]) Stats() Stats { return s.stats }

// Get returns the element at logical index i.
// It panics with an *IndexError if i >= Len().
func (s *Store[T]) Get(i uint64) T {
	if i >= s.length {
		panic(&IndexError{Op: "Get", Index: i, Length: s.length})
	}
	return s.segments[i>>s.shift][i&s.mask]
}

// Set overwrites the element at logical index i. No reallocation occurs.
// It panics with an *IndexError if i >= Len().
func (s *Store[T]) Set(i uint64, v T) {
	if i >= s.length {
		panic(&IndexError{Op: "Set", Index: i, Length: s.length})
	}
	s.segments[i>>s.shift][i&s.mask] = v
}

// Append adds v at logical index Len(), growing capacity per the amortization
// policy when needed.
func (s *Store[T]) Append(v T) {
	if s.length == s.capacity {
		s.mustGrow(s.length + 1)
	}
	s.segments[s.length>>s.shift][s.length&s.mask] = v
	s.length++
}

// AppendSlice appends all elements of vs in order.
func (s *Store[T]) AppendSlice(vs []T) {
	if len(vs) == 0 {
		return
	}
	s.mustGrow(s.length + uint64(len(vs)))
	for len(vs) > 0 {
		seg := s.segments[s.length>>s.shift]
		off := s.length & s.mask
		n := copy(seg[off:], vs)
		vs = vs[n:]
		s.length += uint64(n)
	}
}

// EnsureCapacity grows the backing storage so that minCapacity logical slots
// are addressable without further reallocation. Existing elements keep their
// logical indices. A request beyond MaxCapacity returns a *CapacityError.
func (s *Store[T]) EnsureCapacity(minCapacity uint64) error {
	return s.reserve(minCapacity)
}

// Resize sets the logical length to n. Growing exposes zero-valued slots;
// shrinking behaves like Truncate.
func (s *Store[T]) Resize(n uint64) {
	if n <= s.length {
		s.Truncate(n)
		return
	}
	s.mustGrow(n)
	s.length = n
}

// Truncate shrinks the logical length to n, zeroing the vacated slots so the
// store does not pin references held by element values.
// It panics with an *IndexError if n > Len().
func (s *Store[T]) Truncate(n uint64) {
	if n > s.length {
		panic(&IndexError{Op: "Truncate", Index: n, Length: s.length})
	}
	s.clearRange(n, s.length)
	s.length = n
}

// Clear removes all elements. Backing storage is retained; use Trim to
// release it.
func (s *Store[T]) Clear() { s.Truncate(0) }

// Fill sets every logical slot in [from, to) to v.
func (s *Store[T]) Fill(from, to uint64, v T) {
	s.checkRange("Fill", from, to)
	for i := from; i < to; {
		seg := s.segments[i>>s.shift]
		off := i & s.mask
		end := off + (to - i)
		if end > s.segSize {
			end = s.segSize
		}
		sub := seg[off:end]
		for j := range sub {
			sub[j] = v
		}
		i += end - off
	}
}

// Copy copies n elements starting at srcIndex into dst starting at dstIndex.
// Both ranges must lie within the respective logical lengths.
//
// When dst is the same store and the ranges overlap, the copy direction is
// chosen so the result matches an element-by-element copy into a scratch
// buffer (memmove semantics). Whole segments are copied with the native bulk
// copy wherever offsets allow.
func (s *Store[T]) Copy(srcIndex uint64, dst *Store[T], dstIndex, n uint64) {
	if srcIndex+n < srcIndex || srcIndex+n > s.length {
		panic(&IndexError{Op: "Copy", Index: srcIndex + n, Length: s.length})
	}
	if dstIndex+n < dstIndex || dstIndex+n > dst.length {
		panic(&IndexError{Op: "Copy", Index: dstIndex + n, Length: dst.length})
	}
	if n == 0 {
		return
	}
	if dst == s && dstIndex > srcIndex && dstIndex < srcIndex+n {
		s.copyBackward(srcIndex, dstIndex, n)
		return
	}
	copyForward(s, srcIndex, dst, dstIndex, n)
}

func copyForward[T any](src *Store[T], srcIndex uint64, dst *Store[T], dstIndex, n uint64) {
	for n > 0 {
		ss := src.segments[srcIndex>>src.shift][srcIndex&src.mask:]
		ds := dst.segments[dstIndex>>dst.shift][dstIndex&dst.mask:]
		c := uint64(len(ss))
		if uint64(len(ds)) < c {
			c = uint64(len(ds))
		}
		if n < c {
			c = n
		}
		copy(ds[:c], ss[:c])
		srcIndex += c
		dstIndex += c
		n -= c
	}
}

func (s *Store[T]) copyBackward(srcIndex, dstIndex, n uint64) {
	srcEnd := srcIndex + n
	dstEnd := dstIndex + n
	for n > 0 {
		// Number of elements available at the tail of each segment.
		srcAvail := ((srcEnd - 1) & s.mask) + 1
		dstAvail := ((dstEnd - 1) & s.mask) + 1
		c := srcAvail
		if dstAvail < c {
			c = dstAvail
		}
		if n < c {
			c = n
		}
		srcSeg := s.segments[(srcEnd-1)>>s.shift]
		dstSeg := s.segments[(dstEnd-1)>>s.shift]
		copy(dstSeg[dstAvail-c:dstAvail], srcSeg[srcAvail-c:srcAvail])
		srcEnd -= c
		dstEnd -= c
		n -= c
	}
}

// Trim shrinks the backing storage to the smallest segment count covering
// max(targetCapacity, Len()). Elements within the current logical length are
// never discarded.
func (s *Store[T]) Trim(targetCapacity uint64) {
	keep := targetCapacity
	if s.length > keep {
		keep = s.length
	}
	need := s.segmentsFor(keep)
	if need >= len(s.segments) {
		return
	}
	segs := make([][]T, need)
	copy(segs, s.segments)
	s.segments = segs
	s.capacity = uint64(need) << s.shift
	s.stats.Shrinks++
}

// NearestAlignedSplit returns the segment boundary nearest to candidate,
// clamped to [low, high]. If no boundary lies in the range, candidate is
// returned unchanged. Parallel decomposition uses this to align split points
// with segment boundaries, so workers do not share segments.
//
// It panics with an *ArgumentError unless low <= candidate <= high.
func (s *Store[T]) NearestAlignedSplit(candidate, low, high uint64) uint64 {
	if low > high || candidate < low || candidate > high {
		panic(&ArgumentError{Op: "NearestAlignedSplit", Reason: "candidate outside [low, high]"})
	}
	lower := candidate &^ s.mask
	upper := lower + s.segSize
	lowerOK := lower >= low
	upperOK := upper <= high
	switch {
	case lowerOK && upperOK:
		dLower, dUpper := candidate-lower, upper-candidate
		if dLower < dUpper {
			return lower
		}
		if dUpper < dLower {
			return upper
		}
		// Equidistant: prefer the boundary strictly inside (low, high) so a
		// split exists whenever one does.
		if lower == low && upper < high {
			return upper
		}
		return lower
	case lowerOK:
		return lower
	case upperOK:
		return upper
	default:
		return candidate
	}
}

// Slices yields the contiguous element runs covering [from, to) in logical
// order. The yielded slices alias the backing segments: they are valid only
// until the next structural operation, and writing through them writes the
// store.
func (s *Store[T]) Slices(from, to uint64) iter.Seq[[]T] {
	s.checkRange("Slices", from, to)
	return func(yield func([]T) bool) {
		for i := from; i < to; {
			seg := s.segments[i>>s.shift]
			off := i & s.mask
			end := off + (to - i)
			if end > s.segSize {
				end = s.segSize
			}
			if !yield(seg[off:end]) {
				return
			}
			i += end - off
		}
	}
}

// BinarySearch locates target position in the sorted range [from, to) using
// cmp, which must return a negative value if the probed element orders before
// the target, zero on a match, and a positive value otherwise. It returns the
// smallest index at which the target could be inserted and whether an exact
// match was found there.
func (s *Store[T]) BinarySearch(from, to uint64, cmp func(T) int) (uint64, bool) {
	s.checkRange("BinarySearch", from, to)
	lo, hi := from, to
	for lo < hi {
		mid := lo + (hi-lo)/2
		if cmp(s.segments[mid>>s.shift][mid&s.mask]) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < to && cmp(s.segments[lo>>s.shift][lo&s.mask]) == 0 {
		return lo, true
	}
	return lo, false
}

func (s *Store[T]) checkRange(op string, from, to uint64) {
	if from > to {
		panic(&ArgumentError{Op: op, Reason: "inverted range"})
	}
	if to > s.length {
		panic(&IndexError{Op: op, Index: to, Length: s.length})
	}
}

func (s *Store[T]) clearRange(from, to uint64) {
	for i := from; i < to; {
		seg := s.segments[i>>s.shift]
		off := i & s.mask
		end := off + (to - i)
		if end > s.segSize {
			end = s.segSize
		}
		clear(seg[off:end])
		i += end - off
	}
}

func (s *Store[T]) segmentsFor(capacity uint64) int {
	return int((capacity + s.segSize - 1) >> s.shift)
}

// mustGrow applies the amortized growth policy. Capacity overflow beyond
// MaxCapacity is a fatal configuration error and panics at the call site.
func (s *Store[T]) mustGrow(minCapacity uint64) {
	if minCapacity <= s.capacity {
		return
	}
	if minCapacity > MaxCapacity {
		panic(&CapacityError{Requested: minCapacity, Max: MaxCapacity})
	}
	// capacity/den*num instead of capacity*num/den to avoid overflow near
	// the top of the range; the rounding difference is irrelevant.
	target := s.capacity / s.growthDen * s.growthNum
	if floor := s.capacity + MinCapacityIncrement; target < floor {
		target = floor
	}
	if target < minCapacity {
		target = minCapacity
	}
	if target > MaxCapacity {
		target = MaxCapacity
	}
	if err := s.reserve(target); err != nil {
		panic(err)
	}
}

func (s *Store[T]) reserve(capacity uint64) error {
	if capacity > MaxCapacity {
		return &CapacityError{Requested: capacity, Max: MaxCapacity}
	}
	need := s.segmentsFor(capacity)
	if need <= len(s.segments) {
		return nil
	}
	segs := make([][]T, need)
	copy(segs, s.segments)
	for i := len(s.segments); i < need; i++ {
		segs[i] = make([]T, s.segSize)
		s.stats.SegmentsAllocated++
	}
	s.segments = segs
	s.capacity = uint64(need) << s.shift
	s.stats.Grows++
	return nil
}
