package store

import "fmt"

// IndexError reports a logical index outside the valid range of a store.
//
// Index errors are programming errors: Get, Set, Fill and Copy panic with an
// *IndexError instead of clamping or returning it. This mirrors the behavior
// of native slice indexing.
type IndexError struct {
	Op     string // the operation that failed, e.g. "Get"
	Index  uint64 // the offending logical index
	Length uint64 // the logical length at the time of the call
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("store: %s index %d out of range [0, %d)", e.Op, e.Index, e.Length)
}

// ArgumentError reports a contract-violating argument combination, such as an
// inverted range or a copy length that exceeds either store.
//
// Like *IndexError, it is delivered by panic.
type ArgumentError struct {
	Op     string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("store: %s: %s", e.Op, e.Reason)
}

// CapacityError is returned when a requested capacity exceeds the addressable
// range of the store. Unlike index errors it is returned, not panicked,
// because it is reachable from configuration rather than only from caller
// bugs.
type CapacityError struct {
	Requested uint64
	Max       uint64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("store: requested capacity %d exceeds maximum %d", e.Requested, e.Max)
}
