package bigarray

import (
	"errors"
	"fmt"

	"github.com/hupe1980/bigarray/blobstore"
	"github.com/hupe1980/bigarray/snapshot"
	"github.com/hupe1980/bigarray/store"
)

var (
	// ErrMemoryLimit is returned when a growth would exceed the configured
	// resource controller's memory budget.
	ErrMemoryLimit = errors.New("memory limit exceeded")

	// ErrInvalidCapacity is returned for capacity requests beyond the
	// addressable range.
	ErrInvalidCapacity = errors.New("invalid capacity")

	// ErrSnapshotCorrupt unifies unreadable-snapshot conditions (bad magic,
	// version, element type, checksum).
	ErrSnapshotCorrupt = errors.New("snapshot corrupt")

	// ErrNotFound is returned when a named snapshot does not exist in the
	// blob store.
	ErrNotFound = errors.New("not found")
)

// translateError maps package-level errors onto the public error contract.
// The original error stays reachable via errors.Unwrap/Is/As.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, blobstore.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var ce *store.CapacityError
	if errors.As(err, &ce) {
		return fmt.Errorf("%w: %w", ErrInvalidCapacity, err)
	}

	for _, corrupt := range []error{
		snapshot.ErrInvalidMagic,
		snapshot.ErrUnsupportedVersion,
		snapshot.ErrElementMismatch,
		snapshot.ErrUnknownCompression,
		snapshot.ErrChecksum,
		snapshot.ErrTruncated,
	} {
		if errors.Is(err, corrupt) {
			return fmt.Errorf("%w: %w", ErrSnapshotCorrupt, err)
		}
	}

	return err
}
