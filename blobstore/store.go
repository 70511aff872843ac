// Package blobstore abstracts where snapshots live: in memory for tests, on
// the local file system, or in S3-compatible object storage.
package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error satisfying errors.Is(err, ErrNotFound).
// The default maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

// BlobStore stores immutable named blobs.
//
// Put must be atomic with respect to Open: a concurrent Open observes either
// the previous blob or the complete new one, never a partial write.
type BlobStore interface {
	// Put writes a blob. size is the number of bytes r will produce, or -1
	// if unknown.
	Put(ctx context.Context, name string, r io.Reader, size int64) error

	// Open opens a blob for sequential reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Delete removes a blob. Deleting an absent blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all blobs with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
