// Package bigarray provides 64-bit indexed, segment-backed collections for
// sequences too large for a single Go slice.
//
// A segmented array splits the logical index space into fixed-size
// power-of-two segments, so element access stays two array dereferences plus
// bit arithmetic while the total length is bounded only by memory:
//
//	arr, _ := bigarray.New[float64]()
//	_ = arr.Append(1, 2, 3)
//	v := arr.Get(1)
//
// The package layers are usable independently:
//
//   - store: the core segmented array store (get/set/copy/fill/trim/search)
//   - biglist: list semantics on top of the store: insert/remove, sublist
//     views, iterators, bulk selection, a synchronized wrapper
//   - snapshot: sequential binary persistence with optional compression
//   - blobstore: snapshot storage backends (memory, local disk, S3, MinIO)
//   - resource: shared memory budgeting across arrays
//
// BigArray ties these together with structured logging, metrics and
// persistence:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 30})
//	arr, _ := bigarray.New[int64](
//	    bigarray.WithResourceController(rc),
//	    bigarray.WithCompression(snapshot.Zstd),
//	)
//	_ = arr.SaveFile("data.bgar")
//
// # Concurrency
//
// BigArray and the underlying store are unsynchronized, single-writer by
// design. Wrap a list with biglist.Synchronized for shared access.
package bigarray
