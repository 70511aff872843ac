// Package snapshot serializes segmented array stores as a sequential dump of
// logical elements in index order.
//
// Segment boundaries are an internal detail of the store and never leak into
// the format: a snapshot written by a store with one segment size loads into
// a store with any other. The element stream is framed by a fixed header
// (magic, version, element kind and width, compression codec, element count)
// and followed by a CRC32 of the uncompressed element bytes.
package snapshot

import "errors"

const (
	// MagicNumber identifies bigarray snapshot files (ASCII: "BGAR").
	MagicNumber = 0x42474152
	// Version is the current snapshot format version.
	Version = 0x00010000

	headerSize = 32
)

var (
	// ErrInvalidMagic is returned when the stream does not start with a
	// snapshot header.
	ErrInvalidMagic = errors.New("snapshot: invalid magic number")
	// ErrUnsupportedVersion is returned for headers written by an
	// incompatible format version.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	// ErrElementMismatch is returned when the stored element kind or width
	// does not match the requested element type.
	ErrElementMismatch = errors.New("snapshot: element type mismatch")
	// ErrUnknownCompression is returned when the header names a codec this
	// build does not provide.
	ErrUnknownCompression = errors.New("snapshot: unknown compression codec")
	// ErrChecksum is returned when the element stream fails CRC
	// verification.
	ErrChecksum = errors.New("snapshot: checksum mismatch")
	// ErrTruncated is returned when the element stream ends before the
	// count recorded in the header is satisfied. A corrupted count field
	// surfaces this way: the count is untrusted until the whole stream has
	// been read and checksummed.
	ErrTruncated = errors.New("snapshot: truncated element stream")
)

// Header is the fixed 32-byte header at the start of every snapshot.
type Header struct {
	Magic       uint32
	Version     uint32
	Kind        uint8   // reflect.Kind of the element type
	Width       uint8   // element size in bytes
	Compression [8]byte // NUL-padded codec name, resolvable via ByName
	Reserved    [6]byte
	Count       uint64 // number of logical elements
}

func (h *Header) compressionName() string {
	b := h.Compression[:]
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
