package snapshot

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/hupe1980/bigarray/store"
)

// readChunkElems bounds how many slots Read grows per step, so storage is
// only committed for payload that actually arrived.
const readChunkElems = 1 << 16

// Options configures snapshot writing.
type Options struct {
	// Compression wraps the element stream. Defaults to None.
	Compression Compression
}

// WithCompression selects the codec used for the element stream.
func WithCompression(c Compression) func(*Options) {
	return func(o *Options) {
		if c == nil {
			c = None
		}
		o.Compression = c
	}
}

// Write dumps the logical elements of s to w in index order.
func Write[T Scalar](w io.Writer, s *store.Store[T], optFns ...func(*Options)) error {
	opts := Options{Compression: None}
	for _, fn := range optFns {
		fn(&opts)
	}

	kind, width := elementKind[T]()
	hdr := Header{
		Magic:   MagicNumber,
		Version: Version,
		Kind:    kind,
		Width:   width,
		Count:   s.Len(),
	}
	copy(hdr.Compression[:], opts.Compression.Name())

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("snapshot: write header: %w", err)
	}

	cw, err := opts.Compression.NewWriter(bw)
	if err != nil {
		return fmt.Errorf("snapshot: %s writer: %w", opts.Compression.Name(), err)
	}

	crc := crc32.NewIEEE()
	body := io.MultiWriter(cw, crc)
	for run := range s.Slices(0, s.Len()) {
		if _, err := body.Write(rawBytes(run)); err != nil {
			return fmt.Errorf("snapshot: write elements: %w", err)
		}
	}
	if err := binary.Write(cw, binary.LittleEndian, crc.Sum32()); err != nil {
		return fmt.Errorf("snapshot: write checksum: %w", err)
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("snapshot: close %s writer: %w", opts.Compression.Name(), err)
	}
	return bw.Flush()
}

// Read reconstructs a store from a snapshot stream. Store options (segment
// size, growth policy) apply to the reconstructed store and are independent
// of whatever store produced the snapshot.
func Read[T Scalar](r io.Reader, optFns ...func(*store.Options)) (*store.Store[T], error) {
	br := bufio.NewReader(r)

	var hdr Header
	if err := binary.Read(br, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("snapshot: read header: %w", err)
	}
	if hdr.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, hdr.Magic)
	}
	if hdr.Version != Version {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrUnsupportedVersion, hdr.Version)
	}
	kind, width := elementKind[T]()
	if hdr.Kind != kind || hdr.Width != width {
		return nil, fmt.Errorf("%w: stored kind=%d width=%d, requested kind=%d width=%d",
			ErrElementMismatch, hdr.Kind, hdr.Width, kind, width)
	}
	comp, ok := ByName(hdr.compressionName())
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, hdr.compressionName())
	}

	cr, err := comp.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %s reader: %w", comp.Name(), err)
	}
	defer cr.Close()

	// The count is untrusted until the checksum verifies, so storage is
	// grown chunk by chunk as payload arrives rather than preallocated from
	// the header. A corrupted count fails as a truncated stream.
	s := store.New[T](optFns...)
	crc := crc32.NewIEEE()
	for s.Len() < hdr.Count {
		n := hdr.Count - s.Len()
		if n > readChunkElems {
			n = readChunkElems
		}
		from := s.Len()
		if err := s.EnsureCapacity(from + n); err != nil {
			return nil, fmt.Errorf("%w: header count %d: %v", ErrTruncated, hdr.Count, err)
		}
		s.Resize(from + n)
		for run := range s.Slices(from, from+n) {
			b := rawBytes(run)
			if _, err := io.ReadFull(cr, b); err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
					return nil, fmt.Errorf("%w: stream ended before %d elements", ErrTruncated, hdr.Count)
				}
				return nil, fmt.Errorf("snapshot: read elements: %w", err)
			}
			crc.Write(b) //nolint:errcheck // hash.Hash never errors
		}
	}

	var want uint32
	if err := binary.Read(cr, binary.LittleEndian, &want); err != nil {
		return nil, fmt.Errorf("snapshot: read checksum: %w", err)
	}
	if want != crc.Sum32() {
		return nil, fmt.Errorf("%w: stored 0x%08x, computed 0x%08x", ErrChecksum, want, crc.Sum32())
	}
	return s, nil
}
