package snapshot

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"os"

	"github.com/hupe1980/bigarray/store"
)

// WriteFile writes a snapshot to path atomically: the bytes land in a
// temporary file that is fsynced and renamed into place, so a crash never
// leaves a truncated snapshot under the final name.
func WriteFile[T Scalar](path string, s *store.Store[T], optFns ...func(*Options)) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := Write(f, s, optFns...); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// ReadFile reads a snapshot from path. Uncompressed snapshots are loaded
// through a read-only memory mapping where the platform supports it,
// avoiding the streaming copy; everything else falls back to Read.
func ReadFile[T Scalar](path string, optFns ...func(*store.Options)) (*store.Store[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if mmapSupported {
		if s, ok, err := readMapped[T](f, optFns...); ok {
			return s, err
		}
	}
	return Read[T](f, optFns...)
}

// readMapped loads an uncompressed snapshot via mmap. ok is false when the
// snapshot needs the streaming path (compression, empty file, map failure);
// in that case the file offset is untouched.
func readMapped[T Scalar](f *os.File, optFns ...func(*store.Options)) (*store.Store[T], bool, error) {
	st, err := f.Stat()
	if err != nil || st.Size() < headerSize {
		return nil, false, nil
	}
	data, err := mapFile(f, int(st.Size()))
	if err != nil {
		return nil, false, nil
	}
	defer unmapFile(data) //nolint:errcheck // read-only mapping

	var hdr Header
	if _, err := binary.Decode(data[:headerSize], binary.LittleEndian, &hdr); err != nil {
		return nil, false, nil
	}
	if hdr.Magic != MagicNumber {
		return nil, true, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, hdr.Magic)
	}
	if hdr.compressionName() != None.Name() {
		return nil, false, nil
	}
	if hdr.Version != Version {
		return nil, true, fmt.Errorf("%w: got 0x%08x", ErrUnsupportedVersion, hdr.Version)
	}
	kind, width := elementKind[T]()
	if hdr.Kind != kind || hdr.Width != width {
		return nil, true, fmt.Errorf("%w: stored kind=%d width=%d, requested kind=%d width=%d",
			ErrElementMismatch, hdr.Kind, hdr.Width, kind, width)
	}

	// Bound the count against the mapped size before touching the payload;
	// Count*width is computed only after the division-based check so a
	// corrupted count cannot wrap the arithmetic.
	if uint64(len(data)) < headerSize+4 {
		return nil, true, fmt.Errorf("%w: no room for checksum", ErrTruncated)
	}
	if avail := (uint64(len(data)) - headerSize - 4) / uint64(width); hdr.Count > avail {
		return nil, true, fmt.Errorf("%w: header count %d exceeds file payload", ErrTruncated, hdr.Count)
	}
	size := hdr.Count * uint64(width)
	elems := data[headerSize : headerSize+size]
	want := binary.LittleEndian.Uint32(data[headerSize+size:])
	if got := crc32.ChecksumIEEE(elems); got != want {
		return nil, true, fmt.Errorf("%w: stored 0x%08x, computed 0x%08x", ErrChecksum, want, got)
	}

	s := store.New[T](optFns...)
	if err := s.EnsureCapacity(hdr.Count); err != nil {
		return nil, true, err
	}
	s.Resize(hdr.Count)
	for run := range s.Slices(0, hdr.Count) {
		b := rawBytes(run)
		copy(b, elems[:len(b)])
		elems = elems[len(b):]
	}
	return s, true, nil
}
