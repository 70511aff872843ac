package snapshot

import (
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression wraps the element stream of a snapshot. The codec is recorded
// by name in the header so snapshots are self-describing.
type Compression interface {
	// Name is the stable identifier stored in the header.
	Name() string
	// NewWriter wraps w. The returned writer must be closed to flush.
	NewWriter(w io.Writer) (io.WriteCloser, error)
	// NewReader wraps r.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// Built-in codecs.
var (
	None Compression = nopCompression{}
	Zstd Compression = zstdCompression{}
	LZ4  Compression = lz4Compression{}
)

// ByName returns a built-in codec by its stable name, for resolving the
// codec recorded in a snapshot header.
func ByName(name string) (Compression, bool) {
	switch name {
	case "none":
		return None, true
	case "zstd":
		return Zstd, true
	case "lz4":
		return LZ4, true
	default:
		return nil, false
	}
}

type nopCompression struct{}

func (nopCompression) Name() string { return "none" }

func (nopCompression) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

func (nopCompression) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

type zstdCompression struct{}

func (zstdCompression) Name() string { return "zstd" }

func (zstdCompression) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func (zstdCompression) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}

type lz4Compression struct{}

func (lz4Compression) Name() string { return "lz4" }

func (lz4Compression) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return lz4.NewWriter(w), nil
}

func (lz4Compression) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
