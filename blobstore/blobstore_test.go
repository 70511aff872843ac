package blobstore

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]BlobStore {
	t.Helper()
	local, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return map[string]BlobStore{
		"memory": NewMemoryStore(),
		"local":  local,
	}
}

func TestPutOpenRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, bs := range stores(t) {
		t.Run(name, func(t *testing.T) {
			payload := []byte("snapshot bytes")
			require.NoError(t, bs.Put(ctx, "a/b.bgar", bytes.NewReader(payload), int64(len(payload))))

			rc, err := bs.Open(ctx, "a/b.bgar")
			require.NoError(t, err)
			defer rc.Close()

			got, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestOpenMissing(t *testing.T) {
	ctx := context.Background()
	for name, bs := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := bs.Open(ctx, "absent")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestPutOverwrites(t *testing.T) {
	ctx := context.Background()
	for name, bs := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, bs.Put(ctx, "k", bytes.NewReader([]byte("one")), 3))
			require.NoError(t, bs.Put(ctx, "k", bytes.NewReader([]byte("two")), 3))

			rc, err := bs.Open(ctx, "k")
			require.NoError(t, err)
			defer rc.Close()
			got, _ := io.ReadAll(rc)
			assert.Equal(t, []byte("two"), got)
		})
	}
}

func TestDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	for name, bs := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, bs.Put(ctx, "k", bytes.NewReader([]byte("x")), 1))
			require.NoError(t, bs.Delete(ctx, "k"))
			require.NoError(t, bs.Delete(ctx, "k"))

			_, err := bs.Open(ctx, "k")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	for name, bs := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, bs.Put(ctx, "snap/b", bytes.NewReader(nil), 0))
			require.NoError(t, bs.Put(ctx, "snap/a", bytes.NewReader(nil), 0))
			require.NoError(t, bs.Put(ctx, "other", bytes.NewReader(nil), 0))

			names, err := bs.List(ctx, "snap/")
			require.NoError(t, err)
			assert.Equal(t, []string{"snap/a", "snap/b"}, names)

			all, err := bs.List(ctx, "")
			require.NoError(t, err)
			assert.Len(t, all, 3)
		})
	}
}
