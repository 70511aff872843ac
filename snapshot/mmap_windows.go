//go:build windows

package snapshot

import (
	"errors"
	"os"
)

const mmapSupported = false

func mapFile(*os.File, int) ([]byte, error) {
	return nil, errors.New("snapshot: mmap not supported on this platform")
}

func unmapFile([]byte) error { return nil }
