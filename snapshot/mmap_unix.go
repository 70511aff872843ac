//go:build !windows

package snapshot

import (
	"os"

	"golang.org/x/sys/unix"
)

const mmapSupported = true

func mapFile(f *os.File, size int) ([]byte, error) {
	return unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
}

func unmapFile(data []byte) error {
	return unix.Munmap(data)
}
