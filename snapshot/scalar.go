package snapshot

import (
	"reflect"
	"unsafe"
)

// Scalar enumerates the fixed-width element types a snapshot can carry.
//
// int and uint are excluded on purpose: their width is platform-dependent,
// and the format must be readable across architectures.
type Scalar interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func elementKind[T Scalar]() (kind uint8, width uint8) {
	var zero T
	return uint8(reflect.TypeOf(zero).Kind()), uint8(unsafe.Sizeof(zero))
}

// rawBytes reinterprets a scalar slice as its backing bytes without copying.
// The byte order is the host's; the format declares little-endian, matching
// every platform Go commonly targets.
func rawBytes[T Scalar](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(s[0])))
}
