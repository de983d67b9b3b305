package utils

import (
	"unsafe"
)

// Returns a byte view of the memory behind val. The view aliases val and must
// not outlive it.
func PointerToBytes[T any](val *T, length int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(val)), length)
}

func BytesToPointer[T any](b []byte) *T {
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

// Reinterprets b as a slice of n items of T. The caller guarantees that b is
// large enough and suitably aligned for T.
func BytesToSlice[T any](b []byte, n int) []T {
	if n == 0 {
		return nil
	}

	return unsafe.Slice(BytesToPointer[T](b), n)
}

// Rounds offset up to the next multiple of align, which must be a power of two.
func Align(offset, align uintptr) uintptr {
	return (offset + align - 1) &^ (align - 1)
}
