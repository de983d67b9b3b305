package mmslab

import (
	"reflect"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"github.com/webbmaffian/go-slab/internal/arena"
	"github.com/webbmaffian/go-slab/internal/utils"
)

// "SLAB" in little endian.
const magic = 0x42414c53

func newHeader[T any, S utils.Unsigned](capacity int) *header[S] {
	var slot S
	var node arena.Node[T, S]

	h := &header[S]{
		magic:     magic,
		nodeSize:  uint32(unsafe.Sizeof(node)),
		nodeAlign: uint32(unsafe.Alignof(node)),
		slotSize:  uint32(unsafe.Sizeof(slot)),
		typeHash:  xxhash.Sum64String(reflect.TypeFor[T]().String()),
	}
	h.headSize = uint32(unsafe.Sizeof(*h))
	h.list.Capacity = S(capacity)

	return h
}

type header[S utils.Unsigned] struct {
	magic     uint32
	headSize  uint32
	nodeSize  uint32
	nodeAlign uint32
	slotSize  uint32
	typeHash  uint64
	list      arena.Header[S]
}

func (h *header[S]) nodesOffset() int {
	return int(utils.Align(uintptr(h.headSize), uintptr(h.nodeAlign)))
}

func (h *header[S]) capacity() int {
	return int(h.list.Capacity)
}

func (h *header[S]) fileSize() int {
	return h.nodesOffset() + int(h.nodeSize)*h.capacity()
}

// Compares the fixed layout fields with the expected ones.
func (h *header[S]) matches(expected *header[S]) bool {
	return h.magic == expected.magic &&
		h.headSize == expected.headSize &&
		h.nodeSize == expected.nodeSize &&
		h.nodeAlign == expected.nodeAlign &&
		h.slotSize == expected.slotSize &&
		h.typeHash == expected.typeHash
}
