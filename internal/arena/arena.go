// Package arena implements the linking core shared by the heap-backed and the
// memory-mapped slab: an active doubly-linked chain and a singly-linked free
// list threaded through one fixed array of nodes.
package arena

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/webbmaffian/go-slab/internal/utils"
)

// Arena operates on storage it does not own. The header and node array are
// provided by the caller, either from the Go heap or from a mapped file.
type Arena[T any, S utils.Unsigned] struct {
	head  *Header[S]
	nodes []Node[T, S]
}

// Wraps existing storage without touching it. Call Reset to initialize fresh
// storage.
func New[T any, S utils.Unsigned](head *Header[S], nodes []Node[T, S]) Arena[T, S] {
	return Arena[T, S]{
		head:  head,
		nodes: nodes,
	}
}

// Reset marks every node vacant and free-lists them in index order.
func (a *Arena[T, S]) Reset() {
	var zero T
	nul := utils.Max[S]()
	last := len(a.nodes) - 1

	for i := range a.nodes {
		n := &a.nodes[i]
		n.Value = zero
		n.State = Vacant
		n.Prev = nul

		if i == last {
			n.Next = nul
		} else {
			n.Next = S(i + 1)
		}
	}

	a.head.Head = nul
	a.head.Tail = nul
	a.head.Len = 0
	a.head.Capacity = S(len(a.nodes))

	if len(a.nodes) > 0 {
		a.head.FreeHead = 0
	} else {
		a.head.FreeHead = nul
	}
}

func (a *Arena[T, S]) Cap() int {
	return len(a.nodes)
}

func (a *Arena[T, S]) Len() int {
	return int(a.head.Len)
}

func (a *Arena[T, S]) Free() int {
	return a.Cap() - a.Len()
}

func (a *Arena[T, S]) IsEmpty() bool {
	return a.head.Len == 0
}

func (a *Arena[T, S]) IsFull() bool {
	return a.head.FreeHead == utils.Max[S]()
}

// Front returns the slot of the most recently pushed element.
func (a *Arena[T, S]) Front() (slot S, ok bool) {
	slot = a.head.Head
	return slot, slot != utils.Max[S]()
}

// Back returns the slot of the oldest element.
func (a *Arena[T, S]) Back() (slot S, ok bool) {
	slot = a.head.Tail
	return slot, slot != utils.Max[S]()
}

// Next returns the slot following an occupied slot towards the tail, or the
// sentinel at the end of the chain.
func (a *Arena[T, S]) Next(slot S) S {
	return a.nodes[slot].Next
}

// Prev returns the slot preceding an occupied slot towards the head, or the
// sentinel at the start of the chain.
func (a *Arena[T, S]) Prev(slot S) S {
	return a.nodes[slot].Prev
}

func (a *Arena[T, S]) Contains(slot S) bool {
	return uint64(slot) < uint64(len(a.nodes)) && a.nodes[slot].State == Occupied
}

func (a *Arena[T, S]) PushFront(val T) (slot S, err error) {
	nul := utils.Max[S]()
	slot = a.head.FreeHead

	if slot == nul {
		return slot, ErrCapacity
	}

	n := &a.nodes[slot]
	a.head.FreeHead = n.Next

	n.Value = val
	n.State = Occupied
	n.Prev = nul
	n.Next = a.head.Head

	if a.head.Head != nul {
		a.nodes[a.head.Head].Prev = slot
	} else {
		a.head.Tail = slot
	}

	a.head.Head = slot
	a.head.Len++
	return
}

func (a *Arena[T, S]) PopBack() (val T, err error) {
	slot := a.head.Tail

	if slot == utils.Max[S]() {
		err = ErrEmpty
		return
	}

	return a.unlink(slot), nil
}

func (a *Arena[T, S]) Remove(slot S) (val T, err error) {
	if checked && !a.Contains(slot) {
		err = ErrInvalidSlot
		return
	}

	return a.unlink(slot), nil
}

// The slot must be occupied. Anything else corrupts the arena or panics.
func (a *Arena[T, S]) RemoveUnchecked(slot S) T {
	return a.unlink(slot)
}

func (a *Arena[T, S]) Get(slot S) (*T, error) {
	if checked && !a.Contains(slot) {
		return nil, ErrInvalidSlot
	}

	return &a.nodes[slot].Value, nil
}

// The slot must be occupied. A vacant slot yields its zeroed value, an out of
// range slot panics.
func (a *Arena[T, S]) GetUnchecked(slot S) *T {
	return &a.nodes[slot].Value
}

func (a *Arena[T, S]) unlink(slot S) (val T) {
	var zero T
	nul := utils.Max[S]()
	n := &a.nodes[slot]

	if n.Prev != nul {
		a.nodes[n.Prev].Next = n.Next
	} else {
		a.head.Head = n.Next
	}

	if n.Next != nul {
		a.nodes[n.Next].Prev = n.Prev
	} else {
		a.head.Tail = n.Prev
	}

	val = n.Value
	n.Value = zero
	n.State = Vacant
	n.Prev = nul
	n.Next = a.head.FreeHead

	a.head.FreeHead = slot
	a.head.Len--
	return
}

// Validate walks both chains and reports the first broken invariant.
func (a *Arena[T, S]) Validate() error {
	nul := utils.Max[S]()
	capacity := len(a.nodes)

	if int(a.head.Capacity) != capacity {
		return errors.Wrapf(ErrCorrupt, "header capacity %d, storage holds %d nodes", a.head.Capacity, capacity)
	}

	if int(a.head.Len) > capacity {
		return errors.Wrapf(ErrCorrupt, "length %d exceeds capacity %d", a.head.Len, capacity)
	}

	var count int
	prev := nul

	for slot := a.head.Head; slot != nul; slot = a.nodes[slot].Next {
		if uint64(slot) >= uint64(capacity) {
			return errors.Wrapf(ErrCorrupt, "active chain leaves the array at %d", slot)
		}

		if count++; count > capacity {
			return errors.Wrap(ErrCorrupt, "active chain has a cycle")
		}

		n := &a.nodes[slot]

		if n.State != Occupied {
			return errors.Wrapf(ErrCorrupt, "vacant node %d in active chain", slot)
		}

		if n.Prev != prev {
			return errors.Wrapf(ErrCorrupt, "node %d links back to %d instead of %d", slot, n.Prev, prev)
		}

		prev = slot
	}

	if prev != a.head.Tail {
		return errors.Wrapf(ErrCorrupt, "active chain ends at %d, tail is %d", prev, a.head.Tail)
	}

	if count != int(a.head.Len) {
		return errors.Wrapf(ErrCorrupt, "active chain holds %d nodes, length is %d", count, a.head.Len)
	}

	var free int

	for slot := a.head.FreeHead; slot != nul; slot = a.nodes[slot].Next {
		if uint64(slot) >= uint64(capacity) {
			return errors.Wrapf(ErrCorrupt, "free list leaves the array at %d", slot)
		}

		if free++; free > capacity {
			return errors.Wrap(ErrCorrupt, "free list has a cycle")
		}

		if a.nodes[slot].State != Vacant {
			return errors.Wrapf(ErrCorrupt, "occupied node %d in free list", slot)
		}
	}

	if count+free != capacity {
		return errors.Wrapf(ErrCorrupt, "%d active and %d free nodes in an arena of %d", count, free, capacity)
	}

	return nil
}

// CheckCapacity reports whether an arena of the given capacity can be
// addressed with slots of type S.
func CheckCapacity[S utils.Unsigned](capacity int) error {
	if capacity <= 0 {
		return errors.WithMessagef(ErrCapacity, "capacity must be positive, got %d", capacity)
	}

	if !utils.Fits[S](capacity) {
		var slot S
		return errors.WithMessagef(ErrCapacity, "capacity %d does not fit in %d-bit slots", capacity, unsafe.Sizeof(slot)*8)
	}

	return nil
}

// CheckSize reports whether capacity nodes of type Node[T, S], preceded by
// reserved bytes, can be addressed as one block of memory.
func CheckSize[T any, S utils.Unsigned](capacity int, reserved int) error {
	if err := CheckCapacity[S](capacity); err != nil {
		return err
	}

	if size := int(unsafe.Sizeof(Node[T, S]{})); size > 0 && capacity > (math.MaxInt-reserved)/size {
		return errors.WithMessagef(ErrCapacity, "%d nodes of %d bytes do not fit in memory", capacity, size)
	}

	return nil
}

// Extend pushes all values in order, or none of them when they do not fit.
func (a *Arena[T, S]) Extend(values ...T) error {
	if free := a.Free(); len(values) > free {
		return errors.WithMessagef(ErrCapacity, "%d values, %d free slots", len(values), free)
	}

	for _, val := range values {
		if _, err := a.PushFront(val); err != nil {
			return err
		}
	}

	return nil
}
