// Package slab provides a fixed-capacity linked list over a preallocated array.
//
// PushFront, PopBack, Remove and Get run in constant time and never allocate.
// PushFront hands out a slot that keeps addressing its element until that
// element is removed or popped; after that the slot may be handed out again.
//
// A Slab is not safe for concurrent use.
package slab

import (
	"github.com/pkg/errors"
	"github.com/webbmaffian/go-slab/internal/arena"
	"github.com/webbmaffian/go-slab/internal/utils"
)

const DefaultCapacity = 16

// Creates a slab with DefaultCapacity.
func New[T any]() *Slab[T, Slot] {
	s, err := NewSized[T, Slot](DefaultCapacity)

	if err != nil {
		panic(err)
	}

	return s
}

func WithCapacity[T any](capacity int) (*Slab[T, Slot], error) {
	return NewSized[T, Slot](capacity)
}

// Creates a slab with a custom slot type. The largest value of S is reserved
// as "none", so S must be able to represent the capacity itself. A capacity
// whose nodes exceed the address space fails with ErrCapacity; one that merely
// exceeds available memory makes the allocation itself fail.
func NewSized[T any, S utils.Unsigned](capacity int) (s *Slab[T, S], err error) {
	if err = arena.CheckSize[T, S](capacity, 0); err != nil {
		return nil, err
	}

	s = new(Slab[T, S])
	s.arena = arena.New(&s.head, make([]arena.Node[T, S], capacity))
	s.arena.Reset()

	return
}

// Slab must be created with New, WithCapacity, NewSized or From, and must not
// be copied.
type Slab[T any, S utils.Unsigned] struct {
	head  arena.Header[S]
	arena arena.Arena[T, S]
}

func (s *Slab[T, S]) Cap() int {
	return s.arena.Cap()
}

func (s *Slab[T, S]) Len() int {
	return s.arena.Len()
}

// Number of elements that can be pushed before the slab is full.
func (s *Slab[T, S]) Free() int {
	return s.arena.Free()
}

func (s *Slab[T, S]) IsEmpty() bool {
	return s.arena.IsEmpty()
}

func (s *Slab[T, S]) IsFull() bool {
	return s.arena.IsFull()
}

// Inserts val as the newest element and returns its slot. Fails with
// ErrCapacity when the slab is full.
func (s *Slab[T, S]) PushFront(val T) (S, error) {
	return s.arena.PushFront(val)
}

// Removes and returns the oldest element. Fails with ErrEmpty when there is
// none.
func (s *Slab[T, S]) PopBack() (T, error) {
	return s.arena.PopBack()
}

// Removes and returns the element at slot. Fails with ErrInvalidSlot when the
// slot is out of range or vacant, unless built with the slab_unchecked tag.
func (s *Slab[T, S]) Remove(slot S) (T, error) {
	return s.arena.Remove(slot)
}

// Like Remove without any validation. Passing a slot that does not hold an
// element corrupts the slab.
func (s *Slab[T, S]) RemoveUnchecked(slot S) T {
	return s.arena.RemoveUnchecked(slot)
}

// Returns a pointer to the element at slot. The pointer is valid until the
// element is removed.
func (s *Slab[T, S]) Get(slot S) (*T, error) {
	return s.arena.Get(slot)
}

// Like Get without any validation. A vacant slot yields a zero value, an out
// of range slot panics.
func (s *Slab[T, S]) GetUnchecked(slot S) *T {
	return s.arena.GetUnchecked(slot)
}

// Like Get, but panics on an invalid slot.
func (s *Slab[T, S]) MustGet(slot S) *T {
	val, err := s.arena.Get(slot)

	if err != nil {
		panic(errors.WithMessagef(err, "slot %d", slot))
	}

	return val
}

func (s *Slab[T, S]) Contains(slot S) bool {
	return s.arena.Contains(slot)
}

// Slot of the newest element.
func (s *Slab[T, S]) Front() (S, bool) {
	return s.arena.Front()
}

// Slot of the oldest element, which is the next one PopBack returns.
func (s *Slab[T, S]) Back() (S, bool) {
	return s.arena.Back()
}

// Removes all elements. Runs in O(capacity).
func (s *Slab[T, S]) Clear() {
	s.arena.Reset()
}
