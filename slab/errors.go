package slab

import "github.com/webbmaffian/go-slab/internal/arena"

// Error is a comparable error value. Hot paths return the bare constants, so
// they can be matched with == as well as errors.Is.
type Error = arena.Error

const (
	// Requested capacity is zero or too large for the slot type, or the slab is
	// full.
	ErrCapacity = arena.ErrCapacity

	// Nothing to pop.
	ErrEmpty = arena.ErrEmpty

	// The slot is out of range or does not hold an element.
	ErrInvalidSlot = arena.ErrInvalidSlot

	ErrCorrupt = arena.ErrCorrupt
)
