//go:build slab_u64 && !slab_usize

package slab

// Slot is the handle type of slabs built by New, WithCapacity and From.
type Slot = uint64
