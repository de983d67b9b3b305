//go:build slab_usize

package slab

// Slot is the handle type of slabs built by New, WithCapacity and From. The
// slab_usize tag takes precedence over slab_u64.
type Slot = uint
