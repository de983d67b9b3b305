//go:build !slab_u64 && !slab_usize

package slab

// Slot is the handle type of slabs built by New, WithCapacity and From. It is
// uint32 unless the module is built with the slab_u64 or slab_usize tag.
type Slot = uint32
