//go:build slab_unchecked

package arena

// Built with the slab_unchecked tag: Remove and Get trust the caller's slot.
const checked = false
