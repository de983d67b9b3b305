//go:build !slab_unchecked

package arena

// Slot validation in Remove and Get.
const checked = true
