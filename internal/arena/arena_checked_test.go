//go:build !slab_unchecked

package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemoveRejectsInvalidSlots(t *testing.T) {
	require.True(t, checked)

	a := newTestArena[int](3)
	slot, err := a.PushFront(1)
	require.NoError(t, err)

	before := *a.head

	for _, bad := range []uint16{1, 2, 3, 1000, ^uint16(0)} {
		_, err = a.Remove(bad)
		require.ErrorIs(t, err, ErrInvalidSlot, "slot %d", bad)
		_, err = a.Get(bad)
		require.ErrorIs(t, err, ErrInvalidSlot, "slot %d", bad)
	}

	require.Equal(t, before, *a.head)

	_, err = a.Remove(slot)
	require.NoError(t, err)

	_, err = a.Remove(slot)
	require.ErrorIs(t, err, ErrInvalidSlot)
	require.NoError(t, a.Validate())
}
