package workload

import "github.com/webbmaffian/go-slab/internal/utils"

// Keeps the expected contents of the queue: which ids are live, under which
// slot, and in which order they were pushed.
type tracker[S utils.Unsigned] struct {
	ids   []uint64
	index map[uint64]int
	slots map[uint64]S
	owner map[S]uint64
	order []uint64
}

func newTracker[S utils.Unsigned](capacity int) *tracker[S] {
	return &tracker[S]{
		ids:   make([]uint64, 0, capacity),
		index: make(map[uint64]int, capacity),
		slots: make(map[uint64]S, capacity),
		owner: make(map[S]uint64, capacity),
		order: make([]uint64, 0, capacity),
	}
}

func (t *tracker[S]) len() int {
	return len(t.ids)
}

func (t *tracker[S]) push(id uint64, slot S) {
	t.index[id] = len(t.ids)
	t.ids = append(t.ids, id)
	t.slots[id] = slot
	t.owner[slot] = id
	t.order = append(t.order, id)
}

// Id of the oldest live element, which the next pop must return.
func (t *tracker[S]) oldest() (id uint64, ok bool) {
	for len(t.order) > 0 {
		id = t.order[0]

		if _, ok = t.slots[id]; ok {
			return
		}

		t.order = t.order[1:]
	}

	return
}

// Reports the live id holding slot, if any.
func (t *tracker[S]) holder(slot S) (id uint64, ok bool) {
	id, ok = t.owner[slot]
	return
}

// Picks the n-th live element in sampling order.
func (t *tracker[S]) at(n int) (id uint64, slot S) {
	id = t.ids[n]
	return id, t.slots[id]
}

func (t *tracker[S]) drop(id uint64) {
	i := t.index[id]
	last := len(t.ids) - 1

	t.ids[i] = t.ids[last]
	t.index[t.ids[i]] = i
	t.ids = t.ids[:last]

	delete(t.owner, t.slots[id])
	delete(t.index, id)
	delete(t.slots, id)
}
