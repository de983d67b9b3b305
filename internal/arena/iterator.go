package arena

import (
	"iter"

	"github.com/webbmaffian/go-slab/internal/utils"
)

// Iterate returns a cursor from the newest to the oldest element. Removing the
// current element while iterating is allowed; any other mutation leaves the
// iteration undefined.
func (a *Arena[T, S]) Iterate() Iterator[T, S] {
	slot, _ := a.Front()

	return Iterator[T, S]{
		arena: a,
		next:  slot,
	}
}

type Iterator[T any, S utils.Unsigned] struct {
	arena *Arena[T, S]
	slot  S
	next  S
}

func (iter *Iterator[T, S]) Next() bool {
	if iter.next == utils.Max[S]() {
		return false
	}

	iter.slot = iter.next
	iter.next = iter.arena.Next(iter.slot)

	return true
}

func (iter *Iterator[T, S]) Slot() S {
	return iter.slot
}

func (iter *Iterator[T, S]) Val() *T {
	return iter.arena.GetUnchecked(iter.slot)
}

// All yields slots and element pointers from the newest to the oldest element.
func (a *Arena[T, S]) All() iter.Seq2[S, *T] {
	return func(yield func(S, *T) bool) {
		cursor := a.Iterate()

		for cursor.Next() {
			if !yield(cursor.Slot(), cursor.Val()) {
				return
			}
		}
	}
}

// Values yields copies of the elements from the newest to the oldest.
func (a *Arena[T, S]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		cursor := a.Iterate()

		for cursor.Next() {
			if !yield(*cursor.Val()) {
				return
			}
		}
	}
}

// Backward yields slots and element pointers from the oldest to the newest
// element.
func (a *Arena[T, S]) Backward() iter.Seq2[S, *T] {
	return func(yield func(S, *T) bool) {
		nul := utils.Max[S]()
		slot, _ := a.Back()

		for slot != nul {
			prev := a.Prev(slot)

			if !yield(slot, a.GetUnchecked(slot)) {
				return
			}

			slot = prev
		}
	}
}
