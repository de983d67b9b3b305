package slab

import (
	"iter"

	"github.com/webbmaffian/go-slab/internal/arena"
	"github.com/webbmaffian/go-slab/internal/utils"
)

// Cursor over a slab, see Slab.Iterate.
type Iterator[T any, S utils.Unsigned] = arena.Iterator[T, S]

// Iterate returns a cursor from the newest to the oldest element. Removing the
// current element while iterating is allowed; any other mutation leaves the
// iteration undefined.
func (s *Slab[T, S]) Iterate() Iterator[T, S] {
	return s.arena.Iterate()
}

// All yields slots and element pointers from the newest to the oldest element.
// The same mutation rules as for Iterate apply.
func (s *Slab[T, S]) All() iter.Seq2[S, *T] {
	return s.arena.All()
}

// Values yields copies of the elements from the newest to the oldest.
func (s *Slab[T, S]) Values() iter.Seq[T] {
	return s.arena.Values()
}

// Backward yields slots and element pointers from the oldest to the newest
// element, in the order PopBack would return them.
func (s *Slab[T, S]) Backward() iter.Seq2[S, *T] {
	return s.arena.Backward()
}
