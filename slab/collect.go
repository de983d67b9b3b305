package slab

import (
	"iter"

	"github.com/webbmaffian/go-slab/internal/utils"
)

// From creates a slab sized to hold exactly the given values and pushes them
// in order, so PopBack returns them in the same order. Without values the slab
// gets DefaultCapacity.
func From[T any](values ...T) (*Slab[T, Slot], error) {
	return FromSized[T, Slot](values...)
}

func FromSized[T any, S utils.Unsigned](values ...T) (s *Slab[T, S], err error) {
	capacity := len(values)

	if capacity == 0 {
		capacity = DefaultCapacity
	}

	if s, err = NewSized[T, S](capacity); err != nil {
		return nil, err
	}

	if err = s.Extend(values...); err != nil {
		return nil, err
	}

	return
}

// Extend pushes all values in order. When they do not fit, nothing is pushed
// and ErrCapacity is returned.
func (s *Slab[T, S]) Extend(values ...T) error {
	return s.arena.Extend(values...)
}

// ExtendSeq pushes values from seq until it ends or the slab is full. It
// returns how many values were pushed; values pushed before the slab filled
// up stay in the slab.
func (s *Slab[T, S]) ExtendSeq(seq iter.Seq[T]) (n int, err error) {
	for val := range seq {
		if _, err = s.PushFront(val); err != nil {
			return
		}

		n++
	}

	return
}
