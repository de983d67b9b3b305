package slab

import (
	"container/list"
	"testing"
)

func BenchmarkPushFrontPopBack(b *testing.B) {
	s, err := WithCapacity[uint64](1024)

	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := s.PushFront(uint64(i)); err != nil {
			b.Fatal(err)
		}

		if _, err := s.PopBack(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRemove(b *testing.B) {
	const capacity = 1024
	s, err := WithCapacity[uint64](capacity)

	if err != nil {
		b.Fatal(err)
	}

	slots := make([]Slot, capacity)

	for i := range slots {
		slots[i], _ = s.PushFront(uint64(i))
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		idx := (i * 31) % capacity

		if _, err := s.Remove(slots[idx]); err != nil {
			b.Fatal(err)
		}

		slots[idx], _ = s.PushFront(uint64(i))
	}
}

func BenchmarkRemoveUnchecked(b *testing.B) {
	const capacity = 1024
	s, err := WithCapacity[uint64](capacity)

	if err != nil {
		b.Fatal(err)
	}

	slots := make([]Slot, capacity)

	for i := range slots {
		slots[i], _ = s.PushFront(uint64(i))
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		idx := (i * 31) % capacity
		s.RemoveUnchecked(slots[idx])
		slots[idx], _ = s.PushFront(uint64(i))
	}
}

func BenchmarkGet(b *testing.B) {
	const capacity = 1024
	s, err := WithCapacity[uint64](capacity)

	if err != nil {
		b.Fatal(err)
	}

	slots := make([]Slot, capacity)

	for i := range slots {
		slots[i], _ = s.PushFront(uint64(i))
	}

	var sum uint64

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		v, err := s.Get(slots[(i*31)%capacity])

		if err != nil {
			b.Fatal(err)
		}

		sum += *v
	}

	_ = sum
}

func BenchmarkIterate(b *testing.B) {
	s, err := WithCapacity[uint64](1024)

	if err != nil {
		b.Fatal(err)
	}

	for !s.IsFull() {
		_, _ = s.PushFront(1)
	}

	var sum uint64

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for _, v := range s.All() {
			sum += *v
		}
	}

	_ = sum
}

// Baseline for comparison.
func BenchmarkContainerListPushFrontRemoveBack(b *testing.B) {
	l := list.New()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		l.PushFront(uint64(i))
		l.Remove(l.Back())
	}
}
