// Package workload drives a slab through a seeded mix of pushes, pops and
// removals while checking every result against the expected contents.
package workload

import (
	"context"
	"iter"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"github.com/webbmaffian/go-slab/internal/utils"
	"github.com/webbmaffian/go-slab/slab"
)

// Mismatch between what the queue returned and what it should have.
const ErrMismatch = slab.Error("queue returned an unexpected result")

// Queue is satisfied by both *slab.Slab[uint64, S] and *mmslab.Slab[uint64, S].
type Queue[S utils.Unsigned] interface {
	PushFront(uint64) (S, error)
	PopBack() (uint64, error)
	Remove(S) (uint64, error)
	Len() int
	Cap() int
	Backward() iter.Seq2[S, *uint64]
}

type Stats struct {
	Ops     int
	Pushes  int
	Pops    int
	Removes int

	// Pushes rejected because the queue was full.
	Full int

	// Pops rejected because the queue was empty.
	Empty int

	Len     int
	Elapsed time.Duration
}

// Operations between two context and progress checks.
const checkEvery = 1024

// Run executes cfg.Ops operations against q. Elements already in q are adopted
// as if they had been pushed in their current order. The progress callback,
// when set, is called every cfg.Interval and once at the end.
func Run[S utils.Unsigned](ctx context.Context, q Queue[S], cfg Config, progress func(Stats)) (stats Stats, err error) {
	if err = cfg.Validate(); err != nil {
		return
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	live := newTracker[S](q.Cap())

	var nextID uint64

	for slot, val := range q.Backward() {
		if _, dup := live.slots[*val]; dup {
			return stats, errors.WithMessagef(ErrMismatch, "id %d is stored twice", *val)
		}

		live.push(*val, slot)
		nextID = max(nextID, *val+1)
	}

	start := time.Now()
	lastReport := start

	report := func() {
		stats.Len = q.Len()
		stats.Elapsed = time.Since(start)

		if progress != nil {
			progress(stats)
		}
	}

	for ; stats.Ops < cfg.Ops; stats.Ops++ {
		if stats.Ops%checkEvery == 0 {
			if err = ctx.Err(); err != nil {
				report()
				return
			}

			if cfg.Interval > 0 && time.Since(lastReport) >= cfg.Interval {
				lastReport = time.Now()
				report()
			}
		}

		switch r := rng.Float64(); {
		case r < cfg.PopRatio:
			err = pop(q, live, &stats)
		case r < cfg.PopRatio+cfg.RemoveRatio:
			err = remove(q, live, rng, &stats)
		default:
			err = push(q, live, nextID, &stats)
			nextID++
		}

		if err != nil {
			report()
			return stats, errors.WithMessagef(err, "operation %d", stats.Ops)
		}
	}

	if q.Len() != live.len() {
		err = errors.WithMessagef(ErrMismatch, "queue holds %d elements, expected %d", q.Len(), live.len())
	}

	report()
	return
}

func push[S utils.Unsigned](q Queue[S], live *tracker[S], id uint64, stats *Stats) error {
	slot, err := q.PushFront(id)

	if errors.Is(err, slab.ErrCapacity) {
		if live.len() != q.Cap() {
			return errors.WithMessagef(ErrMismatch, "full with %d of %d elements", live.len(), q.Cap())
		}

		stats.Full++
		return nil
	}

	if err != nil {
		return err
	}

	if holder, taken := live.holder(slot); taken {
		return errors.WithMessagef(ErrMismatch, "slot %d handed out while held by %d", slot, holder)
	}

	live.push(id, slot)
	stats.Pushes++
	return nil
}

func pop[S utils.Unsigned](q Queue[S], live *tracker[S], stats *Stats) error {
	val, err := q.PopBack()

	if errors.Is(err, slab.ErrEmpty) {
		if live.len() != 0 {
			return errors.WithMessagef(ErrMismatch, "empty with %d elements", live.len())
		}

		stats.Empty++
		return nil
	}

	if err != nil {
		return err
	}

	want, ok := live.oldest()

	if !ok || val != want {
		return errors.WithMessagef(ErrMismatch, "popped %d, expected %d", val, want)
	}

	live.drop(val)
	stats.Pops++
	return nil
}

func remove[S utils.Unsigned](q Queue[S], live *tracker[S], rng *rand.Rand, stats *Stats) error {
	if live.len() == 0 {
		return nil
	}

	id, slot := live.at(rng.IntN(live.len()))
	val, err := q.Remove(slot)

	if err != nil {
		return err
	}

	if val != id {
		return errors.WithMessagef(ErrMismatch, "slot %d held %d, expected %d", slot, val, id)
	}

	live.drop(id)
	stats.Removes++
	return nil
}
