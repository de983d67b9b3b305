package workload

import (
	"time"

	"github.com/pkg/errors"
)

type Config struct {
	// Number of operations to run.
	Ops int

	Seed uint64

	// Share of operations that pop the oldest element.
	PopRatio float64

	// Share of operations that remove a random live element by its slot. The
	// rest are pushes.
	RemoveRatio float64

	// How often the progress callback is invoked. Zero disables it.
	Interval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Ops:         1_000_000,
		Seed:        1,
		PopRatio:    0.3,
		RemoveRatio: 0.2,
		Interval:    time.Second,
	}
}

func (c Config) Validate() error {
	if c.Ops < 0 {
		return errors.Errorf("ops must not be negative, got %d", c.Ops)
	}

	if c.PopRatio < 0 || c.RemoveRatio < 0 || c.PopRatio+c.RemoveRatio > 1 {
		return errors.Errorf("pop ratio %.2f and remove ratio %.2f must be non-negative and sum to at most 1", c.PopRatio, c.RemoveRatio)
	}

	if c.Interval < 0 {
		return errors.Errorf("interval must not be negative, got %s", c.Interval)
	}

	return nil
}
