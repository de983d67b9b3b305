// Command slabbench runs a randomized queue workload against a slab and shows
// live throughput. With --file the slab is memory-mapped, and whatever is left
// in it at exit is picked up by the next run.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/gosuri/uilive"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/webbmaffian/go-slab/internal/utils"
	"github.com/webbmaffian/go-slab/internal/workload"
	"github.com/webbmaffian/go-slab/mmslab"
	"github.com/webbmaffian/go-slab/slab"
)

type options struct {
	capacity int
	file     string
	wide     bool
	quiet    bool
	workload workload.Config
}

func main() {
	opts := options{
		workload: workload.DefaultConfig(),
	}

	flags := pflag.NewFlagSet("slabbench", pflag.ExitOnError)
	flags.IntVarP(&opts.capacity, "capacity", "c", 10_000, "slab capacity")
	flags.StringVarP(&opts.file, "file", "f", "", "memory-map the slab to this file instead of the heap; an existing file must have the same capacity")
	flags.BoolVar(&opts.wide, "wide", false, "use 64-bit slots instead of 32-bit")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "no live output")
	flags.IntVarP(&opts.workload.Ops, "ops", "n", opts.workload.Ops, "number of operations")
	flags.Uint64Var(&opts.workload.Seed, "seed", opts.workload.Seed, "random seed")
	flags.Float64Var(&opts.workload.PopRatio, "pop-ratio", opts.workload.PopRatio, "share of pop_back operations")
	flags.Float64Var(&opts.workload.RemoveRatio, "remove-ratio", opts.workload.RemoveRatio, "share of remove-by-slot operations")
	flags.DurationVar(&opts.workload.Interval, "interval", opts.workload.Interval, "refresh interval of the live output")
	_ = flags.Parse(os.Args[1:])

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().
		Timestamp().
		Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error

	if opts.wide {
		err = run[uint64](ctx, log, opts)
	} else {
		err = run[uint32](ctx, log, opts)
	}

	if err != nil {
		log.Error().Err(err).Msg("workload failed")
		stop()
		os.Exit(1)
	}
}

func run[S utils.Unsigned](ctx context.Context, log zerolog.Logger, opts options) (err error) {
	q, closeQueue, err := openQueue[S](opts)

	if err != nil {
		return
	}

	defer func() {
		if closeErr := closeQueue(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return drive[S](ctx, log, opts, q)
}

// Runs the workload on q and logs the outcome. An interrupted run is not a
// failure.
func drive[S utils.Unsigned](ctx context.Context, log zerolog.Logger, opts options, q workload.Queue[S]) error {
	log.Info().
		Int("capacity", q.Cap()).
		Int("len", q.Len()).
		Str("file", opts.file).
		Bool("wide", opts.wide).
		Msg("starting workload")

	out := io.Discard

	if !opts.quiet {
		writer := uilive.New()
		writer.Start()
		defer writer.Stop()
		out = writer
	}

	stats, err := workload.Run[S](ctx, q, opts.workload, func(stats workload.Stats) {
		printStats(out, stats)
	})

	event := log.Info()

	if err != nil {
		event = log.Warn()
	}

	event.
		Int("ops", stats.Ops).
		Int("pushes", stats.Pushes).
		Int("pops", stats.Pops).
		Int("removes", stats.Removes).
		Int("full", stats.Full).
		Int("empty", stats.Empty).
		Int("len", stats.Len).
		Dur("elapsed", stats.Elapsed).
		Float64("ns_per_op", nsPerOp(stats)).
		Msg("workload finished")

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func openQueue[S utils.Unsigned](opts options) (workload.Queue[S], func() error, error) {
	if opts.file == "" {
		s, err := slab.NewSized[uint64, S](opts.capacity)

		if err != nil {
			return nil, nil, err
		}

		return s, func() error { return nil }, nil
	}

	s, err := mmslab.New[uint64, S](opts.file, opts.capacity)

	if err != nil {
		return nil, nil, err
	}

	return s, s.Close, nil
}

func printStats(w io.Writer, stats workload.Stats) {
	fmt.Fprintf(w, "Operations: %d (%.0f ns/op)\n", stats.Ops, nsPerOp(stats))
	fmt.Fprintf(w, "Pushes: %d (rejected full: %d)\n", stats.Pushes, stats.Full)
	fmt.Fprintf(w, "Pops: %d (rejected empty: %d)\n", stats.Pops, stats.Empty)
	fmt.Fprintf(w, "Removes: %d\n", stats.Removes)
	fmt.Fprintf(w, "Length: %d\n", stats.Len)
}

func nsPerOp(stats workload.Stats) float64 {
	if stats.Ops == 0 {
		return 0
	}

	return float64(stats.Elapsed.Nanoseconds()) / float64(stats.Ops)
}
