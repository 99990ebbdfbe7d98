// Package main implements the rcustress soak harness for the RCU core.
//
// It runs the specification scenario at full scale: a set of reader
// goroutines hammering ReadBegin/ReadEnd in a tight loop while one writer
// cycles grace periods, each grace period followed by reclamation of the
// value it retired. The harness validates, continuously, that no reader
// ever observes a reclaimed value, and reports throughput and grace-period
// latency at the end.
//
// Usage:
//
//	rcustress [flags]
//
//	-readers n    reader goroutines (default 4)
//	-iters n      begin/end iterations per reader (default 1000000)
//	-gps n        grace periods performed by the writer (default 100)
//	-fastpath     use the pinned read path (default true)
//	-v            verbose per-grace-period logging
//
// Exit status is nonzero if any invariant was violated or the writer
// failed to complete all grace periods.
package main

import (
	"flag"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kolkov/urcu/rcu"
)

type payload struct {
	// gen is duplicated so readers can detect a torn or reclaimed value:
	// a live payload always has gen == gen2.
	gen  uint64
	gen2 uint64
}

func main() {
	var (
		readers  = flag.Int("readers", 4, "reader goroutines")
		iters    = flag.Int("iters", 1000000, "begin/end iterations per reader")
		gps      = flag.Int("gps", 100, "grace periods performed by the writer")
		fastpath = flag.Bool("fastpath", true, "use the pinned read path")
		verbose  = flag.Bool("v", false, "verbose per-grace-period logging")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	if !*verbose {
		log = log.Level(zerolog.InfoLevel)
	}

	state := rcu.Init(rcu.WithFastPath(*fastpath))
	defer state.Exit()

	info := rcu.GetInfo(state)
	log.Info().
		Str("version", info.Version).
		Int("slots", info.Slots).
		Bool("fastpath", info.FastPath).
		Int("readers", *readers).
		Int("iters", *iters).
		Int("gps", *gps).
		Msg("starting soak")

	var (
		ptr        rcu.Pointer[payload]
		violations atomic.Uint64
		readsDone  atomic.Uint64
	)
	ptr.Store(&payload{gen: 1, gen2: 1})

	start := time.Now()

	var g errgroup.Group
	for r := 0; r < *readers; r++ {
		g.Go(func() error {
			for i := 0; i < *iters; i++ {
				p := state.ReadBegin()
				v := ptr.Load()
				if v.gen != v.gen2 {
					violations.Add(1)
				}
				state.ReadEnd(p)
			}
			readsDone.Add(uint64(*iters))
			return nil
		})
	}

	var (
		maxGP   time.Duration
		totalGP time.Duration
	)
	g.Go(func() error {
		for i := 0; i < *gps; i++ {
			next := &payload{gen: uint64(i) + 2, gen2: uint64(i) + 2}
			old := ptr.Swap(next)

			gpStart := time.Now()
			state.WaitGracePeriod()
			gpDur := time.Since(gpStart)

			// Reclaim: poison the retired payload. A reader still holding
			// it would now count a violation.
			old.gen, old.gen2 = 0, 1

			totalGP += gpDur
			if gpDur > maxGP {
				maxGP = gpDur
			}
			if *verbose {
				log.Debug().Int("gp", i).Dur("latency", gpDur).Msg("grace period complete")
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("soak failed")
	}

	elapsed := time.Since(start)
	ev := log.Info().
		Dur("elapsed", elapsed).
		Uint64("reads", readsDone.Load()).
		Dur("gp_mean", totalGP/time.Duration(max(*gps, 1))).
		Dur("gp_max", maxGP)
	if elapsed > 0 {
		ev = ev.Float64("reads_per_sec", float64(readsDone.Load())/elapsed.Seconds())
	}
	ev.Msg("soak complete")

	if n := violations.Load(); n > 0 {
		log.Error().Uint64("violations", n).Msg("readers observed reclaimed or torn values")
		os.Exit(1)
	}
}
