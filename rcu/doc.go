// Package rcu provides a userspace read-copy-update (RCU) grace-period
// primitive: readers traverse shared data with no locks and no retry loops
// on the hot path, and a writer waits for a grace period before reclaiming
// data those readers might still see.
//
// # Quick Start
//
//	package main
//
//	import "github.com/kolkov/urcu/rcu"
//
//	type Config struct{ Limit int }
//
//	var (
//		state = rcu.Init()
//		cfg   rcu.Pointer[Config]
//	)
//
//	func reader() int {
//		p := state.ReadBegin()
//		limit := cfg.Load().Limit
//		state.ReadEnd(p)
//		return limit
//	}
//
//	func update(next *Config) *Config {
//		old := cfg.Load()
//		cfg.Store(next)          // publish
//		state.WaitGracePeriod()  // drain readers of old
//		return old               // now safe to reclaim/reuse
//	}
//
// # API Overview
//
// The package provides:
//   - Lifecycle: [Init], [State.Exit]
//   - Read side: [State.ReadBegin], [State.ReadEnd]
//   - Write side: [State.WaitGracePeriod]
//   - Protected pointers: [Pointer]
//   - Version information: [GetInfo], [Version]
//
// # How It Works
//
// The state keeps, per CPU and per period (0 or 1), counters of
// critical-section entries and exits. ReadBegin increments the current
// period's entry counter on the reader's CPU slot; ReadEnd increments an
// exit counter wherever the reader runs by then. WaitGracePeriod drains
// the inactive period, flips the period selector so new readers mark the
// other one, and drains the newly retired period; a period is drained when
// its entries and exits balance, summed over all CPUs, so reader migration
// between begin and end is harmless. Each drain spins briefly, then parks
// on a futex-style word that exiting readers poke.
//
// Two read-side paths exist, chosen once at [Init]: a fast path that pins
// the goroutine to its processor for the single counter increment (the Go
// analogue of a restartable sequence), and a fallback that queries the OS
// for the current CPU and uses plain sequentially consistent atomics.
// Callers that have probed their environment pass the result via
// [WithFastPath]; the probe itself is outside this package.
//
// # Guarantees
//
//   - ReadBegin/ReadEnd never block, never fail, and are safe to call from
//     any goroutine, including latency-sensitive contexts.
//   - When WaitGracePeriod returns, every critical section that began
//     before the call has ended.
//   - Concurrent WaitGracePeriod calls are serialized; each performs a
//     full grace period of its own.
//
// What happens to superseded data after the grace period (freeing,
// pooling, reuse) is deliberately the caller's business.
package rcu
