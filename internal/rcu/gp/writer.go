// Copyright 2025 The urcu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gp

import (
	"runtime"
	"time"

	"github.com/kolkov/urcu/internal/rcu/futex"
	"github.com/kolkov/urcu/internal/rcu/membarrier"
)

const (
	// spinAttempts is the polling budget before the writer parks. Short
	// critical sections drain within a few yields, sparing the futex
	// syscall.
	spinAttempts = 64

	// parkTimeout bounds each stay on the futex word. A lost wake costs
	// at most one interval before the writer re-polls on its own.
	parkTimeout = 10 * time.Millisecond
)

// WaitGracePeriod blocks until every read-side critical section that began
// before the call has ended.
//
// Callers sequence it as: publish the new data, WaitGracePeriod, reclaim
// the old. On return, no reader can still hold a reference obtained before
// the publish.
//
// Concurrent callers are serialized; each one that gets the lock drains
// both periods, so a call never piggybacks on a neighbor's grace period.
// The call always completes; primitive failures inside only add poll
// iterations.
//
// Both periods must be drained. A reader loads the selector before it
// marks its entry, and between those two steps an entire grace period can
// elapse: the reader then stamps a period that is no longer active. Such a
// mark is at most one flip stale, so draining the inactive period first,
// then flipping and draining the newly retired one, covers it.
func (s *State) WaitGracePeriod() {
	s.gpLock.Lock()
	defer s.gpLock.Unlock()

	active := s.period.Load()

	// Opening broadcast: every thread passes a full fence, so the writer's
	// preceding stores are visible to readers entering afterwards, and
	// entry marks already made are visible to the scans below.
	membarrier.Barrier()

	// First drain: the currently inactive period. Any section counted
	// here belongs to a reader whose selector load predates the previous
	// flip, and it began before this call.
	s.waitPeriodReaders(active ^ 1)

	// Retire the active period. Readers that have not yet observed the
	// flip keep marking it; their sections are covered by the second
	// drain. Readers that observe it mark the other period, which the
	// first drain just emptied, and cannot delay this wait.
	s.period.Store(active ^ 1)

	// The flip must reach every thread before the second drain's verdict
	// counts.
	membarrier.Barrier()

	s.waitPeriodReaders(active)

	// Closing broadcast: the retired period's critical-section accesses
	// are complete before the caller reclaims anything.
	membarrier.Barrier()
}

// waitPeriodReaders drains the given period: spins until quiescent, then
// parks with a bounded timeout, repeating until the drain completes.
func (s *State) waitPeriodReaders(period uint32) {
	// Leave the word idle on every exit so later ReadEnds don't issue
	// wakes with no writer behind them.
	defer func() {
		if s.word.Load() == futex.Parked {
			s.word.Store(futex.Idle)
		}
	}()

	for spin := 0; ; spin++ {
		if s.periodQuiescent(period) {
			return
		}
		if spin < spinAttempts {
			runtime.Gosched()
			continue
		}

		// Park protocol: publish the parked word, force the ordering
		// point, and re-check before blocking. A reader that misses the
		// parked word in ReadEnd must then have its exit mark visible to
		// this re-check; one of the two sides always goes through.
		s.word.Store(futex.Parked)
		membarrier.Barrier() // pairs with the exit mark before the reader's word load
		if s.periodQuiescent(period) {
			return
		}
		s.word.Wait(futex.Parked, parkTimeout)
		// Wake, timeout, or spurious return, indistinguishable on
		// purpose. Re-poll.
	}
}

// periodQuiescent reports whether the period's aggregate entry and exit
// counts match. Exits are summed before entries, with a broadcast between
// the halves, so a racing reader can delay quiescence but never fabricate
// it.
func (s *State) periodQuiescent(period uint32) bool {
	begin, end := s.counters.PeriodSums(period, membarrier.Barrier)
	return begin == end
}
