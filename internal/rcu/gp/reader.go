// Copyright 2025 The urcu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gp

import (
	"github.com/kolkov/urcu/internal/rcu/futex"
	"github.com/kolkov/urcu/internal/rcu/percpu"
)

// ReadBegin marks entry into a read-side critical section and returns the
// period the entry was recorded against. The caller must pass the same
// value to the matching ReadEnd.
//
// This is the CRITICAL HOT PATH for readers: one selector load, one pin or
// one getcpu, one atomic add. It never blocks, never allocates, and never
// fails.
//
// The selector is read with no promptness requirement: a reader may still
// mark the period a concurrent writer just retired. That writer's wait
// then also covers this critical section; only sections entered after the
// flip is observed count against the new period.
func (s *State) ReadBegin() uint32 {
	period := s.period.Load()
	if s.fastPath {
		// The pin guarantees slot id and executing processor agree for
		// the duration of the add; this is what the rseq fast path buys.
		// The add's own barrier keeps critical-section accesses from
		// floating above the entry mark; it pairs with the writer's
		// broadcast after the period flip.
		id := percpu.Pin()
		s.counters.Slot(id).Period[period&1].RseqBegin.Add(1)
		percpu.Unpin()
		return period
	}
	// Fallback: the slot hint may be stale by the time the add lands.
	// Harmless, since quiescence is a sum over all slots.
	id := percpu.CurrentOS()
	s.counters.Slot(id).Period[period&1].Begin.Add(1)
	return period
}

// ReadEnd marks exit from the critical section that ReadBegin opened in
// the given period. The current CPU may differ from the one that recorded
// the entry; the exit is recorded wherever the reader runs now.
//
// After recording, ReadEnd unconditionally checks for a parked writer and
// wakes it. Any number of readers may race on that check.
func (s *State) ReadEnd(period uint32) {
	if s.fastPath {
		id := percpu.Pin()
		s.counters.Slot(id).Period[period&1].RseqEnd.Add(1)
		percpu.Unpin()
	} else {
		// The add is a sequentially consistent RMW, so the exit mark is
		// ordered before the futex word load below on every platform;
		// it pairs with the writer's store-parked-then-rescan sequence.
		id := percpu.CurrentOS()
		s.counters.Slot(id).Period[period&1].End.Add(1)
	}
	s.wakeWriter()
}

// wakeWriter resets a parked wake word and wakes one waiter. Best effort
// and idempotent: a lost race means another reader already did it, and a
// wake with no waiter is a no-op.
func (s *State) wakeWriter() {
	if s.word.Load() == futex.Parked {
		s.word.Store(futex.Idle)
		s.word.Wake()
	}
}
