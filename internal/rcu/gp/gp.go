// Copyright 2025 The urcu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gp

import (
	"sync"
	"sync/atomic"

	"github.com/kolkov/urcu/internal/rcu/futex"
	"github.com/kolkov/urcu/internal/rcu/membarrier"
	"github.com/kolkov/urcu/internal/rcu/percpu"
)

// State is one process-wide grace-period domain.
//
// All readers and writers of a protected structure share one State for its
// entire lifetime. The zero value is not usable; construct with Init and
// tear down with Exit.
type State struct {
	// counters is the per-CPU quadruple array. Sized at Init, structurally
	// immutable afterwards.
	counters *percpu.State

	// word is the wake coordinator shared by all readers and the parked
	// writer.
	word *futex.Word

	// period is the grace-period selector, 0 or 1. Readers load it with no
	// ordering obligation beyond eventual visibility; only
	// WaitGracePeriod, under gpLock, stores it.
	period atomic.Uint32

	// gpLock serializes grace-period waits. The period flip must not race
	// with another in-flight flip, so this is a correctness requirement,
	// not a throughput optimization.
	gpLock sync.Mutex

	// fastPath selects the pinned rseq-style read path. Fixed at Init;
	// the probe that decides it lives outside this core.
	fastPath bool
}

// Init allocates a grace-period state sized for the current machine.
//
// fastPath carries the externally probed availability of the
// restartable-sequence + membarrier machinery. When set, the expedited
// membarrier command is registered; a failing registration silently leaves
// the engine on the local-fence broadcast, which is still correct.
//
// No reader or writer may touch the state before Init returns.
func Init(fastPath bool) *State {
	s := &State{
		counters: percpu.NewState(),
		word:     futex.New(),
		fastPath: fastPath,
	}
	if fastPath {
		_ = membarrier.Register()
	}
	return s
}

// NumSlots returns the number of per-CPU counter slots.
func (s *State) NumSlots() int {
	return s.counters.NumSlots()
}

// FastPath reports which read-side path this state uses.
func (s *State) FastPath() bool {
	return s.fastPath
}

// Period returns the current grace-period selector value.
func (s *State) Period() uint32 {
	return s.period.Load()
}

// Exit tears the state down.
//
// Callers must have stopped all readers and writers first; Exit panics if
// either period still shows an open critical section, since reclaiming the
// counter array under a live reader would corrupt accounting silently. A
// second Exit on the same state is also a caller bug and panics.
func (s *State) Exit() {
	s.gpLock.Lock()
	defer s.gpLock.Unlock()
	counters := s.counters
	if counters == nil {
		panic("rcu: gp state already torn down")
	}
	for p := uint32(0); p < 2; p++ {
		begin, end := counters.PeriodSums(p, nil)
		if begin != end {
			panic("rcu: gp state torn down with open read-side critical sections")
		}
	}
	s.counters = nil
}
