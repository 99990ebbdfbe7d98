package percpu

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Count is one period's counter quadruple for one CPU slot.
//
// Begin/End are incremented by the atomic fallback path, RseqBegin/RseqEnd
// by the pinned fast path. The split exists so the two paths never have to
// agree on which increment primitive they use; quiescence always compares
// the sums Begin+RseqBegin and End+RseqEnd.
//
// All four counters are monotonically increasing and wrap naturally at
// 2^64; the quiescence comparison is an equality of sums, which wrapping
// preserves.
//
// The trailing pad keeps each quadruple on its own cache line. The pad is
// sized by golang.org/x/sys/cpu for the target platform rather than a
// hard-coded constant, so platforms with 128-byte lines do not false-share.
type Count struct {
	Begin     atomic.Uint64
	RseqBegin atomic.Uint64
	End       atomic.Uint64
	RseqEnd   atomic.Uint64

	_ cpu.CacheLinePad
}

// Slot holds both periods' counters for one CPU.
type Slot struct {
	// Period is indexed by the grace-period selector (0 or 1).
	Period [2]Count
}

// State is the per-CPU counter array for one grace-period state.
//
// The array is sized once at construction and is structurally immutable
// afterwards; only the counter values change. It is exclusively owned by
// the enclosing grace-period state and shares its lifetime.
type State struct {
	slots []Slot
}

// NewState allocates the per-CPU array.
//
// The slot count is the larger of runtime.NumCPU and GOMAXPROCS at
// construction time: pinned P ids range over GOMAXPROCS, OS CPU ids over
// NumCPU. If GOMAXPROCS is raised later, ids beyond the array clamp to
// slot 0, trading contention for the same accounting.
func NewState() *State {
	n := runtime.NumCPU()
	if p := runtime.GOMAXPROCS(0); p > n {
		n = p
	}
	if n < 1 {
		n = 1
	}
	return &State{slots: make([]Slot, n)}
}

// NumSlots returns the number of CPU slots.
func (s *State) NumSlots() int {
	return len(s.slots)
}

// Slot returns the counter slot for the given CPU id.
//
// Ids outside [0, NumSlots) clamp to slot 0. Correctness never depends on
// the id being accurate, only on every increment landing in some slot of
// the right period.
//
//go:nosplit
func (s *State) Slot(id int) *Slot {
	if id < 0 || id >= len(s.slots) {
		id = 0
	}
	return &s.slots[id]
}

// PeriodSums returns the aggregate entry and exit counts for one period.
//
// Exit counters are read before entry counters. A critical section that
// races with the scan can therefore be observed with its entry but not its
// exit, which merely delays quiescence, but never the other way around,
// which would fabricate it. Callers that need a stronger ordering point
// between the two halves pass it as between; it may be nil.
func (s *State) PeriodSums(period uint32, between func()) (begin, end uint64) {
	for i := range s.slots {
		c := &s.slots[i].Period[period&1]
		end += c.End.Load()
		end += c.RseqEnd.Load()
	}
	if between != nil {
		between()
	}
	for i := range s.slots {
		c := &s.slots[i].Period[period&1]
		begin += c.Begin.Load()
		begin += c.RseqBegin.Load()
	}
	return begin, end
}
