package rcu

import (
	internal "github.com/kolkov/urcu/internal/rcu/gp"
)

// Period is the read-side token: the grace-period index a ReadBegin was
// recorded against. It lives on the reader's stack for the duration of the
// critical section and must be handed back, unchanged, to the matching
// ReadEnd. It carries no other meaning.
type Period = uint32

// State is one process-wide grace-period domain, shared by every reader
// and writer of the data it protects. Construct with [Init]; the zero
// value is not usable.
type State struct {
	gp *internal.State
}

// Option configures [Init].
type Option func(*options)

type options struct {
	fastPath bool
}

// WithFastPath sets whether the pinned (restartable-sequence style) read
// path is used. The flag is meant to carry an external probe's verdict on
// the machine and kernel; it is captured once and never re-read.
//
// The default is true. Disabling it forces the atomic fallback path, which
// is the right call on kernels without expedited membarrier support and in
// tests exercising fallback equivalence.
func WithFastPath(enabled bool) Option {
	return func(o *options) {
		o.fastPath = enabled
	}
}

// Init allocates and returns a grace-period state sized for this machine.
//
// Call it once per protected domain during startup, before any reader or
// writer touches the state:
//
//	state := rcu.Init()
//	defer state.Exit()
//
// If CPU topology cannot be determined the state still works with a single
// counter slot; only contention, not correctness, is affected.
func Init(opts ...Option) *State {
	o := options{fastPath: true}
	for _, opt := range opts {
		opt(&o)
	}
	return &State{gp: internal.Init(o.fastPath)}
}

// Exit tears the state down. All readers and writers must be done first;
// Exit panics if a read-side critical section is still open. No operation
// may be invoked on the state after Exit begins.
func (s *State) Exit() {
	s.gp.Exit()
}

// ReadBegin enters a read-side critical section and returns the token for
// the matching [State.ReadEnd]. It never blocks and never fails.
//
// Every ReadBegin must be balanced by exactly one ReadEnd on the same
// logical execution; the goroutine may migrate between the two calls.
func (s *State) ReadBegin() Period {
	return s.gp.ReadBegin()
}

// ReadEnd leaves the read-side critical section opened by the ReadBegin
// that returned p. It never blocks and never fails; if a writer is parked
// waiting for this section, ReadEnd wakes it.
func (s *State) ReadEnd(p Period) {
	s.gp.ReadEnd(p)
}

// WaitGracePeriod blocks until every read-side critical section that began
// before the call has ended.
//
// The canonical sequence is publish, wait, reclaim:
//
//	old := ptr.Load()
//	ptr.Store(updated)
//	state.WaitGracePeriod()
//	// no reader can see old anymore; reclaim it
//
// The call always completes; under pathological reader pressure it simply
// takes longer.
func (s *State) WaitGracePeriod() {
	s.gp.WaitGracePeriod()
}
