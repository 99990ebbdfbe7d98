// Package gp implements the RCU read-side marking protocol and the
// grace-period engine over the per-CPU counter state.
//
// Readers bracket critical sections with ReadBegin/ReadEnd. ReadBegin
// returns the period it marked (0 or 1); the caller must hand exactly that
// value back to ReadEnd. Neither call can fail, block, or allocate, and
// both are safe from any goroutine at any time between Init and Exit.
//
// A writer calls WaitGracePeriod after publishing new data. When it
// returns, every critical section that began before the call has ended:
// the writer first drains the inactive period, which catches readers whose
// selector load went stale across an earlier flip, then flips the selector
// so new readers mark the other period, and drains the newly retired one.
// A drain waits for the period's entry and exit sums to match, spinning
// briefly and then parking on the futex word with a bounded timeout so a
// missed wake costs at most one timeout interval.
//
// Two paths record the marks, selected by the fast-path flag fixed at
// Init:
//
//   - fast: pin to the current P and increment the pinned slot's
//     rseq counters (the restartable-sequence analogue): no syscall, no
//     cross-CPU contention;
//   - fallback: ask the OS for the current CPU (slot 0 if unknown) and
//     increment the atomic counters.
//
// Both paths may be observed by the same quiescence scan; the counters are
// kept separate precisely so the paths never need to coordinate.
package gp
