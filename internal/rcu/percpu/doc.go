// Package percpu implements the per-CPU grace-period counter state for the
// userspace RCU core.
//
// Each CPU slot holds two counter quadruples, one per grace period
// (period 0 and period 1). A quadruple tracks critical-section entries and
// exits separately for the pinned fast path (RseqBegin/RseqEnd) and the
// atomic fallback path (Begin/End). A period is quiescent when, summed over
// all CPU slots, Begin+RseqBegin equals End+RseqEnd.
//
// Counters only ever increase. Slots are padded to a cache-line-sized
// boundary so that readers on different CPUs never contend on the same
// line.
//
// CPU identification comes in two strengths:
//   - Pin/Unpin pins the calling goroutine to its P and returns the P id.
//     While pinned the goroutine cannot migrate, so an increment on the
//     returned slot is guaranteed to land on the processor it executed on.
//   - CurrentOS queries the OS scheduler (getcpu on Linux) and may be
//     stale by the time it is used. Callers that rely on it must tolerate
//     increments landing on a neighboring slot; quiescence is a global sum
//     condition, so this only costs performance, never correctness.
//
// Slot lookup never fails: unknown or out-of-range CPU ids fall back to
// slot 0.
package percpu
