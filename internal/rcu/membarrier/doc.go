// Package membarrier issues process-wide memory-barrier broadcasts for the
// grace-period engine.
//
// A broadcast forces every running thread of the process through a full
// memory fence. The writer issues one after flipping the grace-period
// selector and one after observing quiescence; together they delimit the
// interval outside of which no reader's critical-section accesses may
// appear to occur. Classic userspace RCU also uses the broadcast to
// retroactively upgrade the readers' cheap compiler barriers to full
// fences; Go's sync/atomic operations are sequentially consistent already,
// so here the broadcast is the writer-side ordering point only.
//
// On Linux the broadcast is membarrier(2) MEMBARRIER_CMD_PRIVATE_EXPEDITED,
// which requires a one-time registration. If registration fails, or on
// other platforms, Barrier degrades to a local sequentially consistent
// fence, correct for the portable protocol but without the kernel's
// cross-CPU guarantee that the rseq-style fast path would exploit.
package membarrier
