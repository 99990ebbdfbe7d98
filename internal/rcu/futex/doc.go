// Package futex implements the wake coordinator word shared between RCU
// readers and a grace-period writer.
//
// The word is a single int32 with two stored values: Idle (0) and Parked
// (-1). The writer stores Parked, re-checks quiescence, and then blocks on
// the word with a bounded timeout; the interval between the store and the
// block is the transient "about to park" phase, during which any wake
// simply arrives early. Readers that observe Parked after recording a
// critical-section exit store Idle back and issue a wake targeting one
// waiter.
//
// Any number of readers may race on the reset-and-wake; duplicate wakes
// and wakes with no waiter are harmless. A missed wake is bounded by the
// writer's wait timeout, after which it re-polls. Wait and Wake never
// return errors: EINTR, EAGAIN, ETIMEDOUT and spurious wakeups are all
// equivalent to "re-check the condition".
//
// On Linux the word is a real futex(2) with FUTEX_PRIVATE_FLAG. Elsewhere
// a buffered notification channel provides the same block/wake/timeout
// semantics.
package futex
