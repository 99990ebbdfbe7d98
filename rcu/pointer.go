package rcu

import "sync/atomic"

// Pointer is an RCU-protected pointer to a T.
//
// It is the publication half of the protocol: readers Load it inside a
// ReadBegin/ReadEnd section, writers Store a replacement and then call
// [State.WaitGracePeriod] before reclaiming what Load used to return.
// Load is the dereference with acquire-consume semantics, Store the
// release-store of the original's assign-pointer.
//
// The zero value holds nil and is ready to use. A Pointer must not be
// copied after first use.
type Pointer[T any] struct {
	p atomic.Pointer[T]
}

// Load returns the current value. Call it between ReadBegin and ReadEnd;
// the returned pointer stays valid until the critical section ends, after
// which a writer may reclaim it at any time.
func (p *Pointer[T]) Load() *T {
	return p.p.Load()
}

// Store publishes v, replacing the current value. The pointed-to T and
// everything reachable from it must be fully initialized before the call;
// readers may observe v immediately.
//
// Store does not wait for readers of the previous value; that is
// [State.WaitGracePeriod]'s job.
func (p *Pointer[T]) Store(v *T) {
	p.p.Store(v)
}

// Swap publishes v and returns the previous value in one step. The
// returned pointer may still have readers; wait a grace period before
// reclaiming it.
func (p *Pointer[T]) Swap(v *T) *T {
	return p.p.Swap(v)
}
