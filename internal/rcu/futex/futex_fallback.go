// Copyright 2025 The urcu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package futex

import (
	"sync/atomic"
	"time"
)

// Word is the portable wait/wake word for platforms without futex(2).
//
// A one-slot notification channel stands in for the kernel wait queue:
// Wake deposits a token if none is pending, Wait consumes one or times
// out. A token left over from an earlier wake causes a spurious return
// from Wait, which the protocol already tolerates.
type Word struct {
	state int32
	wake  chan struct{}
}

// New returns an idle word.
func New() *Word {
	return &Word{state: Idle, wake: make(chan struct{}, 1)}
}

// Load returns the current word value.
//
//go:nosplit
func (w *Word) Load() int32 {
	return atomic.LoadInt32(&w.state)
}

// Store sets the word value.
//
//go:nosplit
func (w *Word) Store(v int32) {
	atomic.StoreInt32(&w.state, v)
}

// Wait blocks while the word still holds val, for at most timeout.
//
// Returns on wake, timeout, or value mismatch; the caller re-checks its
// condition either way.
func (w *Word) Wait(val int32, timeout time.Duration) {
	if atomic.LoadInt32(&w.state) != val {
		return
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-w.wake:
	case <-t.C:
	}
}

// Wake wakes at most one waiter blocked in Wait on this word.
func (w *Word) Wake() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}
