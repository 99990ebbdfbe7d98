// Copyright 2025 The urcu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package futex

import (
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// futex(2) operation codes. x/sys/unix exports the syscall number but not
// the ops, so they are spelled out here; values are part of the kernel ABI
// and identical on every architecture.
const (
	futexWait        = 0
	futexWake        = 1
	futexPrivateFlag = 128
)

// Word is a futex-backed wait/wake word.
//
// The state field must stay first and must be the address handed to the
// futex syscalls; the kernel keys waiters by that address.
type Word struct {
	state int32
}

// New returns an idle word.
func New() *Word {
	return &Word{state: Idle}
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

// Wait blocks the calling thread while the word still holds val, for at
// most timeout.
//
// Returns on wake, timeout, value mismatch, or signal; the caller cannot
// tell which and must re-check its condition either way. The blocked OS
// thread is handed off by the scheduler, so other goroutines keep running.
func (w *Word) Wait(val int32, timeout time.Duration) {
	ts := unix.NsecToTimespec(timeout.Nanoseconds())
	_, _, _ = unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(&w.state)),
		uintptr(futexWait|futexPrivateFlag),
		uintptr(uint32(val)),
		uintptr(unsafe.Pointer(&ts)),
		0, 0)
}

// Wake wakes at most one thread blocked in Wait on this word.
func (w *Word) Wake() {
	_, _, _ = unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(&w.state)),
		uintptr(futexWake|futexPrivateFlag),
		1, 0, 0, 0)
}
