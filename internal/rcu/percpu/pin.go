// Copyright 2025 The urcu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package percpu

import (
	_ "unsafe" // for go:linkname
)

// Pin pins the calling goroutine to its current P and returns the P id.
//
// This is the Go rendition of a restartable sequence: between Pin and
// Unpin the goroutine cannot be migrated or preempted by another goroutine
// on the same P, so an increment on Slot(id) is guaranteed to execute on
// the processor the id names. Unlike a kernel rseq there is no abort
// path, because pinning cannot fail, so callers never need a retry loop.
//
// The pinned region must be short and must not allocate, block, or call
// into code that might. The read-side protocol only performs one atomic
// add inside it.
//
//go:nosplit
func Pin() int {
	return runtime_procPin()
}

// Unpin releases the pin taken by Pin.
//
//go:nosplit
func Unpin() {
	runtime_procUnpin()
}

// The runtime does not export P pinning. sync.runtime_procPin is the
// symbol the runtime pushes for sync.Pool, so pulling it stays within the
// linker's linkname allowances; per-CPU sharding libraries reach it the
// same way.
//
//go:linkname runtime_procPin sync.runtime_procPin
func runtime_procPin() int

//go:linkname runtime_procUnpin sync.runtime_procUnpin
func runtime_procUnpin()
