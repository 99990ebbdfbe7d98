// Copyright 2025 The urcu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package percpu

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// CurrentOS returns the CPU the calling thread is running on, as reported
// by getcpu(2). x/sys/unix carries only the syscall number, so the call is
// made raw; the node and cache arguments are left nil.
//
// The answer can be stale by the time the caller uses it: the thread may
// be rescheduled between the query and the increment. The fallback path
// tolerates that because quiescence is checked as a sum over all slots.
//
// On error the designated fallback slot 0 is returned; a failing getcpu
// only degrades slot spread, never accounting.
func CurrentOS() int {
	var c uint32
	_, _, errno := unix.RawSyscall(unix.SYS_GETCPU,
		uintptr(unsafe.Pointer(&c)), 0, 0)
	if errno != 0 {
		return 0
	}
	return int(c)
}
