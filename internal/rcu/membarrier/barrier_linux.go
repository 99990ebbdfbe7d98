// Copyright 2025 The urcu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package membarrier

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// membarrier(2) commands. x/sys/unix exports the syscall number but not
// the command values, so they are spelled out here per the kernel ABI.
const (
	cmdPrivateExpedited         = 1 << 3
	cmdRegisterPrivateExpedited = 1 << 4
)

// registered flips to true once MEMBARRIER_CMD_REGISTER_PRIVATE_EXPEDITED
// has succeeded. Registration is per-process and never undone.
var registered atomic.Bool

// Register enables the expedited private membarrier command for this
// process. It must be called before the first Barrier that should use the
// kernel broadcast; Barrier works either way.
//
// The returned error is informational; the caller may log it or ignore
// it. Barrier silently uses the fence fallback while unregistered.
func Register() error {
	_, _, errno := unix.Syscall(unix.SYS_MEMBARRIER,
		cmdRegisterPrivateExpedited, 0, 0)
	if errno != 0 {
		return fmt.Errorf("membarrier register: %w", errno)
	}
	registered.Store(true)
	return nil
}

// Barrier issues a process-wide memory-barrier broadcast.
//
// With registration in place this is membarrier(2), which does not return
// until every running thread of the process has executed a full fence. A
// failing syscall falls back to a local fence; per the engine's failure
// semantics no error is surfaced.
func Barrier() {
	if registered.Load() {
		_, _, errno := unix.Syscall(unix.SYS_MEMBARRIER,
			cmdPrivateExpedited, 0, 0)
		if errno == 0 {
			return
		}
	}
	fence()
}
