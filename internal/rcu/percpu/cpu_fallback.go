// Copyright 2025 The urcu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package percpu

// CurrentOS is the portable stand-in for getcpu(2) on platforms without
// it. A momentary pin yields the current P id, which serves the same
// purpose: a best-effort slot hint that spreads contention. Accounting
// does not depend on the hint being right.
func CurrentOS() int {
	id := runtime_procPin()
	runtime_procUnpin()
	return id
}
