// Copyright 2025 The urcu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package membarrier

import "errors"

// ErrUnsupported reports that the platform has no broadcast primitive.
var ErrUnsupported = errors.New("membarrier: not supported on this platform")

// Register reports that the kernel broadcast is unavailable. Barrier
// remains usable through the fence fallback.
func Register() error {
	return ErrUnsupported
}

// Barrier executes a local full fence. Combined with the readers'
// sequentially consistent counter increments this preserves the protocol's
// ordering on platforms without membarrier(2).
func Barrier() {
	fence()
}
