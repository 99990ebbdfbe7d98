package membarrier

import "sync/atomic"

// fenceWord is the target of the fallback fence. Never read for its value.
var fenceWord atomic.Uint64

// fence executes a full sequentially consistent fence on the calling
// thread. An atomic read-modify-write is the strongest ordering operation
// expressible in portable Go.
func fence() {
	fenceWord.Add(0)
}
