package futex

// Word states. The zero value of a Word reads Idle.
const (
	// Idle means no writer is parked on the word.
	Idle int32 = 0

	// Parked is stored by a writer before it blocks on the word.
	Parked int32 = -1
)
