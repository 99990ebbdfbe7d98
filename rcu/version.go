package rcu

// Version information for the userspace RCU core.
const (
	// Version is the current version of the RCU runtime.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides runtime information about an RCU state.
type Info struct {
	// Version is the runtime version string.
	Version string

	// Slots is the number of per-CPU counter slots.
	Slots int

	// FastPath reports whether the pinned read-side path is in use.
	FastPath bool
}

// GetInfo returns information about the given state.
//
// Example:
//
//	info := rcu.GetInfo(state)
//	fmt.Printf("urcu %s, %d slots, fastpath=%v\n", info.Version, info.Slots, info.FastPath)
func GetInfo(s *State) Info {
	return Info{
		Version:  Version,
		Slots:    s.gp.NumSlots(),
		FastPath: s.gp.FastPath(),
	}
}
