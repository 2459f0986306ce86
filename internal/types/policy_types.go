package types

import "fmt"

// NodeID is an arena handle for a focusable node.
// Handles are never reused, so a handle to an unmounted node stays detectable.
type NodeID uint32

// ContainerID is an arena handle for a container
type ContainerID uint32

const (
	// NoNode is the zero handle; it never refers to a node
	NoNode NodeID = 0
	// NoContainer is the root scope: the full node set
	NoContainer ContainerID = 0
)

// Restrict controls whether navigation may leave a container
type Restrict int

const (
	RestrictNone      Restrict = iota // Navigation is not constrained
	RestrictSelfFirst                 // Prefer members, fall back to outer scope
	RestrictSelfOnly                  // Never leave the container
)

// String returns the config spelling of the restrict mode
func (r Restrict) String() string {
	switch r {
	case RestrictNone:
		return "none"
	case RestrictSelfFirst:
		return "self-first"
	case RestrictSelfOnly:
		return "self-only"
	default:
		return "unknown"
	}
}

// ParseRestrict converts a config string to Restrict. Empty means none.
func ParseRestrict(s string) (Restrict, error) {
	switch s {
	case "", "none":
		return RestrictNone, nil
	case "self-first":
		return RestrictSelfFirst, nil
	case "self-only":
		return RestrictSelfOnly, nil
	default:
		return 0, fmt.Errorf("invalid restrict mode: %s", s)
	}
}

// EnterTo selects which member receives focus when a container is entered
type EnterTo int

const (
	EnterDefault        EnterTo = iota // Keep whatever geometry picked
	EnterLastFocused                   // Restore the member focused last
	EnterDefaultElement                // Use the container's default element
)

// String returns the config spelling of the enter policy
func (e EnterTo) String() string {
	switch e {
	case EnterDefault:
		return ""
	case EnterLastFocused:
		return "last-focused"
	case EnterDefaultElement:
		return "default-element"
	default:
		return "unknown"
	}
}

// ParseEnterTo converts a config string to EnterTo. Empty means EnterDefault.
func ParseEnterTo(s string) (EnterTo, error) {
	switch s {
	case "":
		return EnterDefault, nil
	case "last-focused":
		return EnterLastFocused, nil
	case "default-element":
		return EnterDefaultElement, nil
	default:
		return 0, fmt.Errorf("invalid enterTo policy: %s", s)
	}
}

// LeaveKind tags the variant held by a LeaveTarget
type LeaveKind int

const (
	LeaveUnset     LeaveKind = iota // No override, defer to geometry
	LeaveBlock                      // Navigation in this direction is blocked
	LeaveNode                       // Jump to a specific node
	LeaveContainer                  // Enter a specific container
)

// LeaveTarget is a per-direction leaveFor override
type LeaveTarget struct {
	Kind      LeaveKind
	Node      NodeID
	Container ContainerID
}

// BlockLeave returns the "no navigation" sentinel
func BlockLeave() LeaveTarget {
	return LeaveTarget{Kind: LeaveBlock}
}

// LeaveToNode returns an override targeting a node
func LeaveToNode(id NodeID) LeaveTarget {
	return LeaveTarget{Kind: LeaveNode, Node: id}
}

// LeaveToContainer returns an override targeting a container
func LeaveToContainer(id ContainerID) LeaveTarget {
	return LeaveTarget{Kind: LeaveContainer, Container: id}
}

// IsSet reports whether the override is present
func (l LeaveTarget) IsSet() bool {
	return l.Kind != LeaveUnset
}

// Policy is the navigation policy attached to a container
type Policy struct {
	Restrict       Restrict
	EnterTo        EnterTo
	DefaultElement NodeID                     // Used by EnterDefaultElement; NoNode if unset
	LeaveFor       [NumDirections]LeaveTarget // Indexed by Direction
}

// Leave returns the leaveFor override for a direction
func (p Policy) Leave(dir Direction) LeaveTarget {
	if !dir.Valid() {
		return LeaveTarget{}
	}
	return p.LeaveFor[dir]
}

// SetLeave sets the leaveFor override for a direction
func (p *Policy) SetLeave(dir Direction, target LeaveTarget) {
	if dir.Valid() {
		p.LeaveFor[dir] = target
	}
}
