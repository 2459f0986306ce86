package focus

import (
	"github.com/rs/zerolog"

	"github.com/yourusername/spotlight/internal/scene"
	"github.com/yourusername/spotlight/internal/state"
	"github.com/yourusername/spotlight/internal/types"
)

// Decision is the outcome of consulting container policies
type Decision int

const (
	UseDefault Decision = iota // Resolve geometrically within Override.Scope
	Redirect                   // Go straight to Override.Target
	Block                      // Navigation has no effect
)

// String returns a readable decision name
func (d Decision) String() string {
	switch d {
	case UseDefault:
		return "use-default"
	case Redirect:
		return "redirect"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

// Override is what the container walk decided for one move
type Override struct {
	Decision Decision
	Target   types.NodeID      // Set for Redirect
	Scope    types.ContainerID // Set for UseDefault; NoContainer means every node
}

// snapshot freezes node geometry for the duration of one resolution
type snapshot struct {
	candidates []Candidate
	index      map[types.NodeID]int
}

func takeSnapshot(s *scene.Scene, layout LayoutProvider) *snapshot {
	nodes := s.Nodes()
	snap := &snapshot{
		candidates: make([]Candidate, 0, len(nodes)),
		index:      make(map[types.NodeID]int, len(nodes)),
	}
	for _, n := range nodes {
		r, ok := RectFrom(layout, n.ID)
		if !ok {
			continue
		}
		snap.index[n.ID] = len(snap.candidates)
		snap.candidates = append(snap.candidates, Candidate{ID: n.ID, Rect: r, Disabled: n.Disabled})
	}
	return snap
}

func (snap *snapshot) rect(id types.NodeID) (types.Rect, bool) {
	i, ok := snap.index[id]
	if !ok {
		return types.Rect{}, false
	}
	return snap.candidates[i].Rect, true
}

func (snap *snapshot) members(s *scene.Scene, c types.ContainerID) []Candidate {
	if c == types.NoContainer {
		return snap.candidates
	}
	var result []Candidate
	for _, cand := range snap.candidates {
		if s.Contains(c, cand.ID) {
			result = append(result, cand)
		}
	}
	return result
}

// Resolver applies per-container restrict/enterTo/leaveFor policies
type Resolver struct {
	scene  *scene.Scene
	state  *state.FocusState
	layout LayoutProvider
	ranker Ranker
	log    zerolog.Logger
}

// NewResolver creates a policy resolver over a scene and its focus state
func NewResolver(s *scene.Scene, fs *state.FocusState, layout LayoutProvider, ranker Ranker, log zerolog.Logger) *Resolver {
	if layout == nil {
		layout = SceneLayout{Scene: s}
	}
	return &Resolver{scene: s, state: fs, layout: layout, ranker: ranker, log: log}
}

// ResolveContainerOverride walks origin's containers from innermost to outermost and
// decides whether a policy redirects, blocks, or scopes the geometric search.
func (r *Resolver) ResolveContainerOverride(origin types.NodeID, dir types.Direction) Override {
	return r.resolveOverride(takeSnapshot(r.scene, r.layout), origin, dir)
}

func (r *Resolver) resolveOverride(snap *snapshot, origin types.NodeID, dir types.Direction) Override {
	originRect, ok := snap.rect(origin)
	if !ok || !dir.Valid() {
		return Override{Decision: Block}
	}

	for _, cid := range r.scene.Ancestors(origin) {
		container, ok := r.scene.Container(cid)
		if !ok {
			continue
		}

		if leave := container.Policy.Leave(dir); leave.IsSet() {
			if leave.Kind == types.LeaveBlock {
				return Override{Decision: Block}
			}
			if target, ok := r.leaveTarget(container, dir, leave); ok && target != origin {
				return Override{Decision: Redirect, Target: target}
			}
		}

		switch container.Policy.Restrict {
		case types.RestrictSelfOnly:
			if r.hasCandidate(snap, cid, origin, originRect, dir) {
				return Override{Decision: UseDefault, Scope: cid}
			}
			return Override{Decision: Block}
		case types.RestrictSelfFirst:
			if r.hasCandidate(snap, cid, origin, originRect, dir) {
				return Override{Decision: UseDefault, Scope: cid}
			}
		}
	}

	return Override{Decision: UseDefault, Scope: types.NoContainer}
}

// leaveTarget validates a leaveFor override; an unusable target fails open to geometry
func (r *Resolver) leaveTarget(container scene.Container, dir types.Direction, leave types.LeaveTarget) (types.NodeID, bool) {
	switch leave.Kind {
	case types.LeaveNode:
		if r.scene.Focusable(leave.Node) {
			return leave.Node, true
		}
		r.log.Warn().
			Str("container", container.Name).
			Str("direction", dir.String()).
			Uint32("node", uint32(leave.Node)).
			Msg("inconsistent policy: leaveFor targets a missing or disabled node")
	case types.LeaveContainer:
		if target, ok := r.EntryNode(leave.Container); ok {
			return target, true
		}
		r.log.Warn().
			Str("container", container.Name).
			Str("direction", dir.String()).
			Uint32("target", uint32(leave.Container)).
			Msg("inconsistent policy: leaveFor targets a container with nothing focusable")
	}
	return types.NoNode, false
}

func (r *Resolver) hasCandidate(snap *snapshot, scope types.ContainerID, origin types.NodeID, originRect types.Rect, dir types.Direction) bool {
	_, found := r.ranker.SelectBest(originRect, dir, FilterCandidates(origin, originRect, dir, snap.members(r.scene, scope)))
	return found
}

// EnterTarget applies the enterTo policy of every container target enters when focus
// arrives from origin. The outermost entered container is consulted first; a redirect
// then re-applies the nested containers' policies of the new target.
func (r *Resolver) EnterTarget(origin, target types.NodeID) types.NodeID {
	return r.enterFrom(target, func(c types.ContainerID) bool {
		return !r.scene.Contains(c, origin)
	})
}

// EntryNode picks the node that receives focus when container c itself is focused:
// its enterTo choice if any, else the first focusable member in registration order.
func (r *Resolver) EntryNode(c types.ContainerID) (types.NodeID, bool) {
	if _, ok := r.scene.Container(c); !ok {
		return types.NoNode, false
	}

	target, ok := r.enterContainer(c)
	if !ok {
		for _, n := range r.scene.Members(c) {
			if !n.Disabled {
				target, ok = n.ID, true
				break
			}
		}
	}
	if !ok {
		return types.NoNode, false
	}

	return r.enterFrom(target, func(inner types.ContainerID) bool {
		return inner != c && r.scene.ContainerContains(c, inner)
	}), true
}

func (r *Resolver) enterFrom(target types.NodeID, entered func(types.ContainerID) bool) types.NodeID {
	applied := make(map[types.ContainerID]bool)

	// Each pass either redirects into a not-yet-applied container or stops
	for pass := 0; pass <= len(r.scene.Containers()); pass++ {
		chain := r.scene.Ancestors(target)
		changed := false

		// Outermost first
		for i := len(chain) - 1; i >= 0; i-- {
			c := chain[i]
			if applied[c] || !entered(c) {
				continue
			}
			applied[c] = true

			next, ok := r.enterContainer(c)
			if ok && next != target {
				r.log.Debug().
					Uint32("container", uint32(c)).
					Uint32("from", uint32(target)).
					Uint32("to", uint32(next)).
					Msg("enterTo redirect")
				target = next
				changed = true
				break
			}
		}

		if !changed {
			break
		}
	}

	return target
}

// enterContainer resolves a single container's enterTo policy
func (r *Resolver) enterContainer(c types.ContainerID) (types.NodeID, bool) {
	container, ok := r.scene.Container(c)
	if !ok {
		return types.NoNode, false
	}

	switch container.Policy.EnterTo {
	case types.EnterLastFocused:
		if id, ok := r.state.LastFocused(c); ok && r.scene.Focusable(id) && r.scene.Contains(c, id) {
			return id, true
		}
		// No usable history; fall back to the default element
		return r.defaultElement(container, false)
	case types.EnterDefaultElement:
		return r.defaultElement(container, true)
	default:
		return types.NoNode, false
	}
}

func (r *Resolver) defaultElement(container scene.Container, required bool) (types.NodeID, bool) {
	id := container.Policy.DefaultElement
	if id != types.NoNode && r.scene.Focusable(id) && r.scene.Contains(container.ID, id) {
		return id, true
	}
	if required || id != types.NoNode {
		r.log.Warn().
			Str("container", container.Name).
			Uint32("defaultElement", uint32(id)).
			Msg("inconsistent policy: default element missing, disabled, or outside container")
	}
	return types.NoNode, false
}
