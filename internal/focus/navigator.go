package focus

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yourusername/spotlight/internal/logging"
	"github.com/yourusername/spotlight/internal/scene"
	"github.com/yourusername/spotlight/internal/state"
	"github.com/yourusername/spotlight/internal/types"
)

// DefaultHistorySize is how many transitions a navigator remembers
const DefaultHistorySize = 50

// dispatchPhase is the dispatcher state
type dispatchPhase int

const (
	phaseIdle     dispatchPhase = iota // Waiting for input
	phaseFocusing                      // Resolving a move or delivering notifications
)

// NodeFunc receives focus notifications
type NodeFunc func(id types.NodeID)

// Option configures a Navigator
type Option func(*Navigator)

// WithLayout replaces the layout provider (default: rects stored on the scene)
func WithLayout(layout LayoutProvider) Option {
	return func(n *Navigator) { n.layout = layout }
}

// WithRanker replaces the candidate ranker
func WithRanker(r Ranker) Option {
	return func(n *Navigator) { n.ranker = r }
}

// WithLogger sets the logger used for diagnostics
func WithLogger(log zerolog.Logger) Option {
	return func(n *Navigator) { n.log = log }
}

// WithHistory sets the transition history capacity
func WithHistory(size int) Option {
	return func(n *Navigator) { n.history = NewRingBuffer[Transition](size) }
}

// OnFocus registers a handler called after a node gains focus
func OnFocus(fn NodeFunc) Option {
	return func(n *Navigator) { n.onFocus = append(n.onFocus, fn) }
}

// OnLeave registers a handler called when a node loses focus, before OnFocus handlers run
func OnLeave(fn NodeFunc) Option {
	return func(n *Navigator) { n.onLeave = append(n.onLeave, fn) }
}

// Navigator is the focus dispatcher. It owns all writes to its FocusState.
//
// A Navigator is single-threaded: every call runs to completion before the next one.
// Calls made from inside a notification handler are queued and run, in order,
// once the outer call has delivered its notifications.
type Navigator struct {
	scene    *scene.Scene
	state    *state.FocusState
	layout   LayoutProvider
	ranker   Ranker
	log      zerolog.Logger
	resolver *Resolver
	history  *RingBuffer[Transition]

	onFocus []NodeFunc
	onLeave []NodeFunc

	phase  dispatchPhase
	queue  []func()
	paused bool
	closed bool
}

// NewNavigator creates a dispatcher over a scene and focus state
func NewNavigator(s *scene.Scene, fs *state.FocusState, opts ...Option) *Navigator {
	n := &Navigator{
		scene:  s,
		state:  fs,
		ranker: DefaultRanker(),
		log:    logging.Logger,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.layout == nil {
		n.layout = SceneLayout{Scene: s}
	}
	if n.history == nil {
		n.history = NewRingBuffer[Transition](DefaultHistorySize)
	}
	n.resolver = NewResolver(s, fs, n.layout, n.ranker, n.log)
	return n
}

// Close tears the navigator down: handlers are dropped, queued work discarded and
// focus state cleared. Every later call is a no-op.
func (n *Navigator) Close() {
	n.closed = true
	n.queue = nil
	n.onFocus = nil
	n.onLeave = nil
	n.state.Reset()
	n.history.Clear()
}

// Scene returns the navigated scene
func (n *Navigator) Scene() *scene.Scene {
	return n.scene
}

// State returns the focus state the navigator writes
func (n *Navigator) State() *state.FocusState {
	return n.state
}

// Resolver returns the container policy resolver
func (n *Navigator) Resolver() *Resolver {
	return n.resolver
}

// Current returns the focused node, or NoNode
func (n *Navigator) Current() types.NodeID {
	return n.state.Current()
}

// History returns recorded transitions, oldest first
func (n *Navigator) History() []Transition {
	return n.history.GetAll()
}

// Pause stops navigation until Resume; moves and focus calls return false meanwhile
func (n *Navigator) Pause() {
	n.paused = true
}

// Resume re-enables navigation
func (n *Navigator) Resume() {
	n.paused = false
}

// Paused reports whether navigation is paused
func (n *Navigator) Paused() bool {
	return n.paused
}

// Move navigates from the current node in dir.
// Returns false when nothing changed: no current node, nothing in that direction,
// a blocking policy, a paused navigator, or a call queued behind an active one.
func (n *Navigator) Move(dir types.Direction) bool {
	return n.dispatch(func() bool { return n.move(dir) })
}

// Focus moves focus directly to a node
func (n *Navigator) Focus(id types.NodeID) bool {
	return n.dispatch(func() bool {
		return n.focusNode(id, CauseFocus)
	})
}

// FocusContainer focuses the entry node of a container
func (n *Navigator) FocusContainer(c types.ContainerID) bool {
	return n.dispatch(func() bool {
		target, ok := n.resolver.EntryNode(c)
		if !ok {
			n.log.Debug().Uint32("container", uint32(c)).Msg("container has nothing focusable")
			return false
		}
		return n.focusNode(target, CauseContainer)
	})
}

// FocusFirst focuses the first enabled node of the scene
func (n *Navigator) FocusFirst() bool {
	return n.dispatch(func() bool {
		for _, node := range n.scene.Nodes() {
			if !node.Disabled {
				return n.focusNode(node.ID, CauseFocus)
			}
		}
		return false
	})
}

// Mount adds a node to the scene
func (n *Navigator) Mount(spec scene.NodeSpec) (types.NodeID, error) {
	if n.closed {
		return types.NoNode, fmt.Errorf("navigator closed")
	}
	return n.scene.AddNode(spec)
}

// Unmount removes a node and prunes every focus reference to it.
// If it was focused, nothing is focused afterwards and no notification fires.
func (n *Navigator) Unmount(id types.NodeID) error {
	if err := n.scene.RemoveNode(id); err != nil {
		return err
	}
	if n.state.Forget(id) {
		n.log.Debug().Uint32("node", uint32(id)).Msg("focused node unmounted")
	}
	return nil
}

// RemoveContainer removes a container with its nested nodes and prunes focus state
func (n *Navigator) RemoveContainer(c types.ContainerID) error {
	chain := n.containersUnder(c)
	removed, err := n.scene.RemoveContainer(c)
	if err != nil {
		return err
	}
	for _, id := range removed {
		n.state.Forget(id)
	}
	for _, cid := range chain {
		n.state.ForgetContainer(cid)
	}
	return nil
}

func (n *Navigator) containersUnder(c types.ContainerID) []types.ContainerID {
	var result []types.ContainerID
	for _, container := range n.scene.Containers() {
		if n.scene.ContainerContains(c, container.ID) {
			result = append(result, container.ID)
		}
	}
	return result
}

// dispatch runs op unless another op is in flight, then drains queued ops
func (n *Navigator) dispatch(op func() bool) bool {
	if n.closed {
		return false
	}
	if n.phase == phaseFocusing {
		n.queue = append(n.queue, func() { op() })
		n.log.Debug().Int("queued", len(n.queue)).Msg("re-entrant focus request queued")
		return false
	}

	result := n.run(op)

	for len(n.queue) > 0 && !n.closed {
		next := n.queue[0]
		n.queue = n.queue[1:]
		n.run(func() bool { next(); return true })
	}

	return result
}

func (n *Navigator) run(op func() bool) bool {
	n.phase = phaseFocusing
	defer func() { n.phase = phaseIdle }()
	return op()
}

func (n *Navigator) move(dir types.Direction) bool {
	if n.paused || !dir.Valid() {
		return false
	}

	origin := n.state.Current()
	if !n.scene.NodeAlive(origin) {
		n.log.Debug().Str("direction", dir.String()).Msg("move ignored: nothing focused")
		return false
	}

	// Geometry is read once per move so a layout change mid-resolution can't mix snapshots
	snap := takeSnapshot(n.scene, n.layout)
	override := n.resolver.resolveOverride(snap, origin, dir)

	var (
		target types.NodeID
		cause  = CauseMove
	)

	switch override.Decision {
	case Block:
		n.log.Debug().Uint32("origin", uint32(origin)).Str("direction", dir.String()).Msg("move blocked by container policy")
		return false
	case Redirect:
		target = override.Target
		cause = CauseLeaveFor
	default:
		originRect, _ := snap.rect(origin)
		candidates := FilterCandidates(origin, originRect, dir, snap.members(n.scene, override.Scope))
		best, found := n.ranker.SelectBest(originRect, dir, candidates)
		if !found {
			n.log.Debug().Uint32("origin", uint32(origin)).Str("direction", dir.String()).Msg("no candidate")
			return false
		}
		target = n.resolver.EnterTarget(origin, best.ID)
	}

	if target == origin {
		return false
	}
	return n.commit(origin, target, dir.String(), cause)
}

func (n *Navigator) focusNode(id types.NodeID, cause Cause) bool {
	if n.paused || !n.scene.Focusable(id) {
		return false
	}
	origin := n.state.Current()
	if id == origin {
		return false
	}
	return n.commit(origin, id, "", cause)
}

// commit updates focus state and delivers notifications: leave first, then focus
func (n *Navigator) commit(from, to types.NodeID, dir string, cause Cause) bool {
	if !n.scene.Focusable(to) {
		return false
	}

	n.state.SetCurrent(to)
	n.state.SetLastFocused(to, n.scene.Ancestors(to)...)

	n.history.Add(Transition{
		ID:        uuid.New().String(),
		From:      from,
		To:        to,
		Direction: dir,
		Cause:     cause,
		At:        time.Now(),
	})

	n.log.Debug().
		Uint32("from", uint32(from)).
		Uint32("to", uint32(to)).
		Str("cause", string(cause)).
		Msg("focus changed")

	if n.scene.NodeAlive(from) {
		for _, fn := range n.onLeave {
			fn(from)
		}
	}
	for _, fn := range n.onFocus {
		fn(to)
	}
	return true
}
