// Package scene holds the arena of focusable nodes and the containers grouping them.
//
// Nodes and containers are addressed by integer handles. Handles are assigned in
// registration order and never reused, so a handle held after removal can be
// detected as stale instead of silently pointing at a different element.
package scene

import (
	"errors"
	"fmt"

	"github.com/yourusername/spotlight/internal/types"
)

var (
	ErrUnknownNode      = errors.New("unknown node")
	ErrUnknownContainer = errors.New("unknown container")
	ErrDuplicateName    = errors.New("duplicate name")
	ErrCycle            = errors.New("container nesting cycle")
)

// Node is a snapshot of a focusable element
type Node struct {
	ID        types.NodeID
	Name      string
	Rect      types.Rect
	Container types.ContainerID // Innermost container, NoContainer if top-level
	Disabled  bool
}

// NodeSpec describes a node to mount
type NodeSpec struct {
	Name      string
	Rect      types.Rect
	Container types.ContainerID
	Disabled  bool
}

// Container is a snapshot of a named group of nodes
type Container struct {
	ID     types.ContainerID
	Name   string
	Parent types.ContainerID
	Policy types.Policy
}

type nodeSlot struct {
	node  Node
	alive bool
}

type containerSlot struct {
	container Container
	alive     bool
}

// Scene is the node/container arena. It is not safe for concurrent mutation.
type Scene struct {
	nodes          []nodeSlot      // nodes[id-1]
	containers     []containerSlot // containers[id-1]
	nodeNames      map[string]types.NodeID
	containerNames map[string]types.ContainerID
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{
		nodeNames:      make(map[string]types.NodeID),
		containerNames: make(map[string]types.ContainerID),
	}
}

// AddContainer registers a container nested under parent (NoContainer for top-level)
func (s *Scene) AddContainer(name string, parent types.ContainerID, policy types.Policy) (types.ContainerID, error) {
	if name == "" {
		return 0, fmt.Errorf("container name is required")
	}
	if _, exists := s.containerNames[name]; exists {
		return 0, fmt.Errorf("container %s: %w", name, ErrDuplicateName)
	}
	if parent != types.NoContainer && !s.containerAlive(parent) {
		return 0, fmt.Errorf("parent of container %s: %w", name, ErrUnknownContainer)
	}

	id := types.ContainerID(len(s.containers) + 1)
	s.containers = append(s.containers, containerSlot{
		container: Container{ID: id, Name: name, Parent: parent, Policy: policy},
		alive:     true,
	})
	s.containerNames[name] = id
	return id, nil
}

// AddNode mounts a focusable node
func (s *Scene) AddNode(spec NodeSpec) (types.NodeID, error) {
	if spec.Name == "" {
		return 0, fmt.Errorf("node name is required")
	}
	if _, exists := s.nodeNames[spec.Name]; exists {
		return 0, fmt.Errorf("node %s: %w", spec.Name, ErrDuplicateName)
	}
	if spec.Container != types.NoContainer && !s.containerAlive(spec.Container) {
		return 0, fmt.Errorf("container of node %s: %w", spec.Name, ErrUnknownContainer)
	}

	id := types.NodeID(len(s.nodes) + 1)
	s.nodes = append(s.nodes, nodeSlot{
		node: Node{
			ID:        id,
			Name:      spec.Name,
			Rect:      spec.Rect,
			Container: spec.Container,
			Disabled:  spec.Disabled,
		},
		alive: true,
	})
	s.nodeNames[spec.Name] = id
	return id, nil
}

// RemoveNode unmounts a node. Its handle stays allocated but is no longer alive.
func (s *Scene) RemoveNode(id types.NodeID) error {
	slot := s.nodeSlot(id)
	if slot == nil {
		return fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	slot.alive = false
	delete(s.nodeNames, slot.node.Name)
	return nil
}

// RemoveContainer removes a container together with every nested container and node.
// Returns the nodes that were unmounted.
func (s *Scene) RemoveContainer(id types.ContainerID) ([]types.NodeID, error) {
	if !s.containerAlive(id) {
		return nil, fmt.Errorf("container %d: %w", id, ErrUnknownContainer)
	}

	var removed []types.NodeID
	for i := range s.nodes {
		slot := &s.nodes[i]
		if slot.alive && s.containerContains(id, slot.node.Container) {
			slot.alive = false
			delete(s.nodeNames, slot.node.Name)
			removed = append(removed, slot.node.ID)
		}
	}

	// Collect first: containerContains walks parents, which must stay intact while scanning
	var doomed []*containerSlot
	for i := range s.containers {
		slot := &s.containers[i]
		if slot.alive && s.containerContains(id, slot.container.ID) {
			doomed = append(doomed, slot)
		}
	}
	for _, slot := range doomed {
		slot.alive = false
		delete(s.containerNames, slot.container.Name)
	}

	return removed, nil
}

// SetRect updates a node's bounds
func (s *Scene) SetRect(id types.NodeID, r types.Rect) error {
	slot := s.nodeSlot(id)
	if slot == nil {
		return fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	slot.node.Rect = r
	return nil
}

// SetDisabled toggles whether a node can receive focus
func (s *Scene) SetDisabled(id types.NodeID, disabled bool) error {
	slot := s.nodeSlot(id)
	if slot == nil {
		return fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	slot.node.Disabled = disabled
	return nil
}

// SetContainer moves a node into another container (NoContainer for top-level)
func (s *Scene) SetContainer(id types.NodeID, container types.ContainerID) error {
	slot := s.nodeSlot(id)
	if slot == nil {
		return fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	if container != types.NoContainer && !s.containerAlive(container) {
		return fmt.Errorf("container %d: %w", container, ErrUnknownContainer)
	}
	slot.node.Container = container
	return nil
}

// SetPolicy replaces a container's navigation policy
func (s *Scene) SetPolicy(id types.ContainerID, policy types.Policy) error {
	slot := s.containerSlot(id)
	if slot == nil {
		return fmt.Errorf("container %d: %w", id, ErrUnknownContainer)
	}
	slot.container.Policy = policy
	return nil
}

// SetParent re-nests a container. Fails with ErrCycle if parent is id or one of its descendants.
func (s *Scene) SetParent(id, parent types.ContainerID) error {
	slot := s.containerSlot(id)
	if slot == nil {
		return fmt.Errorf("container %d: %w", id, ErrUnknownContainer)
	}
	if parent != types.NoContainer {
		if !s.containerAlive(parent) {
			return fmt.Errorf("parent %d: %w", parent, ErrUnknownContainer)
		}
		if s.containerContains(id, parent) {
			return fmt.Errorf("container %s under %d: %w", slot.container.Name, parent, ErrCycle)
		}
	}
	slot.container.Parent = parent
	return nil
}

// Node returns a live node by handle
func (s *Scene) Node(id types.NodeID) (Node, bool) {
	slot := s.nodeSlot(id)
	if slot == nil {
		return Node{}, false
	}
	return slot.node, true
}

// Container returns a live container by handle
func (s *Scene) Container(id types.ContainerID) (Container, bool) {
	slot := s.containerSlot(id)
	if slot == nil {
		return Container{}, false
	}
	return slot.container, true
}

// NodeByName looks up a live node by name
func (s *Scene) NodeByName(name string) (Node, bool) {
	id, ok := s.nodeNames[name]
	if !ok {
		return Node{}, false
	}
	return s.Node(id)
}

// ContainerByName looks up a live container by name
func (s *Scene) ContainerByName(name string) (Container, bool) {
	id, ok := s.containerNames[name]
	if !ok {
		return Container{}, false
	}
	return s.Container(id)
}

// NodeAlive reports whether the handle refers to a mounted node
func (s *Scene) NodeAlive(id types.NodeID) bool {
	return s.nodeSlot(id) != nil
}

// Focusable reports whether the handle refers to a mounted, enabled node
func (s *Scene) Focusable(id types.NodeID) bool {
	slot := s.nodeSlot(id)
	return slot != nil && !slot.node.Disabled
}

// Nodes returns all live nodes in registration order
func (s *Scene) Nodes() []Node {
	result := make([]Node, 0, len(s.nodes))
	for _, slot := range s.nodes {
		if slot.alive {
			result = append(result, slot.node)
		}
	}
	return result
}

// Containers returns all live containers in registration order
func (s *Scene) Containers() []Container {
	result := make([]Container, 0, len(s.containers))
	for _, slot := range s.containers {
		if slot.alive {
			result = append(result, slot.container)
		}
	}
	return result
}

// Members returns live nodes inside container id, including nested containers,
// in registration order. NoContainer yields every node.
func (s *Scene) Members(id types.ContainerID) []Node {
	if id == types.NoContainer {
		return s.Nodes()
	}
	var result []Node
	for _, slot := range s.nodes {
		if slot.alive && s.containerContains(id, slot.node.Container) {
			result = append(result, slot.node)
		}
	}
	return result
}

// Ancestors returns the containers a node belongs to, innermost first
func (s *Scene) Ancestors(id types.NodeID) []types.ContainerID {
	slot := s.nodeSlot(id)
	if slot == nil {
		return nil
	}
	return s.containerChain(slot.node.Container)
}

// ContainerChain returns id followed by its ancestors, innermost first
func (s *Scene) ContainerChain(id types.ContainerID) []types.ContainerID {
	return s.containerChain(id)
}

// Contains reports whether node id lies inside container c (directly or nested)
func (s *Scene) Contains(c types.ContainerID, id types.NodeID) bool {
	slot := s.nodeSlot(id)
	if slot == nil {
		return false
	}
	if c == types.NoContainer {
		return true
	}
	return s.containerContains(c, slot.node.Container)
}

// ContainerContains reports whether inner is outer or nested inside it
func (s *Scene) ContainerContains(outer, inner types.ContainerID) bool {
	if outer == types.NoContainer {
		return true
	}
	return s.containerContains(outer, inner)
}

// Len returns the number of live nodes
func (s *Scene) Len() int {
	return len(s.nodeNames)
}

func (s *Scene) containerChain(id types.ContainerID) []types.ContainerID {
	var chain []types.ContainerID
	// Bounded by container count so a corrupt parent link can't loop forever
	for i := 0; id != types.NoContainer && i <= len(s.containers); i++ {
		slot := s.containerSlot(id)
		if slot == nil {
			break
		}
		chain = append(chain, id)
		id = slot.container.Parent
	}
	return chain
}

func (s *Scene) containerContains(outer, inner types.ContainerID) bool {
	for _, c := range s.containerChain(inner) {
		if c == outer {
			return true
		}
	}
	return false
}

func (s *Scene) nodeSlot(id types.NodeID) *nodeSlot {
	if id == types.NoNode || int(id) > len(s.nodes) {
		return nil
	}
	slot := &s.nodes[id-1]
	if !slot.alive {
		return nil
	}
	return slot
}

func (s *Scene) containerSlot(id types.ContainerID) *containerSlot {
	if id == types.NoContainer || int(id) > len(s.containers) {
		return nil
	}
	slot := &s.containers[id-1]
	if !slot.alive {
		return nil
	}
	return slot
}

func (s *Scene) containerAlive(id types.ContainerID) bool {
	return s.containerSlot(id) != nil
}
