package state

import (
	"sync"

	"github.com/yourusername/spotlight/internal/types"
)

// FocusState tracks which node is focused and which node each container focused last.
// Only the navigator writes it; the mount lifecycle prunes it through Forget.
type FocusState struct {
	current     types.NodeID
	lastFocused map[types.ContainerID]types.NodeID

	mu sync.RWMutex // Readers may sit on other goroutines
}

// NewFocusState creates an empty focus state
func NewFocusState() *FocusState {
	return &FocusState{
		lastFocused: make(map[types.ContainerID]types.NodeID),
	}
}

// Current returns the focused node, or NoNode
func (fs *FocusState) Current() types.NodeID {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.current
}

// SetCurrent records the focused node
func (fs *FocusState) SetCurrent(id types.NodeID) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.current = id
}

// LastFocused returns the node last focused inside a container
func (fs *FocusState) LastFocused(c types.ContainerID) (types.NodeID, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	id, ok := fs.lastFocused[c]
	return id, ok
}

// SetLastFocused records id as the last focused node for every container in chain
func (fs *FocusState) SetLastFocused(id types.NodeID, chain ...types.ContainerID) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for _, c := range chain {
		fs.lastFocused[c] = id
	}
}

// Forget drops every reference to an unmounted node.
// Returns true if the node was the current one.
func (fs *FocusState) Forget(id types.NodeID) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for c, nid := range fs.lastFocused {
		if nid == id {
			delete(fs.lastFocused, c)
		}
	}

	if fs.current == id {
		fs.current = types.NoNode
		return true
	}
	return false
}

// ForgetContainer drops the last focused entry of a removed container
func (fs *FocusState) ForgetContainer(c types.ContainerID) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	delete(fs.lastFocused, c)
}

// LastFocusedEntries returns a copy of the container -> node map
func (fs *FocusState) LastFocusedEntries() map[types.ContainerID]types.NodeID {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	result := make(map[types.ContainerID]types.NodeID, len(fs.lastFocused))
	for c, id := range fs.lastFocused {
		result[c] = id
	}
	return result
}

// Reset clears all focus state
func (fs *FocusState) Reset() {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.current = types.NoNode
	fs.lastFocused = make(map[types.ContainerID]types.NodeID)
}
