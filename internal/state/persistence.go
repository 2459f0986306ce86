package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/yourusername/spotlight/internal/scene"
)

const (
	// StateVersion is the current state file format version
	StateVersion = 1
	// DefaultStateDir is the directory under $HOME for state files
	DefaultStateDir = ".local/state/spotlight"
	// DefaultStateFile is the state file name
	DefaultStateFile = "state.json"
)

// Snapshot is the on-disk form of a FocusState.
// Nodes and containers are stored by name since handles only live as long as a scene.
type Snapshot struct {
	Version     int               `json:"version"`
	Current     string            `json:"current,omitempty"`
	LastFocused map[string]string `json:"lastFocused"` // container name -> node name
	LastUpdated time.Time         `json:"lastUpdated"`
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Version:     StateVersion,
		LastFocused: make(map[string]string),
		LastUpdated: time.Now(),
	}
}

// GetStatePath returns the full path to the state file
func GetStatePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultStateDir, DefaultStateFile)
}

// Capture converts live focus state to a name-based snapshot
func (fs *FocusState) Capture(s *scene.Scene) *Snapshot {
	snap := NewSnapshot()

	if node, ok := s.Node(fs.Current()); ok {
		snap.Current = node.Name
	}
	for c, id := range fs.LastFocusedEntries() {
		container, ok := s.Container(c)
		if !ok {
			continue
		}
		node, ok := s.Node(id)
		if !ok {
			continue
		}
		snap.LastFocused[container.Name] = node.Name
	}

	return snap
}

// Restore loads a snapshot into fs, resolving names against s.
// Entries naming nodes or containers that no longer exist are dropped, as is a disabled current node.
// Returns the names that could not be restored, sorted.
func (fs *FocusState) Restore(s *scene.Scene, snap *Snapshot) []string {
	fs.Reset()
	if snap == nil {
		return nil
	}

	var dropped []string

	if snap.Current != "" {
		if node, ok := s.NodeByName(snap.Current); ok && !node.Disabled {
			fs.SetCurrent(node.ID)
		} else {
			dropped = append(dropped, snap.Current)
		}
	}

	for containerName, nodeName := range snap.LastFocused {
		container, ok := s.ContainerByName(containerName)
		if !ok {
			dropped = append(dropped, containerName)
			continue
		}
		node, ok := s.NodeByName(nodeName)
		if !ok || !s.Contains(container.ID, node.ID) {
			dropped = append(dropped, containerName+"/"+nodeName)
			continue
		}
		fs.SetLastFocused(node.ID, container.ID)
	}

	sort.Strings(dropped)
	return dropped
}

// LoadState loads a snapshot from the default path
func LoadState() (*Snapshot, error) {
	return LoadStateFrom(GetStatePath())
}

// LoadStateFrom loads a snapshot from a specific path, returning an empty one if the file doesn't exist
func LoadStateFrom(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSnapshot(), nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	if snap.Version < StateVersion {
		snap = *migrateSnapshot(&snap)
	}

	if snap.LastFocused == nil {
		snap.LastFocused = make(map[string]string)
	}

	return &snap, nil
}

// Save persists the snapshot to the default path
func (snap *Snapshot) Save() error {
	return snap.SaveTo(GetStatePath())
}

// SaveTo persists the snapshot to a specific path
func (snap *Snapshot) SaveTo(path string) error {
	snap.LastUpdated = time.Now()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write atomically using temp file + rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename state file: %w", err)
	}

	return nil
}

// Summary returns a summary of the snapshot for display
func (snap *Snapshot) Summary() map[string]interface{} {
	return map[string]interface{}{
		"version":     snap.Version,
		"lastUpdated": snap.LastUpdated,
		"current":     snap.Current,
		"lastFocused": snap.LastFocused,
	}
}

// migrateSnapshot handles migration from older state versions
func migrateSnapshot(old *Snapshot) *Snapshot {
	// Version 0 files predate the version field; the layout is otherwise identical
	migrated := NewSnapshot()
	migrated.Current = old.Current
	migrated.LastFocused = old.LastFocused
	migrated.LastUpdated = old.LastUpdated
	return migrated
}
