package config

import (
	"fmt"
	"sort"

	"github.com/yourusername/spotlight/internal/types"
)

// Validate checks the configuration for errors and returns the first one found
func (c *Config) Validate() error {
	if err := validateSettings(&c.Settings); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	idx := newSceneIndex()
	if err := idx.addNodes(c.Nodes, "", "nodes", &placement{}); err != nil {
		return err
	}
	if err := idx.addContainers(c.Containers, "", "containers"); err != nil {
		return err
	}
	if err := idx.checkContainers(c.Containers, "containers"); err != nil {
		return err
	}

	if c.Settings.InitialFocus != "" {
		if _, ok := idx.nodes[c.Settings.InitialFocus]; !ok {
			return fmt.Errorf("settings: initialFocus references unknown node: %s", c.Settings.InitialFocus)
		}
	}

	return nil
}

func validateSettings(s *Settings) error {
	if s.OverlapWeight != nil && *s.OverlapWeight <= 0 {
		return fmt.Errorf("overlapWeight must be positive, got %g", *s.OverlapWeight)
	}
	if s.HistorySize < 0 {
		return fmt.Errorf("historySize cannot be negative")
	}
	return nil
}

// sceneIndex records where every element of a config sits.
// Anonymous containers are keyed by their path, which can't collide with a valid name.
type sceneIndex struct {
	nodes      map[string]string // node ID -> key of its innermost container
	containers map[string]string // container key -> parent key
}

func newSceneIndex() *sceneIndex {
	return &sceneIndex{
		nodes:      make(map[string]string),
		containers: make(map[string]string),
	}
}

func containerKey(cc *ContainerConfig, path string) string {
	if cc.ID != "" {
		return cc.ID
	}
	return path
}

func containerLabel(cc *ContainerConfig, path string) string {
	if cc.ID != "" {
		return "container " + cc.ID
	}
	return path
}

func (idx *sceneIndex) addNodes(nodes []NodeConfig, parent, path string, place *placement) error {
	for i := range nodes {
		n := &nodes[i]
		if n.ID == "" {
			return fmt.Errorf("%s[%d]: missing ID", path, i)
		}
		if !namePattern.MatchString(n.ID) {
			return fmt.Errorf("%s[%d]: invalid ID: %q", path, i, n.ID)
		}
		if _, exists := idx.nodes[n.ID]; exists {
			return fmt.Errorf("duplicate node ID: %s", n.ID)
		}
		if _, err := place.rect(n); err != nil {
			return fmt.Errorf("node %s: %w", n.ID, err)
		}
		idx.nodes[n.ID] = parent
	}
	return nil
}

func (idx *sceneIndex) addContainers(containers []ContainerConfig, parent, path string) error {
	for i := range containers {
		cc := &containers[i]
		p := fmt.Sprintf("%s[%d]", path, i)

		if cc.ID != "" {
			if !namePattern.MatchString(cc.ID) {
				return fmt.Errorf("%s: invalid ID: %q", p, cc.ID)
			}
			if _, exists := idx.containers[cc.ID]; exists {
				return fmt.Errorf("duplicate container ID: %s", cc.ID)
			}
		}

		key := containerKey(cc, p)
		idx.containers[key] = parent

		place, err := newPlacement(cc.Grid)
		if err != nil {
			return fmt.Errorf("%s: %w", containerLabel(cc, p), err)
		}
		if err := idx.addNodes(cc.Nodes, key, p+".nodes", place); err != nil {
			return err
		}
		if err := idx.addContainers(cc.Containers, key, p+".containers"); err != nil {
			return err
		}
	}
	return nil
}

func (idx *sceneIndex) checkContainers(containers []ContainerConfig, path string) error {
	for i := range containers {
		cc := &containers[i]
		p := fmt.Sprintf("%s[%d]", path, i)
		label := containerLabel(cc, p)

		if _, err := types.ParseRestrict(cc.Restrict); err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		enterTo, err := types.ParseEnterTo(cc.EnterTo)
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}

		if cc.DefaultElement != "" {
			if _, ok := idx.nodes[cc.DefaultElement]; !ok {
				return fmt.Errorf("%s: defaultElement references unknown node: %s", label, cc.DefaultElement)
			}
			if !idx.inside(cc.DefaultElement, containerKey(cc, p)) {
				return fmt.Errorf("%s: defaultElement %s is not inside the container", label, cc.DefaultElement)
			}
		} else if enterTo == types.EnterDefaultElement {
			return fmt.Errorf("%s: enterTo default-element requires defaultElement", label)
		}

		if err := idx.checkLeaveFor(cc.LeaveFor); err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}

		if err := idx.checkContainers(cc.Containers, p+".containers"); err != nil {
			return err
		}
	}
	return nil
}

func (idx *sceneIndex) checkLeaveFor(leaveFor map[string]string) error {
	keys := make([]string, 0, len(leaveFor))
	for k := range leaveFor {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := ParseLeaveDirection(k); err != nil {
			return fmt.Errorf("leaveFor: %w", err)
		}
		spec, err := ParseLeaveTarget(leaveFor[k])
		if err != nil {
			return fmt.Errorf("leaveFor.%s: %w", k, err)
		}
		switch spec.Kind {
		case types.LeaveNode:
			if _, ok := idx.nodes[spec.Name]; !ok {
				return fmt.Errorf("leaveFor.%s references unknown node: %s", k, spec.Name)
			}
		case types.LeaveContainer:
			if _, ok := idx.containers[spec.Name]; !ok {
				return fmt.Errorf("leaveFor.%s references unknown container: %s", k, spec.Name)
			}
		}
	}
	return nil
}

// inside reports whether node lies in the container with the given key, directly or nested
func (idx *sceneIndex) inside(node, key string) bool {
	current := idx.nodes[node]
	for i := 0; current != "" && i <= len(idx.containers); i++ {
		if current == key {
			return true
		}
		current = idx.containers[current]
	}
	return false
}
