package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/spotlight/internal/config"
	"github.com/yourusername/spotlight/internal/focus"
	"github.com/yourusername/spotlight/internal/logging"
	"github.com/yourusername/spotlight/internal/scene"
	"github.com/yourusername/spotlight/internal/state"
	"github.com/yourusername/spotlight/internal/types"
)

// session ties a scene file and a state file to a live navigator
type session struct {
	cfg       *config.Config
	scene     *scene.Scene
	state     *state.FocusState
	nav       *focus.Navigator
	statePath string
}

// openSession loads the scene, restores saved focus and makes sure something is focused
func openSession(opts ...focus.Option) (*session, error) {
	cfg, err := config.LoadConfig(scenePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene: %w", err)
	}

	s, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	path := resolvedStatePath()
	snap, err := state.LoadStateFrom(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	fs := state.NewFocusState()
	for _, name := range fs.Restore(s, snap) {
		logging.Warn().Str("name", name).Msg("dropped saved focus entry")
	}

	options := append(cfg.NavigatorOptions(),
		focus.WithLogger(logging.Logger),
		focus.OnFocus(func(id types.NodeID) {
			if node, ok := s.Node(id); ok {
				logging.Info().Str("node", node.Name).Msg("focused")
			}
		}),
	)
	nav := focus.NewNavigator(s, fs, append(options, opts...)...)

	ss := &session{cfg: cfg, scene: s, state: fs, nav: nav, statePath: path}
	ss.ensureFocus()
	return ss, nil
}

// ensureFocus focuses settings.initialFocus, or the first enabled node, when nothing is focused
func (ss *session) ensureFocus() {
	if ss.scene.Focusable(ss.nav.Current()) {
		return
	}
	if id, ok := ss.cfg.InitialFocusNode(ss.scene); ok && ss.nav.Focus(id) {
		return
	}
	ss.nav.FocusFirst()
}

// save writes the focus state back to disk
func (ss *session) save() error {
	if err := ss.state.Capture(ss.scene).SaveTo(ss.statePath); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// currentName returns the focused node's name, or "-"
func (ss *session) currentName() string {
	return ss.nodeName(ss.nav.Current())
}

func (ss *session) nodeName(id types.NodeID) string {
	if node, ok := ss.scene.Node(id); ok {
		return node.Name
	}
	return "-"
}

// reload applies a changed scene file to the live scene, keeping handles and focus
// history for nodes and containers that survive. Returns how many nodes were updated,
// added and removed.
func (ss *session) reload() (updated, added, removed int, err error) {
	cfg, err := config.LoadConfig(scenePath)
	if err != nil {
		return 0, 0, 0, err
	}
	fresh, err := cfg.Build()
	if err != nil {
		return 0, 0, 0, err
	}

	// Containers come first so every node below has a home. Build registers parents
	// before their children, so a parent is always mapped by the time it is needed.
	homes := make(map[types.ContainerID]types.ContainerID) // fresh -> live
	keep := make(map[string]bool)
	for _, c := range fresh.Containers() {
		keep[c.Name] = true
		parent := homes[c.Parent]

		live, ok := ss.scene.ContainerByName(c.Name)
		if !ok {
			id, err := ss.scene.AddContainer(c.Name, parent, types.Policy{})
			if err != nil {
				return updated, added, removed, err
			}
			homes[c.ID] = id
			continue
		}
		if live.Parent != parent {
			if err := ss.scene.SetParent(live.ID, parent); err != nil {
				return updated, added, removed, err
			}
		}
		homes[c.ID] = live.ID
	}

	seen := make(map[string]bool)
	for _, n := range fresh.Nodes() {
		seen[n.Name] = true
		container := homes[n.Container]

		if live, ok := ss.scene.NodeByName(n.Name); ok {
			if err := ss.scene.SetRect(live.ID, n.Rect); err != nil {
				return updated, added, removed, err
			}
			if err := ss.scene.SetDisabled(live.ID, n.Disabled); err != nil {
				return updated, added, removed, err
			}
			if live.Container != container {
				if err := ss.scene.SetContainer(live.ID, container); err != nil {
					return updated, added, removed, err
				}
			}
			updated++
			continue
		}

		if _, err := ss.nav.Mount(scene.NodeSpec{Name: n.Name, Rect: n.Rect, Container: container, Disabled: n.Disabled}); err != nil {
			return updated, added, removed, err
		}
		added++
	}

	for _, n := range ss.scene.Nodes() {
		if seen[n.Name] {
			continue
		}
		if err := ss.nav.Unmount(n.ID); err != nil {
			return updated, added, removed, err
		}
		removed++
	}

	// Survivors have moved out by now, so a dropped container takes nothing else with it
	for _, c := range ss.scene.Containers() {
		if keep[c.Name] {
			continue
		}
		if _, ok := ss.scene.Container(c.ID); !ok {
			// Already gone with its parent
			continue
		}
		if err := ss.nav.RemoveContainer(c.ID); err != nil {
			return updated, added, removed, err
		}
		logging.Debug().Str("container", c.Name).Msg("container removed on reload")
	}

	for _, c := range fresh.Containers() {
		if err := ss.scene.SetPolicy(homes[c.ID], translatePolicy(fresh, ss.scene, c.Policy)); err != nil {
			return updated, added, removed, err
		}
	}

	ss.cfg = cfg
	ss.ensureFocus()
	return updated, added, removed, nil
}

// translatePolicy rewrites a policy built against fresh so its handles point into live.
// Targets missing from live are dropped.
func translatePolicy(fresh, live *scene.Scene, p types.Policy) types.Policy {
	out := types.Policy{Restrict: p.Restrict, EnterTo: p.EnterTo}

	if n, ok := fresh.Node(p.DefaultElement); ok {
		if target, ok := live.NodeByName(n.Name); ok {
			out.DefaultElement = target.ID
		}
	}

	for _, dir := range types.AllDirections {
		leave := p.Leave(dir)
		switch leave.Kind {
		case types.LeaveBlock:
			out.SetLeave(dir, types.BlockLeave())
		case types.LeaveNode:
			n, ok := fresh.Node(leave.Node)
			if !ok {
				continue
			}
			if target, ok := live.NodeByName(n.Name); ok {
				out.SetLeave(dir, types.LeaveToNode(target.ID))
			}
		case types.LeaveContainer:
			c, ok := fresh.Container(leave.Container)
			if !ok {
				continue
			}
			if target, ok := live.ContainerByName(c.Name); ok {
				out.SetLeave(dir, types.LeaveToContainer(target.ID))
			}
		}
	}

	return out
}

// resolvedScenePath returns the scene file LoadConfig would read
func resolvedScenePath() string {
	if scenePath != "" {
		return scenePath
	}
	path := config.GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		jsonPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
		if _, err := os.Stat(jsonPath); err == nil {
			return jsonPath
		}
	}
	return path
}

func resolvedStatePath() string {
	if statePath != "" {
		return statePath
	}
	return state.GetStatePath()
}
