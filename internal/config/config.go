package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/spotlight/internal/focus"
	"github.com/yourusername/spotlight/internal/scene"
	"github.com/yourusername/spotlight/internal/types"
)

const (
	DefaultConfigDir  = ".config/spotlight"
	DefaultConfigFile = "scene.yaml"
)

// LoadConfig loads a scene file from the specified path or default location
// If path is empty, uses ~/.config/spotlight/scene.yaml
// Supports both .yaml and .json extensions
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		// Try YAML first, then JSON
		yamlPath := filepath.Join(home, DefaultConfigDir, "scene.yaml")
		jsonPath := filepath.Join(home, DefaultConfigDir, "scene.json")

		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else {
			return nil, fmt.Errorf("no scene file found at %s or %s", yamlPath, jsonPath)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	cfg, err := LoadConfigFromBytes(data, ext)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfigFromBytes loads a scene from raw bytes
// format should be "yaml" or "json"
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	var cfg Config

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML scene: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON scene: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported scene format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}

	return &cfg, nil
}

// GetConfigPath returns the default scene file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// Ranker returns the candidate ranker described by the settings
func (s Settings) Ranker() focus.Ranker {
	r := focus.DefaultRanker()
	if s.OverlapWeight != nil {
		r.OverlapWeight = *s.OverlapWeight
	}
	r.StraightOnly = s.StraightOnly
	return r
}

// NavigatorOptions converts settings into navigator options
func (c *Config) NavigatorOptions() []focus.Option {
	opts := []focus.Option{focus.WithRanker(c.Settings.Ranker())}
	if c.Settings.HistorySize > 0 {
		opts = append(opts, focus.WithHistory(c.Settings.HistorySize))
	}
	return opts
}

// InitialFocusNode resolves settings.initialFocus against a built scene
func (c *Config) InitialFocusNode(s *scene.Scene) (types.NodeID, bool) {
	if c.Settings.InitialFocus == "" {
		return types.NoNode, false
	}
	node, ok := s.NodeByName(c.Settings.InitialFocus)
	if !ok {
		return types.NoNode, false
	}
	return node.ID, true
}

// Build registers every node and container of the config in a new scene.
// Within each scope nodes are registered before nested containers, in file order.
func (c *Config) Build() (*scene.Scene, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}

	b := &builder{
		scene: scene.NewScene(),
		keys:  make(map[string]types.ContainerID),
	}
	if err := b.addNodes(c.Nodes, types.NoContainer, &placement{}); err != nil {
		return nil, err
	}
	if err := b.addContainers(c.Containers, types.NoContainer, "containers"); err != nil {
		return nil, err
	}
	// Policies may point at elements registered later, so they go in a second pass
	if err := b.applyPolicies(c.Containers, "containers"); err != nil {
		return nil, err
	}
	return b.scene, nil
}

type builder struct {
	scene *scene.Scene
	keys  map[string]types.ContainerID // container key -> handle
}

func (b *builder) addNodes(nodes []NodeConfig, container types.ContainerID, place *placement) error {
	for i := range nodes {
		n := &nodes[i]
		r, err := place.rect(n)
		if err != nil {
			return fmt.Errorf("node %s: %w", n.ID, err)
		}
		if _, err := b.scene.AddNode(scene.NodeSpec{
			Name:      n.ID,
			Rect:      r,
			Container: container,
			Disabled:  n.Disabled,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) addContainers(containers []ContainerConfig, parent types.ContainerID, path string) error {
	for i := range containers {
		cc := &containers[i]
		p := fmt.Sprintf("%s[%d]", path, i)

		// Anonymous containers are named by their path so the name is stable across loads
		id, err := b.scene.AddContainer(containerKey(cc, p), parent, types.Policy{})
		if err != nil {
			return err
		}
		b.keys[containerKey(cc, p)] = id

		place, err := newPlacement(cc.Grid)
		if err != nil {
			return fmt.Errorf("%s: %w", containerLabel(cc, p), err)
		}
		if err := b.addNodes(cc.Nodes, id, place); err != nil {
			return err
		}
		if err := b.addContainers(cc.Containers, id, p+".containers"); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) applyPolicies(containers []ContainerConfig, path string) error {
	for i := range containers {
		cc := &containers[i]
		p := fmt.Sprintf("%s[%d]", path, i)
		label := containerLabel(cc, p)

		policy, err := b.policy(cc)
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		if err := b.scene.SetPolicy(b.keys[containerKey(cc, p)], policy); err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}

		if err := b.applyPolicies(cc.Containers, p+".containers"); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) policy(cc *ContainerConfig) (types.Policy, error) {
	var (
		policy types.Policy
		err    error
	)

	if policy.Restrict, err = types.ParseRestrict(cc.Restrict); err != nil {
		return policy, err
	}
	if policy.EnterTo, err = types.ParseEnterTo(cc.EnterTo); err != nil {
		return policy, err
	}
	if cc.DefaultElement != "" {
		node, ok := b.scene.NodeByName(cc.DefaultElement)
		if !ok {
			return policy, fmt.Errorf("defaultElement %s: %w", cc.DefaultElement, scene.ErrUnknownNode)
		}
		policy.DefaultElement = node.ID
	}

	for key, value := range cc.LeaveFor {
		dir, err := ParseLeaveDirection(key)
		if err != nil {
			return policy, err
		}
		target, err := b.leaveTarget(value)
		if err != nil {
			return policy, fmt.Errorf("leaveFor.%s: %w", key, err)
		}
		policy.SetLeave(dir, target)
	}

	return policy, nil
}

func (b *builder) leaveTarget(value string) (types.LeaveTarget, error) {
	spec, err := ParseLeaveTarget(value)
	if err != nil {
		return types.LeaveTarget{}, err
	}

	switch spec.Kind {
	case types.LeaveNode:
		node, ok := b.scene.NodeByName(spec.Name)
		if !ok {
			return types.LeaveTarget{}, fmt.Errorf("%s: %w", spec.Name, scene.ErrUnknownNode)
		}
		return types.LeaveToNode(node.ID), nil
	case types.LeaveContainer:
		container, ok := b.scene.ContainerByName(spec.Name)
		if !ok {
			return types.LeaveTarget{}, fmt.Errorf("%s: %w", spec.Name, scene.ErrUnknownContainer)
		}
		return types.LeaveToContainer(container.ID), nil
	default:
		return types.BlockLeave(), nil
	}
}

// FromScene converts a scene back into its configuration representation.
// Path-derived names of anonymous containers are left out; rebuilding regenerates them.
func FromScene(s *scene.Scene, settings Settings) *Config {
	cfg := &Config{Settings: settings}

	children := make(map[types.ContainerID][]scene.Container)
	for _, c := range s.Containers() {
		children[c.Parent] = append(children[c.Parent], c)
	}
	nodes := make(map[types.ContainerID][]NodeConfig)
	for _, n := range s.Nodes() {
		nodes[n.Container] = append(nodes[n.Container], NodeConfig{
			ID:       n.Name,
			Rect:     FormatRect(n.Rect),
			Disabled: n.Disabled,
		})
	}

	var build func(parent types.ContainerID) []ContainerConfig
	build = func(parent types.ContainerID) []ContainerConfig {
		var result []ContainerConfig
		for _, c := range children[parent] {
			id := c.Name
			if !namePattern.MatchString(id) {
				id = ""
			}
			result = append(result, ContainerConfig{
				ID:             id,
				Restrict:       restrictString(c.Policy.Restrict),
				EnterTo:        c.Policy.EnterTo.String(),
				DefaultElement: nodeName(s, c.Policy.DefaultElement),
				LeaveFor:       leaveForStrings(s, c.Policy),
				Nodes:          nodes[c.ID],
				Containers:     build(c.ID),
			})
		}
		return result
	}

	cfg.Nodes = nodes[types.NoContainer]
	cfg.Containers = build(types.NoContainer)
	return cfg
}

func restrictString(r types.Restrict) string {
	if r == types.RestrictNone {
		return ""
	}
	return r.String()
}

func nodeName(s *scene.Scene, id types.NodeID) string {
	if node, ok := s.Node(id); ok {
		return node.Name
	}
	return ""
}

func leaveForStrings(s *scene.Scene, p types.Policy) map[string]string {
	var result map[string]string
	for _, dir := range types.AllDirections {
		leave := p.Leave(dir)
		spec := LeaveSpec{Kind: leave.Kind}
		switch leave.Kind {
		case types.LeaveUnset:
			continue
		case types.LeaveNode:
			spec.Name = nodeName(s, leave.Node)
		case types.LeaveContainer:
			if c, ok := s.Container(leave.Container); ok {
				spec.Name = c.Name
			}
		}
		if leave.Kind != types.LeaveBlock && spec.Name == "" {
			// Target no longer exists
			continue
		}
		if result == nil {
			result = make(map[string]string)
		}
		result[dir.String()] = FormatLeaveTarget(spec)
	}
	return result
}
