package config

// Config is the root scene file structure
type Config struct {
	Settings   Settings          `yaml:"settings" json:"settings"`
	Nodes      []NodeConfig      `yaml:"nodes,omitempty" json:"nodes,omitempty"`           // Top-level nodes
	Containers []ContainerConfig `yaml:"containers,omitempty" json:"containers,omitempty"` // Top-level containers
}

// Settings tunes the navigator
type Settings struct {
	OverlapWeight *float64 `yaml:"overlapWeight,omitempty" json:"overlapWeight,omitempty"` // Must be > 0 when set
	StraightOnly  bool     `yaml:"straightOnly,omitempty" json:"straightOnly,omitempty"`
	HistorySize   int      `yaml:"historySize,omitempty" json:"historySize,omitempty"`
	InitialFocus  string   `yaml:"initialFocus,omitempty" json:"initialFocus,omitempty"` // Node focused when there is no saved state
}

// ContainerConfig is the configuration representation of a container.
// Containers nest: child nodes and containers are registered after it.
type ContainerConfig struct {
	ID             string            `yaml:"id,omitempty" json:"id,omitempty"`                         // Named by its path when empty
	Restrict       string            `yaml:"restrict,omitempty" json:"restrict,omitempty"`             // "none", "self-first", "self-only"
	EnterTo        string            `yaml:"enterTo,omitempty" json:"enterTo,omitempty"`               // "", "last-focused", "default-element"
	DefaultElement string            `yaml:"defaultElement,omitempty" json:"defaultElement,omitempty"` // Node ID
	LeaveFor       map[string]string `yaml:"leaveFor,omitempty" json:"leaveFor,omitempty"`             // direction -> "node", "@container" or "" to block
	Grid           *GridConfig       `yaml:"grid,omitempty" json:"grid,omitempty"`                     // Places direct child nodes on tracks
	Nodes          []NodeConfig      `yaml:"nodes,omitempty" json:"nodes,omitempty"`
	Containers     []ContainerConfig `yaml:"containers,omitempty" json:"containers,omitempty"`
}

// GridConfig lays a container's direct nodes out on column and row tracks.
// A node is placed by its cell, or by the named area matching its ID.
type GridConfig struct {
	Area    string     `yaml:"area" json:"area"`                       // "x,y,width,height" the tracks divide
	Columns []string   `yaml:"columns" json:"columns"`                 // "1fr", "200px", "auto", "minmax(100px, 1fr)"
	Rows    []string   `yaml:"rows" json:"rows"`                       // Same formats as columns
	Gap     float64    `yaml:"gap,omitempty" json:"gap,omitempty"`     // Pixels between tracks
	Areas   [][]string `yaml:"areas,omitempty" json:"areas,omitempty"` // Named areas, one row per track row, "." for empty
}

// NodeConfig is the configuration representation of a focusable node.
// Exactly one of Rect or grid placement (Cell, or an area named after the node) is used.
type NodeConfig struct {
	ID       string `yaml:"id" json:"id"`
	Rect     string `yaml:"rect,omitempty" json:"rect,omitempty"` // "x,y,width,height"
	Cell     string `yaml:"cell,omitempty" json:"cell,omitempty"` // "column,row" or "column,row,columnSpan,rowSpan", 1-indexed
	Disabled bool   `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}
