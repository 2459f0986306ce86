package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/spotlight/internal/focus"
	"github.com/yourusername/spotlight/internal/state"
	"github.com/yourusername/spotlight/internal/types"
)

// A shelf laid out on a 3x2 grid over 0,100,320,210 with a 10px gap:
//
//	+-------------+ +----+
//	| hero        | |side|
//	|             | |    |
//	+-------------+ |    |
//	+----+ +----+   |    |
//	| a  | | b  |   |    |
//	+----+ +----+   +----+
const gridSceneYAML = `
nodes:
  - id: back
    rect: "0,0,100,50"
containers:
  - id: shelf
    restrict: self-only
    grid:
      area: "0,100,320,210"
      columns: ["1fr", "1fr", "100px"]
      rows: ["1fr", "1fr"]
      gap: 10
      areas:
        - [hero, hero, side]
        - [".", ".", side]
    nodes:
      - id: hero
      - id: side
      - id: a
        cell: "1,2"
      - id: b
        cell: "2,2"
`

func TestParseTrackSize(t *testing.T) {
	tests := []struct {
		input    string
		expected types.TrackSize
		wantErr  bool
	}{
		{"1fr", types.TrackSize{Type: types.TrackFr, Value: 1}, false},
		{"2.5fr", types.TrackSize{Type: types.TrackFr, Value: 2.5}, false},
		{"300px", types.TrackSize{Type: types.TrackPx, Value: 300}, false},
		{" auto ", types.TrackSize{Type: types.TrackAuto}, false},
		{"minmax(200px, 1fr)", types.TrackSize{Type: types.TrackMinMax, Min: 200, Max: 1}, false},
		{"1em", types.TrackSize{}, true},
		{"-1fr", types.TrackSize{}, true},
		{"", types.TrackSize{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTrackSize(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		input    string
		expected types.Cell
		wantErr  bool
	}{
		{"2,1", types.Cell{ColumnStart: 2, ColumnEnd: 3, RowStart: 1, RowEnd: 2}, false},
		{"1, 2, 3, 1", types.Cell{ColumnStart: 1, ColumnEnd: 4, RowStart: 2, RowEnd: 3}, false},
		{"0,1", types.Cell{}, true},
		{"1,1,0,1", types.Cell{}, true},
		{"1,1,2", types.Cell{}, true},
		{"a,b", types.Cell{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCell(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBuild_Grid(t *testing.T) {
	cfg, err := LoadConfigFromBytes([]byte(gridSceneYAML), "yaml")
	require.NoError(t, err)

	s, err := cfg.Build()
	require.NoError(t, err)

	// Columns: (320 - 20 - 100) / 2 = 100 each, then 100px. Rows: (210 - 10) / 2 = 100.
	expected := map[string]types.Rect{
		"back": {X: 0, Y: 0, Width: 100, Height: 50},
		"hero": {X: 0, Y: 100, Width: 210, Height: 100},
		"side": {X: 220, Y: 100, Width: 100, Height: 210},
		"a":    {X: 0, Y: 210, Width: 100, Height: 100},
		"b":    {X: 110, Y: 210, Width: 100, Height: 100},
	}
	for name, rect := range expected {
		node, ok := s.NodeByName(name)
		require.True(t, ok, name)
		assert.Equal(t, rect, node.Rect, name)
	}

	// Grid-placed nodes navigate like any other
	fs := state.NewFocusState()
	nav := focus.NewNavigator(s, fs, cfg.NavigatorOptions()...)
	b, _ := s.NodeByName("b")
	require.True(t, nav.Focus(b.ID))

	require.True(t, nav.Move(types.DirRight))
	side, _ := s.NodeByName("side")
	assert.Equal(t, side.ID, nav.Current())

	// The shelf is self-only, so nothing above hero is reachable
	require.True(t, nav.Move(types.DirLeft))
	hero, _ := s.NodeByName("hero")
	assert.Equal(t, hero.ID, nav.Current())
	assert.False(t, nav.Move(types.DirUp))
}

func TestValidate_GridErrors(t *testing.T) {
	base := func() *GridConfig {
		return &GridConfig{Area: "0,0,200,100", Columns: []string{"1fr", "1fr"}, Rows: []string{"1fr"}}
	}

	tests := []struct {
		name     string
		grid     func(g *GridConfig)
		nodes    []NodeConfig
		errorMsg string
	}{
		{
			name:     "bad area",
			grid:     func(g *GridConfig) { g.Area = "0,0" },
			errorMsg: "grid area: invalid rect format",
		},
		{
			name:     "no rows",
			grid:     func(g *GridConfig) { g.Rows = nil },
			errorMsg: "grid rows: at least one track is required",
		},
		{
			name:     "negative gap",
			grid:     func(g *GridConfig) { g.Gap = -1 },
			errorMsg: "grid gap cannot be negative",
		},
		{
			name:     "areas row count",
			grid:     func(g *GridConfig) { g.Areas = [][]string{{"a", "b"}, {"a", "b"}} },
			errorMsg: "2 rows for 1 row tracks",
		},
		{
			name:     "areas column count",
			grid:     func(g *GridConfig) { g.Areas = [][]string{{"a"}} },
			errorMsg: "1 entries for 2 column tracks",
		},
		{
			name: "non-rectangular area",
			grid: func(g *GridConfig) {
				g.Rows = []string{"1fr", "1fr"}
				g.Areas = [][]string{{"a", "a"}, {"a", "b"}}
			},
			errorMsg: "area a is not rectangular",
		},
		{
			name:     "unplaced node",
			grid:     func(g *GridConfig) {},
			nodes:    []NodeConfig{{ID: "x"}},
			errorMsg: "node x: not placed",
		},
		{
			name:     "rect and cell",
			grid:     func(g *GridConfig) {},
			nodes:    []NodeConfig{{ID: "x", Rect: "0,0,1,1", Cell: "1,1"}},
			errorMsg: "node x: rect and cell are mutually exclusive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := base()
			tt.grid(g)
			cfg := Config{Containers: []ContainerConfig{{ID: "shelf", Grid: g, Nodes: tt.nodes}}}

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestValidate_GridRectOverride(t *testing.T) {
	cfg := Config{Containers: []ContainerConfig{{
		ID:    "shelf",
		Grid:  &GridConfig{Area: "0,0,200,100", Columns: []string{"1fr"}, Rows: []string{"1fr"}},
		Nodes: []NodeConfig{{ID: "free", Rect: "500,0,10,10"}, {ID: "placed", Cell: "1,1"}},
	}}}

	s, err := cfg.Build()
	require.NoError(t, err)

	free, _ := s.NodeByName("free")
	placed, _ := s.NodeByName("placed")
	assert.Equal(t, types.Rect{X: 500, Width: 10, Height: 10}, free.Rect)
	assert.Equal(t, types.Rect{Width: 200, Height: 100}, placed.Rect)
}
