package config

import (
	"fmt"

	"github.com/yourusername/spotlight/internal/layout"
	"github.com/yourusername/spotlight/internal/types"
)

// placement resolves the rects of the nodes directly inside one container
type placement struct {
	grid  *layout.Grid
	areas map[string]types.Cell
}

// newPlacement parses a grid config. A nil config means every node needs its own rect.
func newPlacement(g *GridConfig) (*placement, error) {
	if g == nil {
		return &placement{}, nil
	}

	area, err := ParseRect(g.Area)
	if err != nil {
		return nil, fmt.Errorf("grid area: %w", err)
	}
	if g.Gap < 0 {
		return nil, fmt.Errorf("grid gap cannot be negative")
	}

	tmpl := types.GridTemplate{Gap: g.Gap}
	if tmpl.Columns, err = parseTracks(g.Columns); err != nil {
		return nil, fmt.Errorf("grid columns: %w", err)
	}
	if tmpl.Rows, err = parseTracks(g.Rows); err != nil {
		return nil, fmt.Errorf("grid rows: %w", err)
	}

	p := &placement{
		grid:  layout.NewGrid(tmpl, area),
		areas: make(map[string]types.Cell),
	}
	if err := p.addAreas(g.Areas); err != nil {
		return nil, err
	}
	return p, nil
}

func parseTracks(values []string) ([]types.TrackSize, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("at least one track is required")
	}
	tracks := make([]types.TrackSize, len(values))
	for i, v := range values {
		track, err := ParseTrackSize(v)
		if err != nil {
			return nil, err
		}
		tracks[i] = track
	}
	return tracks, nil
}

func (p *placement) addAreas(areas [][]string) error {
	if len(areas) == 0 {
		return nil
	}
	if len(areas) != p.grid.Rows() {
		return fmt.Errorf("grid areas: %d rows for %d row tracks", len(areas), p.grid.Rows())
	}
	for i, row := range areas {
		if len(row) != p.grid.Columns() {
			return fmt.Errorf("grid areas row %d: %d entries for %d column tracks", i+1, len(row), p.grid.Columns())
		}
		for _, name := range row {
			if name != "." && name != "" && !namePattern.MatchString(name) {
				return fmt.Errorf("grid areas: invalid area name: %q", name)
			}
		}
	}

	for _, cell := range layout.AreasToCells(areas) {
		if !layout.AreaIsRectangular(areas, cell) {
			return fmt.Errorf("grid areas: area %s is not rectangular", cell.ID)
		}
		p.areas[cell.ID] = cell
	}
	return nil
}

// rect returns a node's rect from its own rect string or its grid placement
func (p *placement) rect(n *NodeConfig) (types.Rect, error) {
	if n.Rect != "" && n.Cell != "" {
		return types.Rect{}, fmt.Errorf("rect and cell are mutually exclusive")
	}
	if n.Rect != "" || p.grid == nil {
		if n.Cell != "" {
			return types.Rect{}, fmt.Errorf("cell %q needs a grid on the enclosing container", n.Cell)
		}
		return ParseRect(n.Rect)
	}

	cell, ok := p.areas[n.ID]
	if n.Cell != "" {
		var err error
		if cell, err = ParseCell(n.Cell); err != nil {
			return types.Rect{}, err
		}
	} else if !ok {
		return types.Rect{}, fmt.Errorf("not placed: needs rect, cell or a grid area named %s", n.ID)
	}

	r, ok := p.grid.CellRect(cell)
	if !ok {
		return types.Rect{}, fmt.Errorf("cell %q is outside the %dx%d grid", n.Cell, p.grid.Columns(), p.grid.Rows())
	}
	return r, nil
}
