// Package layout places nodes on a grid of column and row tracks, so a scene
// file can describe a tile grid without spelling out every rect.
package layout

import (
	"github.com/yourusername/spotlight/internal/types"
)

// Grid is a track template resolved against an area
type Grid struct {
	Area        types.Rect
	Gap         float64
	ColumnSizes []float64
	RowSizes    []float64

	colPositions []float64
	rowPositions []float64
}

// NewGrid computes track sizes and positions for a template laid over area
func NewGrid(tmpl types.GridTemplate, area types.Rect) *Grid {
	columnSizes := CalculateTracks(tmpl.Columns, area.Width, tmpl.Gap)
	rowSizes := CalculateTracks(tmpl.Rows, area.Height, tmpl.Gap)

	return &Grid{
		Area:         area,
		Gap:          tmpl.Gap,
		ColumnSizes:  columnSizes,
		RowSizes:     rowSizes,
		colPositions: CalculateTrackPositions(columnSizes, tmpl.Gap),
		rowPositions: CalculateTrackPositions(rowSizes, tmpl.Gap),
	}
}

// Columns returns the number of column tracks
func (g *Grid) Columns() int {
	return len(g.ColumnSizes)
}

// Rows returns the number of row tracks
func (g *Grid) Rows() int {
	return len(g.RowSizes)
}

// CellRect returns the rect a cell covers in scene coordinates.
// Returns false if the cell does not fit inside the grid's tracks.
func (g *Grid) CellRect(cell types.Cell) (types.Rect, bool) {
	if !cellInBounds(cell, g.Columns(), g.Rows()) {
		return types.Rect{}, false
	}

	bounds := CalculateCellBounds(cell, g.colPositions, g.rowPositions, g.ColumnSizes, g.RowSizes, g.Gap)
	// Offset by the grid's area
	bounds.X += g.Area.X
	bounds.Y += g.Area.Y
	return bounds, true
}

// CalculateTracks converts track definitions to pixel sizes.
//
// Parameters:
//   - tracks: Track size definitions
//   - available: Total available space in pixels
//   - gap: Gap between tracks in pixels
//
// Returns: Array of pixel sizes for each track
func CalculateTracks(tracks []types.TrackSize, available float64, gap float64) []float64 {
	if len(tracks) == 0 {
		return nil
	}

	// Subtract gaps from available space
	available -= gap * float64(len(tracks)-1)

	sizes := make([]float64, len(tracks))
	remaining := available

	// First pass: allocate fixed pixel tracks and collect fr tracks
	var totalFr float64
	var frIndices []int

	for i, track := range tracks {
		switch track.Type {
		case types.TrackPx:
			sizes[i] = track.Value
			remaining -= track.Value
		case types.TrackFr:
			totalFr += track.Value
			frIndices = append(frIndices, i)
		case types.TrackMinMax:
			// Start with minimum, the fr part is added below
			sizes[i] = track.Min
			remaining -= track.Min
			totalFr += track.Max
			frIndices = append(frIndices, i)
		case types.TrackAuto:
			sizes[i] = 0
		}
	}

	// Second pass: distribute remaining space to fr tracks
	if totalFr > 0 && remaining > 0 {
		frUnit := remaining / totalFr

		for _, i := range frIndices {
			track := tracks[i]
			switch track.Type {
			case types.TrackFr:
				sizes[i] = frUnit * track.Value
			case types.TrackMinMax:
				sizes[i] = track.Min + frUnit*track.Max
			}
		}
	}

	return applyMinMaxConstraints(tracks, sizes)
}

// applyMinMaxConstraints keeps minmax tracks at or above their minimum
// and all sizes non-negative.
func applyMinMaxConstraints(tracks []types.TrackSize, sizes []float64) []float64 {
	for i, track := range tracks {
		if track.Type == types.TrackMinMax && sizes[i] < track.Min {
			sizes[i] = track.Min
		}
		if sizes[i] < 0 {
			sizes[i] = 0
		}
	}
	return sizes
}

// CalculateTrackPositions returns the starting position of each track.
// The returned slice has length len(sizes)+1, where positions[i] is the
// start of track i, and positions[len(sizes)] is the end of the last track.
func CalculateTrackPositions(sizes []float64, gap float64) []float64 {
	positions := make([]float64, len(sizes)+1)

	for i, size := range sizes {
		positions[i+1] = positions[i] + size
		if i < len(sizes)-1 {
			positions[i+1] += gap
		}
	}

	return positions
}
