package types

// TrackSize represents a grid track dimension (column or row)
// Supports: "1fr", "2fr", "300px", "auto", "minmax(200px, 1fr)"
type TrackSize struct {
	Type  TrackType // Type of track sizing
	Value float64   // Primary value (for fr/px)
	Min   float64   // Minimum value (for minmax)
	Max   float64   // Maximum value (for minmax), in fr units
}

// TrackType categorizes track sizing methods
type TrackType string

const (
	TrackFr     TrackType = "fr"     // Fractional unit
	TrackPx     TrackType = "px"     // Fixed pixels
	TrackAuto   TrackType = "auto"   // Collapses to zero; nodes have no intrinsic size
	TrackMinMax TrackType = "minmax" // Constrained flexible
)

// Cell is a block of grid tracks a node occupies
type Cell struct {
	ID          string // Area name, empty for explicit cells
	ColumnStart int    // 1-indexed column start
	ColumnEnd   int    // 1-indexed column end (exclusive)
	RowStart    int    // 1-indexed row start
	RowEnd      int    // 1-indexed row end (exclusive)
}

// GridTemplate defines the tracks of a grid
type GridTemplate struct {
	Columns []TrackSize
	Rows    []TrackSize
	Gap     float64 // Gap between tracks in pixels
}
