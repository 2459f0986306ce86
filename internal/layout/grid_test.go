package layout

import (
	"math"
	"testing"

	"github.com/yourusername/spotlight/internal/types"
)

func fr(v float64) types.TrackSize { return types.TrackSize{Type: types.TrackFr, Value: v} }
func px(v float64) types.TrackSize { return types.TrackSize{Type: types.TrackPx, Value: v} }

func TestCalculateTracks(t *testing.T) {
	tests := []struct {
		name      string
		tracks    []types.TrackSize
		available float64
		gap       float64
		expected  []float64
	}{
		{"equal fr", []types.TrackSize{fr(1), fr(1)}, 1000, 0, []float64{500, 500}},
		{"gaps come off the top", []types.TrackSize{fr(1), fr(1)}, 1000, 10, []float64{495, 495}},
		// 200px fixed, remaining 800 split 1:2
		{"mixed", []types.TrackSize{px(200), fr(1), fr(2)}, 1000, 0, []float64{200, 266.67, 533.33}},
		// 3000 - 20 gap - 300px = 2680 split 1:2
		{"mixed with gaps", []types.TrackSize{px(300), fr(1), fr(2)}, 3000, 10, []float64{300, 893.33, 1786.67}},
		// Min 200 first, remaining 800 over 2fr: 200+400 and 400
		{"minmax", []types.TrackSize{{Type: types.TrackMinMax, Min: 200, Max: 1}, fr(1)}, 1000, 0, []float64{600, 400}},
		{"minmax keeps minimum when space runs out", []types.TrackSize{{Type: types.TrackMinMax, Min: 200, Max: 1}, px(900)}, 1000, 0, []float64{200, 900}},
		{"auto collapses", []types.TrackSize{{Type: types.TrackAuto}, fr(1)}, 1000, 0, []float64{0, 1000}},
		{"single", []types.TrackSize{fr(1)}, 1000, 0, []float64{1000}},
		{"empty", nil, 1000, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sizes := CalculateTracks(tt.tracks, tt.available, tt.gap)
			if len(sizes) != len(tt.expected) {
				t.Fatalf("got %d sizes %v, want %v", len(sizes), sizes, tt.expected)
			}
			for i := range sizes {
				if !floatEquals(sizes[i], tt.expected[i], 0.01) {
					t.Errorf("sizes[%d] = %v, want ~%v", i, sizes[i], tt.expected[i])
				}
			}
		})
	}
}

func TestCalculateTrackPositions(t *testing.T) {
	sizes := []float64{100, 200, 300}

	// No gap after the last track
	withGap := CalculateTrackPositions(sizes, 10)
	expected := []float64{0, 110, 320, 620}
	for i, exp := range expected {
		if withGap[i] != exp {
			t.Errorf("positions[%d] = %v, want %v", i, withGap[i], exp)
		}
	}

	noGap := CalculateTrackPositions(sizes, 0)
	expected = []float64{0, 100, 300, 600}
	for i, exp := range expected {
		if noGap[i] != exp {
			t.Errorf("positions[%d] = %v, want %v", i, noGap[i], exp)
		}
	}
}

// A 2x2 tile grid over a 210x210 area at (100, 50), 10px gap:
//
//	(100,50) +-----+ +-----+
//	         | 1,1 | | 2,1 |
//	         +-----+ +-----+
//	         +-----+ +-----+
//	         | 1,2 | | 2,2 |
//	         +-----+ +-----+
func TestGrid_CellRect(t *testing.T) {
	g := NewGrid(types.GridTemplate{
		Columns: []types.TrackSize{fr(1), fr(1)},
		Rows:    []types.TrackSize{fr(1), fr(1)},
		Gap:     10,
	}, types.Rect{X: 100, Y: 50, Width: 210, Height: 210})

	if g.Columns() != 2 || g.Rows() != 2 {
		t.Fatalf("grid is %dx%d, want 2x2", g.Columns(), g.Rows())
	}

	tests := []struct {
		name     string
		cell     types.Cell
		expected types.Rect
		ok       bool
	}{
		{"top left", types.Cell{ColumnStart: 1, ColumnEnd: 2, RowStart: 1, RowEnd: 2}, types.Rect{X: 100, Y: 50, Width: 100, Height: 100}, true},
		{"bottom right", types.Cell{ColumnStart: 2, ColumnEnd: 3, RowStart: 2, RowEnd: 3}, types.Rect{X: 210, Y: 160, Width: 100, Height: 100}, true},
		{"spanning row", types.Cell{ColumnStart: 1, ColumnEnd: 3, RowStart: 2, RowEnd: 3}, types.Rect{X: 100, Y: 160, Width: 210, Height: 100}, true},
		{"column out of range", types.Cell{ColumnStart: 2, ColumnEnd: 4, RowStart: 1, RowEnd: 2}, types.Rect{}, false},
		{"empty span", types.Cell{ColumnStart: 2, ColumnEnd: 2, RowStart: 1, RowEnd: 2}, types.Rect{}, false},
		{"zero index", types.Cell{ColumnStart: 0, ColumnEnd: 1, RowStart: 1, RowEnd: 2}, types.Rect{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.CellRect(tt.cell)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("CellRect() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

// Helper function for float comparison
func floatEquals(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}
