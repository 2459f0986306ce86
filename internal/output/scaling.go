package output

import (
	"math"

	"github.com/yourusername/spotlight/internal/types"
)

// ScalingContext handles coordinate transformation from scene space to terminal character space
type ScalingContext struct {
	// Scene bounds
	MinX, MinY float64
	MaxX, MaxY float64

	// Terminal dimensions in characters
	TermWidth  int
	TermHeight int

	// Scale factors
	ScaleX float64
	ScaleY float64
}

// NewScalingContext fits the bounding box of rects into a terminal area.
// Two characters on each side are reserved for the border.
func NewScalingContext(rects []types.Rect, termWidth, termHeight int) *ScalingContext {
	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64

	for _, r := range rects {
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.Right())
		maxY = math.Max(maxY, r.Bottom())
	}
	if len(rects) == 0 {
		minX, minY, maxX, maxY = 0, 0, 1, 1
	}

	// Degenerate scenes (a single line or point) still need a non-zero extent
	if maxX-minX < 1 {
		maxX = minX + 1
	}
	if maxY-minY < 1 {
		maxY = minY + 1
	}

	availWidth := termWidth - 4
	availHeight := termHeight - 4
	if availWidth < 10 {
		availWidth = 10
	}
	if availHeight < 5 {
		availHeight = 5
	}

	return &ScalingContext{
		MinX:       minX,
		MinY:       minY,
		MaxX:       maxX,
		MaxY:       maxY,
		TermWidth:  termWidth,
		TermHeight: termHeight,
		ScaleX:     float64(availWidth) / (maxX - minX),
		ScaleY:     float64(availHeight) / (maxY - minY),
	}
}

// ToTerminal converts scene coordinates to terminal coordinates
func (sc *ScalingContext) ToTerminal(x, y float64) (int, int) {
	termX := int(math.Round((x - sc.MinX) * sc.ScaleX))
	termY := int(math.Round((y - sc.MinY) * sc.ScaleY))

	// Offset for the border
	return termX + 2, termY + 2
}

// RectToTerminal converts a scene rect to a terminal box, keeping at least 3x2 cells
func (sc *ScalingContext) RectToTerminal(r types.Rect) (x, y, w, h int) {
	x, y = sc.ToTerminal(r.X, r.Y)
	right, bottom := sc.ToTerminal(r.Right(), r.Bottom())

	w = right - x
	h = bottom - y
	if w < 3 {
		w = 3
	}
	if h < 2 {
		h = 2
	}
	return sc.ClampToCanvas(x, y, w, h)
}

// ClampToCanvas ensures coordinates are within canvas bounds
func (sc *ScalingContext) ClampToCanvas(x, y, w, h int) (int, int, int, int) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}

	if x+w >= sc.TermWidth {
		w = sc.TermWidth - x - 1
	}
	if y+h >= sc.TermHeight {
		h = sc.TermHeight - y - 1
	}

	if w < 3 {
		w = 3
	}
	if h < 2 {
		h = 2
	}

	return x, y, w, h
}
