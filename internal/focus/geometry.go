package focus

import (
	"math"

	"github.com/yourusername/spotlight/internal/scene"
	"github.com/yourusername/spotlight/internal/types"
)

// LayoutProvider supplies the current bounds of a node.
// Returning false means the node can't be measured right now and is skipped.
type LayoutProvider interface {
	Rect(id types.NodeID) (types.Rect, bool)
}

// layoutFunc adapts a function to LayoutProvider
type layoutFunc func(id types.NodeID) (types.Rect, bool)

// Rect implements LayoutProvider
func (f layoutFunc) Rect(id types.NodeID) (types.Rect, bool) {
	return f(id)
}

// SceneLayout reads the bounds stored on the scene itself
type SceneLayout struct {
	Scene *scene.Scene
}

// Rect implements LayoutProvider
func (l SceneLayout) Rect(id types.NodeID) (types.Rect, bool) {
	node, ok := l.Scene.Node(id)
	if !ok {
		return types.Rect{}, false
	}
	return node.Rect, true
}

// RectFrom measures a node through the layout provider
func RectFrom(layout LayoutProvider, id types.NodeID) (types.Rect, bool) {
	if layout == nil {
		return types.Rect{}, false
	}
	return layout.Rect(id)
}

// IsInDirection reports whether candidate lies beyond origin's edge along dir.
// Edges that touch count as reachable.
func IsInDirection(origin, candidate types.Rect, dir types.Direction) bool {
	switch dir {
	case types.DirUp:
		return candidate.Bottom() <= origin.Y
	case types.DirDown:
		return candidate.Y >= origin.Bottom()
	case types.DirLeft:
		return candidate.Right() <= origin.X
	case types.DirRight:
		return candidate.X >= origin.Right()
	default:
		return false
	}
}

// PrimaryDistance is the gap between origin's leading edge and candidate's facing edge.
// Non-negative for any candidate that passes IsInDirection.
func PrimaryDistance(origin, candidate types.Rect, dir types.Direction) float64 {
	switch dir {
	case types.DirUp:
		return origin.Y - candidate.Bottom()
	case types.DirDown:
		return candidate.Y - origin.Bottom()
	case types.DirLeft:
		return origin.X - candidate.Right()
	case types.DirRight:
		return candidate.X - origin.Right()
	default:
		return math.Inf(1)
	}
}

// PerpendicularOverlap is the length shared by both rects on the axis across dir
func PerpendicularOverlap(origin, candidate types.Rect, dir types.Direction) float64 {
	if dir.IsHorizontal() {
		return overlapLength(origin.Y, origin.Bottom(), candidate.Y, candidate.Bottom())
	}
	return overlapLength(origin.X, origin.Right(), candidate.X, candidate.Right())
}

func overlapLength(aStart, aEnd, bStart, bEnd float64) float64 {
	length := min(aEnd, bEnd) - max(aStart, bStart)
	if length < 0 {
		return 0
	}
	return length
}

// overlapsVertically checks if two rects have vertical overlap.
func overlapsVertically(a, b types.Rect) bool {
	return a.Y < b.Bottom() && a.Bottom() > b.Y
}

// overlapsHorizontally checks if two rects have horizontal overlap.
func overlapsHorizontally(a, b types.Rect) bool {
	return a.X < b.Right() && a.Right() > b.X
}

// isAligned reports whether candidate shares a strip with origin across dir
func isAligned(origin, candidate types.Rect, dir types.Direction) bool {
	if dir.IsHorizontal() {
		return overlapsVertically(origin, candidate)
	}
	return overlapsHorizontally(origin, candidate)
}
