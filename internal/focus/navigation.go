package focus

import (
	"github.com/yourusername/spotlight/internal/types"
)

// DefaultOverlapWeight balances perpendicular overlap against primary distance.
// At 1.0 one pixel of shared edge offsets one pixel of travel.
const DefaultOverlapWeight = 1.0

// Candidate is the per-move snapshot of a node: its bounds and whether it can take focus
type Candidate struct {
	ID       types.NodeID
	Rect     types.Rect
	Disabled bool
}

// FilterCandidates keeps the nodes reachable from origin in dir.
// Disabled nodes and the origin itself are dropped. Input order is preserved;
// an empty result means there is nothing in that direction.
func FilterCandidates(originID types.NodeID, origin types.Rect, dir types.Direction, nodes []Candidate) []Candidate {
	var result []Candidate
	for _, c := range nodes {
		if c.Disabled || c.ID == originID {
			continue
		}
		if !IsInDirection(origin, c.Rect, dir) {
			continue
		}
		result = append(result, c)
	}
	return result
}

// Ranker scores filtered candidates and picks the best one
type Ranker struct {
	OverlapWeight float64 // Must be > 0
	StraightOnly  bool    // Discard candidates with no perpendicular overlap
}

// DefaultRanker returns a ranker using DefaultOverlapWeight
func DefaultRanker() Ranker {
	return Ranker{OverlapWeight: DefaultOverlapWeight}
}

// Score computes primaryDistance - weight*overlap. Lower is better.
func (r Ranker) Score(origin, candidate types.Rect, dir types.Direction) float64 {
	return PrimaryDistance(origin, candidate, dir) - r.weight()*PerpendicularOverlap(origin, candidate, dir)
}

// SelectBest returns the lowest scoring candidate.
// Ties go to the smaller primary distance, then to the earlier candidate.
func (r Ranker) SelectBest(origin types.Rect, dir types.Direction, candidates []Candidate) (Candidate, bool) {
	var (
		best        Candidate
		bestScore   float64
		bestPrimary float64
		found       bool
	)

	for _, c := range candidates {
		if r.StraightOnly && !isAligned(origin, c.Rect, dir) {
			continue
		}

		primary := PrimaryDistance(origin, c.Rect, dir)
		score := primary - r.weight()*PerpendicularOverlap(origin, c.Rect, dir)

		// Strict comparisons keep the first-seen candidate on a full tie
		if !found || score < bestScore || (score == bestScore && primary < bestPrimary) {
			best, bestScore, bestPrimary, found = c, score, primary, true
		}
	}

	return best, found
}

func (r Ranker) weight() float64 {
	if r.OverlapWeight <= 0 {
		return DefaultOverlapWeight
	}
	return r.OverlapWeight
}

// findTargetNode finds the best node to navigate to from originID in the given direction.
// Returns the target and true if found, or NoNode and false if nothing lies that way.
func findTargetNode(originID types.NodeID, dir types.Direction, nodes []Candidate, ranker Ranker) (types.NodeID, bool) {
	var (
		origin types.Rect
		ok     bool
	)
	for _, c := range nodes {
		if c.ID == originID {
			origin, ok = c.Rect, true
			break
		}
	}
	if !ok {
		return types.NoNode, false
	}

	best, found := ranker.SelectBest(origin, dir, FilterCandidates(originID, origin, dir, nodes))
	if !found {
		return types.NoNode, false
	}
	return best.ID, true
}
