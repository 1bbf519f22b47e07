package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// MinCollisionLength is the body length at or below which the snake
// cannot bite itself.
const MinCollisionLength = 4

// HolePair is the two lethal holes of an Arcade session.
// A and B are the top-left cells of HoleSize x HoleSize footprints.
type HolePair struct {
	A, B Position
}

// HoleFootprint returns the cells covered by a hole anchored at p.
func HoleFootprint(p Position) core.Rect {
	return core.NewRect(p.X, p.Y, HoleSize, HoleSize)
}

// Footprints returns both hole footprints.
func (h HolePair) Footprints() [2]core.Rect {
	return [2]core.Rect{HoleFootprint(h.A), HoleFootprint(h.B)}
}

// Covers reports whether cell p lies inside either hole.
func (h HolePair) Covers(p Position) bool {
	for _, fp := range h.Footprints() {
		if fp.Intersects(p.Rect()) {
			return true
		}
	}
	return false
}

// IsSelfCollision reports whether head lands on a segment of body, the
// body after the tail moved and before head is pushed. Bodies of
// MinCollisionLength or fewer cells and level transitions never collide.
func IsSelfCollision(head Position, body []Position, transitioning bool) bool {
	if transitioning || len(body) <= MinCollisionLength {
		return false
	}
	for _, p := range body {
		if p == head {
			return true
		}
	}
	return false
}

// IsFoodCollision reports whether food placed at p would be invalid:
// on the body, or, in modes with holes, inside a hole footprint.
func IsFoodCollision(p Position, body []Position, holes *HolePair, mode ModeConfig) bool {
	for _, seg := range body {
		if seg == p {
			return true
		}
	}
	return mode.Holes && holes != nil && holes.Covers(p)
}

// IsHoleOverlap reports whether holes anchored at a and b overlap each
// other or the exclusion zone.
func IsHoleOverlap(a, b Position, exclusion core.Rect) bool {
	fa, fb := HoleFootprint(a), HoleFootprint(b)
	return fa.Intersects(fb) || fa.Intersects(exclusion) || fb.Intersects(exclusion)
}

// IsWallCollision reports whether p is off the board.
func IsWallCollision(p Position) bool {
	return !InBounds(p)
}

// IsHoleCollision reports whether p falls into a hole.
func IsHoleCollision(p Position, holes *HolePair) bool {
	return holes != nil && holes.Covers(p)
}
