package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// FoodItem is the single piece of food on the board.
type FoodItem struct {
	Pos   Position
	Bonus bool // eating it triggers the Arcade bonus
}

// Present reports whether the food is on the board.
func (f FoodItem) Present() bool {
	return f.Pos != NoFood
}

// SpawnManager places food and holes. It only looks at geometry; it never
// inspects score or phase. Food and each hole draw from their own stream.
type SpawnManager struct {
	food  *Sampler
	holeA *Sampler
	holeB *Sampler
}

// NewSpawnManager creates a spawn manager with streams derived from seed.
func NewSpawnManager(seed int64) *SpawnManager {
	return &SpawnManager{
		food:  NewSampler(seed),
		holeA: NewSampler(seed + 1),
		holeB: NewSampler(seed + 2),
	}
}

// SpawnFood picks a cell not on the body and, in modes with holes, not
// inside a hole. The returned food has Pos == NoFood when the board is full.
func (m *SpawnManager) SpawnFood(body []Position, holes *HolePair, mode ModeConfig) FoodItem {
	pos, ok := m.food.Sample(Bounds(), func(p Position) bool {
		return IsFoodCollision(p, body, holes, mode)
	})
	if !ok {
		return FoodItem{Pos: NoFood}
	}
	return FoodItem{Pos: pos}
}

// SpawnHoles places two non-overlapping holes clear of the HUD exclusion
// and of the body. ok is false when the mode has no holes.
func (m *SpawnManager) SpawnHoles(body []Position, mode ModeConfig) (HolePair, bool) {
	if !mode.Holes {
		return HolePair{}, false
	}
	area := holeArea()
	reject := func(a, b Position) bool {
		if IsHoleOverlap(a, b, HUDExclusion) {
			return true
		}
		pair := HolePair{A: a, B: b}
		for _, seg := range body {
			if pair.Covers(seg) {
				return true
			}
		}
		return false
	}

	for range MaxSampleAttempts {
		a, b := m.holeA.Draw(area), m.holeB.Draw(area)
		if !reject(a, b) {
			return HolePair{A: a, B: b}, true
		}
	}
	return scanHoles(area, reject)
}

// scanHoles returns the first valid pair in row-major order.
func scanHoles(area core.Rect, reject func(a, b Position) bool) (HolePair, bool) {
	cells := make([]Position, 0, area.W*area.H)
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			cells = append(cells, Position{X: x, Y: y})
		}
	}
	for i, a := range cells {
		for _, b := range cells[i+1:] {
			if !reject(a, b) {
				return HolePair{A: a, B: b}, true
			}
		}
	}
	return HolePair{}, false
}
