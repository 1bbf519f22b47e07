package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// MaxSampleAttempts bounds rejection sampling before the sampler falls back
// to scanning the area cell by cell.
const MaxSampleAttempts = 4096

// Sampler draws uniformly random cells. Each axis has its own stream.
type Sampler struct {
	xs *rand.Rand
	ys *rand.Rand
}

// NewSampler creates a sampler whose two axis streams derive from seed.
func NewSampler(seed int64) *Sampler {
	return &Sampler{
		xs: rand.New(rand.NewSource(seed)),
		ys: rand.New(rand.NewSource(seed*6364136223846793005 + 1442695040888963407)),
	}
}

// Draw returns a uniformly random cell inside area.
func (s *Sampler) Draw(area core.Rect) Position {
	return Position{
		X: area.X + s.xs.Intn(area.W),
		Y: area.Y + s.ys.Intn(area.H),
	}
}

// Sample draws cells inside area until reject returns false.
// After MaxSampleAttempts draws it scans area in row-major order and
// returns the first accepted cell, so on a nearly full board placement
// skews toward the top-left. ok is false only when every cell of area
// is rejected.
func (s *Sampler) Sample(area core.Rect, reject func(Position) bool) (Position, bool) {
	if area.Empty() {
		return NoFood, false
	}
	for range MaxSampleAttempts {
		p := s.Draw(area)
		if !reject(p) {
			return p, true
		}
	}
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			p := Position{X: x, Y: y}
			if !reject(p) {
				return p, true
			}
		}
	}
	return NoFood, false
}
