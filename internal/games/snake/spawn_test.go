package snake

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestFoodSpawnValidity(t *testing.T) {
	for _, mode := range Modes {
		cfg := ConfigFor(mode)
		for seed := int64(1); seed <= 40; seed++ {
			m := NewSpawnManager(seed)
			rng := rand.New(rand.NewSource(seed))

			body := make([]Position, 0, 300)
			for range 300 {
				body = append(body, Position{X: rng.Intn(Cols), Y: rng.Intn(Rows)})
			}
			var holes *HolePair
			if pair, ok := m.SpawnHoles(nil, cfg); ok {
				holes = &pair
			}

			for range 20 {
				food := m.SpawnFood(body, holes, cfg)
				if !food.Present() {
					t.Fatalf("%s seed %d: no food on a partly filled board", mode.ID(), seed)
				}
				if !InBounds(food.Pos) {
					t.Errorf("%s seed %d: food %v off board", mode.ID(), seed, food.Pos)
				}
				if IsFoodCollision(food.Pos, body, holes, cfg) {
					t.Errorf("%s seed %d: food %v on body or hole", mode.ID(), seed, food.Pos)
				}
			}
		}
	}
}

func TestFoodSpawnFullBoard(t *testing.T) {
	body := make([]Position, 0, Cols*Rows)
	for y := range Rows {
		for x := range Cols {
			body = append(body, Position{X: x, Y: y})
		}
	}

	m := NewSpawnManager(1)
	if food := m.SpawnFood(body, nil, ConfigFor(ModeClassic)); food.Present() {
		t.Errorf("food placed on a full board at %v", food.Pos)
	}

	// One free cell is found by the fallback scan.
	free := body[len(body)-1]
	food := m.SpawnFood(body[:len(body)-1], nil, ConfigFor(ModeClassic))
	if food.Pos != free {
		t.Errorf("food = %v, want %v", food.Pos, free)
	}
}

func TestSpawnHoles(t *testing.T) {
	if _, ok := NewSpawnManager(1).SpawnHoles(nil, ConfigFor(ModeClassic)); ok {
		t.Error("classic must not spawn holes")
	}

	body := []Position{SpawnCell, {X: 19, Y: 9}, {X: 18, Y: 9}}
	for seed := int64(1); seed <= 100; seed++ {
		pair, ok := NewSpawnManager(seed).SpawnHoles(body, ConfigFor(ModeArcade))
		if !ok {
			t.Fatalf("seed %d: no holes", seed)
		}
		if IsHoleOverlap(pair.A, pair.B, HUDExclusion) {
			t.Errorf("seed %d: holes overlap: %v", seed, pair)
		}
		for _, p := range body {
			if pair.Covers(p) {
				t.Errorf("seed %d: hole covers snake at %v", seed, p)
			}
		}
		area := holeArea()
		for _, p := range []Position{pair.A, pair.B} {
			if !area.Contains(p.X, p.Y) {
				t.Errorf("seed %d: hole anchor %v outside %v", seed, p, area)
			}
		}
	}
}

func TestSampler(t *testing.T) {
	area := core.NewRect(2, 3, 4, 5)
	s := NewSampler(9)

	for range 200 {
		p := s.Draw(area)
		if !area.Contains(p.X, p.Y) {
			t.Fatalf("draw %v outside %v", p, area)
		}
	}

	target := Position{X: 5, Y: 7}
	p, ok := s.Sample(area, func(p Position) bool { return p != target })
	if !ok || p != target {
		t.Errorf("Sample = %v, %v; want %v", p, ok, target)
	}

	if _, ok := s.Sample(area, func(Position) bool { return true }); ok {
		t.Error("Sample succeeded with every cell rejected")
	}
	if _, ok := s.Sample(core.Rect{}, func(Position) bool { return false }); ok {
		t.Error("Sample succeeded on an empty area")
	}
}

func TestSamplerSeeded(t *testing.T) {
	a, b := NewSampler(77), NewSampler(77)
	for range 50 {
		if pa, pb := a.Draw(Bounds()), b.Draw(Bounds()); pa != pb {
			t.Fatalf("same seed diverged: %v vs %v", pa, pb)
		}
	}
}

func TestSamplerFallbackScansRowMajor(t *testing.T) {
	area := core.NewRect(2, 3, 4, 5)
	s := NewSampler(9)

	// Reject every random draw so the scan takes over, then accept all.
	calls := 0
	p, ok := s.Sample(area, func(Position) bool {
		calls++
		return calls <= MaxSampleAttempts
	})
	if !ok || p != (Position{X: 2, Y: 3}) {
		t.Errorf("fallback = %v, %v; want top-left (2,3)", p, ok)
	}
	if calls != MaxSampleAttempts+1 {
		t.Errorf("reject called %d times, want %d", calls, MaxSampleAttempts+1)
	}
}
