package snake

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Ticks        uint64
	Mode         string
	Phase        Phase
	Score        int
	Length       int
	HeadX        int
	HeadY        int
	Dir          Direction
	FoodX        int
	FoodY        int
	FoodBonus    bool
	BonusCounter int
	Holes        *HolePair
	Theme        int
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	headX, headY := -1, -1
	if len(g.body) > 0 {
		headX = g.body[0].X
		headY = g.body[0].Y
	}

	return Snapshot{
		Ticks:        g.ticks,
		Mode:         g.mode.ID(),
		Phase:        g.phase,
		Score:        g.score,
		Length:       len(g.body),
		HeadX:        headX,
		HeadY:        headY,
		Dir:          g.committed,
		FoodX:        g.food.Pos.X,
		FoodY:        g.food.Pos.Y,
		FoodBonus:    g.food.Bonus,
		BonusCounter: g.bonusCounter,
		Holes:        g.Holes(),
		Theme:        g.theme,
	}
}
