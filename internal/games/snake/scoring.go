package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// consumeFood applies the effects of eating the food under the head.
func (g *Game) consumeFood() []core.Event {
	events := []core.Event{core.EventFoodEaten}
	eaten := g.food.Pos

	bonus := false
	if g.cfg.BonusStreak > 0 {
		g.bonusCounter++
		if g.bonusCounter > g.cfg.BonusStreak {
			g.bonusCounter = 0
			bonus = true
		}
	}

	switch {
	case bonus:
		g.score += g.cfg.BonusScore
		tail := g.body[len(g.body)-1]
		for range g.cfg.BonusExtraCells {
			g.body = append(g.body, tail)
		}
		g.growing = true
		events = append(events, core.EventBonusEaten)
	default:
		g.score++
		g.growing = true
	}

	if g.cfg.LevelEvery > 0 && g.score > 0 && g.score%g.cfg.LevelEvery == 0 {
		g.levelUp(eaten)
		events = append(events, core.EventLevelUp)
	} else {
		g.transitioning = false
	}

	if g.cfg.WinScore > 0 && g.score >= g.cfg.WinScore {
		g.phase = PhaseWon
		g.logger.Debug("snake: won", "mode", g.mode.ID(), "score", g.score)
		return append(events, core.EventWon)
	}

	g.spawnFood()
	if !g.food.Present() && g.cfg.WinScore > 0 {
		// Board is full before the target score.
		g.phase = PhaseWon
		return append(events, core.EventWon)
	}
	return events
}

// levelUp advances the palette and shrinks the snake back to one cell at
// the eaten food.
func (g *Game) levelUp(at Position) {
	g.theme = (g.theme + 1) % ThemeCount
	g.body = []Position{at}
	g.growing = false
	g.transitioning = true
	g.logger.Debug("snake: level up", "score", g.score, "palette", PaletteFor(g.theme).Name)
}
