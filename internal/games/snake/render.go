package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const hudHeight = 2

// Resize recomputes the board layout for a new screen size.
func (g *Game) Resize(w, h int) {
	g.resize(w, h)
}

func (g *Game) resize(w, h int) {
	g.screenW, g.screenH = w, h
	if w == 0 && h == 0 {
		// Headless: no screen to fit.
		g.tooSmall = false
		g.geom = Geometry{OriginX: 1, OriginY: hudHeight + 1, CellW: 1, CellH: 1}
		return
	}

	cellW := 1
	if w >= Cols*2+2 {
		cellW = 2
	}
	boardW := Cols*cellW + 2
	boardH := Rows + 2
	g.tooSmall = w < boardW || h < hudHeight+boardH
	g.geom = Geometry{
		OriginX: (w-boardW)/2 + 1,
		OriginY: hudHeight + 1,
		CellW:   cellW,
		CellH:   1,
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", Cols+2, Rows+hudHeight+2))
		return
	}
	if g.phase == PhaseIdle {
		g.renderOverlay(dst, "Snake "+g.mode.String(), "Press Enter to start")
		return
	}

	pal := PaletteFor(g.theme)
	board := g.geom.BoardRect()
	dst.DrawBox(core.NewRect(board.X-1, board.Y-1, board.W+2, board.H+2), pal.Body)
	for y := range Rows {
		for x := range Cols {
			r := g.geom.CellRect(Position{X: x, Y: y})
			dst.SetColored(r.X, r.Y, '·', pal.Background)
		}
	}

	if g.holes != nil {
		for _, fp := range g.holes.Footprints() {
			dst.DrawRect(g.geom.FootprintRect(fp), '▒', core.ColorGray)
		}
	}

	if g.food.Present() {
		if g.food.Bonus {
			g.fillCell(dst, g.food.Pos, '$', core.ColorGold)
		} else {
			g.fillCell(dst, g.food.Pos, '*', core.ColorBrightRed)
		}
	}

	// Tail first so the head stays on top of stacked bonus segments.
	for i := len(g.body) - 1; i >= 0; i-- {
		if i == 0 {
			g.fillCell(dst, g.body[i], '@', pal.Head)
		} else {
			g.fillCell(dst, g.body[i], 'o', pal.Body)
		}
	}

	switch g.phase {
	case PhaseCountdown:
		g.renderOverlay(dst, fmt.Sprintf("%d", g.CountdownValue()), "Get ready")
	case PhasePaused:
		g.renderOverlay(dst, "Paused", "P resume  R restart  Esc menu")
	case PhaseWon:
		g.renderOverlay(dst, "You Win!", fmt.Sprintf("Final Score: %d  R again  Esc menu", g.score))
	case PhaseLost:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  R restart  Esc menu", g.score))
	}
}

func (g *Game) fillCell(dst *core.Screen, p Position, r rune, c core.Color) {
	dst.DrawRect(g.geom.CellRect(p), r, c)
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Snake %s  Score: %d  Length: %d  Speed: %s",
		g.mode, g.score, len(g.body), g.interval)
	switch g.mode {
	case ModeInfinite:
		hud += fmt.Sprintf("  Level: %d (%s)", g.theme+1, PaletteFor(g.theme).Name)
	case ModeArcade:
		hud += fmt.Sprintf("  Bonus: %d/%d", g.bonusCounter, g.cfg.BonusStreak+1)
	}
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// renderOverlay draws a centered box with two lines of text.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorWhite)
}
