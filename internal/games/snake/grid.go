package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Board dimensions in cells. 42x19 = 798 cells, the Classic winning score.
const (
	Cols = 42
	Rows = 19

	// HoleSize is the side length of a hole footprint in cells.
	HoleSize = 6
)

var (
	// SpawnCell is where the snake head starts every session.
	SpawnCell = Position{X: 20, Y: 9}

	// HUDExclusion is the score badge footprint holes must stay clear of.
	HUDExclusion = core.NewRect(20, 9, 1, 1)

	// NoFood marks the food as absent when no free cell is left.
	NoFood = Position{X: -1, Y: -1}
)

// Position is a cell on the board.
type Position struct {
	X, Y int
}

// Add returns the position one step away in direction d.
func (p Position) Add(d Direction) Position {
	return Position{X: p.X + d.DX, Y: p.Y + d.DY}
}

// Rect returns the 1x1 footprint of the cell.
func (p Position) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, 1, 1)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Bounds returns the playable area in cell units.
func Bounds() core.Rect {
	return core.NewRect(0, 0, Cols, Rows)
}

// InBounds reports whether p lies on the board.
func InBounds(p Position) bool {
	return Bounds().Contains(p.X, p.Y)
}

// WrapPosition folds p back onto the board treating both axes as rings.
func WrapPosition(p Position) Position {
	return Position{X: core.Wrap(p.X, Cols), Y: core.Wrap(p.Y, Rows)}
}

// holeArea is where a hole's top-left corner may land so that the whole
// footprint stays on the board.
func holeArea() core.Rect {
	return core.NewRect(0, 0, Cols-HoleSize, Rows-HoleSize)
}

// Geometry maps board cells to pixels. For the terminal a pixel is one
// character; SpriteGeometry reproduces the 40px sprite layout.
type Geometry struct {
	OriginX, OriginY int
	CellW, CellH     int
}

// SpriteGeometry returns the 40px-per-cell layout anchored at (120, 208).
func SpriteGeometry() Geometry {
	return Geometry{OriginX: 120, OriginY: 208, CellW: 40, CellH: 40}
}

// CellRect returns the pixel rectangle covered by cell p.
func (g Geometry) CellRect(p Position) core.Rect {
	return g.FootprintRect(p.Rect())
}

// FootprintRect converts a rectangle in cell units to pixels.
func (g Geometry) FootprintRect(r core.Rect) core.Rect {
	return core.NewRect(g.OriginX+r.X*g.CellW, g.OriginY+r.Y*g.CellH, r.W*g.CellW, r.H*g.CellH)
}

// BoardRect returns the pixel rectangle of the whole board.
func (g Geometry) BoardRect() core.Rect {
	return g.FootprintRect(Bounds())
}

// PixelToCell returns the cell containing pixel (x, y).
// Pixels outside the board map to cells outside Bounds.
func (g Geometry) PixelToCell(x, y int) Position {
	if g.CellW <= 0 || g.CellH <= 0 {
		return NoFood
	}
	return Position{X: floorDiv(x-g.OriginX, g.CellW), Y: floorDiv(y-g.OriginY, g.CellH)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
