package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Palette is a colour theme of the board. Infinite mode cycles through
// Palettes on every level-up.
type Palette struct {
	Name       string
	Head       core.Color
	Body       core.Color
	Background core.Color
}

// Palettes in level order.
var Palettes = [...]Palette{
	{Name: "green", Head: core.ColorBrightGreen, Body: core.ColorGreen, Background: core.ColorDarkGray},
	{Name: "blue", Head: core.ColorBrightBlue, Body: core.ColorBlue, Background: core.ColorDarkGray},
	{Name: "purple", Head: core.ColorBrightMagenta, Body: core.ColorPurple, Background: core.ColorDarkGray},
	{Name: "red", Head: core.ColorBrightRed, Body: core.ColorRed, Background: core.ColorDarkGray},
	{Name: "orange", Head: core.ColorBrightYellow, Body: core.ColorOrange, Background: core.ColorDarkGray},
	{Name: "yellow", Head: core.ColorBrightWhite, Body: core.ColorYellow, Background: core.ColorDarkGray},
}

// ThemeCount is the number of palettes.
const ThemeCount = len(Palettes)

// PaletteFor returns the palette of a theme index.
func PaletteFor(theme int) Palette {
	return Palettes[core.Wrap(theme, ThemeCount)]
}
