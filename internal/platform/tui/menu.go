package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// MenuItemKind tells what a menu row does when selected.
type MenuItemKind int

const (
	MenuItemMode MenuItemKind = iota
	MenuItemSpeed
	MenuItemSound
	MenuItemScores
	MenuItemQuit
)

// MenuItem is one row of the main menu.
type MenuItem struct {
	Kind        MenuItemKind
	GameID      string
	Title       string
	Description string
	Best        int
}

// MenuOptions are the player settings the menu shows and edits.
type MenuOptions struct {
	Speed    config.Speed
	Sound    bool
	LastMode string
	// HideSound removes the sound row (SSH sessions have no local device).
	HideSound bool
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	store          *storage.Store
	audio          audio.Player
	config         core.RuntimeConfig
	opts           MenuOptions
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user picks a mode
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(deps Deps, cfg core.RuntimeConfig, opts MenuOptions) MenuModel {
	deps = deps.withDefaults()
	if _, err := config.ParseSpeed(string(opts.Speed)); err != nil {
		opts.Speed = config.SpeedNormal
	}

	games := registry.List()
	items := make([]MenuItem, 0, len(games)+4)
	cursor := 0
	for _, g := range games {
		item := MenuItem{Kind: MenuItemMode, GameID: g.ID, Title: g.Title}
		if mode, err := snake.ParseMode(g.ID); err == nil {
			item.Title = mode.String()
			item.Description = mode.Description()
		}
		if deps.Store != nil {
			if best, err := deps.Store.HighScore(g.ID); err == nil {
				item.Best = best
			}
		}
		if g.ID == opts.LastMode {
			cursor = len(items)
		}
		items = append(items, item)
	}

	items = append(items, MenuItem{Kind: MenuItemSpeed, Title: "Speed"})
	if !opts.HideSound {
		items = append(items, MenuItem{Kind: MenuItemSound, Title: "Sound"})
	}
	items = append(items,
		MenuItem{Kind: MenuItemScores, Title: "High scores"},
		MenuItem{Kind: MenuItemQuit, Title: "Quit"},
	)

	return MenuModel{
		items:     items,
		cursor:    cursor,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     deps.Store,
		audio:     deps.Audio,
		config:    cfg,
		opts:      opts,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft, MenuActionRight:
		m.adjust(action == MenuActionRight)

	case MenuActionSelect:
		return m.activate()

	case MenuActionScoreboard:
		m.audio.Click()
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// adjust changes the setting under the cursor.
func (m *MenuModel) adjust(forward bool) {
	switch m.items[m.cursor].Kind {
	case MenuItemSpeed:
		if forward {
			m.opts.Speed = m.opts.Speed.Next()
		} else {
			m.opts.Speed = m.opts.Speed.Prev()
		}
		m.audio.Click()
	case MenuItemSound:
		m.opts.Sound = !m.opts.Sound
		m.audio.Click()
	}
}

// activate runs the row under the cursor.
func (m MenuModel) activate() (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	item := m.items[m.cursor]
	switch item.Kind {
	case MenuItemMode:
		m.audio.Click()
		m.selected = &item
		m.opts.LastMode = item.GameID
		return m, tea.Quit // Exit menu to start game
	case MenuItemSpeed, MenuItemSound:
		m.adjust(true)
	case MenuItemScores:
		m.audio.Click()
		m.openScoreboard = true
		return m, tea.Quit
	case MenuItemQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  S N A K E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose a mode", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		if i > 0 && item.Kind != MenuItemMode && m.items[i-1].Kind == MenuItemMode {
			b.WriteString("\n")
		}

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := cursor + m.label(item)
		if i == m.cursor {
			line = menuSelectedStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if item := m.items[m.cursor]; item.Description != "" {
		b.WriteString(centerText(menuDimStyle.Render(item.Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Left/Right: Change  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// label returns the text of one row.
func (m MenuModel) label(item MenuItem) string {
	switch item.Kind {
	case MenuItemMode:
		if item.Best > 0 {
			return fmt.Sprintf("%-10s best %d", item.Title, item.Best)
		}
		return item.Title
	case MenuItemSpeed:
		return fmt.Sprintf("Speed: < %s >", m.opts.Speed)
	case MenuItemSound:
		if m.opts.Sound {
			return "Sound: on"
		}
		return "Sound: off"
	default:
		return item.Title
	}
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// Options returns the settings as edited in the menu.
func (m MenuModel) Options() MenuOptions {
	return m.opts
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	if !strings.Contains(text, "\n") {
		return strings.Repeat(" ", (width-w)/2) + text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Options         MenuOptions
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(deps Deps, cfg core.RuntimeConfig, opts MenuOptions) (MenuResult, error) {
	model := NewMenuModel(deps, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Options: opts}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Options: opts, Quit: true}, nil
	}

	result := MenuResult{
		Config:  m.Config(),
		Options: m.Options(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.GameID = m.Selected().GameID
	} else {
		result.Quit = true
	}

	return result, nil
}
