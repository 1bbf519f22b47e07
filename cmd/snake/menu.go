package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
Left/Right change the speed and sound rows; changes are saved.
After a game ends, press Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Left/Right   - Change setting
  Tab          - High scores
  Q            - Quit

Examples:
  snake menu
  snake menu --fps 30
  snake menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	settings := loadSettings()
	session := openSession(settings)
	defer session.Close()

	cfg := runtimeConfig(settings.Speed)
	opts := tui.MenuOptions{
		Speed:    settings.Speed,
		Sound:    settings.Sound,
		LastMode: settings.LastMode,
	}

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(session.deps, cfg, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Options != opts {
			settings = applyMenuOptions(session, settings, menuResult.Options)
			opts = menuResult.Options
		}

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(session.deps.Store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh seed for each session unless fixed by flag
		cfg.Seed = flagSeed
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		cfg.MoveInterval = opts.Speed.Interval()

		backToMenu, err := tui.Run(game, session.deps, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			continue
		}
		if !backToMenu {
			break
		}
	}
}

// applyMenuOptions persists the settings edited in the menu.
func applyMenuOptions(session *localSession, settings config.Settings, opts tui.MenuOptions) config.Settings {
	soundChanged := settings.Sound != opts.Sound
	settings.Speed = opts.Speed
	settings.Sound = opts.Sound
	if opts.LastMode != "" {
		settings.LastMode = opts.LastMode
	}
	saveSettings(settings)
	if soundChanged {
		session.setSound(settings)
	}
	return settings
}
