package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

var flagSpeed string

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode after a 3 second countdown.

Controls:
  Arrows/WASD/hjkl  - Steer
  P/Space           - Pause
  R                 - Restart (when paused or after the game ends)
  Esc/B             - Pause, then leave
  Ctrl+S            - Save a text screenshot to ~/.snake/screenshots
  Q/Ctrl+C          - Quit

Speed options:
  slow    - one step every 350 ms
  normal  - one step every 240 ms
  fast    - one step every 130 ms

Examples:
  snake play classic
  snake play infinite --speed fast
  snake play arcade --seed 42`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast (default from settings)")
}

func runPlay(_ *cobra.Command, args []string) {
	modeID := args[0]

	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'snake list' to see available modes.")
		os.Exit(1)
	}

	settings := loadSettings()
	speed := settings.Speed
	if flagSpeed != "" {
		sp, err := config.ParseSpeed(flagSpeed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		speed = sp
	}

	game, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if settings.LastMode != modeID {
		settings.LastMode = modeID
		saveSettings(settings)
	}

	session := openSession(settings)
	_, runErr := tui.Run(game, session.deps, runtimeConfig(speed))

	// Close before potential exit
	session.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
