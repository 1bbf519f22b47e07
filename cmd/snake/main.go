// snake is a terminal snake game with three modes, local score history,
// an SSH server and an online leaderboard.
//
// Usage:
//
//	snake list                   - List the game modes
//	snake play <mode>            - Play a mode
//	snake menu                   - Start menu to pick modes interactively
//	snake scores <mode>          - Show high scores for a mode
//	snake serve                  - Start SSH server for remote play
//	snake leaderboard serve|show - Run or query the leaderboard service
//	snake account ...            - Manage the leaderboard account
//	snake settings show|set      - Inspect or change settings
//
// Global flags:
//
//	--fps <rate>       - Set frame rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.snake/scores.db)
//	--settings <path>  - Set settings file (default: ~/.snake/settings.yaml)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its modes
	_ "github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagSettings string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - Classic, Infinite and Arcade snake in your terminal",
	Long: `Snake is a terminal snake game with three modes:

  classic   - walls kill, fill the board (798 points) to win
  infinite  - endless, the palette changes every 798 points
  arcade    - walls wrap, two lethal holes, bonus food, win at 999

Available commands:
  list         - Show all modes
  play         - Play a mode directly
  menu         - Interactive mode picker
  scores       - View and export local high scores
  serve        - Start SSH server for remote play
  leaderboard  - Run or query the online leaderboard
  account      - Register, log in and out of the leaderboard
  settings     - Show or change settings

Examples:
  snake play classic
  snake play arcade --speed fast
  snake menu
  snake serve --ssh :2222
  snake scores infinite --stats`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", "", "Path to settings file (default ~/.snake/settings.yaml)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(settingsCmd)
}
