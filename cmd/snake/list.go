package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all modes",
	Long:  `Shows the registered modes with their rules and your local best score.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	// Local stats are optional here
	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.GetAllGamesStats()
		store.Close()
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Best", "Rules")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "----", "-----")

	for _, m := range modes {
		desc := m.Title
		if mode, err := snake.ParseMode(m.ID); err == nil {
			desc = mode.Description()
		}
		best := "-"
		if gs, ok := stats[m.ID]; ok && gs.GamesCount > 0 {
			best = fmt.Sprintf("%d", gs.HighScore)
		}
		fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, m.ID, best, desc)
	}

	fmt.Println()
	fmt.Println("Run 'snake play <id>' to play a mode.")
}
