package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresStats bool
	flagExportOut   string
	flagClearYes    bool
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the top local scores for the specified mode.

Examples:
  snake scores classic
  snake scores arcade --limit 25
  snake scores infinite --stats
  snake scores export classic --out classic.csv`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

var scoresExportCmd = &cobra.Command{
	Use:   "export <mode>",
	Short: "Export every score of a mode as CSV",
	Args:  cobra.ExactArgs(1),
	Run:   runScoresExport,
}

var scoresClearCmd = &cobra.Command{
	Use:   "clear <mode>",
	Short: "Delete the local score history of a mode",
	Args:  cobra.ExactArgs(1),
	Run:   runScoresClear,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show score statistics")
	scoresExportCmd.Flags().StringVar(&flagExportOut, "out", "", "Output file (default stdout)")
	scoresClearCmd.Flags().BoolVar(&flagClearYes, "yes", false, "Confirm deletion")

	scoresCmd.AddCommand(scoresExportCmd)
	scoresCmd.AddCommand(scoresClearCmd)
}

// openScores validates the mode and opens the store, exiting on failure.
func openScores(modeID string) *storage.Store {
	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'snake list' to see available modes.")
		os.Exit(1)
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runScores(_ *cobra.Command, args []string) {
	modeID := args[0]
	store := openScores(modeID)
	defer store.Close()

	game, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		return
	}

	scores, err := store.TopScores(modeID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'snake play %s' to set the first high score!\n", modeID)
		return
	}

	fmt.Println(scoresTable(scores))

	if flagScoresStats {
		if err := printStats(os.Stdout, store, modeID); err != nil {
			fmt.Fprintf(os.Stderr, "Error computing statistics: %v\n", err)
		}
	}
}

// scoresTable renders ranked entries.
func scoresTable(scores []storage.ScoreEntry) string {
	rows := make([][]string, 0, len(scores))
	for i, e := range scores {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", e.Score),
			string(e.Outcome),
			fmt.Sprintf("%d", e.Length),
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderHeader(true).
		BorderRow(false).
		Headers("Rank", "Score", "Result", "Length", "Date").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})
	return t.Render()
}

// printStats writes aggregate counters and the score distribution.
func printStats(w io.Writer, store *storage.Store, modeID string) error {
	gs, err := store.GetGameStats(modeID)
	if err != nil {
		return err
	}
	dist, err := store.ScoreStats(modeID)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Games:   %d (%d won)\n", gs.GamesCount, gs.Wins)
	fmt.Fprintf(w, "Best:    %d\n", gs.HighScore)
	fmt.Fprintf(w, "Mean:    %.1f (std dev %.1f)\n", dist.Mean, dist.StdDev)
	fmt.Fprintf(w, "Median:  %.0f\n", dist.Median)
	fmt.Fprintf(w, "P90:     %.0f\n", dist.P90)
	if !gs.LastPlayed.IsZero() {
		fmt.Fprintf(w, "Last:    %s\n", gs.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runScoresExport(_ *cobra.Command, args []string) {
	modeID := args[0]
	store := openScores(modeID)
	defer store.Close()

	entries, err := store.AllScores(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	var out io.Writer = os.Stdout
	if flagExportOut != "" {
		f, err := os.Create(flagExportOut)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", flagExportOut, err)
			return
		}
		defer f.Close()
		out = f
	}

	if err := storage.ExportCSV(out, entries); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting scores: %v\n", err)
		return
	}
	if flagExportOut != "" {
		fmt.Printf("Exported %d scores to %s\n", len(entries), flagExportOut)
	}
}

func runScoresClear(_ *cobra.Command, args []string) {
	modeID := args[0]
	if !flagClearYes {
		fmt.Fprintf(os.Stderr, "Refusing to delete the %s history without --yes\n", modeID)
		os.Exit(1)
	}
	store := openScores(modeID)
	defer store.Close()

	if err := store.ClearScores(modeID); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
		return
	}
	fmt.Printf("Cleared %s scores\n", modeID)
}
