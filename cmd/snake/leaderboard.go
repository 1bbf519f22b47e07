package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLBAddr     string
	flagLBTokenTTL time.Duration
	flagLBServer   string
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Run or query the online leaderboard",
	Long: `The leaderboard keeps one high score per account. Infinite mode
submits the final score of every lost session when you are logged in.

Examples:
  snake leaderboard serve --addr :8080
  snake leaderboard show`,
}

var leaderboardServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the leaderboard HTTP server",
	Long: `Start the account and leaderboard HTTP API.

Endpoints:
  POST /register           {"username","password"}
  POST /login              {"username","password"} -> {"token"}
  POST /logout             (Bearer token)
  GET  /me                 (Bearer token)
  GET  /leaderboard        (Bearer token)
  POST /update_user_score  {"score"} (Bearer token)`,
	Run: runLeaderboardServe,
}

var leaderboardShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the leaderboard",
	Run:   runLeaderboardShow,
}

func init() {
	leaderboardServeCmd.Flags().StringVar(&flagLBAddr, "addr", ":8080", "HTTP listen address")
	leaderboardServeCmd.Flags().DurationVar(&flagLBTokenTTL, "token-ttl", 30*24*time.Hour, "Session token lifetime")
	leaderboardShowCmd.Flags().StringVar(&flagLBServer, "server", "", "Leaderboard URL (default from settings)")

	leaderboardCmd.AddCommand(leaderboardServeCmd)
	leaderboardCmd.AddCommand(leaderboardShowCmd)
}

func runLeaderboardServe(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "leaderboard",
	})

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if n, err := store.PurgeExpiredTokens(time.Now()); err != nil {
		logger.Warn("could not purge expired tokens", "error", err)
	} else if n > 0 {
		logger.Info("purged expired tokens", "count", n)
	}

	cfg := leaderboard.DefaultServerConfig()
	cfg.Addr = flagLBAddr
	cfg.TokenTTL = flagLBTokenTTL
	srv := leaderboard.NewServer(store, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		store.Close()
		os.Exit(1)
	}
}

func runLeaderboardShow(_ *cobra.Command, _ []string) {
	settings := loadSettings()
	serverURL := settings.ServerURL
	if flagLBServer != "" {
		serverURL = flagLBServer
	}

	client := leaderboard.NewClient(serverURL, settings.Token)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entries, err := client.Leaderboard(ctx)
	if errors.Is(err, leaderboard.ErrUnauthorized) {
		fmt.Fprintln(os.Stderr, "Not logged in. Run 'snake account login' first.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching leaderboard: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Leaderboard - %s\n\n", serverURL)
	if len(entries) == 0 {
		fmt.Println("No scores yet. Finish an Infinite session while logged in to get on the board.")
		return
	}

	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		name := e.Username
		if e.Username == settings.Username {
			name += " (you)"
		}
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), name, fmt.Sprintf("%d", e.HighScore)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderHeader(true).
		Headers("#", "Player", "High score").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})
	fmt.Println(t.Render())
}
