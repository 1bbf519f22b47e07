package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
)

var flagAccountServer string

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your leaderboard account",
	Long: `Register and log in to a leaderboard server. The session token is
stored in the settings file and used to submit Infinite scores.

Examples:
  snake account register alice
  snake account login alice
  snake account status
  snake account logout`,
}

var accountRegisterCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account and log in",
	Args:  cobra.ExactArgs(1),
	Run:   runAccountRegister,
}

var accountLoginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and store the session token",
	Args:  cobra.ExactArgs(1),
	Run:   runAccountLogin,
}

var accountLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke and forget the session token",
	Run:   runAccountLogout,
}

var accountStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the logged in account",
	Run:   runAccountStatus,
}

func init() {
	accountCmd.PersistentFlags().StringVar(&flagAccountServer, "server", "", "Leaderboard URL (default from settings)")

	accountCmd.AddCommand(accountRegisterCmd)
	accountCmd.AddCommand(accountLoginCmd)
	accountCmd.AddCommand(accountLogoutCmd)
	accountCmd.AddCommand(accountStatusCmd)
}

// accountClient returns the settings and a client for the chosen server.
// A --server override is remembered in the settings.
func accountClient() (config.Settings, *leaderboard.Client) {
	settings := loadSettings()
	if flagAccountServer != "" {
		settings.ServerURL = strings.TrimRight(flagAccountServer, "/")
	}
	return settings, leaderboard.NewClient(settings.ServerURL, settings.Token)
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// readPassword prompts without echo on a terminal and reads a line otherwise.
func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("cannot read password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("cannot read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runAccountRegister(_ *cobra.Command, args []string) {
	username := args[0]
	settings, client := accountClient()

	password, err := readPassword("Password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		confirm, err := readPassword("Repeat password: ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if confirm != password {
			fmt.Fprintln(os.Stderr, "Error: passwords do not match")
			os.Exit(1)
		}
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := client.Register(ctx, username, password); err != nil {
		if errors.Is(err, leaderboard.ErrUserExists) {
			fmt.Fprintf(os.Stderr, "Error: username %q is taken\n", username)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
	fmt.Printf("Registered %s\n", username)

	login(ctx, settings, client, username, password)
}

func runAccountLogin(_ *cobra.Command, args []string) {
	username := args[0]
	settings, client := accountClient()

	password, err := readPassword("Password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := requestContext()
	defer cancel()
	login(ctx, settings, client, username, password)
}

// login obtains a token and persists it with the username.
func login(ctx context.Context, settings config.Settings, client *leaderboard.Client, username, password string) {
	token, err := client.Login(ctx, username, password)
	if errors.Is(err, leaderboard.ErrInvalidCredentials) {
		fmt.Fprintln(os.Stderr, "Error: wrong username or password")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	settings.Username = username
	settings.Token = token
	if !saveSettings(settings) {
		os.Exit(1)
	}
	fmt.Printf("Logged in as %s\n", username)
}

func runAccountLogout(_ *cobra.Command, _ []string) {
	settings, client := accountClient()
	if !settings.Authenticated() {
		fmt.Println("Not logged in.")
		return
	}

	ctx, cancel := requestContext()
	defer cancel()
	if err := client.Logout(ctx); err != nil {
		// The local token is dropped anyway.
		fmt.Fprintf(os.Stderr, "Warning: server logout failed: %v\n", err)
	}

	settings.Token = ""
	if !saveSettings(settings) {
		os.Exit(1)
	}
	fmt.Printf("Logged out %s\n", settings.Username)
}

func runAccountStatus(_ *cobra.Command, _ []string) {
	settings, client := accountClient()
	fmt.Printf("Server: %s\n", settings.ServerURL)
	if !settings.Authenticated() {
		fmt.Println("Not logged in.")
		return
	}

	ctx, cancel := requestContext()
	defer cancel()
	me, err := client.Me(ctx)
	switch {
	case errors.Is(err, leaderboard.ErrUnauthorized):
		fmt.Printf("Session of %s expired. Run 'snake account login %s'.\n", settings.Username, settings.Username)
	case err != nil:
		fmt.Printf("Logged in as %s (server unreachable: %v)\n", settings.Username, err)
	default:
		fmt.Printf("Logged in as %s, high score %d\n", me.Username, me.HighScore)
	}
}
