package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const reportTimeout = 5 * time.Second

// loadSettings loads the settings or exits with an error.
func loadSettings() config.Settings {
	s, err := config.Load(flagSettings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return s
}

// saveSettings writes the settings, reporting failures without exiting.
func saveSettings(s config.Settings) bool {
	if err := config.Save(config.WritePath(flagSettings), s); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save settings: %v\n", err)
		return false
	}
	return true
}

// fileLogger returns a logger writing to ~/.snake/snake.log. The alt screen
// owns the terminal while a game runs, so nothing is logged to stderr.
func fileLogger() (*log.Logger, func()) {
	path := config.DataPath("snake.log")
	if path == "" {
		return log.New(io.Discard), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
	})
	return logger, func() { f.Close() }
}

// runtimeConfig builds the core config from the terminal size and flags.
func runtimeConfig(speed config.Speed) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickRate:     flagFPS,
		Seed:         flagSeed,
		MoveInterval: speed.Interval(),
	}
}

// localSession holds the collaborators of a game played on this terminal.
type localSession struct {
	deps     tui.Deps
	reporter *leaderboard.AsyncReporter
	logger   *log.Logger
	closeLog func()
}

// openSession wires storage, audio and the leaderboard reporter.
// Every collaborator is optional: failures are logged and play goes on.
func openSession(s config.Settings) *localSession {
	logger, closeLog := fileLogger()
	ls := &localSession{logger: logger, closeLog: closeLog}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	ls.deps = tui.Deps{
		Store:  store,
		Audio:  audio.New(s.Sound, s.SoundVolume, logger),
		Logger: logger,
	}

	if s.Authenticated() {
		client := leaderboard.NewClient(s.ServerURL, s.Token)
		ls.reporter = leaderboard.NewAsyncReporter(leaderboard.NewReporter(client, reportTimeout), logger)
		ls.deps.Reporter = ls.reporter
	}
	return ls
}

// setSound swaps the audio player after the sound setting changed.
func (ls *localSession) setSound(s config.Settings) {
	//nolint:errcheck // Best-effort close of the previous device
	ls.deps.Audio.Close()
	ls.deps.Audio = audio.New(s.Sound, s.SoundVolume, ls.logger)
}

// Close waits for pending score reports and releases every collaborator.
func (ls *localSession) Close() {
	if ls.reporter != nil {
		ls.reporter.Wait()
	}
	if ls.deps.Audio != nil {
		//nolint:errcheck // Best-effort close
		ls.deps.Audio.Close()
	}
	if ls.deps.Store != nil {
		ls.deps.Store.Close()
	}
	ls.closeLog()
}
