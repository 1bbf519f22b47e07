package leaderboard

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Reporter submits game-over scores through a Client.
type Reporter struct {
	client  *Client
	timeout time.Duration
}

var _ snake.ScoreReporter = (*Reporter)(nil)

// NewReporter creates a reporter that gives each submission timeout to finish.
func NewReporter(client *Client, timeout time.Duration) *Reporter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Reporter{client: client, timeout: timeout}
}

// Authenticated reports whether the underlying client has a token.
func (r *Reporter) Authenticated() bool {
	return r.client != nil && r.client.Authenticated()
}

// ReportScore submits score and waits for the server.
func (r *Reporter) ReportScore(score int) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	_, err := r.client.UpdateHighScore(ctx, score)
	return err
}

// AsyncReporter runs reports on a goroutine so the game loop never blocks
// on the network. Failures are logged.
type AsyncReporter struct {
	inner  snake.ScoreReporter
	logger *log.Logger
	wg     sync.WaitGroup
}

var _ snake.ScoreReporter = (*AsyncReporter)(nil)

// NewAsyncReporter wraps inner.
func NewAsyncReporter(inner snake.ScoreReporter, logger *log.Logger) *AsyncReporter {
	if logger == nil {
		logger = log.Default()
	}
	return &AsyncReporter{inner: inner, logger: logger}
}

// Authenticated delegates to the wrapped reporter.
func (a *AsyncReporter) Authenticated() bool {
	return a.inner.Authenticated()
}

// ReportScore starts the report and returns immediately.
func (a *AsyncReporter) ReportScore(score int) error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.inner.ReportScore(score); err != nil {
			a.logger.Warn("Score report failed", "score", score, "error", err)
			return
		}
		a.logger.Info("Score reported", "score", score)
	}()
	return nil
}

// Wait blocks until all pending reports finish.
func (a *AsyncReporter) Wait() {
	a.wg.Wait()
}
