// Package snake implements the three snake modes: Classic, Infinite and
// Arcade. The package is pure game logic; timing, input and drawing are
// driven by the platform through the registry.Game interface.
package snake

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// CountdownDuration is the 3-2-1 delay before the snake starts moving.
const CountdownDuration = 3 * time.Second

// ScoreReporter receives the final score of an Infinite session.
type ScoreReporter interface {
	Authenticated() bool
	ReportScore(score int) error
}

// Game is the snake controller. It owns all session state and advances
// it one platform frame at a time.
type Game struct {
	mode    Mode
	cfg     ModeConfig
	seed    int64
	spawner *SpawnManager
	logger  *log.Logger

	reporter ScoreReporter
	reported bool

	phase            Phase
	resumePhase      Phase
	restartRequested bool
	countdown        time.Duration

	interval time.Duration
	elapsed  time.Duration
	frame    uint64
	ticks    uint64

	body          []Position // head at index 0
	committed     Direction
	requested     Direction
	growing       bool
	transitioning bool

	food         FoodItem
	holes        *HolePair
	bonusCounter int
	score        int
	theme        int

	screenW, screenH int
	tooSmall         bool
	geom             Geometry
}

// New creates a controller for mode. It starts Idle.
func New(mode Mode) *Game {
	return &Game{
		mode:     mode,
		cfg:      ConfigFor(mode),
		interval: core.DefaultMoveInterval,
		logger:   log.Default(),
	}
}

func init() {
	for _, m := range Modes {
		registry.Register(m.ID(), func() registry.Game {
			return New(m)
		})
	}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.mode.ID()
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake " + g.mode.String()
}

// Mode returns the selected mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// SetScoreReporter installs the collaborator that receives Infinite
// game-over scores.
func (g *Game) SetScoreReporter(r ScoreReporter) {
	g.reporter = r
}

// SetLogger replaces the logger used for reporter failures.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// Reset applies the runtime config and starts a new session. The
// countdown begins immediately.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	g.spawner = NewSpawnManager(cfg.Seed)
	g.interval = cfg.MoveInterval
	if g.interval <= 0 {
		g.interval = core.DefaultMoveInterval
	}
	g.frame = 0
	g.resize(cfg.ScreenW, cfg.ScreenH)

	g.phase = PhaseIdle
	g.Start()
}

// SelectMode changes the mode. Only allowed while Idle.
func (g *Game) SelectMode(m Mode) bool {
	if g.phase != PhaseIdle {
		return false
	}
	g.mode = m
	g.cfg = ConfigFor(m)
	return true
}

// Start leaves Idle and begins the countdown of a fresh session.
func (g *Game) Start() bool {
	if g.phase != PhaseIdle {
		return false
	}
	g.RequestRestart()
	return g.Restart()
}

// RequestRestart marks the session to be rebuilt by the next Restart.
func (g *Game) RequestRestart() {
	g.restartRequested = true
}

// Restart rebuilds every piece of session state. It does nothing unless a
// restart was requested.
func (g *Game) Restart() bool {
	if !g.restartRequested {
		return false
	}
	g.restartRequested = false
	if g.spawner == nil {
		g.spawner = NewSpawnManager(g.seed)
	}

	g.body = []Position{SpawnCell}
	g.committed = DirRight
	g.requested = DirRight
	g.growing = false
	g.transitioning = false
	g.score = 0
	g.bonusCounter = 0
	g.theme = 0
	g.elapsed = 0
	g.ticks = 0
	g.countdown = 0
	g.reported = false
	g.holes = nil

	g.spawnHoles()
	g.spawnFood()

	g.phase = PhaseCountdown
	g.resumePhase = PhaseCountdown
	return true
}

// ReturnToIdle abandons the session.
func (g *Game) ReturnToIdle() {
	g.phase = PhaseIdle
	g.restartRequested = false
}

// SetDirection requests a new heading. It is rejected outside Running and
// when it reverses the committed direction.
func (g *Game) SetDirection(d Direction) bool {
	if g.phase != PhaseRunning || !d.Valid() {
		return false
	}
	if d.IsOpposite(g.committed) {
		return false
	}
	g.requested = d
	return true
}

// TogglePause pauses a running session or countdown, or resumes it.
// The movement accumulator and countdown clock are kept across a pause.
func (g *Game) TogglePause() bool {
	switch g.phase {
	case PhaseRunning, PhaseCountdown:
		g.resumePhase = g.phase
		g.phase = PhasePaused
	case PhasePaused:
		g.phase = g.resumePhase
	default:
		return false
	}
	return true
}

// Step advances the session by one platform frame.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	g.frame++

	if in.Has(core.ActionRestart) && (g.phase.Terminal() || g.phase == PhasePaused) {
		g.RequestRestart()
		g.Restart()
		return core.StepResult{State: g.State()}
	}

	if g.phase == PhaseIdle {
		if in.Has(core.ActionConfirm) {
			g.Start()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.TogglePause()
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if a := in.LastDirection(); a != core.ActionNone {
		if d, ok := directionFor(a); ok {
			g.SetDirection(d)
		}
	}

	var events []core.Event
	switch g.phase {
	case PhaseCountdown:
		events = g.advanceCountdown(dt)
	case PhaseRunning:
		events = g.update(dt)
	}
	return core.StepResult{State: g.State(), Events: events}
}

// advanceCountdown runs the 3-2-1 clock and switches to Running at zero.
// A countdown event is raised when the clock starts and on every new digit.
func (g *Game) advanceCountdown(dt time.Duration) []core.Event {
	changed := g.countdown == 0 && dt > 0
	before := g.CountdownValue()
	g.countdown += dt
	if g.countdown >= CountdownDuration {
		g.countdown = 0
		g.elapsed = 0
		g.phase = PhaseRunning
	} else if g.CountdownValue() != before {
		changed = true
	}
	if changed {
		return []core.Event{core.EventCountdown}
	}
	return nil
}

// update advances the movement clock and resolves what the snake hits.
func (g *Game) update(dt time.Duration) []core.Event {
	switch g.advance(dt) {
	case tickLost:
		return g.lose()
	case tickMoved:
		if g.food.Present() && g.body[0] == g.food.Pos {
			return g.consumeFood()
		}
	}
	return nil
}

// lose ends the session and reports the score once when the mode allows it.
func (g *Game) lose() []core.Event {
	g.phase = PhaseLost
	g.logger.Debug("snake: game over", "mode", g.mode.ID(), "score", g.score, "length", len(g.body))
	if g.reported {
		return []core.Event{core.EventGameOver}
	}
	g.reported = true
	if g.cfg.ReportsGameOvers && g.reporter != nil && g.reporter.Authenticated() {
		if err := g.reporter.ReportScore(g.score); err != nil {
			g.logger.Warn("snake: report score", "score", g.score, "err", err)
		}
	}
	return []core.Event{core.EventGameOver}
}

// spawnHoles places the holes once per session.
func (g *Game) spawnHoles() {
	if g.holes != nil {
		return
	}
	if pair, ok := g.spawner.SpawnHoles(g.body, g.cfg); ok {
		g.holes = &pair
	}
}

// spawnFood places new food and marks it as bonus when eating it will
// trigger the Arcade bonus.
func (g *Game) spawnFood() {
	g.food = g.spawner.SpawnFood(g.body, g.holes, g.cfg)
	g.food.Bonus = g.food.Present() && g.cfg.BonusStreak > 0 && g.bonusCounter == g.cfg.BonusStreak
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.phase.Terminal(),
		Won:      g.phase == PhaseWon,
		Paused:   g.phase == PhasePaused,
	}
}

// Phase returns the controller phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// Body returns a copy of the snake, head first.
func (g *Game) Body() []Position {
	return append([]Position(nil), g.body...)
}

// Length returns the number of snake segments.
func (g *Game) Length() int {
	return len(g.body)
}

// Food returns the current food item.
func (g *Game) Food() FoodItem {
	return g.food
}

// Holes returns the holes of the session, or nil when the mode has none.
func (g *Game) Holes() *HolePair {
	if g.holes == nil {
		return nil
	}
	h := *g.holes
	return &h
}

// Theme returns the palette index.
func (g *Game) Theme() int {
	return g.theme
}

// Direction returns the committed heading.
func (g *Game) Direction() Direction {
	return g.committed
}

// MoveInterval returns the time between steps.
func (g *Game) MoveInterval() time.Duration {
	return g.interval
}

// CountdownValue returns 3, 2 or 1 during the countdown and 0 otherwise.
// A countdown paused mid-way keeps its value.
func (g *Game) CountdownValue() int {
	if g.phase != PhaseCountdown && !(g.phase == PhasePaused && g.resumePhase == PhaseCountdown) {
		return 0
	}
	left := 3 - int(g.countdown/time.Second)
	return core.Clamp(left, 1, 3)
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Frame: %d, Ticks: %d, Mode: %s, Phase: %s\n", g.frame, g.ticks, g.mode.ID(), g.phase)
	fmt.Fprintf(&b, "Score: %d, Length: %d, Direction: %s, Theme: %s\n", g.score, len(g.body), g.committed, PaletteFor(g.theme).Name)
	if len(g.body) > 0 {
		fmt.Fprintf(&b, "Head: %s, Food: %s (bonus %v)\n", g.body[0], g.food.Pos, g.food.Bonus)
	}
	if g.holes != nil {
		fmt.Fprintf(&b, "Holes: %s %s\n", g.holes.A, g.holes.B)
	}
	return b.String()
}
