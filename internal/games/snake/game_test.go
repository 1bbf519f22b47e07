package snake

import (
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

const testInterval = 100 * time.Millisecond

type fakeReporter struct {
	authed bool
	err    error
	scores []int
}

func (r *fakeReporter) Authenticated() bool { return r.authed }

func (r *fakeReporter) ReportScore(score int) error {
	r.scores = append(r.scores, score)
	return r.err
}

// newRunning returns a game that has finished its countdown.
func newRunning(t *testing.T, mode Mode) *Game {
	t.Helper()
	g := New(mode)
	g.SetLogger(log.New(io.Discard))
	g.Reset(core.RuntimeConfig{Seed: 42, MoveInterval: testInterval})
	g.Step(core.NewInputFrame(), CountdownDuration)
	if g.Phase() != PhaseRunning {
		t.Fatalf("expected running after countdown, got %s", g.Phase())
	}
	return g
}

// place puts the snake at body heading dir, with no food on the board.
func place(g *Game, dir Direction, body ...Position) {
	g.body = append([]Position(nil), body...)
	g.committed = dir
	g.requested = dir
	g.elapsed = 0
	g.growing = false
	g.transitioning = false
	g.food = FoodItem{Pos: NoFood}
}

// tick advances exactly one movement interval.
func tick(g *Game) core.StepResult {
	return g.Step(core.NewInputFrame(), g.interval)
}

func TestRegisteredModes(t *testing.T) {
	for _, m := range Modes {
		if !registry.Exists(m.ID()) {
			t.Fatalf("mode %q not registered", m.ID())
		}
		game, err := registry.Create(m.ID())
		if err != nil {
			t.Fatalf("Create(%q): %v", m.ID(), err)
		}
		if game.ID() != m.ID() {
			t.Errorf("Create(%q).ID() = %q", m.ID(), game.ID())
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(m.ID())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.ID(), got, err)
		}
	}
	if _, err := ParseMode("campaign"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestResetStartsCountdown(t *testing.T) {
	g := New(ModeClassic)
	g.Reset(core.RuntimeConfig{Seed: 7, MoveInterval: testInterval})

	if g.Phase() != PhaseCountdown {
		t.Fatalf("phase = %s, want countdown", g.Phase())
	}
	if !slices.Equal(g.Body(), []Position{SpawnCell}) {
		t.Errorf("body = %v, want [%v]", g.Body(), SpawnCell)
	}
	if g.Score() != 0 {
		t.Errorf("score = %d, want 0", g.Score())
	}
	if !g.Food().Present() || g.Food().Pos == SpawnCell {
		t.Errorf("food not placed validly: %v", g.Food().Pos)
	}
	if g.Holes() != nil {
		t.Error("classic must not have holes")
	}

	steps := []struct {
		dt        time.Duration
		wantValue int
		wantEvent bool
	}{
		{time.Second, 2, true},
		{500 * time.Millisecond, 2, false},
		{500 * time.Millisecond, 1, true},
	}
	for i, s := range steps {
		res := g.Step(core.NewInputFrame(), s.dt)
		if got := g.CountdownValue(); got != s.wantValue {
			t.Errorf("step %d: countdown = %d, want %d", i, got, s.wantValue)
		}
		if got := slices.Contains(res.Events, core.EventCountdown); got != s.wantEvent {
			t.Errorf("step %d: countdown event = %v, want %v", i, got, s.wantEvent)
		}
	}

	g.Step(core.NewInputFrame(), time.Second)
	if g.Phase() != PhaseRunning {
		t.Errorf("phase = %s, want running", g.Phase())
	}
	if g.CountdownValue() != 0 {
		t.Errorf("countdown value outside countdown = %d", g.CountdownValue())
	}
}

func TestDirectionIgnoredDuringCountdown(t *testing.T) {
	g := New(ModeClassic)
	g.Reset(core.RuntimeConfig{Seed: 7, MoveInterval: testInterval})

	if g.SetDirection(DirUp) {
		t.Error("direction accepted during countdown")
	}
	in := core.NewInputFrame()
	in.Set(core.ActionUp)
	g.Step(in, time.Millisecond)
	if g.requested != DirRight {
		t.Errorf("requested = %s, want right", g.requested)
	}
}

func TestCountdownPauseKeepsClock(t *testing.T) {
	g := New(ModeClassic)
	g.Reset(core.RuntimeConfig{Seed: 7, MoveInterval: testInterval})

	g.Step(core.NewInputFrame(), 1500*time.Millisecond)
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause, 0)
	if g.Phase() != PhasePaused {
		t.Fatalf("phase = %s, want paused", g.Phase())
	}

	g.Step(core.NewInputFrame(), 10*time.Second)
	if g.CountdownValue() != 2 {
		t.Errorf("countdown moved while paused: %d", g.CountdownValue())
	}

	g.Step(pause, 0)
	if g.Phase() != PhaseCountdown {
		t.Fatalf("phase = %s, want countdown", g.Phase())
	}
	g.Step(core.NewInputFrame(), 1499*time.Millisecond)
	if g.Phase() != PhaseCountdown {
		t.Fatalf("countdown ended early")
	}
	g.Step(core.NewInputFrame(), time.Millisecond)
	if g.Phase() != PhaseRunning {
		t.Errorf("phase = %s, want running", g.Phase())
	}
}

func TestPauseKeepsAccumulator(t *testing.T) {
	g := newRunning(t, ModeClassic)
	place(g, DirRight, Position{X: 5, Y: 5})

	g.Step(core.NewInputFrame(), 60*time.Millisecond)
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause, 0)
	g.Step(core.NewInputFrame(), 5*time.Second)
	if g.body[0] != (Position{X: 5, Y: 5}) {
		t.Fatalf("snake moved while paused: %v", g.body[0])
	}
	if !g.State().Paused {
		t.Error("state should report paused")
	}

	g.Step(pause, 39*time.Millisecond)
	if g.body[0] != (Position{X: 5, Y: 5}) {
		t.Fatalf("snake moved before interval: %v", g.body[0])
	}
	g.Step(core.NewInputFrame(), time.Millisecond)
	if g.body[0] != (Position{X: 6, Y: 5}) {
		t.Errorf("head = %v, want (6,5)", g.body[0])
	}
}

func TestTickLengthInvariant(t *testing.T) {
	g := newRunning(t, ModeClassic)
	place(g, DirRight, Position{X: 10, Y: 5}, Position{X: 9, Y: 5}, Position{X: 8, Y: 5})

	tick(g)
	if len(g.body) != 3 {
		t.Fatalf("length after plain tick = %d, want 3", len(g.body))
	}
	want := []Position{{X: 11, Y: 5}, {X: 10, Y: 5}, {X: 9, Y: 5}}
	if !slices.Equal(g.body, want) {
		t.Errorf("body = %v, want %v", g.body, want)
	}

	g.growing = true
	tick(g)
	if len(g.body) != 4 {
		t.Fatalf("length after growing tick = %d, want 4", len(g.body))
	}
	if g.growing {
		t.Error("grow flag should clear after one tick")
	}
}

func TestDirectionChangeTicksImmediately(t *testing.T) {
	g := newRunning(t, ModeClassic)
	place(g, DirRight, Position{X: 10, Y: 5}, Position{X: 9, Y: 5})

	in := core.NewInputFrame()
	in.Set(core.ActionUp)
	g.Step(in, time.Millisecond)
	if g.body[0] != (Position{X: 10, Y: 4}) {
		t.Errorf("head = %v, want (10,4)", g.body[0])
	}
	if g.elapsed != 0 {
		t.Errorf("accumulator not reset: %v", g.elapsed)
	}
}

func TestReversalRejected(t *testing.T) {
	g := newRunning(t, ModeClassic)
	place(g, DirRight, Position{X: 10, Y: 5}, Position{X: 9, Y: 5})

	if g.SetDirection(DirLeft) {
		t.Error("reversal accepted")
	}
	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	g.Step(in, 0)
	if g.requested != DirRight || g.committed != DirRight {
		t.Errorf("direction changed to %s/%s", g.requested, g.committed)
	}
	if g.body[0] != (Position{X: 10, Y: 5}) {
		t.Errorf("snake moved on rejected input: %v", g.body[0])
	}

	// Last direction of a frame wins.
	in = core.NewInputFrame()
	in.Set(core.ActionUp)
	in.Set(core.ActionDown)
	g.Step(in, 0)
	if g.committed != DirDown {
		t.Errorf("committed = %s, want down", g.committed)
	}
}

func TestWallCollisionClassic(t *testing.T) {
	g := newRunning(t, ModeClassic)
	body := []Position{{X: 41, Y: 5}, {X: 40, Y: 5}, {X: 39, Y: 5}}
	place(g, DirRight, body...)

	res := tick(g)
	if g.Phase() != PhaseLost {
		t.Fatalf("phase = %s, want lost", g.Phase())
	}
	if !slices.Equal(g.body, body) {
		t.Errorf("body changed on loss: %v", g.body)
	}
	if !slices.Contains(res.Events, core.EventGameOver) {
		t.Error("missing game over event")
	}
	if !res.State.GameOver || res.State.Won {
		t.Errorf("state = %+v", res.State)
	}
}

func TestArcadeWrap(t *testing.T) {
	tests := []struct {
		name  string
		start Position
		dir   Direction
		want  Position
	}{
		{"right", Position{X: 41, Y: 15}, DirRight, Position{X: 0, Y: 15}},
		{"left", Position{X: 0, Y: 15}, DirLeft, Position{X: 41, Y: 15}},
		{"down", Position{X: 35, Y: 18}, DirDown, Position{X: 35, Y: 0}},
		{"up", Position{X: 35, Y: 0}, DirUp, Position{X: 35, Y: 18}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newRunning(t, ModeArcade)
			g.holes = &HolePair{A: Position{X: 10, Y: 0}, B: Position{X: 25, Y: 0}}
			place(g, tt.dir, tt.start, tt.start.Add(tt.dir.Opposite()))

			tick(g)
			if g.Phase() != PhaseRunning {
				t.Fatalf("phase = %s, want running", g.Phase())
			}
			if g.body[0] != tt.want {
				t.Errorf("head = %v, want %v", g.body[0], tt.want)
			}
			if len(g.body) != 2 {
				t.Errorf("length = %d, want 2", len(g.body))
			}
		})
	}
}

func TestArcadeHoleIsLethal(t *testing.T) {
	g := newRunning(t, ModeArcade)
	rep := &fakeReporter{authed: true}
	g.SetScoreReporter(rep)
	g.holes = &HolePair{A: Position{X: 10, Y: 0}, B: Position{X: 25, Y: 0}}
	body := []Position{{X: 9, Y: 2}, {X: 8, Y: 2}}
	place(g, DirRight, body...)

	tick(g)
	if g.Phase() != PhaseLost {
		t.Fatalf("phase = %s, want lost", g.Phase())
	}
	if !slices.Equal(g.body, body) {
		t.Errorf("body changed on loss: %v", g.body)
	}
	if len(rep.scores) != 0 {
		t.Errorf("arcade reported scores: %v", rep.scores)
	}
}

func TestWrapIntoHoleIsLethal(t *testing.T) {
	g := newRunning(t, ModeArcade)
	g.holes = &HolePair{A: Position{X: 0, Y: 10}, B: Position{X: 25, Y: 0}}
	place(g, DirRight, Position{X: 41, Y: 12})

	tick(g)
	if g.Phase() != PhaseLost {
		t.Errorf("phase = %s, want lost", g.Phase())
	}
}

func TestSelfCollision(t *testing.T) {
	tests := []struct {
		name     string
		body     []Position
		growing  bool
		wantLost bool
	}{
		{
			// Four cells remain once the tail moves, so the bite is allowed.
			name: "five cells moving",
			body: []Position{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {4, 6}},
		},
		{
			// Growth keeps the tail but the body is still four cells.
			name:    "four cells growing",
			body:    []Position{{5, 5}, {6, 5}, {6, 6}, {5, 6}},
			growing: true,
		},
		{
			name:     "six cells moving",
			body:     []Position{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {4, 6}, {3, 6}},
			wantLost: true,
		},
		{
			name:     "five cells growing",
			body:     []Position{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {4, 6}},
			growing:  true,
			wantLost: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newRunning(t, ModeClassic)
			place(g, DirLeft, tt.body...)
			g.growing = tt.growing
			if !g.SetDirection(DirDown) {
				t.Fatal("turn rejected")
			}
			g.Step(core.NewInputFrame(), 0)

			if lost := g.Phase() == PhaseLost; lost != tt.wantLost {
				t.Fatalf("phase = %s, want lost=%v", g.Phase(), tt.wantLost)
			}
			if tt.wantLost {
				if len(g.body) != len(tt.body) {
					t.Errorf("body changed on loss: %v", g.body)
				}
				return
			}
			if g.body[0] != (Position{X: 5, Y: 6}) {
				t.Errorf("head = %v, want (5,6)", g.body[0])
			}
			want := len(tt.body)
			if tt.growing {
				want++
			}
			if len(g.body) != want {
				t.Errorf("length = %d, want %d", len(g.body), want)
			}
		})
	}
}

func TestScoreReporting(t *testing.T) {
	tests := []struct {
		name   string
		mode   Mode
		authed bool
		err    error
		want   int
	}{
		{"infinite authenticated", ModeInfinite, true, nil, 1},
		{"infinite anonymous", ModeInfinite, false, nil, 0},
		{"infinite failing reporter", ModeInfinite, true, errors.New("offline"), 1},
		{"classic", ModeClassic, true, nil, 0},
		{"arcade", ModeArcade, true, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newRunning(t, tt.mode)
			rep := &fakeReporter{authed: tt.authed, err: tt.err}
			g.SetScoreReporter(rep)
			g.holes = nil
			g.score = 42
			place(g, DirRight, Position{X: 41, Y: 5})
			if tt.mode == ModeArcade {
				g.holes = &HolePair{A: Position{X: 0, Y: 0}, B: Position{X: 10, Y: 0}}
			}

			tick(g)
			for range 10 {
				tick(g)
			}
			if g.Phase() != PhaseLost {
				t.Fatalf("phase = %s, want lost", g.Phase())
			}
			if len(rep.scores) != tt.want {
				t.Fatalf("reports = %v, want %d", rep.scores, tt.want)
			}
			if tt.want == 1 && rep.scores[0] != 42 {
				t.Errorf("reported %d, want 42", rep.scores[0])
			}
		})
	}
}

func TestClassicWin(t *testing.T) {
	g := newRunning(t, ModeClassic)

	var events []core.Event
	for i := range ConfigFor(ModeClassic).WinScore {
		if g.Phase() != PhaseRunning {
			t.Fatalf("session ended early at score %d (%s)", i, g.Phase())
		}
		g.food = FoodItem{Pos: g.body[0]}
		events = g.consumeFood()
	}

	if g.Score() != 798 {
		t.Errorf("score = %d, want 798", g.Score())
	}
	if g.Phase() != PhaseWon {
		t.Fatalf("phase = %s, want won", g.Phase())
	}
	if !slices.Contains(events, core.EventWon) {
		t.Error("missing won event")
	}
	if !g.State().Won || !g.State().GameOver {
		t.Errorf("state = %+v", g.State())
	}
}

func TestArcadeWinWithBonusOvershoot(t *testing.T) {
	g := newRunning(t, ModeArcade)
	place(g, DirRight, Position{X: 30, Y: 15})
	g.score = 997
	g.bonusCounter = 5
	g.food = FoodItem{Pos: g.body[0]}

	g.consumeFood()
	if g.Score() != 1002 {
		t.Errorf("score = %d, want 1002", g.Score())
	}
	if g.Phase() != PhaseWon {
		t.Errorf("phase = %s, want won", g.Phase())
	}
}

func TestInfiniteLevelUp(t *testing.T) {
	g := newRunning(t, ModeInfinite)
	place(g, DirRight, Position{X: 10, Y: 5}, Position{X: 9, Y: 5}, Position{X: 8, Y: 5})
	g.score = 797
	g.food = FoodItem{Pos: Position{X: 11, Y: 5}}

	res := tick(g)
	if g.Score() != 798 {
		t.Fatalf("score = %d, want 798", g.Score())
	}
	if !slices.Contains(res.Events, core.EventLevelUp) {
		t.Error("missing level up event")
	}
	if !slices.Equal(g.body, []Position{{X: 11, Y: 5}}) {
		t.Errorf("body = %v, want [(11,5)]", g.body)
	}
	if g.Theme() != 1 {
		t.Errorf("theme = %d, want 1", g.Theme())
	}
	if g.Phase() != PhaseRunning {
		t.Errorf("phase = %s, want running", g.Phase())
	}
	if !g.transitioning {
		t.Error("expected level transition flag")
	}
	if g.Food().Pos == (Position{X: 11, Y: 5}) {
		t.Error("food not respawned")
	}
}

func TestThemeWrapsAfterSixLevels(t *testing.T) {
	g := newRunning(t, ModeInfinite)
	place(g, DirRight, Position{X: 10, Y: 5})
	g.theme = ThemeCount - 1
	g.score = 798*ThemeCount - 1
	g.food = FoodItem{Pos: g.body[0]}

	g.consumeFood()
	if g.Theme() != 0 {
		t.Errorf("theme = %d, want 0", g.Theme())
	}
}

func TestArcadeBonus(t *testing.T) {
	g := newRunning(t, ModeArcade)
	g.holes = &HolePair{A: Position{X: 0, Y: 0}, B: Position{X: 30, Y: 0}}
	place(g, DirRight, Position{X: 10, Y: 10}, Position{X: 9, Y: 10}, Position{X: 8, Y: 10})
	g.bonusCounter = 5
	g.food = FoodItem{Pos: Position{X: 11, Y: 10}, Bonus: true}

	res := tick(g)
	if g.Score() != 5 {
		t.Errorf("score = %d, want 5", g.Score())
	}
	if !slices.Contains(res.Events, core.EventBonusEaten) {
		t.Error("missing bonus event")
	}
	if g.bonusCounter != 0 {
		t.Errorf("bonus counter = %d, want 0", g.bonusCounter)
	}
	want := []Position{
		{X: 11, Y: 10}, {X: 10, Y: 10}, {X: 9, Y: 10},
		{X: 9, Y: 10}, {X: 9, Y: 10}, {X: 9, Y: 10}, {X: 9, Y: 10},
	}
	if !slices.Equal(g.body, want) {
		t.Fatalf("body = %v, want %v", g.body, want)
	}

	g.food = FoodItem{Pos: NoFood}
	tick(g)
	if len(g.body) != 8 {
		t.Errorf("length after bonus growth tick = %d, want 8", len(g.body))
	}
}

func TestBonusFoodFlag(t *testing.T) {
	g := newRunning(t, ModeArcade)
	place(g, DirRight, Position{X: 38, Y: 17})
	g.bonusCounter = 4
	g.food = FoodItem{Pos: g.body[0]}

	g.consumeFood()
	if g.bonusCounter != 5 {
		t.Fatalf("bonus counter = %d, want 5", g.bonusCounter)
	}
	if !g.Food().Bonus {
		t.Error("next food should be the bonus food")
	}
	if g.Score() != 1 {
		t.Errorf("score = %d, want 1", g.Score())
	}
}

func TestRestart(t *testing.T) {
	g := newRunning(t, ModeClassic)
	if g.Restart() {
		t.Fatal("restart without request must be a no-op")
	}
	if g.Phase() != PhaseRunning {
		t.Fatalf("phase changed: %s", g.Phase())
	}

	place(g, DirRight, Position{X: 41, Y: 5}, Position{X: 40, Y: 5})
	g.score = 12
	tick(g)
	if g.Phase() != PhaseLost {
		t.Fatalf("phase = %s, want lost", g.Phase())
	}

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.Step(in, 0)
	if g.Phase() != PhaseCountdown {
		t.Errorf("phase = %s, want countdown", g.Phase())
	}
	if g.Score() != 0 || len(g.body) != 1 || g.body[0] != SpawnCell {
		t.Errorf("session not rebuilt: score %d body %v", g.Score(), g.body)
	}
}

func TestSelectModeOnlyWhenIdle(t *testing.T) {
	g := New(ModeClassic)
	if !g.SelectMode(ModeArcade) {
		t.Fatal("SelectMode rejected while idle")
	}
	g.Reset(core.RuntimeConfig{Seed: 1})
	if g.ID() != "arcade" || g.Holes() == nil {
		t.Fatalf("arcade not applied: id %s holes %v", g.ID(), g.Holes())
	}
	if g.SelectMode(ModeClassic) {
		t.Error("SelectMode accepted during a session")
	}
	g.ReturnToIdle()
	if !g.SelectMode(ModeClassic) {
		t.Error("SelectMode rejected after ReturnToIdle")
	}
}

func TestSpawnHolesIdempotent(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		g := New(ModeArcade)
		g.Reset(core.RuntimeConfig{Seed: seed})
		if g.holes == nil {
			t.Fatalf("seed %d: no holes", seed)
		}
		first := *g.holes
		g.spawnHoles()
		if *g.holes != first {
			t.Fatalf("seed %d: holes moved from %v to %v", seed, first, *g.holes)
		}
		if IsHoleOverlap(first.A, first.B, HUDExclusion) {
			t.Errorf("seed %d: invalid holes %v", seed, first)
		}
		for _, fp := range first.Footprints() {
			if fp.Right() > Cols || fp.Bottom() > Rows {
				t.Errorf("seed %d: hole footprint %v off board", seed, fp)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	for _, mode := range Modes {
		t.Run(mode.ID(), func(t *testing.T) {
			cfg := core.RuntimeConfig{Seed: 12345, MoveInterval: testInterval}
			g1, g2 := New(mode), New(mode)
			g1.Reset(cfg)
			g2.Reset(cfg)

			in := core.NewInputFrame()
			for i := range 600 {
				in.Clear()
				switch i {
				case 250:
					in.Set(core.ActionDown)
				case 300:
					in.Set(core.ActionLeft)
				case 380:
					in.Set(core.ActionUp)
				}
				g1.Step(in, 16*time.Millisecond)
				g2.Step(in, 16*time.Millisecond)
			}

			s1, s2 := g1.Snapshot(), g2.Snapshot()
			h1, h2 := s1.Holes, s2.Holes
			s1.Holes, s2.Holes = nil, nil
			if s1 != s2 {
				t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
			}
			if (h1 == nil) != (h2 == nil) || (h1 != nil && *h1 != *h2) {
				t.Errorf("holes differ: %v vs %v", h1, h2)
			}
			if s1.Ticks == 0 {
				t.Error("snake never moved")
			}
		})
	}
}

func TestRender(t *testing.T) {
	g := New(ModeArcade)
	g.Reset(core.RuntimeConfig{Seed: 3, ScreenW: 100, ScreenH: 30, MoveInterval: testInterval})
	g.Step(core.NewInputFrame(), CountdownDuration)

	screen := core.NewScreen(100, 30)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Snake Arcade", "Score: 0", "@", "▒"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	g.Resize(30, 10)
	small := core.NewScreen(30, 10)
	g.Render(small)
	if !strings.Contains(small.String(), "Window too small") {
		t.Error("expected too-small overlay")
	}
}

func TestConfirmStartsFromIdle(t *testing.T) {
	g := New(ModeClassic)
	g.Reset(core.RuntimeConfig{Seed: 3, MoveInterval: testInterval})
	g.ReturnToIdle()

	g.Step(core.NewInputFrame(), time.Second)
	if g.Phase() != PhaseIdle {
		t.Fatalf("phase = %s without confirm, want idle", g.Phase())
	}

	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	g.Step(in, 0)
	if g.Phase() != PhaseCountdown {
		t.Fatalf("phase = %s after confirm, want countdown", g.Phase())
	}
}
