package snake

import "fmt"

// Mode selects the rule set of a session.
type Mode int

const (
	ModeClassic Mode = iota
	ModeInfinite
	ModeArcade
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeClassic, ModeInfinite, ModeArcade}

// ID returns the identifier used for the registry and score storage.
func (m Mode) ID() string {
	switch m {
	case ModeInfinite:
		return "infinite"
	case ModeArcade:
		return "arcade"
	default:
		return "classic"
	}
}

// String returns the display name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeInfinite:
		return "Infinite"
	case ModeArcade:
		return "Arcade"
	default:
		return "Classic"
	}
}

// Description is a one-line summary shown in menus.
func (m Mode) Description() string {
	switch m {
	case ModeInfinite:
		return "Endless, new palette every 798 points, scores go to the leaderboard"
	case ModeArcade:
		return "Walls wrap, two lethal holes, every 6th food is worth 5"
	default:
		return "Walls kill, fill the board to win"
	}
}

// ParseMode resolves a mode by its ID.
func ParseMode(id string) (Mode, error) {
	for _, m := range Modes {
		if m.ID() == id {
			return m, nil
		}
	}
	return ModeClassic, fmt.Errorf("snake: unknown mode %q", id)
}

// ModeConfig holds the rules that differ between modes.
type ModeConfig struct {
	Mode Mode

	WrapWalls bool // leaving the board wraps instead of killing
	Holes     bool // two lethal holes are placed each session

	WinScore   int // score that wins the session, 0 = endless
	LevelEvery int // score multiple that triggers a level-up, 0 = never

	BonusStreak      int // foods eaten before the bonus one, 0 = no bonus food
	BonusScore       int
	BonusExtraCells  int
	ReportsGameOvers bool // game-over scores are sent to the leaderboard
}

// ConfigFor returns the rule set of a mode.
func ConfigFor(m Mode) ModeConfig {
	switch m {
	case ModeInfinite:
		return ModeConfig{
			Mode:             ModeInfinite,
			LevelEvery:       798,
			ReportsGameOvers: true,
		}
	case ModeArcade:
		return ModeConfig{
			Mode:            ModeArcade,
			WrapWalls:       true,
			Holes:           true,
			WinScore:        999,
			BonusStreak:     5,
			BonusScore:      5,
			BonusExtraCells: 4,
		}
	default:
		return ModeConfig{
			Mode:     ModeClassic,
			WinScore: 798,
		}
	}
}

// Phase is the session state of the controller.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCountdown
	PhaseRunning
	PhasePaused
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountdown:
		return "countdown"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the session.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}
