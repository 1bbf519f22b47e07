package core

import "time"

// DefaultMoveInterval is the snake step interval used when none is configured.
const DefaultMoveInterval = 240 * time.Millisecond

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	TickRate     int           // Frames per second driven by the platform (default 60)
	Seed         int64         // RNG seed for deterministic gameplay
	MoveInterval time.Duration // Time between snake steps, supplied by settings
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickRate:     60,
		Seed:         0, // 0 means use current time in platform layer
		MoveInterval: DefaultMoveInterval,
	}
}

// FrameInterval returns the wall-clock duration of one platform frame.
func (c RuntimeConfig) FrameInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState represents the current state of a game as seen by the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the session has ended (lost or won)
	Won      bool // Whether the session ended in a win
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State  GameState
	Events []Event // Discrete events raised during this frame, in order
}
