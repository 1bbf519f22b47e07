package core

// Event is a discrete, fire-and-forget notification raised by a game.
// Collaborators such as audio map events to effects; nothing flows back.
type Event int

const (
	EventNone Event = iota
	EventCountdown
	EventFoodEaten
	EventBonusEaten
	EventLevelUp
	EventGameOver
	EventWon
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventCountdown:
		return "countdown"
	case EventFoodEaten:
		return "food_eaten"
	case EventBonusEaten:
		return "bonus_eaten"
	case EventLevelUp:
		return "level_up"
	case EventGameOver:
		return "game_over"
	case EventWon:
		return "won"
	default:
		return "none"
	}
}
