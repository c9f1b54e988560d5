// Package game provides the real-time game loop and input handling.
package game

// State represents the current game state.
type State int

const (
	// StatePlay is the default mode where the world is simulated and interactive.
	StatePlay State = iota
	// StatePaused freezes the simulation and suspends world interaction.
	StatePaused
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlay:
		return "play"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}
