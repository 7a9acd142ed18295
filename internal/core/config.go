package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and to convert ticks into seconds.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Level    int  // Current level (1-indexed), 0 if the game has no levels
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// EventKind identifies something the platform may want to react to.
type EventKind string

const (
	EventCue          EventKind = "cue"           // audio cue, Name holds the cue id
	EventLevelCleared EventKind = "level_cleared" // a level was completed
	EventFell         EventKind = "fell"          // blocks dropped off the board
	EventMove         EventKind = "move"          // an accepted move
)

// Event is emitted by a game during a tick.
type Event struct {
	Kind    EventKind
	Name    string
	Level   int
	Moves   int
	Seconds int
	Score   int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
