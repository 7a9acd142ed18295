package sim

import "errors"

var (
	// ErrNotAdjacent is returned when a merged pair is asked to tip but its
	// blocks are neither side by side nor stacked.
	ErrNotAdjacent = errors.New("sim: blocks are not adjacent")
	// ErrBusy is returned when a move arrives while a tip or a fall is in progress.
	ErrBusy = errors.New("sim: blocks are moving")
	// ErrPaused is returned for moves while the session is paused.
	ErrPaused = errors.New("sim: session paused")
	// ErrGameOver is returned for moves after the last level was cleared.
	ErrGameOver = errors.New("sim: game over")
	// ErrBadDir is returned for an unknown direction.
	ErrBadDir = errors.New("sim: invalid direction")
	// ErrInvalidLevel wraps every level validation failure.
	ErrInvalidLevel = errors.New("sim: invalid level")
	// ErrNoLevels is returned when a world is built without levels.
	ErrNoLevels = errors.New("sim: no levels")
)
