// Package registry maps game IDs to factories. Game packages register their
// modes from init(), so the CLI and the SSH server only need a blank import.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/cuboid/internal/core"
)

// Game is a playable mode driven at a fixed tick rate.
// Implementations know nothing about Bubble Tea; the platform maps keys,
// paces ticks and paints the screen buffer.
type Game interface {
	// ID is the stable identifier used by the CLI, scores and replays.
	ID() string
	Title() string

	// Reset builds a fresh session sized to cfg.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick with the actions held during it.
	Step(in core.InputFrame) core.StepResult

	// Render paints into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	State() core.GameState
}

// Factory creates a fresh game instance.
type Factory func() Game

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

type entry struct {
	info GameInfo
	new  Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a mode. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{info: GameInfo{ID: id, Title: f().Title()}, new: f}
}

// List returns every registered mode ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Create returns a new instance of the mode registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.new(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
