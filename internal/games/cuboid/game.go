// Package cuboid adapts the block-tipping simulation to the terminal platform.
// The simulation lives in the sim subpackage; this package maps platform
// input onto it, records playthroughs and draws snapshots to a screen.
package cuboid

import (
	"fmt"

	"github.com/vovakirdan/cuboid/internal/config"
	"github.com/vovakirdan/cuboid/internal/core"
	"github.com/vovakirdan/cuboid/internal/games/cuboid/levels"
	"github.com/vovakirdan/cuboid/internal/games/cuboid/replay"
	"github.com/vovakirdan/cuboid/internal/games/cuboid/sim"
	"github.com/vovakirdan/cuboid/internal/registry"
)

// Mode selects the campaign or the two-cube sandbox.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeDemo     Mode = "demo"
)

// Game implements registry.Game on top of a sim.World.
type Game struct {
	mode   Mode
	world  *sim.World
	rec    *replay.Recorder
	levels []sim.Level
	cfg    config.CuboidConfig
	start  int // 0-indexed
	pick   int // 1-indexed start level chosen for this instance, 0 for none
	err    error
}

// Package-level variables for configuration, set by the CLI and menus
// before a game is created.
var (
	selectedStartLevel int
	configPath         string
	speedPreset        config.SpeedPreset
	levelsDir          string
)

// SetStartLevel sets the starting level (1-indexed). 0 means the configured one.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetSpeedPreset overrides the configured tip speed.
func SetSpeedPreset(p config.SpeedPreset) {
	speedPreset = p
}

// SetLevelsDir loads levels from a directory instead of the built-in campaign.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

func init() {
	registry.Register("cuboid", func() registry.Game {
		return New()
	})
	registry.Register("cuboid_demo", func() registry.Game {
		return NewDemo()
	})
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewDemo creates the sandbox game: two cubes on an open board, no rules.
func NewDemo() *Game {
	return &Game{mode: ModeDemo}
}

// SelectLevel picks the start level (1-indexed) for this game only,
// taking precedence over SetStartLevel. 0 clears the choice.
func (g *Game) SelectLevel(level int) {
	g.pick = level
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeDemo {
		return "cuboid_demo"
	}
	return "cuboid"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeDemo {
		return "Cuboid (Demo)"
	}
	return "Cuboid"
}

// Reset loads configuration and levels and builds a fresh world.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.world = nil
	g.rec = nil
	g.levels = nil
	g.err = nil

	cfg, err := config.LoadCuboid(configPath)
	if err != nil {
		g.err = err
		cfg = config.DefaultCuboidConfig()
	}
	config.ApplySpeedPreset(&cfg, speedPreset)
	g.cfg = cfg

	params := sim.Params{
		Speed:          cfg.Physics.SpeedDeg,
		FallStep:       cfg.Physics.FallStep,
		FallFloor:      cfg.Physics.FallFloor,
		TicksPerSecond: rc.TickRate,
	}

	if g.mode == ModeDemo {
		g.start = 0
		g.world = sim.NewSandbox(params)
		g.rec = replay.NewRecorder(g.ID(), true, 0, g.world.Params())
		return
	}

	lvls, err := g.loadLevels()
	if err != nil {
		g.err = err
		return
	}
	g.levels = lvls

	start := cfg.Session.StartLevel
	if selectedStartLevel > 0 {
		start = selectedStartLevel
	}
	if g.pick > 0 {
		start = g.pick
	}
	if start < 1 || start > len(lvls) {
		start = 1
	}
	g.start = start - 1

	w, err := sim.NewWorld(sim.Options{Params: params, Levels: lvls, StartLevel: g.start})
	if err != nil {
		g.err = err
		return
	}
	g.world = w
	g.rec = replay.NewRecorder(g.ID(), false, g.start, w.Params())
}

// loadLevels reads the campaign from the levels directory, falling back to
// the config's directory and then to the built-in levels.
func (g *Game) loadLevels() ([]sim.Level, error) {
	dir := levelsDir
	if dir == "" {
		dir = g.cfg.Levels.Dir
	}
	if dir == "" {
		return levels.Campaign()
	}
	lvls, err := levels.NewLoader(dir).Sim()
	if err != nil {
		return nil, fmt.Errorf("cuboid: levels from %s: %w", dir, err)
	}
	return lvls, nil
}

// LoadLevels returns the campaign a new game would load, following the
// same levels directory and config lookup as Reset.
func LoadLevels() ([]sim.Level, error) {
	g := New()
	cfg, err := config.LoadCuboid(configPath)
	if err != nil {
		cfg = config.DefaultCuboidConfig()
	}
	g.cfg = cfg
	return g.loadLevels()
}

// LevelNames returns the names of the campaign levels a new game would
// load, in order. It returns nil when no levels can be loaded.
func LevelNames() []string {
	lvls, err := LoadLevels()
	if err != nil {
		return nil
	}
	names := make([]string, len(lvls))
	for i, l := range lvls {
		names[i] = l.Name
		if names[i] == "" {
			names[i] = l.ID
		}
	}
	return names
}

// inputFrom maps platform actions onto a simulation input. Only one
// direction is taken per tick; north wins over the others.
func inputFrom(in core.InputFrame) sim.Input {
	var si sim.Input
	switch {
	case in.Has(core.ActionUp):
		si.Move = sim.North
	case in.Has(core.ActionDown):
		si.Move = sim.South
	case in.Has(core.ActionLeft):
		si.Move = sim.West
	case in.Has(core.ActionRight):
		si.Move = sim.East
	}
	si.Swap = in.Has(core.ActionSwap)
	si.View = in.Has(core.ActionView)
	si.Pause = in.Has(core.ActionPause)
	si.Restart = in.Has(core.ActionRestart)
	return si
}

// Step advances the world by one tick and reports what happened.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil {
		return core.StepResult{State: g.State()}
	}

	si := inputFrom(in)
	g.rec.Record(si)
	g.world.Step(si)

	cues, events := g.world.Drain()
	return core.StepResult{State: g.State(), Events: g.translate(cues, events)}
}

// translate turns simulation cues and session events into platform events.
func (g *Game) translate(cues []sim.Cue, events []sim.Event) []core.Event {
	if len(cues) == 0 && len(events) == 0 {
		return nil
	}
	out := make([]core.Event, 0, len(cues)+len(events))
	for _, c := range cues {
		out = append(out, core.Event{Kind: core.EventCue, Name: string(c)})
		if c == sim.CueMove {
			out = append(out, core.Event{Kind: core.EventMove})
		}
	}
	for _, e := range events {
		ev := core.Event{
			Level:   e.Level + 1,
			Moves:   e.Moves,
			Seconds: e.Seconds,
		}
		if e.Level < len(g.levels) {
			ev.Name = g.levels[e.Level].ID
		}
		switch e.Kind {
		case sim.EventLevelCleared:
			ev.Kind = core.EventLevelCleared
			ev.Score = e.Gained
		case sim.EventRetry:
			ev.Kind = core.EventFell
			ev.Score = e.Score
		default:
			continue
		}
		out = append(out, ev)
	}
	return out
}

// State returns the platform view of the session.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{GameOver: g.err != nil}
	}
	s := g.world.Session()
	if s == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    s.Score,
		Level:    s.Level + 1,
		GameOver: s.GameOver,
		Paused:   s.Paused,
	}
}

// Snapshot returns the current simulation snapshot. ok is false when the
// game failed to load.
func (g *Game) Snapshot() (snap sim.Snapshot, ok bool) {
	if g.world == nil {
		return sim.Snapshot{}, false
	}
	return g.world.Snapshot(), true
}

// Playthrough returns a copy of everything recorded since Reset.
func (g *Game) Playthrough() *replay.Playthrough {
	if g.rec == nil {
		return nil
	}
	return g.rec.Playthrough().Clone()
}

// Err returns the configuration or level error from the last Reset.
func (g *Game) Err() error {
	return g.err
}

// Config returns the configuration the game was reset with.
func (g *Game) Config() config.CuboidConfig {
	return g.cfg
}

// Levels returns the loaded campaign, empty for the demo.
func (g *Game) Levels() []sim.Level {
	return g.levels
}
