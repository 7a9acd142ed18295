package sim

import "fmt"

// Params are the tunable physics constants of a world.
type Params struct {
	Speed          float64 // tip rate in degrees per tick
	FallStep       float64 // height lost per tick while falling
	FallFloor      float64 // height at which a fall ends
	TicksPerSecond int     // ticks per session timer second
}

// DefaultParams returns the classic tuning: 10° per tick, a 0.1 fall step
// down to -10, and a 60 tick second.
func DefaultParams() Params {
	return Params{
		Speed:          10,
		FallStep:       0.1,
		FallFloor:      -10,
		TicksPerSecond: 60,
	}
}

// View is a camera preset index.
type View int

// ViewCount is the number of camera presets.
const ViewCount = 4

const (
	ViewTop View = iota
	ViewFollow
	ViewNorth
	ViewEast
)

// String returns the preset name.
func (v View) String() string {
	switch v {
	case ViewTop:
		return "top"
	case ViewFollow:
		return "follow"
	case ViewNorth:
		return "north"
	case ViewEast:
		return "east"
	default:
		return "unknown"
	}
}

// Input is everything the player asked for during one tick.
type Input struct {
	Move    Dir
	Swap    bool
	Pause   bool
	Restart bool
	View    bool
}

// Empty reports whether the input carries no request.
func (in Input) Empty() bool {
	return in == Input{}
}

// Options configure a World.
type Options struct {
	Params     Params
	Levels     []Level
	StartLevel int  // 0-indexed
	Sandbox    bool // no rule engine and no session
}

// World is the explicit simulation context: the pair, the live board, the
// topple machine and, unless sandboxed, the rule engine and the session.
type World struct {
	params Params
	levels []Level
	start  int

	level      *Level
	grid       Grid
	switchUsed []bool
	pair       Pair
	topple     Topple

	rules   *Rules
	session *Session

	view   View
	tick   uint64
	cues   []Cue
	events []Event
}

// NewWorld builds a world and enters its start level.
func NewWorld(opts Options) (*World, error) {
	if len(opts.Levels) == 0 {
		return nil, ErrNoLevels
	}
	if opts.StartLevel < 0 || opts.StartLevel >= len(opts.Levels) {
		return nil, fmt.Errorf("sim: start level %d out of range 1..%d", opts.StartLevel+1, len(opts.Levels))
	}
	p := opts.Params
	if p.Speed <= 0 {
		p.Speed = DefaultParams().Speed
	}
	if p.FallStep <= 0 {
		p.FallStep = DefaultParams().FallStep
	}
	if p.TicksPerSecond <= 0 {
		p.TicksPerSecond = DefaultParams().TicksPerSecond
	}
	if p.FallFloor >= 0 {
		p.FallFloor = DefaultParams().FallFloor
	}

	w := &World{
		params: p,
		levels: opts.Levels,
		start:  opts.StartLevel,
	}
	if !opts.Sandbox {
		for i := range opts.Levels {
			if err := opts.Levels[i].Validate(); err != nil {
				return nil, err
			}
		}
		w.rules = &Rules{}
		w.session = NewSession(len(opts.Levels), p.TicksPerSecond)
		w.session.Enter(w.start)
	}
	w.enter(w.start)
	return w, nil
}

// NewSandbox builds the two-cube demo world: the sandbox board with only
// the block pair and the topple machine.
func NewSandbox(p Params) *World {
	w, err := NewWorld(Options{Params: p, Levels: []Level{SandboxLevel()}, Sandbox: true})
	if err != nil {
		// The sandbox level is built in and always valid.
		panic(err)
	}
	return w
}

// enter resets the board and the pair from a level template.
func (w *World) enter(i int) {
	w.level = &w.levels[i]
	w.grid = w.level.EntryGrid()
	w.switchUsed = make([]bool, len(w.level.Switches))
	w.pair = NewPair(w.level.Start)
	w.topple = Topple{Rec: -1}
}

// Step advances the world by one tick.
func (w *World) Step(in Input) {
	w.tick++

	if in.Restart {
		w.Restart()
		return
	}
	if in.View {
		w.view = (w.view + 1) % ViewCount
	}
	if w.session != nil {
		if in.Pause {
			w.session.TogglePause()
		}
		if w.session.Paused || w.session.GameOver {
			return
		}
	}

	if w.rules != nil {
		w.rules.Apply(w)
	}
	if in.Swap {
		w.SwapBlock()
	}
	if in.Move != DirNone {
		//nolint:errcheck // rejected moves are dropped by design
		w.Move(in.Move)
	}

	switch {
	case w.topple.Phase == Falling:
		if w.topple.AdvanceFall(&w.pair, w.params.FallStep, w.params.FallFloor) {
			w.landed()
		}
	case w.topple.Tipping():
		w.topple.Advance(&w.pair)
	}

	if w.session != nil {
		w.session.Tick()
	}
}

// Move requests a tip in direction d.
func (w *World) Move(d Dir) error {
	if w.session != nil {
		if w.session.GameOver {
			return ErrGameOver
		}
		if w.session.Paused {
			return ErrPaused
		}
	}
	if err := w.topple.Start(&w.pair, d, w.params.Speed); err != nil {
		return err
	}
	if w.session != nil {
		w.session.CountMove()
	}
	w.cue(CueMove)
	return nil
}

// SwapBlock hands control to the other block of a split pair.
func (w *World) SwapBlock() bool {
	if w.pair.Merged || w.topple.Phase != Idle {
		return false
	}
	w.pair.Chosen = 1 - w.pair.Chosen
	return true
}

// Restart returns to the start level with a fresh session.
func (w *World) Restart() {
	if w.session != nil {
		w.session.Restart(w.start)
	}
	w.enter(w.start)
}

// landed finishes a fall: through the goal hole the level is scored and
// the next one entered, otherwise the same level is retried.
func (w *World) landed() {
	if w.session == nil {
		w.enter(w.start)
		return
	}
	s := w.session
	cleared := s.Level
	moves, secs := s.LevelMoves(), s.LevelSeconds()

	if !w.topple.Goal {
		w.events = append(w.events, Event{Kind: EventRetry, Level: cleared, Moves: moves, Seconds: secs, Score: s.Score})
		s.Enter(cleared)
		w.enter(cleared)
		return
	}

	gained, next := s.CompleteLevel()
	w.events = append(w.events, Event{Kind: EventLevelCleared, Level: cleared, Moves: moves, Seconds: secs, Gained: gained, Score: s.Score})
	w.cue(CueLevel)
	if !next {
		w.topple = Topple{Rec: -1}
		w.events = append(w.events, Event{Kind: EventGameOver, Level: cleared, Score: s.Score})
		return
	}
	s.Enter(s.Level)
	w.enter(s.Level)
}

func (w *World) cue(c Cue) {
	w.cues = append(w.cues, c)
}

// Drain returns and clears the cues and events produced since the last call.
func (w *World) Drain() ([]Cue, []Event) {
	cues, events := w.cues, w.events
	w.cues, w.events = nil, nil
	return cues, events
}

// Pair returns a copy of the block pair.
func (w *World) Pair() Pair { return w.pair }

// Topple returns a copy of the topple machine state.
func (w *World) Topple() Topple { return w.topple }

// Grid returns a copy of the live board.
func (w *World) Grid() Grid { return w.grid }

// Session returns the session, or nil for a sandbox world.
func (w *World) Session() *Session { return w.session }

// Level returns the current level template.
func (w *World) Level() *Level { return w.level }

// Levels returns the number of levels in the campaign.
func (w *World) Levels() int { return len(w.levels) }

// Tick returns the number of ticks stepped so far.
func (w *World) Tick() uint64 { return w.tick }

// View returns the selected camera preset.
func (w *World) View() View { return w.view }

// Params returns the physics constants in use.
func (w *World) Params() Params { return w.params }

// SwitchUsed reports whether switch i of the current level has fired.
func (w *World) SwitchUsed(i int) bool {
	return i >= 0 && i < len(w.switchUsed) && w.switchUsed[i]
}

// Place puts the pair at explicit positions. It is meant for tests and
// replays of hand-built situations.
func (w *World) Place(p Pair) {
	w.pair = p
	w.topple = Topple{Rec: -1}
}
