package replay

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/cuboid/internal/games/cuboid/sim"
)

// Result is the outcome of playing a playthrough back.
type Result struct {
	Final  sim.Snapshot
	Digest uint64
	Events []sim.Event
}

// NewWorld builds the world a playthrough was recorded against.
func NewWorld(p *Playthrough, levels []sim.Level) (*sim.World, error) {
	if p.Sandbox {
		return sim.NewSandbox(p.Params), nil
	}
	w, err := sim.NewWorld(sim.Options{Params: p.Params, Levels: levels, StartLevel: p.StartLevel})
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", p.ID, err)
	}
	return w, nil
}

// Run replays p headlessly against levels and returns the final state.
// onStep, when non-nil, is called after every tick.
func Run(p *Playthrough, levels []sim.Level, onStep func(*sim.World)) (Result, error) {
	w, err := NewWorld(p, levels)
	if err != nil {
		return Result{}, err
	}

	var res Result
	next := 0
	for tick := uint64(1); tick <= p.Ticks; tick++ {
		var in sim.Input
		if next < len(p.Frames) && p.Frames[next].Tick == tick {
			in = p.Frames[next].Input
			next++
		}
		w.Step(in)
		_, events := w.Drain()
		res.Events = append(res.Events, events...)
		if onStep != nil {
			onStep(w)
		}
	}

	res.Final = w.Snapshot()
	res.Digest = Digest(res.Final)
	return res, nil
}

// Digest hashes the simulation state of a snapshot. Two runs that end in
// the same state have the same digest.
func Digest(s sim.Snapshot) uint64 {
	return xxhash.Sum64(s.AppendBinary(nil))
}
