package sim

// Rules is the tile rule engine. It runs once per tick, before a new move
// is accepted, and checks in a fixed order: merge, cross, hazard, alt,
// switch, fall-off.
type Rules struct{}

// Apply evaluates every rule against the world.
func (r Rules) Apply(w *World) {
	r.merge(w)
	r.cross(w)
	r.hazard(w)
	r.alt(w)
	r.switches(w)
	r.fallOff(w)
}

func (Rules) merge(w *World) {
	if w.pair.Merged || w.topple.Phase != Idle {
		return
	}
	if w.pair.Adjacent() {
		w.pair.Merged = true
		w.cue(CueMerge)
	}
}

func (Rules) cross(w *World) {
	p := &w.pair
	if !p.Merged || w.topple.Phase != Idle || !p.Stacked() {
		return
	}
	at := p.Blocks[0].Cell()
	if w.grid.At(at) != Cross {
		return
	}
	for _, cr := range w.level.Crosses {
		if cr.At != at {
			continue
		}
		p.Blocks[0] = NewBlock(cr.At, RestZ())
		p.Blocks[1] = NewBlock(cr.Other, RestZ())
		p.Merged = false
		p.Chosen = 0
		w.cue(CueSplit)
		return
	}
}

// hazard drops a standing pair into the goal hole and clears the level.
func (Rules) hazard(w *World) {
	p := &w.pair
	if !p.Merged || w.topple.Phase != Idle || !p.Stacked() {
		return
	}
	if w.grid.At(p.Blocks[0].Cell()) != Hazard {
		return
	}
	w.topple.StartFall(p, true, 0, 1)
	w.cue(CueGoal)
}

// alt drops a standing pair through a fragile tile. The level restarts.
func (Rules) alt(w *World) {
	p := &w.pair
	if !p.Merged || w.topple.Phase != Idle || !p.Stacked() {
		return
	}
	if w.grid.At(p.Blocks[0].Cell()) != Alt {
		return
	}
	w.topple.StartFall(p, false, 0, 1)
	w.cue(CueFall)
}

// switches reveals hidden floor the first time a block rests on a trigger.
func (Rules) switches(w *World) {
	if w.topple.Phase != Idle {
		return
	}
	c0, c1 := w.pair.Blocks[0].Cell(), w.pair.Blocks[1].Cell()
	for i, sw := range w.level.Switches {
		if sw.At != c0 && sw.At != c1 {
			continue
		}
		if w.switchUsed[i] {
			continue
		}
		w.switchUsed[i] = true
		for _, c := range sw.Reveals {
			w.grid.Set(c, Normal)
		}
		w.cue(CueSwitch)
	}
}

// fallOff drops blocks resting outside the board or over an empty tile.
func (Rules) fallOff(w *World) {
	p := &w.pair
	if w.topple.Phase != Idle {
		return
	}
	off := -1
	for i := range p.Blocks {
		if !w.grid.At(p.Blocks[i].Cell()).Solid() {
			off = i
			break
		}
	}
	if off < 0 {
		return
	}

	if !p.Merged {
		w.topple.StartFall(p, false, off)
		w.cue(CueFall)
		return
	}

	other := 1 - off
	if p.Blocks[other].Cell() == p.Blocks[off].Cell() {
		// Re-stack so the block that stepped off lands on top.
		p.Blocks[other].Pos[2] = RestZ()
		p.Blocks[off].Pos[2] = StackZ()
	}
	w.topple.StartFall(p, false, 0, 1)
	w.cue(CueFall)
}
