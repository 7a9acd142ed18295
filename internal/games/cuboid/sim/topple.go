package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Phase is the state of the topple state machine.
type Phase int

const (
	Idle Phase = iota
	TippingMerged
	TippingSingle
	Falling
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case TippingMerged:
		return "tipping-merged"
	case TippingSingle:
		return "tipping-single"
	case Falling:
		return "falling"
	default:
		return "unknown"
	}
}

// Topple animates tips and falls of a Pair.
type Topple struct {
	Phase Phase
	Dir   Dir
	Mode  Mode
	Dom   int  // dominant (or lone moving) block
	Rec   int  // recessive block, -1 for a single tip
	Goal  bool // the running fall clears the level
}

// Tipping reports whether a tip is in progress.
func (t Topple) Tipping() bool {
	return t.Phase == TippingMerged || t.Phase == TippingSingle
}

// Start begins a tip of p in direction d at speed degrees per tick.
// A merged pair is resolved first; a split pair moves only its chosen block.
func (t *Topple) Start(p *Pair, d Dir, speed float64) error {
	if t.Phase != Idle {
		return ErrBusy
	}
	if !d.Valid() {
		return ErrBadDir
	}

	if p.Merged {
		res, err := Resolve(p.Blocks[0], p.Blocks[1], d)
		if err != nil {
			return err
		}
		*t = Topple{Phase: TippingMerged, Dir: d, Mode: res.Mode, Dom: res.Dominant, Rec: 1 - res.Dominant}
	} else {
		*t = Topple{Phase: TippingSingle, Dir: d, Dom: p.Chosen, Rec: -1}
	}

	t.arm(&p.Blocks[t.Dom], speed)
	if t.Rec >= 0 {
		t.arm(&p.Blocks[t.Rec], speed)
	}
	return nil
}

// arm snapshots a block and sets its angular sweep for the current tip.
func (t *Topple) arm(b *Block, speed float64) {
	ax, s := t.Dir.Axis(), t.Dir.Sign()
	b.Back = b.Pos
	b.Rate = speed * s
	b.Tilt[ax] = -45 * s
	b.Limit = b.Tilt[ax] + 90*s
}

// Advance moves a running tip forward by one tick. It returns true on the
// tick the tip completes and the blocks are snapped to the grid.
func (t *Topple) Advance(p *Pair) bool {
	if !t.Tipping() {
		return false
	}
	ax := t.Dir.Axis()
	dom := &p.Blocks[t.Dom]
	theta := dom.Tilt[ax]

	dom.Pos = pivot(dom, t.Dir, theta)
	dom.Tilt[ax] += dom.Rate

	if t.Phase == TippingMerged {
		rec := &p.Blocks[t.Rec]
		rec.Pos = follow(dom, rec, t.Dir, t.Mode, theta)
		rec.Tilt[ax] += rec.Rate
	}

	if !reached(dom, ax) {
		return false
	}
	t.settle(p)
	return true
}

// pivot returns the position of a block rolling over its leading bottom
// edge, a quarter circle of radius scale·√2.
func pivot(b *Block, d Dir, theta float64) mgl64.Vec3 {
	ax, s := d.Axis(), d.Sign()
	rad := mgl64.DegToRad(theta)
	pos := b.Back
	pos[ax] = b.Back[ax] + s*b.Scale[ax] + b.Scale.Z()*math.Sin(rad)*math.Sqrt2
	pos[2] = FloorZ + b.Scale.Z()*math.Cos(rad)*math.Sqrt2
	return pos
}

// follow derives the recessive block's position from the dominant one.
func follow(dom, rec *Block, d Dir, m Mode, theta float64) mgl64.Vec3 {
	ax, perp := d.Axis(), d.Axis().Other()
	alpha := mgl64.DegToRad(theta + 45)
	pos := rec.Back

	switch m {
	case ModeRearArc:
		pos[ax] = dom.Pos[ax] - span*math.Cos(alpha)
		pos[2] = dom.Pos.Z() + span*math.Sin(alpha)
		pos[perp] = dom.Back[perp]
	case ModeFrontArc:
		pos[ax] = dom.Pos[ax] + span*math.Sin(alpha)
		pos[2] = dom.Pos.Z() + span*math.Cos(alpha)
		pos[perp] = dom.Back[perp]
	case ModeParallel:
		pos[ax] = dom.Pos[ax]
		pos[2] = dom.Pos.Z()
		pos[perp] = rec.Back[perp]
	}
	return pos
}

// reached reports whether the tilt about ax met or passed the limit in
// the direction of the angular rate.
func reached(b *Block, ax Axis) bool {
	v := b.Tilt[ax]
	if b.Rate > 0 {
		return v >= b.Limit-eps
	}
	return v <= b.Limit+eps
}

// settle snaps the moving blocks to their closed-form landing tiles.
func (t *Topple) settle(p *Pair) {
	ax, s := t.Dir.Axis(), t.Dir.Sign()

	dom := &p.Blocks[t.Dom]
	dom.Pos = dom.Back
	dom.Pos[ax] += s * span
	dom.Pos[2] = RestZ()
	rest(dom, t.Dir)

	if t.Phase == TippingMerged {
		rec := &p.Blocks[t.Rec]
		rec.Pos = rec.Back
		switch t.Mode {
		case ModeRearArc:
			rec.Pos[ax] += 2 * s * span
			rec.Pos[2] += s * span
		case ModeFrontArc:
			rec.Pos[ax] += 2 * s * span
			rec.Pos[2] -= s * span
		case ModeParallel:
			rec.Pos[ax] += s * span
		}
		rest(rec, t.Dir)
	}

	*t = Topple{Rec: -1}
}

// rest rounds a block onto the grid, returns its tilt to the resting
// angle the sweep in d started from and clears its tip state.
func rest(b *Block, d Dir) {
	ax := d.Axis()
	b.Pos[0] = math.Round(b.Pos[0])
	b.Pos[1] = math.Round(b.Pos[1])
	b.Pos[2] = RestZ() + math.Round((b.Pos[2]-RestZ())/span)*span
	b.Back = b.Pos
	b.Tilt[ax] = -45 * d.Sign()
	b.Rate = 0
	b.Limit = 0
}

// StartFall drops the given blocks. goal marks a fall through the goal hole.
func (t *Topple) StartFall(p *Pair, goal bool, blocks ...int) {
	*t = Topple{Phase: Falling, Goal: goal, Rec: -1}
	for _, i := range blocks {
		p.Blocks[i].Falling = true
		p.Blocks[i].Rate = 0
	}
}

// AdvanceFall lowers every falling block by step. It returns true once all
// of them are at or below floor.
func (t *Topple) AdvanceFall(p *Pair, step, floor float64) bool {
	if t.Phase != Falling {
		return false
	}
	done := true
	for i := range p.Blocks {
		b := &p.Blocks[i]
		if !b.Falling {
			continue
		}
		b.Pos[2] -= step
		if b.Pos.Z() > floor {
			done = false
		}
	}
	return done
}
