package sim

import "math"

// Layout is the relative placement of the two blocks of a merged pair.
type Layout int

const (
	LayoutAlong   Layout = iota + 1 // neighbours along the axis of motion
	LayoutAcross                    // neighbours along the perpendicular axis
	LayoutStacked                   // one block on top of the other
)

// Mode selects how the recessive block follows the dominant one.
type Mode int

const (
	ModeNone     Mode = iota
	ModeRearArc       // recessive swings up from behind the dominant block
	ModeParallel      // recessive rolls alongside the dominant block
	ModeFrontArc      // recessive swings down in front of the dominant block
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeRearArc:
		return "rear-arc"
	case ModeParallel:
		return "parallel"
	case ModeFrontArc:
		return "front-arc"
	default:
		return "none"
	}
}

// Resolution is the outcome of resolving a merged tip.
type Resolution struct {
	Layout   Layout
	Dominant int // index of the block leading the tip
	Mode     Mode
}

// Resolve decides which block leads a merged tip in direction d and how the
// other block follows it. It is a pure function of the two positions.
func Resolve(a, b Block, d Dir) (Resolution, error) {
	if !d.Valid() {
		return Resolution{}, ErrBadDir
	}
	ax, perp := d.Axis(), d.Axis().Other()
	s := d.Sign()
	pa, pb := a.Pos, b.Pos

	dAx := pa[ax] - pb[ax]
	dPerp := pa[perp] - pb[perp]
	dz := pa.Z() - pb.Z()

	switch {
	case near(math.Abs(dAx), span) && near(dPerp, 0) && near(dz, 0):
		r := Resolution{Layout: LayoutAlong, Mode: ModeRearArc, Dominant: 1}
		if s*dAx > 0 {
			r.Dominant = 0
		}
		if s < 0 {
			r.Mode = ModeFrontArc
		}
		return r, nil

	case near(math.Abs(dPerp), span) && near(dAx, 0) && near(dz, 0):
		r := Resolution{Layout: LayoutAcross, Mode: ModeParallel, Dominant: 1}
		if dPerp > 0 {
			r.Dominant = 0
		}
		return r, nil

	case near(math.Abs(dz), span) && near(dAx, 0) && near(dPerp, 0):
		r := Resolution{Layout: LayoutStacked, Mode: ModeFrontArc, Dominant: 1}
		if dz < 0 {
			r.Dominant = 0
		}
		if s < 0 {
			r.Mode = ModeRearArc
		}
		return r, nil
	}

	return Resolution{}, ErrNotAdjacent
}
