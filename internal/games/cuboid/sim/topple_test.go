package sim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cuboid/internal/games/cuboid/sim"
)

const tol = 1e-9

// runTip starts a tip and advances it to completion, returning the number
// of ticks it took.
func runTip(t *testing.T, p *sim.Pair, d sim.Dir, speed float64) int {
	t.Helper()
	var tp sim.Topple
	require.NoError(t, tp.Start(p, d, speed))
	for n := 1; n <= 1000; n++ {
		if tp.Advance(p) {
			require.Equal(t, sim.Idle, tp.Phase)
			return n
		}
	}
	t.Fatalf("tip %v did not finish", d)
	return 0
}

func assertAt(t *testing.T, b sim.Block, x, y int, z float64) {
	t.Helper()
	assert.InDelta(t, float64(x), b.Pos.X(), tol, "x")
	assert.InDelta(t, float64(y), b.Pos.Y(), tol, "y")
	assert.InDelta(t, z, b.Pos.Z(), tol, "z")
}

func TestTipNorthFromStartStandsThePairUp(t *testing.T) {
	p := sim.NewPair([2]sim.Coord{sim.C(0, 0), sim.C(0, 1)})

	ticks := runTip(t, &p, sim.North, 10)

	assert.Equal(t, 9, ticks)
	// The leading block rolls one tile forward, the trailing one swings
	// over it and lands on top.
	assertAt(t, p.Blocks[1], 0, 2, sim.RestZ())
	assertAt(t, p.Blocks[0], 0, 2, sim.StackZ())
	assert.True(t, p.Stacked())
	assert.True(t, p.Merged)
}

func TestTipEastAcrossMovesBothBlocksOneTile(t *testing.T) {
	p := sim.NewPair([2]sim.Coord{sim.C(0, 0), sim.C(0, 1)})

	runTip(t, &p, sim.East, 10)

	assertAt(t, p.Blocks[0], 1, 0, sim.RestZ())
	assertAt(t, p.Blocks[1], 1, 1, sim.RestZ())
	assert.True(t, p.Adjacent())
}

func TestTipStandingPairLiesDown(t *testing.T) {
	p := sim.NewPair([2]sim.Coord{sim.C(4, 4), sim.C(4, 4)})

	runTip(t, &p, sim.North, 10)

	assertAt(t, p.Blocks[0], 4, 5, sim.RestZ())
	assertAt(t, p.Blocks[1], 4, 6, sim.RestZ())
}

func TestTipRestoresRestingTilt(t *testing.T) {
	tests := []struct {
		dir  sim.Dir
		axis sim.Axis
		tilt float64
	}{
		{sim.North, sim.AxisY, -45},
		{sim.South, sim.AxisY, 45},
		{sim.East, sim.AxisX, -45},
		{sim.West, sim.AxisX, 45},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			p := sim.NewPair([2]sim.Coord{sim.C(4, 4), sim.C(4, 4)})
			runTip(t, &p, tt.dir, 10)
			for _, b := range p.Blocks {
				assert.InDelta(t, tt.tilt, b.Tilt[tt.axis], tol)
				assert.Zero(t, b.Rate)
			}
		})
	}
}

func TestTipThereAndBackReturnsToStart(t *testing.T) {
	start := [2]sim.Coord{sim.C(0, 0), sim.C(0, 1)}
	p := sim.NewPair(start)

	runTip(t, &p, sim.North, 10)
	runTip(t, &p, sim.South, 10)

	assertAt(t, p.Blocks[0], 0, 0, sim.RestZ())
	assertAt(t, p.Blocks[1], 0, 1, sim.RestZ())
}

func TestSingleTipMovesOnlyChosenBlock(t *testing.T) {
	p := sim.NewPair([2]sim.Coord{sim.C(2, 2), sim.C(5, 5)})
	p.Merged = false
	p.Chosen = 0

	runTip(t, &p, sim.East, 10)

	assertAt(t, p.Blocks[0], 3, 2, sim.RestZ())
	assertAt(t, p.Blocks[1], 5, 5, sim.RestZ())

	p.Chosen = 1
	runTip(t, &p, sim.South, 10)

	assertAt(t, p.Blocks[0], 3, 2, sim.RestZ())
	assertAt(t, p.Blocks[1], 5, 4, sim.RestZ())
}

func TestTipDurationFollowsSpeed(t *testing.T) {
	for _, tc := range []struct {
		speed float64
		ticks int
	}{
		{5, 18},
		{10, 9},
		{15, 6},
		{90, 1},
	} {
		p := sim.NewPair([2]sim.Coord{sim.C(3, 3), sim.C(3, 4)})
		if got := runTip(t, &p, sim.West, tc.speed); got != tc.ticks {
			t.Errorf("speed %v: ticks = %d, expected %d", tc.speed, got, tc.ticks)
		}
	}
}

func TestTipStaysAboveFloorWhileMoving(t *testing.T) {
	for _, d := range sim.Dirs {
		p := sim.NewPair([2]sim.Coord{sim.C(4, 4), sim.C(4, 5)})
		var tp sim.Topple
		require.NoError(t, tp.Start(&p, d, 10))
		for !tp.Advance(&p) {
			for i, b := range p.Blocks {
				if b.Pos.Z() < sim.RestZ()-tol {
					t.Fatalf("%v: block %d sank to z=%v mid tip", d, i, b.Pos.Z())
				}
			}
		}
	}
}

// Every tip from every layout ends with the pair adjacent or stacked on
// integer tiles.
func TestTipKeepsPairTogether(t *testing.T) {
	layouts := map[string][2]sim.Coord{
		"along y":  {sim.C(4, 4), sim.C(4, 5)},
		"along x":  {sim.C(4, 4), sim.C(5, 4)},
		"standing": {sim.C(4, 4), sim.C(4, 4)},
	}
	for name, start := range layouts {
		for _, d := range sim.Dirs {
			p := sim.NewPair(start)
			runTip(t, &p, d, 10)

			for i, b := range p.Blocks {
				for k := 0; k < 3; k++ {
					v := b.Pos[k]
					if k == 2 {
						v -= sim.RestZ()
					}
					if math.Abs(v-math.Round(v)) > tol {
						t.Errorf("%s %v: block %d coordinate %d = %v is not snapped", name, d, i, k, b.Pos[k])
					}
				}
			}
			if !p.Adjacent() && !p.Stacked() {
				t.Errorf("%s %v: pair split apart: %v %v", name, d, p.Blocks[0].Pos, p.Blocks[1].Pos)
			}
		}
	}
}

func TestStartRejectsBusyAndBadInput(t *testing.T) {
	p := sim.NewPair([2]sim.Coord{sim.C(0, 0), sim.C(0, 1)})
	var tp sim.Topple

	assert.ErrorIs(t, tp.Start(&p, sim.DirNone, 10), sim.ErrBadDir)

	require.NoError(t, tp.Start(&p, sim.North, 10))
	assert.Equal(t, sim.TippingMerged, tp.Phase)
	assert.ErrorIs(t, tp.Start(&p, sim.East, 10), sim.ErrBusy)

	apart := sim.NewPair([2]sim.Coord{sim.C(0, 0), sim.C(0, 3)})
	var idle sim.Topple
	assert.ErrorIs(t, idle.Start(&apart, sim.North, 10), sim.ErrNotAdjacent)
	assert.Equal(t, sim.Idle, idle.Phase)
}

func TestFallLowersByStep(t *testing.T) {
	p := sim.NewPair([2]sim.Coord{sim.C(0, 0), sim.C(0, 1)})
	var tp sim.Topple
	tp.StartFall(&p, false, 1)

	prev := p.Blocks[1].Pos.Z()
	for i := 0; i < 5; i++ {
		done := tp.AdvanceFall(&p, 0.1, -10)
		assert.False(t, done)
		assert.InDelta(t, prev-0.1, p.Blocks[1].Pos.Z(), tol)
		prev = p.Blocks[1].Pos.Z()
	}
	assert.InDelta(t, sim.RestZ(), p.Blocks[0].Pos.Z(), tol, "block 0 is not falling")

	n := 5
	for !tp.AdvanceFall(&p, 0.1, -10) {
		n++
		require.Less(t, n, 1000)
	}
	assert.LessOrEqual(t, p.Blocks[1].Pos.Z(), -10.0)
}
