package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// FloorZ is the floor slab thickness; blocks rest on top of it.
	FloorZ = 0.1
	// BlockScale is the half extent of a unit block.
	BlockScale = 0.5
	// RestTilt is the tilt angle of a block lying at rest.
	RestTilt = -45.0

	span = 2 * BlockScale
	eps  = 1e-6
)

// RestZ is the height of a block resting on the floor.
func RestZ() float64 { return FloorZ + BlockScale }

// StackZ is the height of the upper block of a standing pair.
func StackZ() float64 { return FloorZ + 3*BlockScale }

// Block is one of the two movable unit cubes.
type Block struct {
	Pos     mgl64.Vec3 // center; x,y in tile units, z above ground
	Back    mgl64.Vec3 // resting position captured when a tip starts
	Tilt    mgl64.Vec2 // tip angle in degrees, indexed by motion Axis
	Origin  float64    // resting tilt
	Limit   float64    // tilt at which the running tip completes
	Rate    float64    // signed degrees per tick
	Scale   mgl64.Vec3
	Falling bool
}

// NewBlock returns a block resting on the tile at c with height z.
func NewBlock(c Coord, z float64) Block {
	return Block{
		Pos:    mgl64.Vec3{float64(c.X), float64(c.Y), z},
		Tilt:   mgl64.Vec2{RestTilt, RestTilt},
		Origin: RestTilt,
		Scale:  mgl64.Vec3{BlockScale, BlockScale, BlockScale},
	}
}

// Cell returns the grid tile under the block's center.
func (b Block) Cell() Coord {
	return Coord{X: int(math.Round(b.Pos.X())), Y: int(math.Round(b.Pos.Y()))}
}

// Pair is the two blocks together with their pairing state.
type Pair struct {
	Blocks [2]Block
	Merged bool
	Chosen int // block that moves while split
}

// NewPair places a merged pair on the start tiles. Equal start tiles
// stack block 1 on top of block 0.
func NewPair(start [2]Coord) Pair {
	p := Pair{Merged: true}
	p.Blocks[0] = NewBlock(start[0], RestZ())
	z1 := RestZ()
	if start[0] == start[1] {
		z1 = StackZ()
	}
	p.Blocks[1] = NewBlock(start[1], z1)
	return p
}

// Stacked reports whether one block sits directly on the other.
func (p *Pair) Stacked() bool {
	a, b := p.Blocks[0].Pos, p.Blocks[1].Pos
	return near(a.X(), b.X()) && near(a.Y(), b.Y()) && near(math.Abs(a.Z()-b.Z()), span)
}

// Adjacent reports whether the two blocks rest on edge-neighbouring tiles.
func (p *Pair) Adjacent() bool {
	return p.Blocks[0].Cell().Manhattan(p.Blocks[1].Cell()) == 1
}

// lower returns the index of the block nearer the floor.
func (p *Pair) lower() int {
	if p.Blocks[0].Pos.Z() <= p.Blocks[1].Pos.Z() {
		return 0
	}
	return 1
}

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}
