package sim

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BlockView is the render-facing part of a block.
type BlockView struct {
	Pos     mgl64.Vec3
	Scale   mgl64.Vec3
	Tilt    mgl64.Vec2
	Falling bool
}

// Snapshot is a read-only copy of everything a renderer needs for a frame.
type Snapshot struct {
	Tick       uint64
	LevelID    string
	LevelName  string
	Grid       Grid
	Blocks     [2]BlockView
	Merged     bool
	Chosen     int
	Phase      Phase
	Dir        Dir
	View       View
	HasSession bool
	Level      int // 0-indexed
	LevelCount int
	Moves      int
	Seconds    int
	Score      int
	Paused     bool
	GameOver   bool
}

// Snapshot captures the current state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       w.tick,
		LevelID:    w.level.ID,
		LevelName:  w.level.Name,
		Grid:       w.grid,
		Merged:     w.pair.Merged,
		Chosen:     w.pair.Chosen,
		Phase:      w.topple.Phase,
		Dir:        w.topple.Dir,
		View:       w.view,
		LevelCount: len(w.levels),
	}
	for i, b := range w.pair.Blocks {
		s.Blocks[i] = BlockView{Pos: b.Pos, Scale: b.Scale, Tilt: b.Tilt, Falling: b.Falling}
	}
	if w.session != nil {
		s.HasSession = true
		s.Level = w.session.Level
		s.Moves = w.session.LevelMoves()
		s.Seconds = w.session.LevelSeconds()
		s.Score = w.session.Score
		s.Paused = w.session.Paused
		s.GameOver = w.session.GameOver
	}
	return s
}

// AppendBinary appends a deterministic encoding of the simulation state
// (not the camera preset) to b. Equal states encode to equal bytes.
func (s Snapshot) AppendBinary(b []byte) []byte {
	b = binary.LittleEndian.AppendUint64(b, s.Tick)
	for x := 0; x < Dim; x++ {
		for y := 0; y < Dim; y++ {
			b = append(b, byte(s.Grid.cells[x][y]))
		}
	}
	for _, blk := range s.Blocks {
		for _, v := range blk.Pos {
			b = binary.LittleEndian.AppendUint64(b, math.Float64bits(quantize(v)))
		}
		for _, v := range blk.Tilt {
			b = binary.LittleEndian.AppendUint64(b, math.Float64bits(quantize(v)))
		}
		b = append(b, boolByte(blk.Falling))
	}
	b = append(b, boolByte(s.Merged), byte(s.Chosen), byte(s.Phase), byte(s.Dir))
	for _, v := range []int{s.Level, s.Moves, s.Seconds, s.Score} {
		b = binary.LittleEndian.AppendUint64(b, uint64(v))
	}
	return append(b, boolByte(s.Paused), boolByte(s.GameOver))
}

// quantize drops float noise below the simulation's epsilon.
func quantize(v float64) float64 {
	q := math.Round(v/eps) * eps
	if q == 0 {
		return 0
	}
	return q
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
