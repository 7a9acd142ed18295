// Package replay records the inputs of a cuboid session and plays them
// back through the simulation. A playthrough plus a compatible simulation
// always reproduces the same final state.
package replay

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/cuboid/internal/games/cuboid/sim"
)

// Version is the version of the byte representation of a Playthrough.
// It must change whenever the encoding does.
const Version = 1

var magic = [4]byte{'C', 'U', 'B', 'R'}

// ErrFormat is returned for data that is not an encoded playthrough.
var ErrFormat = errors.New("replay: bad playthrough data")

// Frame is a non-empty input and the tick it was applied on.
type Frame struct {
	Tick  uint64
	Input sim.Input
}

// Playthrough is every input sent to a World from creation until the
// recording stopped.
type Playthrough struct {
	ID         uuid.UUID
	GameID     string
	Sandbox    bool
	StartLevel int
	Params     sim.Params
	CreatedAt  time.Time
	Ticks      uint64 // total ticks stepped, including empty ones
	Frames     []Frame
}

// Clone returns a deep copy.
func (p *Playthrough) Clone() *Playthrough {
	clone := *p
	clone.Frames = slices.Clone(p.Frames)
	return &clone
}

// Recorder collects a Playthrough one tick at a time.
type Recorder struct {
	pt Playthrough
}

// NewRecorder starts a recording with a fresh ID.
func NewRecorder(gameID string, sandbox bool, startLevel int, params sim.Params) *Recorder {
	return &Recorder{pt: Playthrough{
		ID:         uuid.New(),
		GameID:     gameID,
		Sandbox:    sandbox,
		StartLevel: startLevel,
		Params:     params,
		CreatedAt:  time.Now().UTC(),
	}}
}

// Record notes the input of the next tick. Empty inputs only advance the
// tick counter.
func (r *Recorder) Record(in sim.Input) {
	r.pt.Ticks++
	if in.Empty() {
		return
	}
	r.pt.Frames = append(r.pt.Frames, Frame{Tick: r.pt.Ticks, Input: in})
}

// Playthrough returns a copy of what has been recorded so far.
func (r *Recorder) Playthrough() *Playthrough {
	return r.pt.Clone()
}

// Reset starts a new recording with the same settings and a new ID.
func (r *Recorder) Reset() {
	r.pt = Playthrough{
		ID:         uuid.New(),
		GameID:     r.pt.GameID,
		Sandbox:    r.pt.Sandbox,
		StartLevel: r.pt.StartLevel,
		Params:     r.pt.Params,
		CreatedAt:  time.Now().UTC(),
	}
}

const (
	bitSwap = 1 << (3 + iota)
	bitPause
	bitRestart
	bitView
)

func packInput(in sim.Input) byte {
	b := byte(in.Move) & 0x7
	if in.Swap {
		b |= bitSwap
	}
	if in.Pause {
		b |= bitPause
	}
	if in.Restart {
		b |= bitRestart
	}
	if in.View {
		b |= bitView
	}
	return b
}

func unpackInput(b byte) sim.Input {
	return sim.Input{
		Move:    sim.Dir(b & 0x7),
		Swap:    b&bitSwap != 0,
		Pause:   b&bitPause != 0,
		Restart: b&bitRestart != 0,
		View:    b&bitView != 0,
	}
}

// Marshal encodes the playthrough and compresses it with zstd.
func (p *Playthrough) Marshal() ([]byte, error) {
	b := make([]byte, 0, 64+len(p.Frames)*3)
	b = append(b, magic[:]...)
	b = binary.AppendUvarint(b, Version)
	b = append(b, p.ID[:]...)
	b = binary.AppendUvarint(b, uint64(len(p.GameID)))
	b = append(b, p.GameID...)
	b = append(b, boolByte(p.Sandbox))
	b = binary.AppendUvarint(b, uint64(p.StartLevel))
	b = binary.LittleEndian.AppendUint64(b, math.Float64bits(p.Params.Speed))
	b = binary.LittleEndian.AppendUint64(b, math.Float64bits(p.Params.FallStep))
	b = binary.LittleEndian.AppendUint64(b, math.Float64bits(p.Params.FallFloor))
	b = binary.AppendUvarint(b, uint64(p.Params.TicksPerSecond))
	b = binary.AppendVarint(b, p.CreatedAt.UnixNano())
	b = binary.AppendUvarint(b, p.Ticks)
	b = binary.AppendUvarint(b, uint64(len(p.Frames)))

	var last uint64
	for _, f := range p.Frames {
		if f.Tick < last {
			return nil, fmt.Errorf("replay: frame at tick %d after tick %d", f.Tick, last)
		}
		b = binary.AppendUvarint(b, f.Tick-last)
		b = append(b, packInput(f.Input))
		last = f.Tick
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("replay: create compressor: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(b, nil), nil
}

// Unmarshal decodes data produced by Marshal.
func Unmarshal(data []byte) (*Playthrough, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("replay: create decompressor: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	r := reader{buf: bytes.NewReader(raw)}
	var m [4]byte
	r.read(m[:])
	if r.err == nil && m != magic {
		return nil, fmt.Errorf("%w: wrong magic %q", ErrFormat, m[:])
	}
	if v := r.uvarint(); r.err == nil && v != Version {
		return nil, fmt.Errorf("%w: version %d, expected %d", ErrFormat, v, Version)
	}

	p := &Playthrough{}
	r.read(p.ID[:])
	nameLen := r.uvarint()
	if nameLen > uint64(r.buf.Len()) {
		return nil, fmt.Errorf("%w: game id length %d", ErrFormat, nameLen)
	}
	name := make([]byte, nameLen)
	r.read(name)
	p.GameID = string(name)
	p.Sandbox = r.readByte() != 0
	p.StartLevel = int(r.uvarint())
	p.Params.Speed = math.Float64frombits(r.fixed64())
	p.Params.FallStep = math.Float64frombits(r.fixed64())
	p.Params.FallFloor = math.Float64frombits(r.fixed64())
	p.Params.TicksPerSecond = int(r.uvarint())
	p.CreatedAt = time.Unix(0, r.varint()).UTC()
	p.Ticks = r.uvarint()

	n := r.uvarint()
	if n > uint64(r.buf.Len()) {
		return nil, fmt.Errorf("%w: %d frames", ErrFormat, n)
	}
	var tick uint64
	for i := uint64(0); i < n && r.err == nil; i++ {
		tick += r.uvarint()
		p.Frames = append(p.Frames, Frame{Tick: tick, Input: unpackInput(r.readByte())})
	}

	if r.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, r.err)
	}
	return p, nil
}

// reader keeps the first decoding error so fields can be read in a row.
type reader struct {
	buf *bytes.Reader
	err error
}

func (r *reader) read(p []byte) {
	if r.err != nil {
		return
	}
	_, r.err = io.ReadFull(r.buf, p)
}

func (r *reader) readByte() byte {
	if r.err != nil {
		return 0
	}
	var c byte
	c, r.err = r.buf.ReadByte()
	return c
}

func (r *reader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}
	var v uint64
	v, r.err = binary.ReadUvarint(r.buf)
	return v
}

func (r *reader) varint() int64 {
	if r.err != nil {
		return 0
	}
	var v int64
	v, r.err = binary.ReadVarint(r.buf)
	return v
}

func (r *reader) fixed64() uint64 {
	var b [8]byte
	r.read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
