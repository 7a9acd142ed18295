package replay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cuboid/internal/games/cuboid/levels"
	"github.com/vovakirdan/cuboid/internal/games/cuboid/replay"
	"github.com/vovakirdan/cuboid/internal/games/cuboid/sim"
)

// play drives a live world and a recorder with the same inputs.
func play(t *testing.T, lvls []sim.Level, script []sim.Input) (*replay.Playthrough, sim.Snapshot) {
	t.Helper()
	params := sim.DefaultParams()
	w, err := sim.NewWorld(sim.Options{Params: params, Levels: lvls})
	require.NoError(t, err)
	rec := replay.NewRecorder("cuboid", false, 0, params)

	for _, in := range script {
		rec.Record(in)
		w.Step(in)
	}
	return rec.Playthrough(), w.Snapshot()
}

// idle pads a script with n empty ticks.
func idle(n int) []sim.Input {
	return make([]sim.Input, n)
}

func script(moves ...sim.Dir) []sim.Input {
	var out []sim.Input
	for _, d := range moves {
		out = append(out, sim.Input{Move: d})
		out = append(out, idle(12)...)
	}
	return out
}

func TestRecorderSkipsEmptyTicks(t *testing.T) {
	rec := replay.NewRecorder("cuboid", false, 0, sim.DefaultParams())
	rec.Record(sim.Input{})
	rec.Record(sim.Input{Move: sim.East})
	rec.Record(sim.Input{})
	rec.Record(sim.Input{View: true, Swap: true})

	pt := rec.Playthrough()
	assert.Equal(t, uint64(4), pt.Ticks)
	assert.Equal(t, []replay.Frame{
		{Tick: 2, Input: sim.Input{Move: sim.East}},
		{Tick: 4, Input: sim.Input{View: true, Swap: true}},
	}, pt.Frames)

	id := pt.ID
	rec.Reset()
	assert.NotEqual(t, id, rec.Playthrough().ID)
	assert.Zero(t, rec.Playthrough().Ticks)
}

func TestMarshalRoundTrip(t *testing.T) {
	rec := replay.NewRecorder("cuboid_demo", true, 2, sim.Params{Speed: 15, FallStep: 0.2, FallFloor: -5, TicksPerSecond: 30})
	for _, in := range []sim.Input{
		{Move: sim.North}, {}, {Move: sim.West, Pause: true}, {Restart: true}, {}, {}, {Move: sim.South, View: true},
	} {
		rec.Record(in)
	}
	pt := rec.Playthrough()

	data, err := pt.Marshal()
	require.NoError(t, err)
	back, err := replay.Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, pt.ID, back.ID)
	assert.Equal(t, pt.GameID, back.GameID)
	assert.Equal(t, pt.Sandbox, back.Sandbox)
	assert.Equal(t, pt.StartLevel, back.StartLevel)
	assert.Equal(t, pt.Params, back.Params)
	assert.Equal(t, pt.Ticks, back.Ticks)
	assert.Equal(t, pt.Frames, back.Frames)
	assert.True(t, pt.CreatedAt.Equal(back.CreatedAt))
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	_, err := replay.Unmarshal([]byte("definitely not zstd"))
	assert.ErrorIs(t, err, replay.ErrFormat)

	rec := replay.NewRecorder("cuboid", false, 0, sim.DefaultParams())
	rec.Record(sim.Input{Move: sim.North})
	data, err := rec.Playthrough().Marshal()
	require.NoError(t, err)
	_, err = replay.Unmarshal(data[:len(data)/2])
	assert.Error(t, err)
}

func TestRunReproducesLiveSession(t *testing.T) {
	lvls, err := levels.Campaign()
	require.NoError(t, err)

	in := script(sim.East, sim.North, sim.East, sim.South, sim.West)
	in = append(in, sim.Input{Pause: true})
	in = append(in, idle(30)...)
	in = append(in, sim.Input{Pause: true}, sim.Input{Move: sim.North})
	in = append(in, idle(200)...)

	pt, live := play(t, lvls, in)

	res, err := replay.Run(pt, lvls, nil)
	require.NoError(t, err)
	assert.Equal(t, live, res.Final)
	assert.Equal(t, replay.Digest(live), res.Digest)

	again, err := replay.Run(pt, lvls, nil)
	require.NoError(t, err)
	assert.Equal(t, res.Digest, again.Digest)
}

func TestRunCountsSteps(t *testing.T) {
	lvls, err := levels.Campaign()
	require.NoError(t, err)
	pt, _ := play(t, lvls, script(sim.East, sim.East))

	steps := 0
	res, err := replay.Run(pt, lvls, func(*sim.World) { steps++ })
	require.NoError(t, err)
	assert.Equal(t, len(script(sim.East, sim.East)), steps)
	assert.Equal(t, 2, res.Final.Moves)
}

func TestDigestChangesWithState(t *testing.T) {
	lvls, err := levels.Campaign()
	require.NoError(t, err)
	a, _ := play(t, lvls, script(sim.East))
	b, _ := play(t, lvls, script(sim.North))

	ra, err := replay.Run(a, lvls, nil)
	require.NoError(t, err)
	rb, err := replay.Run(b, lvls, nil)
	require.NoError(t, err)
	assert.NotEqual(t, ra.Digest, rb.Digest)
}

func TestRunSandbox(t *testing.T) {
	rec := replay.NewRecorder("cuboid_demo", true, 0, sim.DefaultParams())
	for _, in := range script(sim.West, sim.West) {
		rec.Record(in)
	}

	res, err := replay.Run(rec.Playthrough(), nil, nil)
	require.NoError(t, err)
	assert.False(t, res.Final.HasSession)
	assert.InDelta(t, -2.0, res.Final.Blocks[0].Pos.X(), 1e-9)
}

func TestRunRejectsBadStartLevel(t *testing.T) {
	lvls, err := levels.Campaign()
	require.NoError(t, err)
	rec := replay.NewRecorder("cuboid", false, 7, sim.DefaultParams())

	_, err = replay.Run(rec.Playthrough(), lvls, nil)
	assert.Error(t, err)
}
