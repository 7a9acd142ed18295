package tui

import (
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cuboid/internal/core"
	"github.com/vovakirdan/cuboid/internal/games/cuboid"
	"github.com/vovakirdan/cuboid/internal/games/cuboid/replay"
	"github.com/vovakirdan/cuboid/internal/metrics"
	"github.com/vovakirdan/cuboid/internal/storage"
)

// scriptedGame replays a fixed list of step results, repeating the last.
type scriptedGame struct {
	steps  []core.StepResult
	n      int
	resets int
	inputs []core.InputFrame
}

func (g *scriptedGame) ID() string { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }
func (g *scriptedGame) Reset(core.RuntimeConfig) { g.resets++; g.n = 0 }
func (g *scriptedGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) State() core.GameState { return g.current().State }
func (g *scriptedGame) current() core.StepResult {
	if len(g.steps) == 0 {
		return core.StepResult{}
	}
	return g.steps[min(g.n, len(g.steps)-1)]
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	r := g.current()
	g.n++
	return r
}

type cueRecorder struct {
	cues []string
}

func (c *cueRecorder) Play(cue string) {
	c.cues = append(c.cues, cue)
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func scrape(t *testing.T, c *metrics.Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	return rec.Body.String()
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.Update(TickMsg(time.Now()))
	require.NotNil(t, cmd, "a tick schedules the next one")
	return next.(Model)
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

var testConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}

func TestModelDispatchesEvents(t *testing.T) {
	game := &scriptedGame{steps: []core.StepResult{{
		State: core.GameState{Level: 1},
		Events: []core.Event{
			{Kind: core.EventCue, Name: "move"},
			{Kind: core.EventMove},
			{Kind: core.EventFell, Level: 1},
			{Kind: core.EventCue, Name: "goal"},
			{Kind: core.EventLevelCleared, Name: "01", Level: 1, Moves: 3, Seconds: 4, Score: 500},
		},
	}, {}}}

	store := openStore(t)
	audio := &cueRecorder{}
	mc := metrics.New(nil)

	m := NewModel(game, testConfig, Hooks{Store: store, Audio: audio, Metrics: mc})
	m.Init()
	m = tick(t, m)
	m = tick(t, m)

	assert.Equal(t, []string{"move", "goal"}, audio.cues)

	rec, err := store.BestLevelRecord("01")
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Moves)
	assert.Equal(t, 4, rec.Seconds)
	assert.Equal(t, 500, rec.Score)

	body := scrape(t, mc)
	assert.Contains(t, body, "cuboid_moves_total 1")
	assert.Contains(t, body, "cuboid_falls_total 1")
	assert.Contains(t, body, `cuboid_levels_cleared_total{level="1"} 1`)
}

func TestModelWithoutHooks(t *testing.T) {
	game := &scriptedGame{steps: []core.StepResult{{
		State:  core.GameState{GameOver: true, Score: 10},
		Events: []core.Event{{Kind: core.EventCue, Name: "move"}, {Kind: core.EventLevelCleared}},
	}}}

	m := NewModel(game, testConfig, Hooks{})
	m.Init()
	assert.NotPanics(t, func() { tick(t, m) })
}

func TestModelSavesScoreOncePerGameOver(t *testing.T) {
	over := core.StepResult{State: core.GameState{GameOver: true, Score: 1234}}
	game := &scriptedGame{steps: []core.StepResult{
		over, over, over,
		{State: core.GameState{}},
		over,
	}}

	store := openStore(t)
	mc := metrics.New(nil)
	m := NewModel(game, testConfig, Hooks{Store: store, Metrics: mc})
	m.Init()

	for range 3 {
		m = tick(t, m)
	}
	scores, err := store.TopScores("scripted", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 1234, scores[0].Score)

	// Leaving game over and finishing again counts as a new completion.
	m = tick(t, m)
	m = tick(t, m)
	scores, err = store.TopScores("scripted", 10)
	require.NoError(t, err)
	assert.Len(t, scores, 2)
	assert.Contains(t, scrape(t, mc), "cuboid_campaigns_completed_total 2")
}

func TestModelInputReachesGameOnce(t *testing.T) {
	game := &scriptedGame{}
	m := NewModel(game, testConfig, Hooks{})
	m.Init()

	m, _ = press(m, runeKey('d'))
	m, _ = press(m, runeKey(' '))
	m = tick(t, m)
	tick(t, m)

	require.Len(t, game.inputs, 2)
	assert.True(t, game.inputs[0].Has(core.ActionRight))
	assert.True(t, game.inputs[0].Has(core.ActionSwap))
	assert.True(t, game.inputs[1].Empty(), "the frame is cleared after each tick")
}

func TestModelQuitAndBack(t *testing.T) {
	m := NewModel(&scriptedGame{}, testConfig, Hooks{})
	m.Init()

	back, cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, back.BackToMenu())
	assert.False(t, back.IsQuitting())
	assert.NotNil(t, cmd)
	assert.Empty(t, back.View())

	quit, cmd := press(m, runeKey('q'))
	assert.True(t, quit.IsQuitting())
	assert.NotNil(t, cmd)
}

func TestModelResizeKeepsGame(t *testing.T) {
	game := &scriptedGame{}
	m := NewModel(game, testConfig, Hooks{})
	m.Init()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	assert.Equal(t, 1, game.resets)
	assert.Equal(t, 100, m.screen.Width())
	assert.Equal(t, 30, m.screen.Height())
	assert.Contains(t, m.View(), "scripted")
}

func TestModelSavesReplayOnBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	store := openStore(t)

	game := cuboid.New()
	m := NewModel(game, testConfig, Hooks{Store: store})
	m.Init()

	m, _ = press(m, runeKey('d'))
	m = tick(t, m)
	m = tick(t, m)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, m.BackToMenu())

	entries, err := store.RecentReplays(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cuboid", entries[0].GameID)
	assert.Equal(t, 1, entries[0].StartLevel)
	assert.Equal(t, uint64(2), entries[0].Ticks)

	full, err := store.ReplayByID(entries[0].ID)
	require.NoError(t, err)
	pt, err := replay.Unmarshal(full.Data)
	require.NoError(t, err)
	require.Len(t, pt.Frames, 1)
	assert.Equal(t, uint64(1), pt.Frames[0].Tick)
}

func TestReplayEntrySkipsUnrecordedGames(t *testing.T) {
	_, ok := replayEntry(&scriptedGame{})
	assert.False(t, ok)

	t.Setenv("HOME", t.TempDir())
	game := cuboid.New()
	game.Reset(testConfig)
	_, ok = replayEntry(game)
	assert.False(t, ok, "a game with no input has nothing to replay")
}
