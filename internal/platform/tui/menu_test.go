package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cuboid/internal/storage"
)

func menuKeys(m MenuModel, msgs ...tea.KeyMsg) (MenuModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(MenuModel)
	}
	return m, cmd
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestMenuCampaign(t *testing.T) {
	m, cmd := menuKeys(NewMenuModel(testConfig, nil), keyEnter)
	require.NotNil(t, cmd)

	r, done := m.Result()
	require.True(t, done)
	assert.Equal(t, "cuboid", r.GameID)
	assert.Zero(t, r.Level)
	assert.False(t, r.Quit)
}

func TestMenuDemo(t *testing.T) {
	m, _ := menuKeys(NewMenuModel(testConfig, nil), keyDown, keyDown, keyEnter)

	r, done := m.Result()
	require.True(t, done)
	assert.Equal(t, "cuboid_demo", r.GameID)
}

func TestMenuLevelPicker(t *testing.T) {
	names := []string{"First Steps", "Crossroads", "Thin Ice"}
	m := NewMenuModel(testConfig, names)

	m, _ = menuKeys(m, keyDown, keyEnter)
	_, done := m.Result()
	require.False(t, done, "select level opens the picker")
	assert.Contains(t, m.View(), "Crossroads")

	m, _ = menuKeys(m, keyDown, keyDown, keyDown, keyUp, keyEnter)
	r, done := m.Result()
	require.True(t, done)
	assert.Equal(t, "cuboid", r.GameID)
	assert.Equal(t, 2, r.Level)
}

func TestMenuLevelPickerBack(t *testing.T) {
	m, _ := menuKeys(NewMenuModel(testConfig, []string{"a"}), keyDown, keyEnter, keyEsc)
	_, done := m.Result()
	require.False(t, done)
	assert.Contains(t, m.View(), "Play Campaign")

	// Esc on the main screen leaves the menu.
	m, _ = menuKeys(m, keyEsc)
	r, done := m.Result()
	require.True(t, done)
	assert.True(t, r.Quit)
}

func TestMenuWithoutLevelsStaysOnMain(t *testing.T) {
	m, _ := menuKeys(NewMenuModel(testConfig, nil), keyDown, keyEnter)
	_, done := m.Result()
	assert.False(t, done)
	assert.Contains(t, m.View(), "Select Level")
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m, _ := menuKeys(NewMenuModel(testConfig, nil), tea.KeyMsg{Type: tea.KeyTab})
	r, done := m.Result()
	require.True(t, done)
	assert.True(t, r.WantsScoreboard)

	m, _ = menuKeys(NewMenuModel(testConfig, nil), runeKey('q'))
	r, done = m.Result()
	require.True(t, done)
	assert.True(t, r.Quit)
}

func TestMenuTracksWindowSize(t *testing.T) {
	next, _ := NewMenuModel(testConfig, nil).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	r, _ := next.(MenuModel).Result()
	assert.Equal(t, 120, r.Config.ScreenW)
	assert.Equal(t, 40, r.Config.ScreenH)
}

func TestScoreboardBoards(t *testing.T) {
	store := openStore(t)
	_, err := store.SaveScore("cuboid", 4200)
	require.NoError(t, err)
	_, err = store.SaveLevelRecord(storage.LevelRecord{LevelID: "02", Moves: 7, Seconds: 12, Score: 900})
	require.NoError(t, err)
	require.NoError(t, store.SaveReplay(storage.ReplayEntry{
		ID: "5d1f0c2a-0000-4000-8000-000000000000", GameID: "cuboid", StartLevel: 1, Score: 4200, Ticks: 77, Data: []byte{1},
	}))

	m := NewScoreboardModel(store, 100, 30)
	assert.Contains(t, m.View(), "HIGH SCORES")
	assert.Contains(t, m.View(), "4200")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	assert.Contains(t, m.View(), "LEVEL RECORDS")
	assert.Contains(t, m.View(), "900")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	assert.Contains(t, m.View(), "REPLAYS")
	assert.Contains(t, m.View(), "5d1f0c2a")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	assert.Contains(t, m.View(), "LEVEL RECORDS")

	next, _ = m.Update(keyEsc)
	m = next.(ScoreboardModel)
	assert.True(t, m.IsGoingBack())
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	assert.Contains(t, m.View(), "No scores recorded yet")
}

func TestSessionFlow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	store := openStore(t)

	s := NewSessionModel(testConfig, Hooks{Store: store}, "tester")
	assert.Equal(t, "tester", s.Username())
	assert.Contains(t, s.View(), "Play Campaign")

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	assert.Equal(t, sessionScores, s.screen)

	next, _ = s.Update(keyEsc)
	s = next.(SessionModel)
	assert.Equal(t, sessionMenu, s.screen)

	next, cmd := s.Update(keyEnter)
	s = next.(SessionModel)
	require.Equal(t, sessionGame, s.screen)
	assert.NotNil(t, cmd, "the game starts ticking")
	assert.Contains(t, s.View(), "Level 1/")

	next, _ = s.Update(keyEsc)
	s = next.(SessionModel)
	assert.Equal(t, sessionMenu, s.screen)

	next, cmd = s.Update(runeKey('q'))
	s = next.(SessionModel)
	assert.NotNil(t, cmd)
	assert.Empty(t, s.View())
}
