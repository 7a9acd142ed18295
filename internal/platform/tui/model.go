package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cuboid/internal/core"
	"github.com/vovakirdan/cuboid/internal/games/cuboid/replay"
	"github.com/vovakirdan/cuboid/internal/games/cuboid/sim"
	"github.com/vovakirdan/cuboid/internal/metrics"
	"github.com/vovakirdan/cuboid/internal/registry"
	"github.com/vovakirdan/cuboid/internal/storage"
)

// CuePlayer plays the sound cues a game emits.
type CuePlayer interface {
	Play(cue string)
}

// Hooks are the optional collaborators of a running game. Any of them
// may be nil.
type Hooks struct {
	Store   *storage.Store
	Audio   CuePlayer
	Metrics *metrics.Collector
}

// recorded is implemented by games that keep a replayable playthrough.
type recorded interface {
	Playthrough() *replay.Playthrough
	Snapshot() (sim.Snapshot, bool)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	hooks      Hooks
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, hooks Hooks) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		hooks:      hooks,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The board does not depend on the window, so the game keeps its state.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveReplay()
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionBack) {
		m.saveReplay()
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.handleEvents(result.Events)

	// A restart leaves game over behind; the next completion is saved again.
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	// Save score and replay on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		if m.hooks.Store != nil && m.gameState.Score > 0 {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.hooks.Store.SaveScore(m.game.ID(), m.gameState.Score)
		}
		if m.hooks.Metrics != nil && m.gameState.Score > 0 {
			m.hooks.Metrics.CampaignCompleted()
		}
		m.saveReplay()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// handleEvents forwards game events to the audio, storage and metrics hooks.
func (m Model) handleEvents(events []core.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case core.EventCue:
			if m.hooks.Audio != nil {
				m.hooks.Audio.Play(ev.Name)
			}
		case core.EventMove:
			if m.hooks.Metrics != nil {
				m.hooks.Metrics.Move()
			}
		case core.EventFell:
			if m.hooks.Metrics != nil {
				m.hooks.Metrics.Fell()
			}
		case core.EventLevelCleared:
			if m.hooks.Store != nil {
				//nolint:errcheck // Best-effort save, game continues regardless
				m.hooks.Store.SaveLevelRecord(storage.LevelRecord{
					LevelID: ev.Name,
					Moves:   ev.Moves,
					Seconds: ev.Seconds,
					Score:   ev.Score,
				})
			}
			if m.hooks.Metrics != nil {
				m.hooks.Metrics.LevelCleared(ev.Level, ev.Seconds)
			}
		}
	}
}

// saveReplay stores the game's playthrough if it recorded any input.
func (m Model) saveReplay() {
	if m.hooks.Store == nil {
		return
	}
	entry, ok := replayEntry(m.game)
	if !ok {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.hooks.Store.SaveReplay(entry)
}

// replayEntry encodes a game's playthrough for storage.
func replayEntry(game registry.Game) (storage.ReplayEntry, bool) {
	rg, ok := game.(recorded)
	if !ok {
		return storage.ReplayEntry{}, false
	}
	pt := rg.Playthrough()
	snap, live := rg.Snapshot()
	if pt == nil || !live || len(pt.Frames) == 0 {
		return storage.ReplayEntry{}, false
	}
	data, err := pt.Marshal()
	if err != nil {
		return storage.ReplayEntry{}, false
	}
	return storage.ReplayEntry{
		ID:         pt.ID.String(),
		GameID:     pt.GameID,
		StartLevel: pt.StartLevel + 1,
		Score:      snap.Score,
		Ticks:      pt.Ticks,
		Digest:     fmt.Sprintf("%016x", replay.Digest(snap)),
		Data:       data,
	}, true
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".cuboid", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game. It reports
// whether the player asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, hooks Hooks) (back bool, err error) {
	p := tea.NewProgram(
		NewModel(game, cfg, hooks),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	return ok && m.BackToMenu(), nil
}
