package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cuboid/internal/core"
)

// menuEntry identifies a line of the main menu.
type menuEntry int

const (
	entryCampaign menuEntry = iota
	entryLevels
	entryDemo
	entryScores
	entryQuit
)

var menuEntries = []struct {
	entry menuEntry
	label string
	desc  string
}{
	{entryCampaign, "Play Campaign", "Tip the pair into the goal on every level"},
	{entryLevels, "Select Level", "Start the campaign from a chosen level"},
	{entryDemo, "Demo", "Two cubes on an open board, no rules"},
	{entryScores, "High Scores", "Scores, level records and replays"},
	{entryQuit, "Quit", ""},
}

// menuScreen is the page the menu shows.
type menuScreen int

const (
	screenMain menuScreen = iota
	screenLevels
)

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Level           int // 1-indexed start level, 0 for the configured one
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// MenuModel is the Bubble Tea model for the main menu and the level picker.
type MenuModel struct {
	screen       menuScreen
	cursor       int
	scrollOffset int
	levelNames   []string
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	result       MenuResult
	done         bool
}

// NewMenuModel creates a new menu model. levelNames feeds the level picker.
func NewMenuModel(cfg core.RuntimeConfig, levelNames []string) MenuModel {
	return MenuModel{
		levelNames: levelNames,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		return m.finish(MenuResult{Quit: true})
	case MenuActionScoreboard:
		return m.finish(MenuResult{WantsScoreboard: true})
	}

	if m.screen == screenLevels {
		return m.handleLevelKey(action)
	}

	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}
	case MenuActionBack:
		return m.finish(MenuResult{Quit: true})
	case MenuActionSelect:
		switch menuEntries[m.cursor].entry {
		case entryCampaign:
			return m.finish(MenuResult{GameID: "cuboid"})
		case entryLevels:
			if len(m.levelNames) > 0 {
				m.screen = screenLevels
				m.cursor = 0
				m.scrollOffset = 0
			}
		case entryDemo:
			return m.finish(MenuResult{GameID: "cuboid_demo"})
		case entryScores:
			return m.finish(MenuResult{WantsScoreboard: true})
		case entryQuit:
			return m.finish(MenuResult{Quit: true})
		}
	}

	return m, nil
}

// handleLevelKey navigates the level picker.
func (m MenuModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.levelNames)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionBack:
		m.screen = screenMain
		m.cursor = int(entryLevels)
	case MenuActionSelect:
		return m.finish(MenuResult{GameID: "cuboid", Level: m.cursor + 1})
	}
	return m, nil
}

func (m MenuModel) finish(r MenuResult) (tea.Model, tea.Cmd) {
	m.result = r
	m.done = true
	return m, tea.Quit
}

// visibleLevels is how many level lines fit between header and footer.
func (m MenuModel) visibleLevels() int {
	return max(3, m.config.ScreenH-10)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *MenuModel) updateScroll() {
	visible := m.visibleLevels()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	width := m.config.ScreenW

	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuTitle.Render("C U B O I D"), width))
	b.WriteString("\n\n")

	if m.screen == screenLevels {
		m.viewLevels(&b)
	} else {
		m.viewMain(&b)
	}

	return b.String()
}

func (m MenuModel) viewMain(b *strings.Builder) {
	width := m.config.ScreenW

	for i, e := range menuEntries {
		cursor := "  "
		style := theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = theme.MenuItemActive
		}
		b.WriteString(centerText(style.Render(cursor+e.label), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if desc := menuEntries[m.cursor].desc; desc != "" {
		b.WriteString(centerText(theme.MenuDescription.Render(desc), width))
	}
	b.WriteString("\n\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(theme.MenuControls.Render(controls), width))
	b.WriteString("\n")
}

func (m MenuModel) viewLevels(b *strings.Builder) {
	width := m.config.ScreenW

	b.WriteString(centerText(theme.MenuDescription.Render("Select a level:"), width))
	b.WriteString("\n\n")

	end := min(m.scrollOffset+m.visibleLevels(), len(m.levelNames))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(theme.MenuDescription.Render("... more above ..."), width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		cursor := "  "
		style := theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = theme.MenuItemActive
		}
		line := fmt.Sprintf("%s%2d. %s", cursor, i+1, m.levelNames[i])
		b.WriteString(centerText(style.Render(line), width))
		b.WriteString("\n")
	}
	if end < len(m.levelNames) {
		b.WriteString(centerText(theme.MenuDescription.Render("... more below ..."), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Esc: Back  |  Q: Quit"
	b.WriteString(centerText(theme.MenuControls.Render(controls), width))
	b.WriteString("\n")
}

// Result returns the menu outcome. ok is false while the menu is open.
func (m MenuModel) Result() (r MenuResult, ok bool) {
	r = m.result
	r.Config = m.config
	return r, m.done
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, levelNames []string) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg, levelNames),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	result, done := m.Result()
	if !done {
		result.Quit = true
	}
	return result, nil
}
