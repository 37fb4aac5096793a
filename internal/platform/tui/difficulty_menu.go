package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/megagame/internal/config"
	"github.com/vovakirdan/megagame/internal/core"
)

// difficultyOption is one row of the difficulty picker.
type difficultyOption struct {
	preset config.DifficultyPreset
	label  string
	blurb  string
}

var difficultyOptions = []difficultyOption{
	{config.DifficultyNormal, "Normal", "3 lives, ball speeds up each level"},
	{config.DifficultyEasy, "Easy", "5 lives, wide paddle, slow launch"},
	{config.DifficultyHard, "Hard", "2 lives, narrow paddle, fast launch"},
	{config.DifficultyFixed, "Fixed", "3 lives, speed never changes"},
}

// difficultySetter is implemented by games with difficulty presets.
type difficultySetter interface {
	SetDifficulty(preset string)
}

// DifficultyModel lets the player pick a difficulty preset before a game.
type DifficultyModel struct {
	title     string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	chosen    bool
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a picker headed with the game title.
func NewDifficultyModel(title string, width, height int) DifficultyModel {
	return DifficultyModel{
		title:     title,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficultyOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.chosen = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the picker.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(spaced(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, opt := range difficultyOptions {
		line := fmt.Sprintf("  %-7s %s", opt.label, menuDimStyle.Render(opt.blurb))
		if i == m.cursor {
			line = menuCursorStyle.Render("> "+fmt.Sprintf("%-7s", opt.label)) + " " + opt.blurb
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// Preset returns the highlighted preset.
func (m DifficultyModel) Preset() config.DifficultyPreset {
	return difficultyOptions[m.cursor].preset
}

// Chosen returns true once the player confirmed a preset.
func (m DifficultyModel) Chosen() bool {
	return m.chosen
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// spaced puts a space between letters of an upper-cased title.
func spaced(title string) string {
	return strings.Join(strings.Split(strings.ToUpper(title), ""), " ")
}

// RunDifficultySelector asks for a preset. ok is false when the player
// backed out or quit.
func RunDifficultySelector(title string, cfg core.RuntimeConfig) (preset config.DifficultyPreset, ok bool, err error) {
	p := tea.NewProgram(NewDifficultyModel(title, cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return "", false, fmt.Errorf("tui: difficulty menu: %w", err)
	}

	m, isModel := finalModel.(DifficultyModel)
	if !isModel || !m.Chosen() {
		return "", false, nil
	}
	return m.Preset(), true, nil
}
