package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/megagame/internal/registry"
	"github.com/vovakirdan/megagame/internal/storage"
)

// maxScores is how many rows the scoreboard loads per game.
const maxScores = 100

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardTabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTabStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)
	boardNoteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// scoreboardKeys are the bindings shown in the help bar.
type scoreboardKeys struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Next, k.Prev}, {k.Back, k.Quit}}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next game")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev game")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists the best runs of each registered game, one game
// at a time, with aggregate stats underneath.
type ScoreboardModel struct {
	games    []registry.GameInfo
	active   int
	store    *storage.Store
	scores   []storage.ScoreEntry
	stats    *storage.GameStats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     scoreboardKeys
	width    int
	height   int
	quitting bool
	back     bool
}

// NewScoreboardModel creates a scoreboard. store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   newScoreboardKeys(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

// newTable sizes the score table to the window.
func (m *ScoreboardModel) newTable() table.Model {
	dateW := min(max(m.width-40, 12), 20)
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 10},
		{Title: "Level", Width: 6},
		{Title: "Date", Width: dateW},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads scores and stats for the active game.
func (m *ScoreboardModel) load() {
	m.scores, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil && len(m.games) > 0 {
		gameID := m.games[m.active].ID
		m.scores, m.loadErr = m.store.TopScores(gameID, maxScores)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GameStats(gameID)
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			levelCell(s.Level),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// levelCell renders a level, or a dash for rows saved without one.
func levelCell(level int) string {
	if level <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", level)
}

// cycle moves the active game by delta, wrapping around.
func (m *ScoreboardModel) cycle(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.active = (m.active + delta + len(m.games)) % len(m.games)
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerBlock(boardFrameStyle.Render(m.body()), m.width))
	b.WriteString("\n")
	if line := m.statsLine(); line != "" {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// tabs renders the game selector, collapsing to the active title when
// the row does not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.games) == 0 {
		return boardNoteStyle.Render("No games registered")
	}

	parts := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.active {
			parts[i] = boardActiveTabStyle.Render(g.Title)
		} else {
			parts[i] = boardTabStyle.Render(g.Title)
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(row) > m.width-4 {
		return boardActiveTabStyle.Render("< " + m.games[m.active].Title + " >")
	}
	return row
}

// body is the table or a note explaining why there is none.
func (m ScoreboardModel) body() string {
	switch {
	case m.store == nil:
		return boardNoteStyle.Render("Scores are not being recorded.")
	case m.loadErr != nil:
		return boardNoteStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.scores) == 0:
		return boardNoteStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return boardNoteStyle.Render(fmt.Sprintf("Games %d  ·  Best %d  ·  Average %.0f  ·  Best level %d",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.BestLevel))
}

// centerBlock centers every line of a multi-line block.
func centerBlock(block string, width int) string {
	pad := (width - lipgloss.Width(block)) / 2
	if pad <= 0 {
		return block
	}
	return lipgloss.NewStyle().PaddingLeft(pad).Render(block)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: scoreboard: %w", err)
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
