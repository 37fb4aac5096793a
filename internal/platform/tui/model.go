package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/vovakirdan/megagame/internal/core"
	"github.com/vovakirdan/megagame/internal/loop"
	"github.com/vovakirdan/megagame/internal/registry"
)

// ScoreSaver records a finished game. storage.Store satisfies it.
type ScoreSaver interface {
	SaveScore(gameID string, score, level int) (int64, error)
}

// leveler is implemented by games that report the level reached.
type leveler interface {
	Level() int
}

// GameModel is the Bubble Tea model that runs one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      ScoreSaver
	logger     *log.Logger
	clock      clockwork.Clock
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	lastTick   time.Time
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel creates a model for the given game. store and logger may be nil.
func NewGameModel(game registry.Game, store ScoreSaver, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		clock:      clockwork.NewRealClock(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// WithClock returns a copy of the model that measures tick time on c.
func (m GameModel) WithClock(c clockwork.Clock) GameModel {
	m.clock = c
	return m
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, m.config.ScreenW, &m.inputFrame)
		return m, nil
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only when nothing is in motion
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
	}
	return m, nil
}

// handleResize follows the terminal size. Games that can re-layout keep
// their state; others restart.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick steps the game by the wall time since the previous tick.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	now := m.clock.Now()
	if !m.lastTick.IsZero() {
		m.inputFrame.Elapsed = min(now.Sub(m.lastTick), loop.DefaultMaxStep)
	}
	m.lastTick = now

	if m.inputFrame.Has(core.ActionRestart) {
		m.scoreSaved = false
	}

	result := m.game.Step(m.inputFrame)
	prevOver := m.gameState.GameOver
	m.gameState = result.State
	if prevOver && !m.gameState.GameOver {
		m.scoreSaved = false
	}
	for _, ev := range result.Events {
		m.logger.Debug("game event", "game", m.game.ID(), "event", ev)
	}

	if m.gameState.GameOver {
		m.saveScore()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScore records the final score once per game.
func (m *GameModel) saveScore() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	level := 1
	if l, ok := m.game.(leveler); ok {
		level = l.Level()
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score, level); err != nil {
		m.logger.Warn("score save failed", "game", m.game.ID(), "err", err)
	}
}

// saveScreenshot writes the current screen to ~/.megagame/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	dir := filepath.Join(home, ".megagame", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := m.clock.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last state reported by the game.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the local terminal.
func Run(game registry.Game, store ScoreSaver, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
