package breakout

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/megagame/internal/config"
	"github.com/vovakirdan/megagame/internal/core"
	"github.com/vovakirdan/megagame/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar = '='
	LaserChar  = '^'
	BallChar   = '●'
	TrailChar  = '·'
	SparkChar  = '*'
	DustChar   = '.'
	BorderHLn  = '─'
)

// Brick glyphs by remaining health, weakest first.
var BrickGlyphs = []rune{'░', '▒', '▓', '█'}

// keyNudgeFrames is how many reference frames of paddle travel one
// key press is worth. Terminals deliver key repeats, not key holds.
const keyNudgeFrames = 5

var (
	// configPath stores the custom config path set via CLI
	configPath string
	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset config.DifficultyPreset
	// highScores is handed to every engine the platform creates
	highScores HighScoreStore
	// logger is handed to every engine the platform creates
	logger = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetHighScoreStore sets the store new games read and write the high score with.
func SetHighScoreStore(s HighScoreStore) {
	highScores = s
}

// SetLogger sets the logger new games log with.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// LoadConfig resolves the configuration the platform settings point at.
// Errors fall back to the defaults and are logged.
func LoadConfig() config.BreakoutConfig {
	return loadConfig(difficultyPreset)
}

func loadConfig(preset config.DifficultyPreset) config.BreakoutConfig {
	cfg, err := config.LoadBreakout(configPath)
	if err != nil {
		logger.Warn("using default breakout config", "err", err)
		cfg = config.DefaultBreakoutConfig()
	}
	config.ApplyBreakoutPreset(&cfg, preset)
	return cfg
}

// Game adapts an Engine to the arcade platform: it turns input frames into
// commands and draws the world into a terminal screen buffer.
type Game struct {
	engine  *Engine
	cfg     config.BreakoutConfig
	runtime core.RuntimeConfig
	preset  config.DifficultyPreset // overrides the package preset when set

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new Breakout game instance.
func New() *Game {
	return &Game{minScreenW: 30, minScreenH: 12}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "breakout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Breakout"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	return "Smash bricks, chain combos, catch power-ups"
}

// SetDifficulty picks a preset for this game only, taking effect on the
// next Reset. Unknown names revert to the package-wide preset.
func (g *Game) SetDifficulty(preset string) {
	g.preset = config.ParsePreset(preset)
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	g.cfg = loadConfig(preset)
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	opts := []Option{WithLogger(logger), WithStore(highScores)}
	if runtime.Seed != 0 {
		opts = append(opts, WithSeed(runtime.Seed))
	}
	g.engine = NewEngine(g.cfg, opts...)
}

// Resize adapts rendering to a new terminal size without restarting.
// The simulation runs in field units and is unaffected.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
}

// Engine exposes the underlying simulation.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Step translates one input frame into commands and advances the world.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	dt := in.Elapsed
	if dt <= 0 {
		rate := g.runtime.TickRate
		if rate <= 0 {
			rate = ReferenceRate
		}
		dt = time.Second / time.Duration(rate)
	}

	var events []Event
	apply := func(c Command) {
		events = append(events, g.engine.Apply(c)...)
	}

	if in.Has(core.ActionRestart) {
		apply(ResetGame{})
	}

	if in.Has(core.ActionPause) {
		switch g.engine.Phase() {
		case PhaseActive:
			apply(PauseGame{})
		case PhasePaused:
			apply(ResumeGame{})
		}
	}

	if in.Has(core.ActionConfirm) {
		switch g.engine.Phase() {
		case PhaseLevelComplete:
			apply(NextLevel{})
		case PhaseGameOver:
			apply(ResetGame{})
		}
		apply(StartGame{})
	}

	if in.Has(core.ActionLaunch) {
		apply(StartGame{})
		apply(LaunchBall{})
	}

	if in.HasPointer {
		apply(MovePaddle{X: in.Pointer * g.cfg.Field.Width})
	}
	if in.Has(core.ActionLeft) != in.Has(core.ActionRight) {
		nudge := g.cfg.Paddle.Speed * keyNudgeFrames
		if in.Has(core.ActionLeft) {
			nudge = -nudge
		}
		apply(MovePaddle{X: g.engine.world.Paddle.CenterX() + nudge})
	}

	apply(UpdatePhysics{DT: dt})

	result := core.StepResult{State: g.State()}
	for _, ev := range events {
		result.Events = append(result.Events, ev.String())
	}
	return result
}

// Level returns the level being played.
func (g *Game) Level() int {
	return g.engine.world.Level
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	w := &g.engine.world
	return core.GameState{
		Score:     w.Score,
		HighScore: w.HighScore,
		GameOver:  w.Phase == PhaseGameOver,
		Paused:    w.Phase == PhasePaused,
	}
}

// viewport maps field coordinates onto screen cells below the HUD.
type viewport struct {
	top    int
	sx, sy float64
}

func (g *Game) viewport(dst *core.Screen) viewport {
	rows := dst.Height() - 3 // HUD, separator, hint line
	return viewport{
		top: 2,
		sx:  float64(dst.Width()) / g.cfg.Field.Width,
		sy:  float64(rows) / g.cfg.Field.Height,
	}
}

func (v viewport) cell(x, y float64) (int, int) {
	return int(x * v.sx), v.top + int(y*v.sy)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	w := &g.engine.world
	v := g.viewport(dst)

	g.renderHUD(dst, w)
	g.renderBricks(dst, w, v)
	g.renderParticles(dst, w, v)
	g.renderPowerUps(dst, w, v)
	g.renderPaddle(dst, w, v)
	g.renderBalls(dst, w, v)
	g.renderOverlay(dst, w)
}

// renderHUD draws the score, lives, and level indicator.
func (g *Game) renderHUD(dst *core.Screen, w *World) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d  Hi: %d", w.Score, w.HighScore))

	lives := fmt.Sprintf("Lives: %s", strings.Repeat("♥", w.Lives))
	dst.DrawTextColored((dst.Width()-len([]rune(lives)))/2, 0, lives, core.ColorBrightRed)

	levelText := fmt.Sprintf("Level %d", w.Level)
	if w.Combo > 1 {
		levelText = fmt.Sprintf("x%d  %s", w.Combo, levelText)
	}
	dst.DrawText(dst.Width()-len(levelText)-1, 0, levelText)

	if effects := g.effectsString(w); effects != "" {
		dst.DrawTextColored(1, 1, effects, core.ColorBrightCyan)
		return
	}
	dst.DrawHLine(0, 1, dst.Width(), BorderHLn)
}

// effectsString lists active timed effects with whole seconds remaining.
func (g *Game) effectsString(w *World) string {
	parts := make([]string, 0, len(w.Active))
	for _, a := range w.Active {
		secs := int(w.EffectRemaining(a.Type).Seconds() + 0.999)
		parts = append(parts, fmt.Sprintf("%s(%d)", a.Type, secs))
	}
	return strings.Join(parts, " ")
}

func (g *Game) renderBricks(dst *core.Screen, w *World, v viewport) {
	for i := range w.Bricks {
		br := &w.Bricks[i]
		if br.Destroyed {
			continue
		}
		x0, y := v.cell(br.X, br.Y+br.Height/2)
		x1, _ := v.cell(br.X+br.Width, br.Y)
		if x1 <= x0 {
			x1 = x0 + 1
		}
		glyph := BrickGlyphs[core.Clamp(br.Health, 1, len(BrickGlyphs))-1]
		color := core.ColorFromHex(br.Color)
		for x := x0; x < x1; x++ {
			dst.SetColored(x, y, glyph, color)
		}
	}
}

func (g *Game) renderParticles(dst *core.Screen, w *World, v viewport) {
	for _, p := range w.Particles {
		x, y := v.cell(p.X, p.Y)
		glyph := DustChar
		if p.Life > 0.5 {
			glyph = SparkChar
		}
		dst.SetColored(x, y, glyph, core.ColorFromHex(p.Color))
	}
}

func (g *Game) renderPowerUps(dst *core.Screen, w *World, v viewport) {
	for _, p := range w.PowerUps {
		x, y := v.cell(p.X, p.Y)
		dst.SetColored(x, y, p.Type.Glyph(), core.ColorFromHex(p.Color))
	}
}

func (g *Game) renderPaddle(dst *core.Screen, w *World, v viewport) {
	p := &w.Paddle
	x0, y := v.cell(p.X, p.Y)
	x1, _ := v.cell(p.X+p.Width, p.Y)
	color := core.ColorFromHex(g.cfg.Paddle.Color)
	for x := x0; x < x1; x++ {
		dst.SetColored(x, y, PaddleChar, color)
	}
	if w.HasEffect(PowerUpLaser) {
		dst.SetColored(x0, y, LaserChar, core.ColorOrange)
		dst.SetColored(x1-1, y, LaserChar, core.ColorOrange)
	}
}

func (g *Game) renderBalls(dst *core.Screen, w *World, v viewport) {
	for _, b := range w.Balls {
		for _, t := range b.Trail {
			x, y := v.cell(t.X, t.Y)
			if dst.Get(x, y) == ' ' {
				dst.SetColored(x, y, TrailChar, core.ColorGray)
			}
		}
	}
	for _, b := range w.Balls {
		x, y := v.cell(b.X, b.Y)
		dst.SetColored(x, y, BallChar, core.ColorBrightWhite)
	}
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen, w *World) {
	hint := dst.Height() - 1
	switch w.Phase {
	case PhaseNotStarted:
		dst.DrawTextCentered(hint, "Press ENTER to start")

	case PhaseActive:
		if len(w.Balls) > 0 && w.Balls[0].Docked() {
			dst.DrawTextCentered(hint, "Press SPACE to launch")
		}

	case PhasePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case PhaseGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", w.Score)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)

	case PhaseLevelComplete:
		subtitle := fmt.Sprintf("Score: %d  Accuracy: %d%%  Max combo: %d  |  ENTER for next level",
			w.Score, w.Accuracy(), w.MaxCombo)
		g.drawCenteredBox(dst, fmt.Sprintf("LEVEL %d CLEAR", w.Level), subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Min(core.Max(len([]rune(title)), len([]rune(subtitle)))+4, w)
	boxH := 5
	box := core.NewCellRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawText(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len([]rune(subtitle)))/2, box.Y+3, subtitle)
}

// Register the game with the registry
func init() {
	registry.Register("breakout", func() registry.Game {
		return New()
	})
}
