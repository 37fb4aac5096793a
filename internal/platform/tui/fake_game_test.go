package tui

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/megagame/internal/core"
	"github.com/vovakirdan/megagame/internal/registry"
)

const fakeGameID = "zz-fake"

// fakeGame records every frame it is stepped with and reports a scripted state.
type fakeGame struct {
	state      core.GameState
	level      int
	difficulty string
	resets     int
	frames     []core.InputFrame
}

func (g *fakeGame) ID() string                  { return fakeGameID }
func (g *fakeGame) Title() string               { return "Fake" }
func (g *fakeGame) Description() string         { return "Scripted test game" }
func (g *fakeGame) Reset(core.RuntimeConfig)    { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen)     { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState       { return g.state }
func (g *fakeGame) Level() int                  { return g.level }
func (g *fakeGame) SetDifficulty(preset string) { g.difficulty = preset }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}

func (g *fakeGame) lastFrame() core.InputFrame {
	return g.frames[len(g.frames)-1]
}

var (
	fakeMu   sync.Mutex
	lastFake *fakeGame
)

func init() {
	registry.Register(fakeGameID, func() registry.Game {
		fakeMu.Lock()
		defer fakeMu.Unlock()
		lastFake = &fakeGame{level: 1}
		return lastFake
	})
}

// fakeSaver records saved scores.
type fakeSaver struct {
	saves []savedScore
	err   error
}

type savedScore struct {
	gameID string
	score  int
	level  int
}

func (s *fakeSaver) SaveScore(gameID string, score, level int) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.saves = append(s.saves, savedScore{gameID, score, level})
	return int64(len(s.saves)), nil
}

var errSaveFailed = errors.New("disk full")

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}
