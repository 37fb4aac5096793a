package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/megagame/internal/core"
)

// KeyMapper translates Bubble Tea input messages to game actions.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ":
		return core.ActionLaunch, false
	case "enter":
		return core.ActionConfirm, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "b", "esc":
		return core.ActionBack, false
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapMouseToFrame turns mouse motion into a pointer position across a
// screen width columns wide. Clicks also launch.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, width int, frame *core.InputFrame) {
	if width > 1 {
		frame.SetPointer(float64(msg.X) / float64(width-1))
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		frame.Set(core.ActionLaunch)
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
