package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move left (paddle)
	ActionRight          // D, Right arrow - move right (paddle)
	ActionLaunch         // Space - primary action (launch ball)
	ActionConfirm        // Enter - confirm selection, start game, next level
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
	ActionUp             // W, Up arrow - menu navigation
	ActionDown           // S, Down arrow - menu navigation
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionLaunch:
		return "Launch"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointer is the pointer position as a fraction of the screen width
	// in [0, 1]. Only meaningful when HasPointer is set.
	Pointer    float64
	HasPointer bool

	// Elapsed is the wall time covered by this frame.
	Elapsed time.Duration
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SetPointer records a pointer position, clamped to [0, 1].
func (f *InputFrame) SetPointer(frac float64) {
	f.Pointer = ClampF(frac, 0, 1)
	f.HasPointer = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions and the pointer for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.HasPointer = false
	f.Pointer = 0
	f.Elapsed = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = f.Pointer
	clone.HasPointer = f.HasPointer
	clone.Elapsed = f.Elapsed
	return clone
}
