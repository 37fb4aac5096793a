// Package web serves breakout over WebSocket. A browser (or any client)
// sends small JSON commands and receives msgpack-encoded world snapshots
// as binary frames at a fixed cadence.
package web

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/megagame/internal/games/breakout"
)

// Client -> Server message types
const (
	MsgMove   = "move"   // x: paddle center in field units
	MsgLaunch = "launch" // release the docked ball
	MsgStart  = "start"
	MsgPause  = "pause"
	MsgResume = "resume"
	MsgReset  = "reset"
	MsgNext   = "next"    // advance after a cleared level
	MsgPickup = "collect" // id: collect a falling power-up
)

// Server -> Client message types (text frames)
const (
	MsgHello = "hello"
	MsgError = "error"
)

// Envelope wraps outgoing text messages with a type field.
type Envelope struct {
	T    string `json:"t"`
	Data any    `json:"d,omitempty"`
}

// InMessage is an incoming command.
type InMessage struct {
	T  string  `json:"t"`
	X  float64 `json:"x,omitempty"`
	ID int     `json:"id,omitempty"`
}

// HelloMsg tells the client the field size and snapshot cadence.
type HelloMsg struct {
	Width       float64 `json:"w"`
	Height      float64 `json:"h"`
	SnapshotHz  int     `json:"hz"`
	Format      string  `json:"format"`
	Description string  `json:"desc"`
}

// ErrorMsg reports a rejected message.
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// decodeCommand turns a raw client message into an engine command.
func decodeCommand(raw []byte) (breakout.Command, error) {
	var in InMessage
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("web: bad message: %w", err)
	}

	switch in.T {
	case MsgMove:
		return breakout.MovePaddle{X: in.X}, nil
	case MsgLaunch:
		return breakout.LaunchBall{}, nil
	case MsgStart:
		return breakout.StartGame{}, nil
	case MsgPause:
		return breakout.PauseGame{}, nil
	case MsgResume:
		return breakout.ResumeGame{}, nil
	case MsgReset:
		return breakout.ResetGame{}, nil
	case MsgNext:
		return breakout.NextLevel{}, nil
	case MsgPickup:
		return breakout.CollectPowerUp{ID: in.ID}, nil
	default:
		return nil, fmt.Errorf("web: unknown message type %q", in.T)
	}
}
