package protocol

import (
	"fmt"

	uuid "github.com/satori/go.uuid"
)

// Player identifies a seat at the table
type Player struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
	Bot      bool   `json:"bot"`
}

// NewID constructs a player or game ID
func NewID() string {
	return uuid.NewV4().String()
}

// Cmd represents a command
type Cmd int

const (
	Null Cmd = iota
	NewGame
	State
	Error
	// player actions
	Play            // play one card from the hand
	Draw            // draw a single card and end the turn
	TakePendingDraw // accept the cards owed from stacked sevens
	Wish            // name a suit after a Jack
	GameOver
)

var CmdNames = map[Cmd]string{
	Null:            "Null",
	NewGame:         "NewGame",
	State:           "State",
	Error:           "Error",
	Play:            "Play",
	Draw:            "Draw",
	TakePendingDraw: "TakePendingDraw",
	Wish:            "Wish",
	GameOver:        "GameOver",
}

var NameToCmd = map[string]Cmd{
	"Null":            Null,
	"NewGame":         NewGame,
	"State":           State,
	"Error":           Error,
	"Play":            Play,
	"Draw":            Draw,
	"TakePendingDraw": TakePendingDraw,
	"Wish":            Wish,
	"GameOver":        GameOver,
}

func (c Cmd) String() string {
	return CmdNames[c]
}

func (c Cmd) MarshalText() ([]byte, error) {
	name, ok := CmdNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown command %d", int(c))
	}
	return []byte(name), nil
}

func (c *Cmd) UnmarshalText(text []byte) error {
	cmd, ok := NameToCmd[string(text)]
	if !ok {
		return fmt.Errorf("unknown command %q", text)
	}
	*c = cmd
	return nil
}
