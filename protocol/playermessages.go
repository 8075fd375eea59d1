package protocol

import "github.com/minaorangina/maumau/deck"

// SystemSpeaker is the speaker of log entries not caused by a player
const SystemSpeaker = "System"

// LogEntry is one line of the narrated game history
type LogEntry struct {
	Speaker string     `json:"speaker"`
	Message string     `json:"message"`
	Card    *deck.Card `json:"card,omitempty"`
	Wish    *deck.Suit `json:"wish,omitempty"`
}

// InboundMessage is a message from Player to Game.
// For Play, Decision[0] is an index into the hand.
// For Wish, Decision[0] is an index into deck.Suits.
type InboundMessage struct {
	PlayerID string `json:"playerID"`
	Command  Cmd    `json:"command"`
	Decision []int  `json:"decision"`
}

// OutboundMessage is a message from Game to Player
type OutboundMessage struct {
	GameID        string      `json:"gameID"`
	PlayerID      string      `json:"playerID"`
	Command       Cmd         `json:"command"`
	Name          string      `json:"name"`
	Stage         string      `json:"stage"`
	Hand          []deck.Card `json:"hand"`
	Moves         []int       `json:"moves"`
	TopCard       deck.Card   `json:"topCard"`
	WishedSuit    *deck.Suit  `json:"wishedSuit,omitempty"`
	PendingDraw   int         `json:"pendingDraw"`
	DeckCount     int         `json:"deckCount"`
	DiscardCount  int         `json:"discardCount"`
	CurrentTurn   Player      `json:"currentTurn"`
	Opponents     []Opponent  `json:"opponents"`
	ShouldRespond bool        `json:"shouldRespond"`
	GameOver      bool        `json:"gameOver"`
	Winner        *Player     `json:"winner,omitempty"`
	Log           []LogEntry  `json:"log"`
	Error         string      `json:"error,omitempty"`
}

// Opponent is a representation of an opponent player
type Opponent struct {
	PlayerID  string `json:"playerID"`
	Name      string `json:"name"`
	HandCount int    `json:"handCount"`
}
