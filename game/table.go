package game

import (
	"github.com/minaorangina/maumau/deck"
	"github.com/minaorangina/maumau/protocol"
)

// TableState is everything on the table during one game.
// It is owned by a Session; callers get copies.
type TableState struct {
	Piles
	Hands       [][]deck.Card
	Current     int
	WishedSuit  *deck.Suit
	PendingDraw int
	SkipNext    bool
	Winner      *int
	GameOver    bool
	Stage       Stage
	Turns       int // turns passed since the deal, skipped turns included
	Log         []protocol.LogEntry
}

// CardCount totals the cards in all hands and both piles
func (t *TableState) CardCount() int {
	total := len(t.DrawPile) + len(t.Discard)
	for _, h := range t.Hands {
		total += len(h)
	}
	return total
}

// HandSizes returns the number of cards held by each player
func (t *TableState) HandSizes() []int {
	sizes := make([]int, len(t.Hands))
	for i, h := range t.Hands {
		sizes[i] = len(h)
	}
	return sizes
}

// Clone returns a deep copy of the table
func (t *TableState) Clone() *TableState {
	c := *t
	c.DrawPile = append(deck.Deck{}, t.DrawPile...)
	c.Discard = append([]deck.Card{}, t.Discard...)
	c.Hands = make([][]deck.Card, len(t.Hands))
	for i, h := range t.Hands {
		c.Hands[i] = append([]deck.Card{}, h...)
	}
	if t.WishedSuit != nil {
		wish := *t.WishedSuit
		c.WishedSuit = &wish
	}
	if t.Winner != nil {
		winner := *t.Winner
		c.Winner = &winner
	}
	c.Log = append([]protocol.LogEntry{}, t.Log...)
	return &c
}

func (t *TableState) addLog(speaker, message string, card *deck.Card, wish *deck.Suit) {
	t.Log = append(t.Log, protocol.LogEntry{
		Speaker: speaker,
		Message: message,
		Card:    card,
		Wish:    wish,
	})
}
