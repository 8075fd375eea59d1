package game

import (
	"fmt"
	"testing"

	"github.com/minaorangina/maumau/deck"
	utils "github.com/minaorangina/maumau/internal"
	"github.com/minaorangina/maumau/protocol"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

var (
	threeSeats = func() []protocol.Player {
		return []protocol.Player{
			{PlayerID: "p1", Name: "You"},
			{PlayerID: "p2", Name: "Bot 1", Bot: true},
			{PlayerID: "p3", Name: "Bot 2", Bot: true},
		}
	}
	threeBots = func() []protocol.Player {
		return []protocol.Player{
			{PlayerID: "b1", Name: "Bot 1", Bot: true},
			{PlayerID: "b2", Name: "Bot 2", Bot: true},
			{PlayerID: "b3", Name: "Bot 3", Bot: true},
		}
	}
)

// newTestSession wraps a prepared table. Shuffles are no-ops unless a rand
// option says otherwise.
func newTestSession(t *testing.T, state *TableState, opts ...Option) (*Session, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	opts = append([]Option{WithRand(&utils.ScriptedRand{}), WithLogger(logger), WithID("test-game")}, opts...)
	s, err := NewSession(threeSeats(), opts...)
	require.NoError(t, err)

	s.state = state
	return s, hook
}

// newTable lays out a table holding all 32 cards: the given discard pile
// and hands, with every other card in the draw pile in deck order.
func newTable(current int, discard []deck.Card, hands ...[]deck.Card) *TableState {
	used := map[deck.Card]struct{}{}
	take := func(cards []deck.Card) []deck.Card {
		for _, c := range cards {
			if _, ok := used[c]; ok {
				panic(fmt.Sprintf("card %s used twice in fixture", c))
			}
			used[c] = struct{}{}
		}
		return append([]deck.Card{}, cards...)
	}

	st := &TableState{
		Piles:   Piles{Discard: take(discard)},
		Current: current,
		Stage:   StageAwaitingAction,
	}
	for _, h := range hands {
		st.Hands = append(st.Hands, take(h))
	}
	for len(st.Hands) < 3 {
		st.Hands = append(st.Hands, []deck.Card{})
	}

	st.DrawPile = deck.Deck{}
	for _, c := range deck.New() {
		if _, ok := used[c]; !ok {
			st.DrawPile = append(st.DrawPile, c)
		}
	}
	return st
}

// stackDraw moves cards to the top of the draw pile; the last one ends on top
func stackDraw(st *TableState, cards ...deck.Card) {
	for _, c := range cards {
		st.DrawPile = removeCard(st.DrawPile, c)
	}
	st.DrawPile = append(st.DrawPile, cards...)
}

// keepDraw leaves the top n cards on the draw pile and hands the rest to a player
func keepDraw(st *TableState, n, into int) {
	cut := len(st.DrawPile) - n
	st.Hands[into] = append(st.Hands[into], st.DrawPile[:cut]...)
	st.DrawPile = append(deck.Deck{}, st.DrawPile[cut:]...)
}

func lastLog(st *TableState) protocol.LogEntry {
	return st.Log[len(st.Log)-1]
}

func logMessages(st *TableState) []string {
	msgs := []string{}
	for _, e := range st.Log {
		msgs = append(msgs, e.Speaker+": "+e.Message)
	}
	return msgs
}

func suitPtr(s deck.Suit) *deck.Suit {
	return &s
}
