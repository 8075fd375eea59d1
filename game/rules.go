package game

import "github.com/minaorangina/maumau/deck"

// CanPlay reports whether card may go on top. A Jack is always playable.
// An active wish replaces the rank and suit of the top card.
func CanPlay(card, top deck.Card, wished *deck.Suit) bool {
	if card.Rank == deck.Jack {
		return true
	}
	if wished != nil {
		return card.Suit == *wished
	}
	return card.Rank == top.Rank || card.Suit == top.Suit
}

// LegalPlays returns the cards in hand that may be played, in hand order.
// While a draw penalty is outstanding only sevens can be played, to stack it.
func LegalPlays(hand []deck.Card, state *TableState) []deck.Card {
	moves := []deck.Card{}
	if state == nil || len(state.Discard) == 0 {
		return moves
	}

	top := state.Top()
	for _, c := range hand {
		if state.PendingDraw > 0 && c.Rank != deck.Seven {
			continue
		}
		if CanPlay(c, top, state.WishedSuit) {
			moves = append(moves, c)
		}
	}
	return moves
}

// canStack reports whether hand holds a seven that answers the pending draw
func canStack(hand []deck.Card, state *TableState) bool {
	return state.PendingDraw > 0 && len(LegalPlays(hand, state)) > 0
}
