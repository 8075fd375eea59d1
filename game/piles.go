package game

import "github.com/minaorangina/maumau/deck"

// Piles holds the draw pile and the discard pile.
// The last card of each slice is its top.
type Piles struct {
	DrawPile deck.Deck
	Discard  []deck.Card
}

// Top returns the top of the discard pile
func (p *Piles) Top() deck.Card {
	return p.Discard[len(p.Discard)-1]
}

// ReshuffleIfNeeded refills an empty draw pile with every discard except the
// top one. It reports whether a reshuffle happened.
func (p *Piles) ReshuffleIfNeeded(rng deck.Rand) bool {
	if len(p.DrawPile) > 0 || len(p.Discard) <= 1 {
		return false
	}

	top := p.Top()
	pool := deck.Deck(append([]deck.Card{}, p.Discard[:len(p.Discard)-1]...))
	pool.Shuffle(rng)

	p.DrawPile = pool
	p.Discard = []deck.Card{top}
	return true
}

// Draw takes up to n cards, reshuffling before each one when needed.
// It returns fewer than n cards once both piles are exhausted.
func (p *Piles) Draw(rng deck.Rand, n int) (drawn []deck.Card, reshuffles int) {
	drawn = []deck.Card{}
	for i := 0; i < n; i++ {
		if p.ReshuffleIfNeeded(rng) {
			reshuffles++
		}
		if len(p.DrawPile) == 0 {
			break
		}
		drawn = append(drawn, p.DrawPile.Deal(1)...)
	}
	return drawn, reshuffles
}
