// Package bot holds the decision making of computer-controlled players.
// A Brain only decides; the game applies its choices.
package bot

import (
	"sort"

	"github.com/minaorangina/maumau/deck"
)

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	// ChoosePlay picks one card out of a non-empty set of legal plays.
	ChoosePlay(playable []deck.Card) deck.Card
	// ChooseWish names a suit after a Jack, given the cards left in hand.
	ChooseWish(hand []deck.Card) deck.Suit
}

// Standard plays its effect cards early and holds Jacks back.
type Standard struct {
	rng deck.Rand
}

func NewStandard(rng deck.Rand) *Standard {
	if rng == nil {
		rng = deck.NewRand()
	}
	return &Standard{rng: rng}
}

// Score ranks a card for play. Lower scores are played first.
func Score(c deck.Card) int {
	switch c.Rank {
	case deck.Seven:
		return 0
	case deck.Eight:
		return 1
	case deck.Jack:
		return 3
	}
	return 2
}

// ChoosePlay returns the lowest scoring card, keeping hand order among equals.
func (b *Standard) ChoosePlay(playable []deck.Card) deck.Card {
	ranked := append([]deck.Card{}, playable...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(ranked[i]) < Score(ranked[j])
	})
	return ranked[0]
}

// ChooseWish returns the suit held most often. Ties are broken at random.
func (b *Standard) ChooseWish(hand []deck.Card) deck.Suit {
	counts := make([]int, len(deck.Suits))
	for _, c := range hand {
		counts[c.Suit]++
	}

	best := []deck.Suit{}
	most := -1
	for _, s := range deck.Suits {
		switch {
		case counts[s] > most:
			most = counts[s]
			best = []deck.Suit{s}
		case counts[s] == most:
			best = append(best, s)
		}
	}

	if len(best) == 1 {
		return best[0]
	}
	return best[b.rng.Intn(len(best))]
}
