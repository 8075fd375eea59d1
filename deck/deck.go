package deck

import (
	"math/rand"
	"time"
)

// Size is the number of cards in a full deck
const Size = 32

// Rand is the source of randomness used for shuffling and tie breaks.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a time-seeded Rand
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Deck represents a deck of cards
type Deck []Card

// New creates a deck of cards, grouped by suit
func New() Deck {
	cards := make(Deck, 0, Size)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return cards
}

// Shuffle shuffles the deck of cards
func (d Deck) Shuffle(rng Rand) {
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Deal deals n number of cards from the top of the deck.
// It deals nothing if the deck holds fewer than n cards.
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 || n > numCardsInDeck {
		return []Card{}
	}
	startingIndex := numCardsInDeck - n
	subSlice := append([]Card{}, (*d)[startingIndex:numCardsInDeck]...)
	*d = (*d)[:startingIndex]
	return subSlice
}
