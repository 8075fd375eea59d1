package internal

import (
	"fmt"
	"math/rand"

	"github.com/minaorangina/maumau/deck"
)

// Cards builds a card slice from their text form, e.g. Cards("7♠", "JD").
// It panics on malformed input; it is meant for test fixtures.
func Cards(texts ...string) []deck.Card {
	cards := make([]deck.Card, 0, len(texts))
	for _, text := range texts {
		cards = append(cards, Card(text))
	}
	return cards
}

// Card builds a single card from its text form
func Card(text string) deck.Card {
	c, err := deck.ParseCard(text)
	if err != nil {
		panic(fmt.Sprintf("bad card fixture: %v", err))
	}
	return c
}

// SeededRand returns a reproducible random source
func SeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// ScriptedRand is a deck.Rand that never reorders anything and answers
// Intn from a script. Once the script runs out Intn returns 0.
type ScriptedRand struct {
	Ints  []int
	calls int
}

func (r *ScriptedRand) Intn(n int) int {
	if r.calls >= len(r.Ints) {
		return 0
	}
	v := r.Ints[r.calls] % n
	r.calls++
	return v
}

// Shuffle leaves the order untouched
func (r *ScriptedRand) Shuffle(n int, swap func(i, j int)) {}

// Calls reports how many times Intn has been called
func (r *ScriptedRand) Calls() int {
	return r.calls
}
