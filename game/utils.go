package game

import "github.com/minaorangina/maumau/deck"

func indexOfCard(cards []deck.Card, target deck.Card) int {
	for i, c := range cards {
		if c == target {
			return i
		}
	}
	return -1
}

func containsCard(s []deck.Card, target deck.Card) bool {
	return indexOfCard(s, target) >= 0
}

// removeCard removes the first copy of target, keeping the order of the rest
func removeCard(cards []deck.Card, target deck.Card) []deck.Card {
	idx := indexOfCard(cards, target)
	if idx < 0 {
		return cards
	}
	return append(cards[:idx], cards[idx+1:]...)
}
