package deck

import (
	"fmt"
	"strings"
)

// Rank represents a rank in a 32-card deck
type Rank int

var rankNames = []string{"7", "8", "9", "10", "J", "Q", "K", "A"}

const (
	Seven Rank = iota
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank in deck order
var Ranks = []Rank{Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

func (r Rank) String() string {
	if r < Seven || r > Ace {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankNames[r]
}

// Suit represents a suit in a deck of cards
type Suit int

var suitNames = []string{"♠", "♥", "♦", "♣"}

// alternative spellings accepted by ParseSuit
var suitLetters = []string{"S", "H", "D", "C"}

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists every suit in deck order
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

func (s Suit) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitNames[s]
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	return s >= Spades && s <= Clubs
}

// Red reports whether the suit is printed in red
func (s Suit) Red() bool {
	return s == Hearts || s == Diamonds
}

// ParseSuit accepts either the suit symbol or its English initial.
func ParseSuit(text string) (Suit, error) {
	for i := range suitNames {
		if text == suitNames[i] || strings.EqualFold(text, suitLetters[i]) {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", text)
}

func (s Suit) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Suit) UnmarshalText(text []byte) error {
	parsed, err := ParseSuit(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func parseRank(text string) (Rank, error) {
	for i, name := range rankNames {
		if text == name {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", text)
}
