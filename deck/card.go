package deck

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var ErrCardOutOfRange = errors.New("arguments out of range")

// Card is a playing card. Cards are comparable values.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard constructs a card from rank and suit indices
func NewCard(rank, suit int) (Card, error) {
	if rank < int(Seven) || rank > int(Ace) || suit < int(Spades) || suit > int(Clubs) {
		return Card{}, ErrCardOutOfRange
	}
	return Card{Rank: Rank(rank), Suit: Suit(suit)}, nil
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// ParseCard reads the String form of a card, e.g. "10♥" or "JD".
func ParseCard(text string) (Card, error) {
	if text == "" {
		return Card{}, errors.New("empty card")
	}
	var suitText string
	if r, size := utf8.DecodeLastRuneInString(text); r != utf8.RuneError {
		suitText = text[len(text)-size:]
	}
	suit, err := ParseSuit(suitText)
	if err != nil {
		return Card{}, fmt.Errorf("parse card %q: %w", text, err)
	}
	rank, err := parseRank(text[:len(text)-len(suitText)])
	if err != nil {
		return Card{}, fmt.Errorf("parse card %q: %w", text, err)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
