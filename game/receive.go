package game

import (
	"fmt"

	"github.com/minaorangina/maumau/deck"
	"github.com/minaorangina/maumau/protocol"
)

// Receive applies a player's message, lets the bots take their turns and
// returns the table as that player now sees it. A rejected message changes
// nothing and comes back as an Error message.
func (s *Session) Receive(msg protocol.InboundMessage) (protocol.OutboundMessage, error) {
	player, ok := s.PlayerIndex(msg.PlayerID)
	if !ok {
		return s.BuildErrorMessage(-1, ErrUnknownPlayer), ErrUnknownPlayer
	}

	if err := s.apply(player, msg); err != nil {
		return s.BuildErrorMessage(player, err), err
	}

	if msg.Command == protocol.State {
		return s.View(player), nil
	}

	if err := s.AdvanceBots(); err != nil {
		return s.BuildErrorMessage(player, err), err
	}
	return s.View(player), nil
}

func (s *Session) apply(player int, msg protocol.InboundMessage) error {
	var err error
	switch msg.Command {
	case protocol.NewGame:
		s.Start()

	case protocol.State:

	case protocol.Play:
		var card deck.Card
		if card, err = s.decisionCard(player, msg.Decision); err != nil {
			return err
		}
		_, err = s.Play(player, card)

	case protocol.Draw:
		_, err = s.Draw(player)

	case protocol.TakePendingDraw:
		_, err = s.TakePendingDraw(player)

	case protocol.Wish:
		if len(msg.Decision) != 1 || msg.Decision[0] < 0 || msg.Decision[0] >= len(deck.Suits) {
			return ErrInvalidSuit
		}
		_, err = s.Wish(player, deck.Suits[msg.Decision[0]])

	default:
		return fmt.Errorf("%w: %s", ErrUnexpectedCmd, msg.Command)
	}
	return err
}

func (s *Session) decisionCard(player int, decision []int) (deck.Card, error) {
	hand := s.Hand(player)
	if len(decision) != 1 || decision[0] < 0 || decision[0] >= len(hand) {
		return deck.Card{}, ErrInvalidDecision
	}
	return hand[decision[0]], nil
}
