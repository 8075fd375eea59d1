package game

import (
	"github.com/minaorangina/maumau/deck"
	"github.com/sirupsen/logrus"
)

// BotTurn plays one turn for the current player, who must be a bot.
func (s *Session) BotTurn() error {
	if s.state == nil {
		return ErrNotStarted
	}
	st := s.state
	if st.GameOver {
		return ErrGameOver
	}
	player := st.Current
	if !s.Players[player].Bot {
		return ErrNotBot
	}
	hand := st.Hands[player]

	if st.PendingDraw > 0 && !canStack(hand, st) {
		s.resolvePendingDraw(player)
		s.endTurn()
		return nil
	}

	playable := LegalPlays(hand, st)
	if len(playable) > 0 {
		s.botPlay(player, s.brain.ChoosePlay(playable))
	} else if drawn := s.drawOne(player); len(drawn) > 0 {
		// unlike a human, a bot plays a drawn card straight away when it can
		if CanPlay(drawn[0], st.Top(), st.WishedSuit) {
			s.botPlay(player, drawn[0])
		}
	}

	s.endTurn()
	return nil
}

func (s *Session) botPlay(player int, card deck.Card) {
	s.playCard(player, card)
	if s.state.GameOver || card.Rank != deck.Jack {
		return
	}
	s.setWish(player, s.brain.ChooseWish(s.state.Hands[player]))
}

// AdvanceBots plays bot turns until a human is to move or the game is over.
// It gives up with ErrBotTurnLimit after the configured number of turns.
func (s *Session) AdvanceBots() error {
	if s.state == nil {
		return ErrNotStarted
	}

	turns := 0
	for !s.state.GameOver && s.Players[s.state.Current].Bot {
		if turns >= s.maxBotTurns {
			s.logger.WithFields(logrus.Fields{
				"turns":   turns,
				"current": s.Players[s.state.Current].Name,
				"cards":   s.state.CardCount(),
			}).Warn("bot turn limit reached, stopping automatic play")
			return ErrBotTurnLimit
		}
		if err := s.BotTurn(); err != nil {
			return err
		}
		turns++
	}
	return nil
}
