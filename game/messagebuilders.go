package game

import (
	"github.com/minaorangina/maumau/protocol"
)

// View builds the message describing the table as seen by player.
// Other players' hands are reduced to their size.
func (s *Session) View(player int) protocol.OutboundMessage {
	msg := protocol.OutboundMessage{
		GameID:  s.ID,
		Command: protocol.State,
	}
	if player >= 0 && player < len(s.Players) {
		msg.PlayerID = s.Players[player].PlayerID
		msg.Name = s.Players[player].Name
	}
	if s.state == nil {
		return msg
	}

	st := s.state
	msg.Stage = st.Stage.String()
	msg.Hand = s.Hand(player)
	msg.Moves = s.buildMoves(player)
	msg.TopCard = st.Top()
	msg.PendingDraw = st.PendingDraw
	msg.DeckCount = len(st.DrawPile)
	msg.DiscardCount = len(st.Discard)
	msg.CurrentTurn = s.Players[st.Current]
	msg.GameOver = st.GameOver
	msg.ShouldRespond = !st.GameOver && player == st.Current
	msg.Log = append([]protocol.LogEntry{}, st.Log...)

	if st.WishedSuit != nil {
		wish := *st.WishedSuit
		msg.WishedSuit = &wish
	}
	if st.Winner != nil {
		winner := s.Players[*st.Winner]
		msg.Winner = &winner
		msg.Command = protocol.GameOver
	}

	msg.Opponents = []protocol.Opponent{}
	for i, p := range s.Players {
		if i == player {
			continue
		}
		msg.Opponents = append(msg.Opponents, protocol.Opponent{
			PlayerID:  p.PlayerID,
			Name:      p.Name,
			HandCount: len(st.Hands[i]),
		})
	}

	return msg
}

// BuildErrorMessage wraps err in a view for player
func (s *Session) BuildErrorMessage(player int, err error) protocol.OutboundMessage {
	msg := s.View(player)
	msg.Command = protocol.Error
	msg.Error = err.Error()
	return msg
}

// buildMoves returns the hand indices of the legal plays
func (s *Session) buildMoves(player int) []int {
	moves := []int{}
	legal := s.LegalPlays(player)
	for i, c := range s.Hand(player) {
		if containsCard(legal, c) {
			moves = append(moves, i)
		}
	}
	return moves
}
