package game

import (
	"errors"
	"fmt"

	"github.com/minaorangina/maumau/bot"
	"github.com/minaorangina/maumau/deck"
	"github.com/minaorangina/maumau/protocol"
	"github.com/sirupsen/logrus"
)

var (
	ErrTooFewPlayers   = errors.New("minimum of 2 players required")
	ErrTooManyPlayers  = errors.New("maximum of 6 players allowed")
	ErrNotStarted      = errors.New("game has not started")
	ErrGameOver        = errors.New("game is already over")
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrAwaitingWish    = errors.New("a suit must be wished first")
	ErrNotAwaitingWish = errors.New("no wish is expected")
	ErrPendingDraw     = errors.New("pending cards must be drawn or answered with a seven")
	ErrNoPendingDraw   = errors.New("no cards are pending")
	ErrCardNotInHand   = errors.New("card is not in hand")
	ErrIllegalPlay     = errors.New("card cannot be played")
	ErrInvalidSuit     = errors.New("invalid suit")
	ErrNotBot          = errors.New("current player is not a bot")
	ErrInvalidDecision = errors.New("invalid decision")
	ErrUnexpectedCmd   = errors.New("unexpected command")
	// ErrBotTurnLimit means bots kept playing without reaching a human or a
	// winner. It points at a bug, not at a game outcome.
	ErrBotTurnLimit = errors.New("bot turn limit reached")
)

const (
	minPlayers         = 2
	maxPlayers         = 6
	startCards         = 5
	DefaultMaxBotTurns = 200
)

// Session runs one table of Mau-Mau. It is not safe for concurrent use.
type Session struct {
	ID          string
	Players     []protocol.Player
	state       *TableState
	rng         deck.Rand
	brain       bot.Brain
	logger      logrus.FieldLogger
	maxBotTurns int
}

// Option configures a Session
type Option func(*Session)

// WithRand sets the random source used for shuffles and bot tie breaks
func WithRand(rng deck.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithBrain replaces the bot strategy
func WithBrain(brain bot.Brain) Option {
	return func(s *Session) { s.brain = brain }
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithMaxBotTurns bounds the consecutive bot turns run by AdvanceBots
func WithMaxBotTurns(n int) Option {
	return func(s *Session) { s.maxBotTurns = n }
}

func WithID(id string) Option {
	return func(s *Session) { s.ID = id }
}

// NewSession constructs a session for the given seats, in turn order.
func NewSession(players []protocol.Player, opts ...Option) (*Session, error) {
	if len(players) < minPlayers {
		return nil, ErrTooFewPlayers
	}
	if len(players) > maxPlayers {
		return nil, ErrTooManyPlayers
	}

	s := &Session{
		Players:     append([]protocol.Player{}, players...),
		maxBotTurns: DefaultMaxBotTurns,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.ID == "" {
		s.ID = protocol.NewID()
	}
	if s.rng == nil {
		s.rng = deck.NewRand()
	}
	if s.brain == nil {
		s.brain = bot.NewStandard(s.rng)
	}
	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	s.logger = s.logger.WithField("game", s.ID)
	if s.maxBotTurns <= 0 {
		s.maxBotTurns = DefaultMaxBotTurns
	}

	return s, nil
}

// Start deals a new game, replacing any game in progress.
// The first seat plays first.
func (s *Session) Start() *TableState {
	d := deck.New()
	d.Shuffle(s.rng)

	hands := make([][]deck.Card, len(s.Players))
	for i := 0; i < startCards; i++ {
		for p := range s.Players {
			hands[p] = append(hands[p], d.Deal(1)...)
		}
	}

	// a Jack would force a wish before anyone has played
	top := d.Deal(1)[0]
	for top.Rank == deck.Jack {
		d = append(deck.Deck{top}, d...)
		d.Shuffle(s.rng)
		top = d.Deal(1)[0]
	}

	s.state = &TableState{
		Piles: Piles{
			DrawPile: d,
			Discard:  []deck.Card{top},
		},
		Hands: hands,
		Stage: StageAwaitingAction,
	}
	s.state.addLog(protocol.SystemSpeaker, fmt.Sprintf("Start card: %s", top), &top, nil)
	s.logger.WithField("top", top.String()).Debug("game started")

	return s.State()
}

// State returns a copy of the table, or nil before Start
func (s *Session) State() *TableState {
	if s.state == nil {
		return nil
	}
	return s.state.Clone()
}

// Stage returns what the table is waiting for
func (s *Session) Stage() Stage {
	if s.state == nil {
		return StageAwaitingAction
	}
	return s.state.Stage
}

// Hand returns a copy of a player's hand
func (s *Session) Hand(player int) []deck.Card {
	if s.state == nil || player < 0 || player >= len(s.Players) {
		return nil
	}
	return append([]deck.Card{}, s.state.Hands[player]...)
}

// PlayerIndex finds a seat by player ID
func (s *Session) PlayerIndex(playerID string) (int, bool) {
	for i, p := range s.Players {
		if p.PlayerID == playerID {
			return i, true
		}
	}
	return -1, false
}

// LegalPlays returns the cards player may play right now.
// It is empty whenever it is not the player's move.
func (s *Session) LegalPlays(player int) []deck.Card {
	if s.checkTurn(player) != nil || s.state.Stage == StageAwaitingWish {
		return []deck.Card{}
	}
	return LegalPlays(s.state.Hands[player], s.state)
}

// Play plays card from player's hand. After a Jack the table waits for Wish.
func (s *Session) Play(player int, card deck.Card) (Stage, error) {
	if err := s.checkTurn(player); err != nil {
		return s.Stage(), err
	}
	st := s.state
	if st.Stage == StageAwaitingWish {
		return st.Stage, ErrAwaitingWish
	}
	if !containsCard(st.Hands[player], card) {
		return st.Stage, ErrCardNotInHand
	}
	if !containsCard(LegalPlays(st.Hands[player], st), card) {
		return st.Stage, ErrIllegalPlay
	}

	s.playCard(player, card)
	if st.GameOver {
		return st.Stage, nil
	}
	if card.Rank == deck.Jack {
		st.Stage = StageAwaitingWish
		return st.Stage, nil
	}

	s.endTurn()
	return st.Stage, nil
}

// Draw draws a single card and ends the turn. The drawn card is never played
// automatically.
func (s *Session) Draw(player int) (Stage, error) {
	if err := s.checkTurn(player); err != nil {
		return s.Stage(), err
	}
	st := s.state
	if st.Stage == StageAwaitingWish {
		return st.Stage, ErrAwaitingWish
	}
	if st.PendingDraw > 0 {
		return st.Stage, ErrPendingDraw
	}

	s.drawOne(player)
	s.endTurn()
	return st.Stage, nil
}

// TakePendingDraw draws every card owed from stacked sevens and ends the turn.
func (s *Session) TakePendingDraw(player int) (Stage, error) {
	if err := s.checkTurn(player); err != nil {
		return s.Stage(), err
	}
	st := s.state
	if st.Stage == StageAwaitingWish {
		return st.Stage, ErrAwaitingWish
	}
	if st.PendingDraw == 0 {
		return st.Stage, ErrNoPendingDraw
	}

	s.resolvePendingDraw(player)
	s.endTurn()
	return st.Stage, nil
}

// Wish names the suit to follow after player's Jack, then ends the turn.
func (s *Session) Wish(player int, suit deck.Suit) (Stage, error) {
	if err := s.checkTurn(player); err != nil {
		return s.Stage(), err
	}
	st := s.state
	if st.Stage != StageAwaitingWish {
		return st.Stage, ErrNotAwaitingWish
	}
	if !suit.Valid() {
		return st.Stage, ErrInvalidSuit
	}

	s.setWish(player, suit)
	s.endTurn()
	return st.Stage, nil
}

func (s *Session) checkTurn(player int) error {
	if s.state == nil {
		return ErrNotStarted
	}
	if player < 0 || player >= len(s.Players) {
		return ErrUnknownPlayer
	}
	if s.state.GameOver {
		return ErrGameOver
	}
	if player != s.state.Current {
		return ErrNotYourTurn
	}
	return nil
}

// playCard moves card from hand to the discard pile and applies its effect.
// The Jack's wish is left to the caller.
func (s *Session) playCard(player int, card deck.Card) {
	st := s.state
	name := s.Players[player].Name

	st.Hands[player] = removeCard(st.Hands[player], card)
	st.Discard = append(st.Discard, card)
	st.WishedSuit = nil
	st.addLog(name, fmt.Sprintf("plays %s", card), &card, nil)

	s.logger.WithFields(logrus.Fields{
		"player": name,
		"card":   card.String(),
	}).Debug("card played")

	// the winning card has no effect
	if len(st.Hands[player]) == 0 {
		winner := player
		st.Winner = &winner
		st.GameOver = true
		st.Stage = StageGameOver
		st.addLog(protocol.SystemSpeaker, fmt.Sprintf("%s has won!", name), nil, nil)
		s.logger.WithField("winner", name).Info("game over")
		return
	}

	switch card.Rank {
	case deck.Seven:
		st.PendingDraw += 2
	case deck.Eight:
		st.SkipNext = true
	}
}

func (s *Session) setWish(player int, suit deck.Suit) {
	s.state.WishedSuit = &suit
	s.state.addLog(s.Players[player].Name, fmt.Sprintf("wishes %s", suit), nil, &suit)
}

// drawCards moves up to n cards into player's hand
func (s *Session) drawCards(player, n int) []deck.Card {
	st := s.state
	drawn, reshuffles := st.Piles.Draw(s.rng, n)
	for i := 0; i < reshuffles; i++ {
		st.addLog(protocol.SystemSpeaker, "Draw pile reshuffled.", nil, nil)
		s.logger.Debug("draw pile reshuffled")
	}
	st.Hands[player] = append(st.Hands[player], drawn...)
	return drawn
}

func (s *Session) drawOne(player int) []deck.Card {
	name := s.Players[player].Name
	drawn := s.drawCards(player, 1)
	if len(drawn) == 0 {
		s.state.addLog(name, "cannot draw, the piles are empty.", nil, nil)
		return drawn
	}
	s.state.addLog(name, "draws 1 card.", nil, nil)
	return drawn
}

func (s *Session) resolvePendingDraw(player int) {
	st := s.state
	owed := st.PendingDraw
	drawn := s.drawCards(player, owed)
	st.PendingDraw = 0
	st.addLog(s.Players[player].Name, fmt.Sprintf("draws %d cards.", len(drawn)), nil, nil)
	s.logger.WithFields(logrus.Fields{
		"player": s.Players[player].Name,
		"owed":   owed,
		"drawn":  len(drawn),
	}).Debug("pending draw resolved")
}

// endTurn applies a pending skip and passes the turn on
func (s *Session) endTurn() {
	st := s.state
	if st.GameOver {
		return
	}
	if st.SkipNext {
		skipped := s.Players[s.nextPlayer()].Name
		st.addLog(protocol.SystemSpeaker, fmt.Sprintf("%s is skipped.", skipped), nil, nil)
		s.turn()
		st.SkipNext = false
	}
	s.turn()
}

func (s *Session) nextPlayer() int {
	return (s.state.Current + 1) % len(s.Players)
}

// turn moves to the next seat and works out what that seat must do
func (s *Session) turn() {
	st := s.state
	st.Current = s.nextPlayer()
	st.Turns++
	if st.PendingDraw > 0 {
		st.Stage = StageResolvingPendingDraw
	} else {
		st.Stage = StageAwaitingAction
	}
}
