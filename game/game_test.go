package game

import (
	"testing"

	"github.com/minaorangina/maumau/deck"
	utils "github.com/minaorangina/maumau/internal"
	"github.com/minaorangina/maumau/protocol"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// swapRand applies fixed swaps on its first shuffle and leaves later
// shuffles alone
type swapRand struct {
	swaps    [][2]int
	shuffled bool
}

func (r *swapRand) Intn(n int) int { return 0 }

func (r *swapRand) Shuffle(n int, swap func(i, j int)) {
	if r.shuffled {
		return
	}
	r.shuffled = true
	for _, s := range r.swaps {
		swap(s[0], s[1])
	}
}

func TestNewSession(t *testing.T) {
	t.Run("needs at least two players", func(t *testing.T) {
		_, err := NewSession(threeSeats()[:1])
		assert.ErrorIs(t, err, ErrTooFewPlayers)
	})

	t.Run("allows at most six players", func(t *testing.T) {
		seats := append(threeSeats(), threeBots()...)
		seats = append(seats, protocol.Player{PlayerID: "extra"})
		_, err := NewSession(seats)
		assert.ErrorIs(t, err, ErrTooManyPlayers)
	})

	t.Run("actions before the deal are rejected", func(t *testing.T) {
		s, err := NewSession(threeSeats())
		require.NoError(t, err)
		assert.NotEmpty(t, s.ID)
		assert.Nil(t, s.State())

		_, err = s.Draw(0)
		assert.ErrorIs(t, err, ErrNotStarted)
		assert.ErrorIs(t, s.AdvanceBots(), ErrNotStarted)
	})
}

func TestStart(t *testing.T) {
	t.Run("deals five cards each and flips one", func(t *testing.T) {
		t.Log("Given a new session")
		s, err := NewSession(threeSeats(), WithRand(utils.SeededRand(1)))
		require.NoError(t, err)

		t.Log("When the game starts")
		st := s.Start()

		t.Log("Then every player holds five cards")
		assert.Equal(t, []int{5, 5, 5}, st.HandSizes())

		t.Log("And one card is face up with the rest to draw")
		assert.Len(t, st.Discard, 1)
		assert.Len(t, st.DrawPile, deck.Size-16)
		assert.Equal(t, deck.Size, st.CardCount())

		t.Log("And the first seat is to play with a clean table")
		assert.Equal(t, 0, st.Current)
		assert.Equal(t, StageAwaitingAction, st.Stage)
		assert.Nil(t, st.WishedSuit)
		assert.Zero(t, st.PendingDraw)
		assert.False(t, st.GameOver)
		assert.Equal(t, protocol.SystemSpeaker, st.Log[0].Speaker)
		assert.Equal(t, st.Top(), *st.Log[0].Card)
	})

	t.Run("deals round robin from the top", func(t *testing.T) {
		s, _ := newTestSession(t, nil)
		st := s.Start()

		// no shuffle: the top of the deck is the end of the clubs
		assert.Equal(t, utils.Cards("AC", "JC", "8C", "KD", "10D"), st.Hands[0])
		assert.Equal(t, utils.Card("7D"), st.Top())
	})

	t.Run("never starts on a jack", func(t *testing.T) {
		for seed := int64(0); seed < 500; seed++ {
			s, err := NewSession(threeSeats(), WithRand(utils.SeededRand(seed)))
			require.NoError(t, err)
			st := s.Start()
			require.NotEqual(t, deck.Jack, st.Top().Rank, "seed %d", seed)
			require.Equal(t, deck.Size, st.CardCount())
		}
	})

	t.Run("a flipped jack goes back under the deck", func(t *testing.T) {
		// swap J♠ into the position flipped after dealing 15 cards
		s, _ := newTestSession(t, nil, WithRand(&swapRand{swaps: [][2]int{{16, 4}}}))
		st := s.Start()

		assert.Equal(t, utils.Card("AH"), st.Top())
		assert.Equal(t, utils.Card("JS"), st.DrawPile[0])
		assert.Equal(t, deck.Size, st.CardCount())
	})

	t.Run("starting again replaces the table", func(t *testing.T) {
		s, _ := newTestSession(t, newTable(1, utils.Cards("9H"), utils.Cards("KH")))
		st := s.Start()
		assert.Equal(t, 0, st.Current)
		assert.Equal(t, []int{5, 5, 5}, st.HandSizes())
	})
}

func TestPlay(t *testing.T) {
	t.Run("plain card passes the turn", func(t *testing.T) {
		s, _ := newTestSession(t, newTable(0, utils.Cards("9H"), utils.Cards("KH", "AS")))

		stage, err := s.Play(0, utils.Card("KH"))

		require.NoError(t, err)
		assert.Equal(t, StageAwaitingAction, stage)
		st := s.State()
		assert.Equal(t, utils.Cards("AS"), st.Hands[0])
		assert.Equal(t, utils.Card("KH"), st.Top())
		assert.Equal(t, 1, st.Current)
		assert.Equal(t, protocol.LogEntry{Speaker: "You", Message: "plays K♥", Card: &st.Discard[1]}, lastLog(st))
		assert.Equal(t, deck.Size, st.CardCount())
	})

	t.Run("rejected plays change nothing", func(t *testing.T) {
		s, _ := newTestSession(t, newTable(0, utils.Cards("9H"), utils.Cards("KS", "AS"), utils.Cards("QH")))
		before := s.State()

		_, err := s.Play(0, utils.Card("KS"))
		assert.ErrorIs(t, err, ErrIllegalPlay)

		_, err = s.Play(0, utils.Card("QH"))
		assert.ErrorIs(t, err, ErrCardNotInHand)

		_, err = s.Play(1, utils.Card("QH"))
		assert.ErrorIs(t, err, ErrNotYourTurn)

		_, err = s.Play(5, utils.Card("QH"))
		assert.ErrorIs(t, err, ErrUnknownPlayer)

		assert.Equal(t, before, s.State())
	})

	t.Run("eight skips the next player", func(t *testing.T) {
		s, _ := newTestSession(t, newTable(0, utils.Cards("8H"),
			utils.Cards("8S", "KD"), utils.Cards("9C"), utils.Cards("10C")))

		_, err := s.Play(0, utils.Card("8S"))

		require.NoError(t, err)
		st := s.State()
		assert.Equal(t, 2, st.Current)
		assert.False(t, st.SkipNext)
		assert.Equal(t, 2, st.Turns)
		assert.Contains(t, logMessages(st), "System: Bot 1 is skipped.")
	})

	t.Run("seven makes the next player owe two cards", func(t *testing.T) {
		s, _ := newTestSession(t, newTable(0, utils.Cards("9H"),
			utils.Cards("7H", "KS"), utils.Cards("7C", "QD"), utils.Cards("KC", "8D")))

		stage, err := s.Play(0, utils.Card("7H"))
		require.NoError(t, err)
		assert.Equal(t, StageResolvingPendingDraw, stage)
		assert.Equal(t, 2, s.State().PendingDraw)

		t.Log("Only a seven may answer")
		assert.Equal(t, utils.Cards("7C"), s.LegalPlays(1))
		_, err = s.Play(1, utils.Card("QD"))
		assert.ErrorIs(t, err, ErrIllegalPlay)

		t.Log("Stacking adds two more")
		_, err = s.Play(1, utils.Card("7C"))
		require.NoError(t, err)
		st := s.State()
		assert.Equal(t, 4, st.PendingDraw)
		assert.Equal(t, 2, st.Current)

		t.Log("The next player cannot draw just one")
		_, err = s.Draw(2)
		assert.ErrorIs(t, err, ErrPendingDraw)

		t.Log("Taking the cards resolves it in one go")
		stage, err = s.TakePendingDraw(2)
		require.NoError(t, err)
		st = s.State()
		assert.Equal(t, StageAwaitingAction, stage)
		assert.Len(t, st.Hands[2], 6)
		assert.Zero(t, st.PendingDraw)
		assert.Equal(t, 0, st.Current)
		assert.Equal(t, deck.Size, st.CardCount())
	})

	t.Run("stacking is optional", func(t *testing.T) {
		st := newTable(1, utils.Cards("7H"), utils.Cards("KS"), utils.Cards("7C"))
		st.PendingDraw = 2
		st.Stage = StageResolvingPendingDraw
		s, _ := newTestSession(t, st)

		_, err := s.TakePendingDraw(1)

		require.NoError(t, err)
		assert.Len(t, s.State().Hands[1], 3)
	})

	t.Run("jack waits for a wish", func(t *testing.T) {
		s, _ := newTestSession(t, newTable(0, utils.Cards("9H"),
			utils.Cards("JD", "9S"), utils.Cards("9C", "9D", "JS")))

		stage, err := s.Play(0, utils.Card("JD"))
		require.NoError(t, err)
		assert.Equal(t, StageAwaitingWish, stage)
		assert.Equal(t, 0, s.State().Current)

		t.Log("Nothing else happens until the wish is made")
		_, err = s.Draw(0)
		assert.ErrorIs(t, err, ErrAwaitingWish)
		_, err = s.Play(0, utils.Card("9S"))
		assert.ErrorIs(t, err, ErrAwaitingWish)
		assert.Empty(t, s.LegalPlays(0))
		_, err = s.Wish(1, deck.Clubs)
		assert.ErrorIs(t, err, ErrNotYourTurn)
		_, err = s.Wish(0, deck.Suit(9))
		assert.ErrorIs(t, err, ErrInvalidSuit)

		stage, err = s.Wish(0, deck.Clubs)
		require.NoError(t, err)
		st := s.State()
		assert.Equal(t, StageAwaitingAction, stage)
		assert.Equal(t, 1, st.Current)
		require.NotNil(t, st.WishedSuit)
		assert.Equal(t, deck.Clubs, *st.WishedSuit)
		assert.Equal(t, deck.Clubs, *lastLog(st).Wish)

		t.Log("The wish decides what follows")
		assert.Equal(t, utils.Cards("9C", "JS"), s.LegalPlays(1))

		t.Log("The next card clears it")
		_, err = s.Play(1, utils.Card("9C"))
		require.NoError(t, err)
		assert.Nil(t, s.State().WishedSuit)
	})

	t.Run("wish is only taken after a jack", func(t *testing.T) {
		s, _ := newTestSession(t, newTable(0, utils.Cards("9H"), utils.Cards("KH")))
		_, err := s.Wish(0, deck.Hearts)
		assert.ErrorIs(t, err, ErrNotAwaitingWish)
	})
}

func TestWinning(t *testing.T) {
	cases := []struct {
		name string
		last string
	}{
		{"plain card", "KH"},
		{"seven owes nothing", "7H"},
		{"eight skips nobody", "8H"},
		{"jack needs no wish", "JC"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, _ := newTestSession(t, newTable(0, utils.Cards("9H"),
				utils.Cards(c.last), utils.Cards("9C"), utils.Cards("10C")))

			stage, err := s.Play(0, utils.Card(c.last))

			require.NoError(t, err)
			st := s.State()
			assert.Equal(t, StageGameOver, stage)
			assert.True(t, st.GameOver)
			require.NotNil(t, st.Winner)
			assert.Equal(t, 0, *st.Winner)
			assert.Equal(t, 0, st.Current)
			assert.Nil(t, st.WishedSuit)
			assert.Zero(t, st.PendingDraw)
			assert.False(t, st.SkipNext)
			assert.Equal(t, []int{0, 1, 1}, st.HandSizes())
			assert.Equal(t, "System: You has won!", logMessages(st)[len(st.Log)-1])

			_, err = s.TakePendingDraw(0)
			assert.ErrorIs(t, err, ErrGameOver)
			_, err = s.Wish(0, deck.Hearts)
			assert.ErrorIs(t, err, ErrGameOver)
			assert.NoError(t, s.AdvanceBots())
			assert.Equal(t, []int{0, 1, 1}, s.State().HandSizes())
		})
	}
}

func TestDraw(t *testing.T) {
	t.Run("draws one and never plays it", func(t *testing.T) {
		st := newTable(0, utils.Cards("9H"), utils.Cards("KS"))
		stackDraw(st, utils.Card("9C"))
		s, _ := newTestSession(t, st)

		stage, err := s.Draw(0)

		require.NoError(t, err)
		assert.Equal(t, StageAwaitingAction, stage)
		st = s.State()
		assert.Equal(t, utils.Cards("KS", "9C"), st.Hands[0])
		assert.Equal(t, utils.Card("9H"), st.Top())
		assert.Equal(t, 1, st.Current)
		assert.Equal(t, "You: draws 1 card.", logMessages(st)[len(st.Log)-1])
	})

	t.Run("reshuffles the discards when the draw pile is empty", func(t *testing.T) {
		st := newTable(0, utils.Cards("8C", "QD", "9H"), utils.Cards("KS"))
		keepDraw(st, 0, 2)
		s, _ := newTestSession(t, st)

		_, err := s.Draw(0)

		require.NoError(t, err)
		st = s.State()
		assert.Equal(t, utils.Cards("KS", "QD"), st.Hands[0])
		assert.Equal(t, utils.Cards("9H"), st.Discard)
		assert.Equal(t, deck.Deck(utils.Cards("8C")), st.DrawPile)
		assert.Contains(t, logMessages(st), "System: Draw pile reshuffled.")
		assert.Equal(t, deck.Size, st.CardCount())
	})

	t.Run("empty piles end the turn without a card", func(t *testing.T) {
		st := newTable(0, utils.Cards("9H"), utils.Cards("KS"))
		keepDraw(st, 0, 2)
		s, _ := newTestSession(t, st)

		_, err := s.Draw(0)

		require.NoError(t, err)
		st = s.State()
		assert.Equal(t, utils.Cards("KS"), st.Hands[0])
		assert.Equal(t, 1, st.Current)
		assert.Equal(t, "You: cannot draw, the piles are empty.", logMessages(st)[len(st.Log)-1])
	})
}

func TestTakePendingDraw(t *testing.T) {
	t.Run("draws the whole amount", func(t *testing.T) {
		st := newTable(0, utils.Cards("7H"), utils.Cards("KS"))
		st.PendingDraw = 6
		s, _ := newTestSession(t, st)

		_, err := s.TakePendingDraw(0)

		require.NoError(t, err)
		st = s.State()
		assert.Len(t, st.Hands[0], 7)
		assert.Zero(t, st.PendingDraw)
		assert.Equal(t, 1, st.Current)
		assert.Equal(t, "You: draws 6 cards.", logMessages(st)[len(st.Log)-1])
	})

	t.Run("draws as many as the piles can give", func(t *testing.T) {
		st := newTable(0, utils.Cards("8C", "QD", "10S", "7H"), utils.Cards("KS"))
		keepDraw(st, 2, 2)
		st.PendingDraw = 6
		s, _ := newTestSession(t, st)

		_, err := s.TakePendingDraw(0)

		require.NoError(t, err)
		st = s.State()
		assert.Len(t, st.Hands[0], 1+5)
		assert.Zero(t, st.PendingDraw)
		assert.Empty(t, st.DrawPile)
		assert.Equal(t, utils.Cards("7H"), st.Discard)
		assert.Equal(t, deck.Size, st.CardCount())
	})

	t.Run("nothing to take", func(t *testing.T) {
		s, _ := newTestSession(t, newTable(0, utils.Cards("7H"), utils.Cards("KS")))
		_, err := s.TakePendingDraw(0)
		assert.ErrorIs(t, err, ErrNoPendingDraw)
	})
}

func TestTurnOrder(t *testing.T) {
	t.Run("turns loop back through all players", func(t *testing.T) {
		s, _ := newTestSession(t, newTable(0, utils.Cards("9H")))
		for i := 0; i < 3; i++ {
			s.turn()
		}
		assert.Equal(t, 0, s.state.Current)

		s.turn()
		assert.Equal(t, 1, s.state.Current)
	})
}

// A simple human who always takes the first legal option
func playFirstOption(t *testing.T, s *Session) {
	t.Helper()

	var err error
	switch {
	case s.Stage() == StageAwaitingWish:
		_, err = s.Wish(0, deck.Hearts)
	case len(s.LegalPlays(0)) > 0:
		_, err = s.Play(0, s.LegalPlays(0)[0])
	case s.State().PendingDraw > 0:
		_, err = s.TakePendingDraw(0)
	default:
		_, err = s.Draw(0)
	}
	require.NoError(t, err)
}

func TestWholeGames(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		logger, _ := test.NewNullLogger()
		s, err := NewSession(threeSeats(), WithRand(utils.SeededRand(seed)), WithLogger(logger))
		require.NoError(t, err)
		s.Start()

		for i := 0; i < 500 && !s.State().GameOver; i++ {
			if s.State().Current == 0 {
				playFirstOption(t, s)
			} else {
				require.NoError(t, s.AdvanceBots(), "seed %d", seed)
			}
			require.Equal(t, deck.Size, s.State().CardCount(), "seed %d", seed)
		}

		st := s.State()
		if st.GameOver {
			require.NotNil(t, st.Winner)
			assert.Empty(t, st.Hands[*st.Winner])
		}
	}
}
