// Package simulation plays batches of all-bot games in parallel and checks
// every finished table for lost or duplicated cards.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/minaorangina/maumau/deck"
	"github.com/minaorangina/maumau/game"
	"github.com/minaorangina/maumau/protocol"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var ErrCardsNotConserved = errors.New("cards not conserved")

const (
	defaultGames   = 100
	defaultWorkers = 4
	defaultPlayers = 3
)

// Options configures a batch. Zero values fall back to defaults.
type Options struct {
	Games       int
	Workers     int
	Players     int
	Seed        int64
	MaxBotTurns int
	Logger      logrus.FieldLogger
}

func (o Options) withDefaults() Options {
	if o.Games <= 0 {
		o.Games = defaultGames
	}
	if o.Workers <= 0 {
		o.Workers = defaultWorkers
	}
	if o.Players <= 0 {
		o.Players = defaultPlayers
	}
	if o.MaxBotTurns <= 0 {
		o.MaxBotTurns = game.DefaultMaxBotTurns
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}

// Job is a single game to play
type Job struct {
	SimID int
	Seed  int64
}

// Result is the outcome of one game. Winner is -1 when the game did not finish.
type Result struct {
	SimID     int
	Seed      int64
	Winner    int
	Turns     int
	Anomaly   error
	Violation error
}

// Report aggregates a batch
type Report struct {
	Games      int
	Completed  int
	Anomalies  int
	Violations int
	Wins       []int
	TotalTurns int
	Results    []Result
}

// AverageTurns is the mean game length over completed games
func (r Report) AverageTurns() float64 {
	if r.Completed == 0 {
		return 0
	}
	return float64(r.TotalTurns) / float64(r.Completed)
}

// Run plays opts.Games games across opts.Workers goroutines. Game seeds are
// drawn from opts.Seed, so a batch is reproducible whatever the worker count.
func Run(ctx context.Context, opts Options) (Report, error) {
	opts = opts.withDefaults()
	if opts.Players > 6 {
		return Report{}, game.ErrTooManyPlayers
	}
	if opts.Players < 2 {
		return Report{}, game.ErrTooFewPlayers
	}

	jobs := make(chan Job)
	results := make([]Result, opts.Games)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		rng := rand.New(rand.NewSource(opts.Seed))
		for i := 0; i < opts.Games; i++ {
			select {
			case jobs <- Job{SimID: i, Seed: rng.Int63()}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < opts.Workers; w++ {
		g.Go(func() error {
			for job := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				// each job owns its own slot
				results[job.SimID] = RunGame(job, opts)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := summarise(results, opts.Players)
	opts.Logger.WithFields(logrus.Fields{
		"games":      report.Games,
		"completed":  report.Completed,
		"anomalies":  report.Anomalies,
		"violations": report.Violations,
		"avg_turns":  fmt.Sprintf("%.1f", report.AverageTurns()),
	}).Info("simulation finished")

	return report, nil
}

// RunGame plays one all-bot game to the end or to the bot turn limit
func RunGame(job Job, opts Options) Result {
	opts = opts.withDefaults()
	result := Result{SimID: job.SimID, Seed: job.Seed, Winner: -1}

	players := make([]protocol.Player, opts.Players)
	for i := range players {
		players[i] = protocol.Player{
			PlayerID: fmt.Sprintf("bot-%d", i+1),
			Name:     fmt.Sprintf("Bot %d", i+1),
			Bot:      true,
		}
	}

	session, err := game.NewSession(players,
		game.WithID(fmt.Sprintf("sim-%d", job.SimID)),
		game.WithRand(rand.New(rand.NewSource(job.Seed))),
		game.WithLogger(opts.Logger),
		game.WithMaxBotTurns(opts.MaxBotTurns),
	)
	if err != nil {
		result.Anomaly = err
		return result
	}
	session.Start()

	result.Anomaly = session.AdvanceBots()

	st := session.State()
	result.Turns = st.Turns
	if st.Winner != nil {
		result.Winner = *st.Winner
	}
	result.Violation = CheckCards(st)
	return result
}

// CheckCards reports an error unless every card of the deck is on the table
// exactly once
func CheckCards(st *game.TableState) error {
	seen := map[deck.Card]int{}
	groups := append([][]deck.Card{st.DrawPile, st.Discard}, st.Hands...)
	for _, g := range groups {
		for _, c := range g {
			seen[c]++
		}
	}

	for _, c := range deck.New() {
		if seen[c] != 1 {
			return fmt.Errorf("%w: %s seen %d times", ErrCardsNotConserved, c, seen[c])
		}
	}
	if len(seen) != deck.Size {
		return fmt.Errorf("%w: %d distinct cards", ErrCardsNotConserved, len(seen))
	}
	return nil
}

func summarise(results []Result, players int) Report {
	report := Report{
		Games:   len(results),
		Wins:    make([]int, players),
		Results: results,
	}
	for _, r := range results {
		if r.Violation != nil {
			report.Violations++
		}
		if r.Anomaly != nil {
			report.Anomalies++
			continue
		}
		if r.Winner >= 0 {
			report.Completed++
			report.Wins[r.Winner]++
			report.TotalTurns += r.Turns
		}
	}
	return report
}
