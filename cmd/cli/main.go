package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/minaorangina/maumau/config"
	"github.com/minaorangina/maumau/deck"
	"github.com/minaorangina/maumau/game"
	"github.com/minaorangina/maumau/protocol"
	"github.com/minaorangina/maumau/simulation"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/sirupsen/logrus"
)

const (
	optionDraw    = "Draw a card"
	optionNewGame = "Start a new game"
	optionQuit    = "Quit"
)

func main() {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	logger := cfg.NewLogger()

	if len(os.Args) > 1 && os.Args[1] == "simulate" {
		games := 0
		if len(os.Args) > 2 {
			if games, err = strconv.Atoi(os.Args[2]); err != nil {
				fmt.Fprintf(os.Stderr, "usage: %s simulate [games]\n", os.Args[0])
				os.Exit(1)
			}
		}
		if err := simulate(cfg, logger, games); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		return
	}

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Mau", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("-", pterm.FgDarkGray.ToStyle()),
		putils.LettersFromStringWithStyle("Mau", pterm.FgRed.ToStyle()),
	).Render()

	if err := play(cfg, logger); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// play runs games against the bots until the human quits
func play(cfg config.Config, logger *logrus.Logger) error {
	players := cfg.Roster()
	session, err := game.NewSession(players,
		game.WithLogger(logger),
		game.WithMaxBotTurns(cfg.MaxBotTurns),
	)
	if err != nil {
		return err
	}
	human := players[0].PlayerID

	view, err := session.Receive(protocol.InboundMessage{PlayerID: human, Command: protocol.NewGame})
	if err != nil {
		return err
	}
	pterm.Info.Printfln("Playing as %s against %d bots", pterm.LightCyan(view.Name), len(view.Opponents))

	for {
		printTable(view)

		if view.GameOver {
			again, _ := pterm.DefaultInteractiveConfirm.WithDefaultText("Play again?").WithDefaultValue(true).Show()
			if !again {
				return nil
			}
			view, err = session.Receive(protocol.InboundMessage{PlayerID: human, Command: protocol.NewGame})
			if err != nil {
				return err
			}
			continue
		}

		msg, quit := chooseAction(view)
		if quit {
			pterm.Info.Println("Bye!")
			return nil
		}
		msg.PlayerID = human

		next, err := session.Receive(msg)
		if errors.Is(err, game.ErrBotTurnLimit) {
			return err
		}
		if err != nil {
			pterm.Error.Printfln("That move is not allowed: %s", err.Error())
		}
		view = next
	}
}

// chooseAction asks the human for their move
func chooseAction(view protocol.OutboundMessage) (protocol.InboundMessage, bool) {
	if view.Stage == game.StageAwaitingWish.String() {
		options := []string{}
		for _, s := range deck.Suits {
			options = append(options, suitText(s))
		}
		selected, _ := pterm.DefaultInteractiveSelect.WithDefaultText("Wish for a suit").WithOptions(options).Show()
		for i, option := range options {
			if option == selected {
				return protocol.InboundMessage{Command: protocol.Wish, Decision: []int{i}}, false
			}
		}
		return protocol.InboundMessage{Command: protocol.State}, false
	}

	choices := map[string]protocol.InboundMessage{}
	options := []string{}
	for _, i := range view.Moves {
		label := fmt.Sprintf("Play %s", view.Hand[i])
		options = append(options, label)
		choices[label] = protocol.InboundMessage{Command: protocol.Play, Decision: []int{i}}
	}
	if view.PendingDraw > 0 {
		label := fmt.Sprintf("Take %d cards", view.PendingDraw)
		options = append(options, label)
		choices[label] = protocol.InboundMessage{Command: protocol.TakePendingDraw}
	} else {
		options = append(options, optionDraw)
		choices[optionDraw] = protocol.InboundMessage{Command: protocol.Draw}
	}
	options = append(options, optionNewGame, optionQuit)
	choices[optionNewGame] = protocol.InboundMessage{Command: protocol.NewGame}

	selected, _ := pterm.DefaultInteractiveSelect.WithDefaultText("Your move").WithOptions(options).Show()
	if selected == optionQuit {
		return protocol.InboundMessage{}, true
	}
	msg, ok := choices[selected]
	if !ok {
		return protocol.InboundMessage{Command: protocol.State}, false
	}
	return msg, false
}

// simulate plays a batch of bot-only games and prints the outcome
func simulate(cfg config.Config, logger *logrus.Logger, games int) error {
	opts := simulation.Options{
		Games:       games,
		Workers:     cfg.SimulationWorkers,
		Players:     len(cfg.BotNames) + 1,
		Seed:        deck.NewRand().Int63(),
		MaxBotTurns: cfg.MaxBotTurns,
		Logger:      logger,
	}

	spinner, _ := pterm.DefaultSpinner.Start("Playing bot games ...")
	report, err := simulation.Run(context.Background(), opts)
	if err != nil {
		spinner.Fail()
		return err
	}
	spinner.Success()

	printReport(report)
	return nil
}
