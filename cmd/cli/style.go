package main

import (
	"fmt"
	"strings"

	"github.com/minaorangina/maumau/deck"
	"github.com/minaorangina/maumau/protocol"
	"github.com/minaorangina/maumau/simulation"
	"github.com/pterm/pterm"
)

const recentLogLines = 8

func printTable(view protocol.OutboundMessage) {
	var opponents []pterm.Panel
	for _, o := range view.Opponents {
		opponents = append(opponents, pterm.Panel{Data: printOpponentInfo(o, o.PlayerID == view.CurrentTurn.PlayerID)})
	}

	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		opponents,
		{{Data: printStatus(view)}, {Data: printLog(view.Log)}},
		{{Data: printHand(view)}},
	}).Render()
}

func printOpponentInfo(o protocol.Opponent, current bool) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	title := o.Name
	if current {
		title = pterm.LightCyan(o.Name)
	}
	return pbox.WithTitle(title).WithTitleTopLeft().Sprintf("Cards: %d", o.HandCount)
}

func printStatus(view protocol.OutboundMessage) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)

	status := pterm.Sprintfln("Top card: %s", cardText(view.TopCard))
	if view.WishedSuit != nil {
		status += pterm.Sprintfln("Wish: %s", suitText(*view.WishedSuit))
	}
	if view.PendingDraw > 0 {
		status += pterm.Sprintfln("Pending draw: %s", pterm.LightRed(view.PendingDraw))
	}
	status += pterm.Sprintfln("Draw pile: %d", view.DeckCount)

	switch {
	case view.Winner != nil:
		status += pterm.LightGreen(fmt.Sprintf("%s has won!", view.Winner.Name))
	default:
		status += fmt.Sprintf("Turn: %s", pterm.LightCyan(view.CurrentTurn.Name))
	}

	return pbox.WithTitle(pterm.LightYellow("|TABLE|")).WithTitleTopCenter().Sprintf("%s", status)
}

func printHand(view protocol.OutboundMessage) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(10).WithTopPadding(1).WithBottomPadding(1)

	playable := map[int]bool{}
	for _, i := range view.Moves {
		playable[i] = true
	}

	cards := []string{}
	for i, c := range view.Hand {
		if playable[i] {
			cards = append(cards, pterm.LightGreen(c.String()))
		} else {
			cards = append(cards, pterm.LightRed(c.String()))
		}
	}
	if len(cards) == 0 {
		cards = append(cards, "-")
	}

	return pbox.WithTitle(view.Name).WithTitleTopLeft().Sprintf("%s", strings.Join(cards, "  "))
}

func printLog(entries []protocol.LogEntry) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(2).WithTopPadding(1).WithBottomPadding(1)

	if len(entries) > recentLogLines {
		entries = entries[len(entries)-recentLogLines:]
	}
	lines := []string{}
	for _, e := range entries {
		speaker := e.Speaker
		if speaker == protocol.SystemSpeaker {
			speaker = pterm.LightYellow(speaker)
		}
		lines = append(lines, fmt.Sprintf("%s: %s", speaker, e.Message))
	}

	return pbox.WithTitle("|LOG|").WithTitleTopCenter().Sprintf("%s", strings.Join(lines, "\n"))
}

func cardText(c deck.Card) string {
	if c.Suit.Red() {
		return pterm.LightRed(c.String())
	}
	return c.String()
}

func suitText(s deck.Suit) string {
	if s.Red() {
		return pterm.LightRed(s.String())
	}
	return s.String()
}

func printReport(report simulation.Report) {
	data := pterm.TableData{{"Player", "Wins"}}
	for i, wins := range report.Wins {
		data = append(data, []string{fmt.Sprintf("Bot %d", i+1), fmt.Sprint(wins)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	pterm.Info.Printfln("Games: %d, finished: %d, average turns: %.1f",
		report.Games, report.Completed, report.AverageTurns())
	if report.Anomalies > 0 {
		pterm.Error.Printfln("%d games hit the bot turn limit", report.Anomalies)
	}
	if report.Violations > 0 {
		pterm.Error.Printfln("%d games lost or duplicated cards", report.Violations)
	}
	if report.Anomalies == 0 && report.Violations == 0 {
		pterm.Success.Printfln("No anomalies")
	}
}
