package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/lox/blackjack/internal/rules"
)

// RulesCmd validates a rules file and prints what it resolves to
type RulesCmd struct {
	File string `arg:"" optional:"" type:"path" help:"Rules file to check (defaults to --rules)"`
}

func (c *RulesCmd) Run(g *Globals) error {
	file := c.File
	if file == "" {
		file = g.RulesFile
	}

	rs, err := rules.LoadFile(file)
	if err != nil {
		return err
	}
	g.Logger().Debug("rules loaded", "file", file)

	totals := "any"
	if !rs.DoubleDownUnrestricted() {
		totals = fmt.Sprint(rs.DoubleDownTotals())
	}

	w := tabwriter.NewWriter(g.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Decks\t%d\n", rs.Decks())
	fmt.Fprintf(w, "Players\t%d\n", rs.Players())
	fmt.Fprintf(w, "Bets\t%g-%g\n", rs.MinBet(), rs.MaxBet())
	fmt.Fprintf(w, "Dealer\t%s\n", rs.DealerSoft17())
	fmt.Fprintf(w, "Blackjack pays\t%g\n", rs.BlackjackPayout())
	fmt.Fprintf(w, "Double down on\t%s\n", totals)
	fmt.Fprintf(w, "Double after split\t%t\n", rs.DoubleAfterSplit())
	fmt.Fprintf(w, "Max hands\t%d\n", rs.MaxHands())
	fmt.Fprintf(w, "Split aces playable\t%t\n", rs.SplitAcesPlayable())
	fmt.Fprintf(w, "Surrender\t%s\n", rs.Surrender())
	fmt.Fprintf(w, "Shuffle\t%s\n", rs.Shuffle())
	return w.Flush()
}
