package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/strategy"
)

// HandCmd builds a hand from cards and reports what the engine makes of it
type HandCmd struct {
	Cards      string `arg:"" help:"Cards in the order dealt, e.g. 'As7d' or '8c 8d'"`
	Dealer     string `short:"d" help:"Dealer up card; enables a basic strategy suggestion"`
	SplitHands int    `default:"1" help:"Hands the player already holds from the same deal"`
}

func (c *HandCmd) Run(g *Globals) error {
	rs, err := g.RuleSet()
	if err != nil {
		return err
	}

	cards, err := deck.ParseCards(c.Cards)
	if err != nil {
		return err
	}
	if len(cards) < 2 {
		return errors.New("a hand needs at least two cards")
	}
	if c.SplitHands < 1 {
		return fmt.Errorf("split-hands must be at least 1, got %d", c.SplitHands)
	}

	h, err := hand.New(cards[0], cards[1], rs.MinBet())
	if err != nil {
		return err
	}
	for _, card := range cards[2:] {
		if err := h.Hit(card); err != nil {
			return fmt.Errorf("dealing %s: %w", card, err)
		}
	}

	out := g.Stdout
	fmt.Fprintf(out, "Hand:    %s\n", h)
	fmt.Fprintf(out, "Value:   %s (best %d)\n", h.Value(), h.Value().Best())
	fmt.Fprintf(out, "State:   %s\n", h.State())

	var flags []string
	for _, f := range []struct {
		name string
		set  bool
	}{
		{"natural", h.IsNatural()},
		{"21", h.Is21()},
		{"pair", h.IsPair()},
		{"bust", h.IsBust()},
	} {
		if f.set {
			flags = append(flags, f.name)
		}
	}
	if len(flags) == 0 {
		flags = append(flags, "none")
	}
	fmt.Fprintf(out, "Flags:   %s\n", strings.Join(flags, ", "))

	legal := h.LegalActions(rs, c.SplitHands)
	names := make([]string, len(legal))
	for i, a := range legal {
		names[i] = a.String()
	}
	if len(names) == 0 {
		names = append(names, "none")
	}
	fmt.Fprintf(out, "Legal:   %s\n", strings.Join(names, ", "))

	if c.Dealer == "" || h.IsTerminal() {
		return nil
	}
	up, err := deck.ParseCard(c.Dealer)
	if err != nil {
		return fmt.Errorf("dealer card: %w", err)
	}
	action := strategy.Basic{}.Decide(strategy.View{
		Hand:        h,
		DealerUp:    up,
		Rules:       rs,
		HandsInPlay: c.SplitHands,
	})
	fmt.Fprintf(out, "Basic:   %s against %s\n", action, up)
	return nil
}
