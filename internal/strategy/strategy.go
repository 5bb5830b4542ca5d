// Package strategy provides the decision functions that choose an action
// for a hand. Strategies only read the hand; the table applies the action.
package strategy

import (
	"fmt"
	"slices"
	"sort"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/rules"
)

// View is everything a strategy may look at when deciding
type View struct {
	Hand        *hand.Hand
	DealerUp    deck.Card
	Rules       *rules.RuleSet
	HandsInPlay int
}

// Legal returns the actions the engine accepts for this view
func (v View) Legal() []hand.Action {
	return v.Hand.LegalActions(v.Rules, v.HandsInPlay)
}

// Can reports whether action is legal for this view
func (v View) Can(action hand.Action) bool {
	return v.Hand.Can(action, v.Rules, v.HandsInPlay)
}

// Strategy decides the next action for a non-terminal hand. Implementations
// must be safe for concurrent use; the simulator shares one across workers.
type Strategy interface {
	Decide(View) hand.Action
}

// Func adapts a plain function to Strategy
type Func func(View) hand.Action

// Decide calls f
func (f Func) Decide(v View) hand.Action {
	return f(v)
}

var registry = map[string]Strategy{
	"basic":  Basic{},
	"dealer": Dealer{},
	"stand":  Func(func(View) hand.Action { return hand.Stand }),
}

// Lookup returns a built-in strategy by name
func Lookup(name string) (Strategy, error) {
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (available: %v)", name, Names())
	}
	return s, nil
}

// Names lists the built-in strategies
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dealer plays the hand the way the house plays its own: draw to 17, and
// draw to a soft 17 only when the rules make the dealer hit it.
type Dealer struct{}

func (Dealer) Decide(v View) hand.Action {
	val := v.Hand.Value()
	total := val.Best()
	if total < 17 {
		return hand.Hit
	}
	if total == 17 && val.IsSoft() && v.Rules.DealerSoft17() == rules.DealerHitsSoft17 {
		return hand.Hit
	}
	return hand.Stand
}

// upValue is the dealer up card's value with the Ace counted as 11
func upValue(c deck.Card) int {
	if c.IsAce() {
		return 11
	}
	return c.Points()
}

func in(x int, set ...int) bool {
	return slices.Contains(set, x)
}

func between(x, lo, hi int) bool {
	return x >= lo && x <= hi
}
