// Package table deals a single seat's round: it draws from the shoe, asks a
// strategy for each decision, and applies the decision through the hand
// engine, re-dealing split hands and the double-down card.
package table

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/rules"
	"github.com/lox/blackjack/internal/strategy"
)

// ErrShoeExhausted is returned when the shoe runs out in the middle of a round
var ErrShoeExhausted = errors.New("shoe exhausted")

// Drawer is the only part of a shoe the table needs. *deck.Shoe implements it.
type Drawer interface {
	Draw() (deck.Card, bool)
}

// Table plays rounds for one seat. It is not safe for concurrent use.
type Table struct {
	rules    *rules.RuleSet
	shoe     Drawer
	strategy strategy.Strategy
	logger   *log.Logger
}

// New creates a table. A nil logger discards all output.
func New(rs *rules.RuleSet, shoe Drawer, strat strategy.Strategy, logger *log.Logger) *Table {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Table{
		rules:    rs,
		shoe:     shoe,
		strategy: strat,
		logger:   logger,
	}
}

// Decision records one action taken during a round
type Decision struct {
	Hand   int // index into RoundResult.Hands at the time of the action
	Action hand.Action
}

// RoundResult holds every hand the seat finished the round with
type RoundResult struct {
	DealerUp  deck.Card
	Hands     []*hand.Hand
	Decisions []Decision
	Natural   bool
}

// Splits returns the number of splits made during the round
func (r *RoundResult) Splits() int {
	return len(r.Hands) - 1
}

// TotalBet returns the sum of the final bets of all hands
func (r *RoundResult) TotalBet() float64 {
	total := 0.0
	for _, h := range r.Hands {
		total += h.Bet()
	}
	return total
}

// PlayRound deals a new hand with the given bet and plays it, and every hand
// split from it, to a terminal state. A natural stands immediately.
//
// Any error means the round was abandoned: either the shoe ran out or the
// strategy picked an action the engine refused (wrapping
// hand.ErrIllegalTransition).
func (t *Table) PlayRound(bet float64) (*RoundResult, error) {
	// player, dealer, player
	dealt, err := t.draw(3)
	if err != nil {
		return nil, err
	}
	first, err := hand.New(dealt[0], dealt[2], bet)
	if err != nil {
		return nil, err
	}

	result := &RoundResult{
		DealerUp: dealt[1],
		Hands:    []*hand.Hand{first},
	}

	if first.IsNatural() {
		result.Natural = true
		if err := first.Stand(); err != nil {
			return nil, err
		}
		result.Decisions = append(result.Decisions, Decision{Hand: 0, Action: hand.Stand})
		t.logger.Debug("natural", "hand", first)
		return result, nil
	}

	for i := 0; i < len(result.Hands); i++ {
		for !result.Hands[i].IsTerminal() {
			if err := t.step(result, i); err != nil {
				return nil, fmt.Errorf("hand %d: %w", i, err)
			}
		}
		t.logger.Debug("hand complete", "index", i, "hand", result.Hands[i])
	}

	return result, nil
}

func (t *Table) step(result *RoundResult, i int) error {
	h := result.Hands[i]
	view := strategy.View{
		Hand:        h,
		DealerUp:    result.DealerUp,
		Rules:       t.rules,
		HandsInPlay: len(result.Hands),
	}

	action := t.strategy.Decide(view)
	if !view.Can(action) {
		return fmt.Errorf("strategy chose %s on %s, legal %v: %w", action, h, view.Legal(), hand.ErrIllegalTransition)
	}

	var need int
	switch action {
	case hand.Hit, hand.DoubleDown:
		need = 1
	case hand.Split:
		need = 2
	}
	cards, err := t.draw(need)
	if err != nil {
		return err
	}

	other, err := h.Apply(action, t.rules, len(result.Hands), cards...)
	if err != nil {
		return err
	}
	result.Decisions = append(result.Decisions, Decision{Hand: i, Action: action})
	t.logger.Debug("action", "hand", i, "action", action, "cards", cards, "state", h.State())

	if other != nil {
		result.Hands = slices.Insert(result.Hands, i+1, other)
	}
	return nil
}

func (t *Table) draw(n int) ([]deck.Card, error) {
	if n == 0 {
		return nil, nil
	}
	cards := make([]deck.Card, n)
	for i := range cards {
		c, ok := t.shoe.Draw()
		if !ok {
			return nil, ErrShoeExhausted
		}
		cards[i] = c
	}
	return cards, nil
}
