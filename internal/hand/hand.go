// Package hand implements the blackjack hand engine: a single hand's cards,
// bet and state, its value, and the rule-gated transitions between states.
//
// # Basic Usage
//
//	h, _ := hand.New(first, second, 10)
//	if h.CanDoubleDown(rs) {
//	    card, _ := shoe.Draw()
//	    err := h.DoubleDown(rs, card)
//	}
//
// Every transition has a matching predicate (Hit/CanHit, Split/CanSplit, ...)
// and the transition succeeds exactly when its predicate is true. Calling a
// transition the predicate rejects returns an error wrapping
// ErrIllegalTransition; that is a bug in the caller, not a game event.
//
// The engine never draws cards. Whoever owns the shoe passes the drawn cards
// into Hit, DoubleDown and Split.
package hand

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/rules"
)

var (
	// ErrIllegalTransition is wrapped by every transition the hand's current
	// state or the rules do not permit
	ErrIllegalTransition = errors.New("illegal transition")
	// ErrInvalidBet is returned by New for a bet that is not positive
	ErrInvalidBet = errors.New("bet must be positive")
)

// State is the position of a hand in its life cycle
type State int

const (
	Fresh State = iota
	SplitState
	SplitAcesLocked
	Stood
	Busted
	DoubledDown
	Surrendered
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "Fresh"
	case SplitState:
		return "Split"
	case SplitAcesLocked:
		return "SplitAcesLocked"
	case Stood:
		return "Stood"
	case Busted:
		return "Busted"
	case DoubledDown:
		return "DoubledDown"
	case Surrendered:
		return "Surrendered"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IsTerminal reports whether no further action can change the hand
func (s State) IsTerminal() bool {
	switch s {
	case Fresh, SplitState:
		return false
	default:
		return true
	}
}

// Hand is one player hand. It is owned by a single caller and is not safe
// for concurrent use.
type Hand struct {
	cards []deck.Card
	bet   float64
	state State
}

// New deals a Fresh hand from its first two cards
func New(first, second deck.Card, bet float64) (*Hand, error) {
	if !(bet > 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidBet, bet)
	}
	return &Hand{
		cards: []deck.Card{first, second},
		bet:   bet,
		state: Fresh,
	}, nil
}

// Cards returns a copy of the cards in the hand, in the order dealt
func (h *Hand) Cards() []deck.Card {
	return slices.Clone(h.cards)
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// Bet returns the amount currently wagered on the hand
func (h *Hand) Bet() float64 {
	return h.bet
}

// State returns the hand's state
func (h *Hand) State() State {
	return h.state
}

// IsTerminal reports whether the hand is finished
func (h *Hand) IsTerminal() bool {
	return h.state.IsTerminal()
}

// Value computes the hand's value from its current cards
func (h *Hand) Value() Value {
	return ValueOf(h.cards)
}

// IsBust reports whether the lower total exceeds 21
func (h *Hand) IsBust() bool {
	return h.Value().Lower > 21
}

// Is21 reports whether either total is exactly 21
func (h *Hand) Is21() bool {
	return h.Value().Has(21)
}

// IsPair reports whether the hand is exactly two cards of equal rank
func (h *Hand) IsPair() bool {
	return len(h.cards) == 2 && h.cards[0].Rank == h.cards[1].Rank
}

// IsNatural reports whether the hand is a two card 21. A King and an Ace is
// a natural although it is not a pair.
func (h *Hand) IsNatural() bool {
	return len(h.cards) == 2 && h.Is21()
}

func (h *Hand) String() string {
	var sb strings.Builder
	for i, c := range h.cards {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.String())
	}
	return fmt.Sprintf("[%s] %s %s bet=%g", sb.String(), h.Value(), h.state, h.bet)
}

// CanHit reports whether Hit would succeed
func (h *Hand) CanHit() bool {
	return !h.IsTerminal()
}

// CanStand reports whether Stand would succeed
func (h *Hand) CanStand() bool {
	return !h.IsTerminal()
}

// CanDoubleDown reports whether DoubleDown would succeed. Only two card hands
// may double, either total must be on the rules' allow-list, and a hand that
// came from a split needs double-after-split.
func (h *Hand) CanDoubleDown(rs *rules.RuleSet) bool {
	return h.doubleDownBlocker(rs) == ""
}

// CanSplit reports whether Split would succeed. handsInPlay is the number of
// hands the player currently holds from the same original deal.
func (h *Hand) CanSplit(rs *rules.RuleSet, handsInPlay int) bool {
	return h.splitBlocker(rs, handsInPlay) == ""
}

// CanSurrender reports whether Surrender would succeed
func (h *Hand) CanSurrender(rs *rules.RuleSet) bool {
	return h.surrenderBlocker(rs) == ""
}

// Can reports whether action is legal right now
func (h *Hand) Can(action Action, rs *rules.RuleSet, handsInPlay int) bool {
	switch action {
	case Hit:
		return h.CanHit()
	case Stand:
		return h.CanStand()
	case DoubleDown:
		return h.CanDoubleDown(rs)
	case Split:
		return h.CanSplit(rs, handsInPlay)
	case Surrender:
		return h.CanSurrender(rs)
	default:
		return false
	}
}

// LegalActions returns every action that is legal right now, in Actions order
func (h *Hand) LegalActions(rs *rules.RuleSet, handsInPlay int) []Action {
	var legal []Action
	for _, a := range Actions {
		if h.Can(a, rs, handsInPlay) {
			legal = append(legal, a)
		}
	}
	return legal
}

// Hit adds card to the hand. The hand busts when its lower total passes 21.
func (h *Hand) Hit(card deck.Card) error {
	if h.IsTerminal() {
		return h.illegal("hit", "")
	}
	h.cards = append(h.cards, card)
	if h.IsBust() {
		h.state = Busted
	}
	return nil
}

// Stand ends play on the hand
func (h *Hand) Stand() error {
	if h.IsTerminal() {
		return h.illegal("stand", "")
	}
	h.state = Stood
	return nil
}

// DoubleDown doubles the bet, takes the single card dealt for the double and
// finishes the hand. Legality is decided on the two card hand before the card
// is added. A double that busts still ends in DoubledDown.
func (h *Hand) DoubleDown(rs *rules.RuleSet, card deck.Card) error {
	if reason := h.doubleDownBlocker(rs); reason != "" {
		return h.illegal("double down", reason)
	}
	h.bet *= 2
	h.cards = append(h.cards, card)
	h.state = DoubledDown
	return nil
}

// Split breaks a pair into two hands. The receiver keeps its first card and
// receives first; the returned hand holds the second card plus second and
// carries the same bet. Split Aces are locked after one card each unless the
// rules let them be played.
func (h *Hand) Split(rs *rules.RuleSet, handsInPlay int, first, second deck.Card) (*Hand, error) {
	if reason := h.splitBlocker(rs, handsInPlay); reason != "" {
		return nil, h.illegal("split", reason)
	}

	state := SplitState
	if h.cards[0].IsAce() && !rs.SplitAcesPlayable() {
		state = SplitAcesLocked
	}

	other := &Hand{
		cards: []deck.Card{h.cards[1], second},
		bet:   h.bet,
		state: state,
	}
	h.cards = []deck.Card{h.cards[0], first}
	h.state = state
	return other, nil
}

// Surrender gives up the hand for half its bet
func (h *Hand) Surrender(rs *rules.RuleSet) error {
	if reason := h.surrenderBlocker(rs); reason != "" {
		return h.illegal("surrender", reason)
	}
	h.bet /= 2
	h.state = Surrendered
	return nil
}

// Apply performs action, drawing from cards in order for the actions that
// need them: one card for Hit and DoubleDown, two for Split. The split-off
// hand is returned for Split and nil otherwise.
func (h *Hand) Apply(action Action, rs *rules.RuleSet, handsInPlay int, cards ...deck.Card) (*Hand, error) {
	need := 0
	switch action {
	case Hit, DoubleDown:
		need = 1
	case Split:
		need = 2
	}
	if len(cards) != need {
		return nil, fmt.Errorf("%s needs %d cards, got %d", action, need, len(cards))
	}

	switch action {
	case Hit:
		return nil, h.Hit(cards[0])
	case Stand:
		return nil, h.Stand()
	case DoubleDown:
		return nil, h.DoubleDown(rs, cards[0])
	case Split:
		return h.Split(rs, handsInPlay, cards[0], cards[1])
	case Surrender:
		return nil, h.Surrender(rs)
	default:
		return nil, fmt.Errorf("%w: unknown action %s", ErrIllegalTransition, action)
	}
}

// The blockers below return why a transition is refused, or "" when it is
// allowed. Predicates and transitions share them so they cannot disagree.

func (h *Hand) doubleDownBlocker(rs *rules.RuleSet) string {
	if h.IsTerminal() {
		return "terminal"
	}
	if len(h.cards) != 2 {
		return "needs exactly two cards"
	}
	if h.state == SplitState && !rs.DoubleAfterSplit() {
		return "no double after split"
	}
	v := h.Value()
	if rs.DoubleDownAllowed(v.Lower) || (v.Soft && rs.DoubleDownAllowed(v.Upper)) {
		return ""
	}
	return fmt.Sprintf("total %s not allowed", v)
}

func (h *Hand) splitBlocker(rs *rules.RuleSet, handsInPlay int) string {
	if h.IsTerminal() {
		return "terminal"
	}
	if !h.IsPair() {
		return "not a pair"
	}
	if handsInPlay >= rs.MaxHands() {
		return fmt.Sprintf("already playing %d of %d hands", handsInPlay, rs.MaxHands())
	}
	return ""
}

func (h *Hand) surrenderBlocker(rs *rules.RuleSet) string {
	if h.IsTerminal() {
		return "terminal"
	}
	if rs.Surrender() == rules.SurrenderNone {
		return "surrender not offered"
	}
	return ""
}

func (h *Hand) illegal(op, reason string) error {
	if reason == "" || reason == "terminal" {
		return fmt.Errorf("%s on %s hand: %w", op, h.state, ErrIllegalTransition)
	}
	return fmt.Errorf("%s on %s hand (%s): %w", op, h.state, reason, ErrIllegalTransition)
}
