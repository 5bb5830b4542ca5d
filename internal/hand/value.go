package hand

import (
	"fmt"

	"github.com/lox/blackjack/internal/deck"
)

// Value is the derived total of a hand. A hard value has a single total; a
// soft value carries both totals produced by counting one Ace as 1 or 11.
type Value struct {
	Lower int
	Upper int
	Soft  bool
}

// Hard returns a hard value
func Hard(total int) Value {
	return Value{Lower: total, Upper: total}
}

// Soft returns a soft value whose upper total is lower+10
func Soft(lower int) Value {
	return Value{Lower: lower, Upper: lower + 10, Soft: true}
}

// ValueOf computes the value of a set of cards. Every Ace counts 1 in the
// lower total and at most one Ace is promoted to 11 in the upper total; a
// second promoted Ace would always exceed 21.
func ValueOf(cards []deck.Card) Value {
	base := 0
	hasAce := false
	for _, c := range cards {
		base += c.Points()
		if c.IsAce() {
			hasAce = true
		}
	}
	if hasAce {
		return Soft(base)
	}
	return Hard(base)
}

// Best returns the upper total when it does not exceed 21, else the lower
func (v Value) Best() int {
	if v.Soft && v.Upper <= 21 {
		return v.Upper
	}
	return v.Lower
}

// IsSoft reports whether the upper total is still playable. A soft value
// whose upper total has passed 21 plays like a hard hand.
func (v Value) IsSoft() bool {
	return v.Soft && v.Upper <= 21
}

// Has reports whether either total equals n
func (v Value) Has(n int) bool {
	return v.Lower == n || (v.Soft && v.Upper == n)
}

func (v Value) String() string {
	if v.Soft {
		return fmt.Sprintf("Soft{%d,%d}", v.Lower, v.Upper)
	}
	return fmt.Sprintf("Hard(%d)", v.Lower)
}
