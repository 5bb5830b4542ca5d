package strategy

import (
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
)

// Basic is a compact multi-deck basic strategy chart. Doubles fall back to
// hitting (or standing on soft 18) when the rules do not allow them, and
// surrender falls back to the hard-total play.
type Basic struct{}

func (Basic) Decide(v View) hand.Action {
	up := upValue(v.DealerUp)
	val := v.Hand.Value()

	if v.Can(hand.Split) && splitPair(v.Hand.Cards()[0].Rank, up) {
		return hand.Split
	}

	if v.Can(hand.Surrender) && v.Hand.Len() == 2 && !val.IsSoft() {
		switch {
		case val.Lower == 16 && in(up, 9, 10, 11):
			return hand.Surrender
		case val.Lower == 15 && up == 10:
			return hand.Surrender
		}
	}

	if val.IsSoft() {
		return soft(v, val.Upper, up)
	}
	return hard(v, val.Lower, up)
}

func splitPair(r deck.Rank, up int) bool {
	switch {
	case r == deck.Ace, r == deck.Eight:
		return true
	case r.IsTenValue(), r == deck.Five:
		return false
	case r == deck.Nine:
		return between(up, 2, 6) || in(up, 8, 9)
	case r == deck.Seven:
		return between(up, 2, 7)
	case r == deck.Six:
		return between(up, 2, 6)
	case r == deck.Four:
		return in(up, 5, 6)
	case r == deck.Two, r == deck.Three:
		return between(up, 2, 7)
	}
	return false
}

func soft(v View, total, up int) hand.Action {
	switch {
	case total >= 19:
		return hand.Stand
	case total == 18:
		if between(up, 3, 6) && v.Can(hand.DoubleDown) {
			return hand.DoubleDown
		}
		if between(up, 2, 8) {
			return hand.Stand
		}
		return hand.Hit
	case total == 17:
		return doubleOrHit(v, between(up, 3, 6))
	case total >= 15:
		return doubleOrHit(v, between(up, 4, 6))
	default:
		return doubleOrHit(v, between(up, 5, 6))
	}
}

func hard(v View, total, up int) hand.Action {
	switch {
	case total >= 17:
		return hand.Stand
	case total >= 13:
		if between(up, 2, 6) {
			return hand.Stand
		}
		return hand.Hit
	case total == 12:
		if between(up, 4, 6) {
			return hand.Stand
		}
		return hand.Hit
	case total == 11:
		return doubleOrHit(v, true)
	case total == 10:
		return doubleOrHit(v, between(up, 2, 9))
	case total == 9:
		return doubleOrHit(v, between(up, 3, 6))
	default:
		return hand.Hit
	}
}

func doubleOrHit(v View, wantDouble bool) hand.Action {
	if wantDouble && v.Can(hand.DoubleDown) {
		return hand.DoubleDown
	}
	return hand.Hit
}
