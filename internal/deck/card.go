package deck

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCard is returned when a card byte uses bits outside the 6-bit encoding
	ErrInvalidCard = errors.New("invalid card")
	// ErrInvalidRank is returned for an unknown rank index or rank character
	ErrInvalidRank = errors.New("invalid rank")
	// ErrInvalidSuit is returned for an unknown suit index or suit character
	ErrInvalidSuit = errors.New("invalid suit")
)

// Suit represents a card suit
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in encoding order
var Suits = [...]Suit{Clubs, Diamonds, Hearts, Spades}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Two through Ten carry their face value as
// their numeric value.
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists every rank in encoding order
var Ranks = [...]Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Two, Three, Four, Five, Six, Seven, Eight, Nine:
		return string(rune('0' + r))
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return "?"
	}
}

// Points returns the blackjack point value of the rank with the Ace counted
// as 1. Ten and the face cards are all worth 10.
func (r Rank) Points() int {
	switch {
	case r == Ace:
		return 1
	case r >= Two && r <= Ten:
		return int(r)
	case r >= Jack && r <= King:
		return 10
	default:
		return 0
	}
}

// IsTenValue returns true for Ten, Jack, Queen and King
func (r Rank) IsTenValue() bool {
	return r >= Ten && r <= King
}

// Card represents a playing card. Cards are plain values: two cards with the
// same suit and rank are indistinguishable.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// IsValid reports whether the card has a known suit and rank
func (c Card) IsValid() bool {
	return c.Suit <= Spades && c.Rank >= Ace && c.Rank <= King
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// Points returns the blackjack point value of the card (Ace = 1)
func (c Card) Points() int {
	return c.Rank.Points()
}

// InvalidCardByte is what Byte returns for a card that fails IsValid. Its high
// bits are set, so CardFromByte rejects it.
const InvalidCardByte byte = 0xFF

// Byte packs the card as 00RRRRSS: suit index in the low two bits and the
// zero-based rank index in bits 2..5. Invalid cards, including the zero
// Card, pack to InvalidCardByte.
func (c Card) Byte() byte {
	if !c.IsValid() {
		return InvalidCardByte
	}
	return byte(c.Rank-Ace)<<2 | byte(c.Suit)
}

// CardFromByte decodes a card packed by Card.Byte
func CardFromByte(b byte) (Card, error) {
	if b&0b1100_0000 != 0 {
		return Card{}, fmt.Errorf("%w: 0x%02x", ErrInvalidCard, b)
	}
	idx := (b & 0b0011_1100) >> 2
	if int(idx) >= len(Ranks) {
		return Card{}, fmt.Errorf("%w: index %d", ErrInvalidRank, idx)
	}
	return Card{Suit: Suit(b & 0b11), Rank: Ranks[idx]}, nil
}
