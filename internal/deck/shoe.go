package deck

import (
	rand "math/rand/v2"
)

// CardsPerDeck is the size of a single standard deck
const CardsPerDeck = 52

// Shoe is a stack of one or more decks dealt from its draw end. It keeps a
// hi-lo running count of the cards drawn since the last reset.
//
// A Shoe is not safe for concurrent use; one dealer owns it.
type Shoe struct {
	decks   int
	cards   []Card
	rng     *rand.Rand
	stacked []Card
	running int
}

// NewShoe creates a shoe of decks standard decks shuffled with rng. A nil rng
// leaves the shoe in manufacturing order.
func NewShoe(decks int, rng *rand.Rand) *Shoe {
	if decks < 1 {
		decks = 1
	}
	s := &Shoe{
		decks: decks,
		cards: make([]Card, 0, decks*CardsPerDeck),
		rng:   rng,
	}
	s.Reset()
	return s
}

// NewStackedShoe creates a shoe that deals exactly the given cards, first
// argument first. Reset refills it with the same sequence.
func NewStackedShoe(cards ...Card) *Shoe {
	s := &Shoe{stacked: make([]Card, len(cards))}
	// draw end is the tail of the slice
	for i, c := range cards {
		s.stacked[len(cards)-1-i] = c
	}
	s.Reset()
	return s
}

// Reset refills the shoe, shuffles it and clears the running count. Stacked
// shoes are refilled with their original sequence and never shuffled.
func (s *Shoe) Reset() {
	s.running = 0
	if s.stacked != nil {
		s.cards = append(s.cards[:0], s.stacked...)
		return
	}
	s.cards = s.cards[:0]
	for range s.decks {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	s.Shuffle()
}

// Shuffle randomizes the order of the cards left in the shoe
func (s *Shoe) Shuffle() {
	if s.rng == nil {
		return
	}
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the card at the draw end. It returns false when
// the shoe is exhausted.
func (s *Shoe) Draw() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}
	card := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	s.running += HiLo(card.Rank)
	return card, true
}

// Peek returns the next card without removing it from the shoe
func (s *Shoe) Peek() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}
	return s.cards[len(s.cards)-1], true
}

// CardsRemaining returns the number of cards left in the shoe
func (s *Shoe) CardsRemaining() int {
	return len(s.cards)
}

// IsEmpty returns true if the shoe has no cards left
func (s *Shoe) IsEmpty() bool {
	return len(s.cards) == 0
}

// Decks returns the number of decks the shoe was built from
func (s *Shoe) Decks() int {
	return s.decks
}

// RunningCount returns the hi-lo count of every card drawn since the last reset
func (s *Shoe) RunningCount() int {
	return s.running
}

// TrueCount returns the running count per deck still in the shoe
func (s *Shoe) TrueCount() float64 {
	if len(s.cards) == 0 {
		return 0
	}
	return float64(s.running) / (float64(len(s.cards)) / CardsPerDeck)
}

// HiLo returns the hi-lo counting weight of a rank: +1 for Two through Six,
// -1 for ten-value cards and Aces, 0 otherwise.
func HiLo(r Rank) int {
	switch {
	case r >= Two && r <= Six:
		return 1
	case r == Ace, r.IsTenValue():
		return -1
	default:
		return 0
	}
}
