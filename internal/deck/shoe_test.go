package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/randutil"
)

func TestNewShoeComposition(t *testing.T) {
	shoe := NewShoe(6, randutil.New(42))
	require.Equal(t, 6*CardsPerDeck, shoe.CardsRemaining())

	counts := make(map[Card]int)
	for !shoe.IsEmpty() {
		c, ok := shoe.Draw()
		require.True(t, ok)
		counts[c]++
	}

	assert.Len(t, counts, CardsPerDeck)
	for c, n := range counts {
		assert.Equal(t, 6, n, "card %s", c)
	}

	_, ok := shoe.Draw()
	assert.False(t, ok, "draw from an exhausted shoe")
}

func TestShoeShuffleIsDeterministic(t *testing.T) {
	a := NewShoe(2, randutil.New(7))
	b := NewShoe(2, randutil.New(7))
	for range 2 * CardsPerDeck {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		require.Equal(t, ca, cb)
	}
}

func TestStackedShoeDrawOrder(t *testing.T) {
	cards := MustParseCards("AsKd7c")
	shoe := NewStackedShoe(cards...)

	next, ok := shoe.Peek()
	require.True(t, ok)
	assert.Equal(t, cards[0], next)

	for _, want := range cards {
		got, ok := shoe.Draw()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.True(t, shoe.IsEmpty())

	shoe.Reset()
	assert.Equal(t, len(cards), shoe.CardsRemaining())
	assert.Zero(t, shoe.RunningCount())
}

func TestRunningCount(t *testing.T) {
	shoe := NewStackedShoe(MustParseCards("2c6dAsKh8h3s")...)

	want := []int{1, 2, 1, 0, 0, 1}
	for i, w := range want {
		_, ok := shoe.Draw()
		require.True(t, ok)
		assert.Equal(t, w, shoe.RunningCount(), "after draw %d", i+1)
	}
}

func TestFullShoeCountsToZero(t *testing.T) {
	shoe := NewShoe(4, randutil.New(3))
	for !shoe.IsEmpty() {
		shoe.Draw()
	}
	assert.Zero(t, shoe.RunningCount())
	assert.Zero(t, shoe.TrueCount())
}

func TestTrueCount(t *testing.T) {
	cards := make([]Card, 0, CardsPerDeck+2)
	cards = append(cards, MustParseCards("2c3c")...)
	for range CardsPerDeck {
		cards = append(cards, NewCard(Spades, Eight))
	}
	shoe := NewStackedShoe(cards...)
	shoe.Draw()
	shoe.Draw()

	// +2 with exactly one deck remaining
	assert.InDelta(t, 2.0, shoe.TrueCount(), 1e-9)
}
