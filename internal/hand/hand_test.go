package hand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/rules"
)

func mustRules(t *testing.T, mutate func(*rules.Config)) *rules.RuleSet {
	t.Helper()
	cfg := rules.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	rs, err := rules.New(cfg)
	require.NoError(t, err)
	return rs
}

func mustHand(t *testing.T, cards string, bet float64) *Hand {
	t.Helper()
	cs := deck.MustParseCards(cards)
	require.Len(t, cs, 2)
	h, err := New(cs[0], cs[1], bet)
	require.NoError(t, err)
	return h
}

func card(s string) deck.Card {
	return deck.MustParseCards(s)[0]
}

func TestNewHand(t *testing.T) {
	h := mustHand(t, "Tc2c", 5)
	assert.Equal(t, Fresh, h.State())
	assert.Equal(t, 5.0, h.Bet())
	assert.Equal(t, 2, h.Len())
	assert.False(t, h.IsTerminal())

	_, err := New(card("Tc"), card("2c"), 0)
	assert.ErrorIs(t, err, ErrInvalidBet)
	_, err = New(card("Tc"), card("2c"), -1)
	assert.ErrorIs(t, err, ErrInvalidBet)
}

func TestCardsReturnsCopy(t *testing.T) {
	h := mustHand(t, "Tc2c", 1)
	cards := h.Cards()
	cards[0] = card("As")
	assert.Equal(t, Hard(12), h.Value())
}

func TestScenarioHardBust(t *testing.T) {
	h := mustHand(t, "Tc2c", 1)
	assert.Equal(t, Hard(12), h.Value())

	require.NoError(t, h.Hit(card("Th")))
	assert.Equal(t, Busted, h.State())
	assert.Equal(t, Hard(22), h.Value())
	assert.True(t, h.IsBust())
}

func TestScenarioSoftHandBustsOnLowerTotal(t *testing.T) {
	h := mustHand(t, "2cAc", 1)
	assert.Equal(t, Soft(3), h.Value())

	require.NoError(t, h.Hit(card("Tc")))
	assert.Equal(t, Value{Lower: 13, Upper: 23, Soft: true}, h.Value())
	assert.False(t, h.IsBust())
	assert.Equal(t, Fresh, h.State())

	require.NoError(t, h.Hit(card("Tc")))
	assert.Equal(t, Value{Lower: 23, Upper: 33, Soft: true}, h.Value())
	assert.True(t, h.IsBust())
	assert.Equal(t, Busted, h.State())
}

func TestScenarioNatural(t *testing.T) {
	h := mustHand(t, "KcAc", 1)
	assert.Equal(t, Soft(11), h.Value())
	assert.True(t, h.Is21())
	assert.True(t, h.IsNatural())
	assert.False(t, h.IsPair())
}

func TestNaturalNeedsTwoCards(t *testing.T) {
	h := mustHand(t, "7c4d", 1)
	require.NoError(t, h.Hit(card("Kh")))
	assert.True(t, h.Is21())
	assert.False(t, h.IsNatural())

	h = mustHand(t, "AcAd", 1)
	assert.True(t, h.IsPair())
	assert.False(t, h.IsNatural())
}

func TestScenarioSplitWithoutDoubleAfterSplit(t *testing.T) {
	rs := mustRules(t, func(c *rules.Config) {
		c.DoubleAfterSplit = false
		c.DoubleDownTotals = nil
	})
	h := mustHand(t, "6c6c", 1)
	require.True(t, h.CanSplit(rs, 1))

	other, err := h.Split(rs, 1, card("5d"), card("4h"))
	require.NoError(t, err)

	for _, x := range []*Hand{h, other} {
		assert.Equal(t, SplitState, x.State())
		assert.Equal(t, 1.0, x.Bet())
		assert.False(t, x.CanDoubleDown(rs))
		assert.ErrorIs(t, x.DoubleDown(rs, card("Tc")), ErrIllegalTransition)
	}
	assert.Equal(t, deck.MustParseCards("6c5d"), h.Cards())
	assert.Equal(t, deck.MustParseCards("6c4h"), other.Cards())
}

func TestDoubleAfterSplitAllowed(t *testing.T) {
	rs := mustRules(t, func(c *rules.Config) {
		c.DoubleAfterSplit = true
		c.DoubleDownTotals = []int{11}
	})
	h := mustHand(t, "6c6d", 2)
	other, err := h.Split(rs, 1, card("5d"), card("4h"))
	require.NoError(t, err)

	assert.True(t, h.CanDoubleDown(rs), "6+5 = 11")
	assert.False(t, other.CanDoubleDown(rs), "6+4 = 10 is not on the list")

	require.NoError(t, h.DoubleDown(rs, card("Tc")))
	assert.Equal(t, 4.0, h.Bet())
	assert.Equal(t, 2.0, other.Bet())
}

func TestScenarioNoSurrender(t *testing.T) {
	rs := mustRules(t, func(c *rules.Config) { c.Surrender = rules.SurrenderNone })
	h := mustHand(t, "Tc6d", 1)

	assert.False(t, h.CanSurrender(rs))
	err := h.Surrender(rs)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, Fresh, h.State())
	assert.Equal(t, 1.0, h.Bet())
}

func TestSurrenderHalvesBet(t *testing.T) {
	for _, policy := range []rules.SurrenderPolicy{rules.SurrenderEarly, rules.SurrenderLate} {
		rs := mustRules(t, func(c *rules.Config) { c.Surrender = policy })
		h := mustHand(t, "Tc6d", 3)
		require.True(t, h.CanSurrender(rs))
		require.NoError(t, h.Surrender(rs))
		assert.Equal(t, 1.5, h.Bet())
		assert.Equal(t, Surrendered, h.State())
		assert.True(t, h.IsTerminal())
	}
}

func TestScenarioDoubleDown(t *testing.T) {
	rs := mustRules(t, func(c *rules.Config) { c.DoubleDownTotals = []int{12} })
	h := mustHand(t, "6c6c", 1)

	require.True(t, h.CanDoubleDown(rs))
	require.NoError(t, h.DoubleDown(rs, card("9d")))
	assert.Equal(t, 2.0, h.Bet())
	assert.Equal(t, DoubledDown, h.State())
	assert.True(t, h.IsTerminal())
	assert.Equal(t, 3, h.Len())
}

func TestDoubleDownChecksSoftTotals(t *testing.T) {
	rs := mustRules(t, func(c *rules.Config) { c.DoubleDownTotals = []int{17} })

	// A+6 is soft 7/17
	assert.True(t, mustHand(t, "Ac6c", 1).CanDoubleDown(rs))
	// 7+K is hard 17
	assert.True(t, mustHand(t, "7cKd", 1).CanDoubleDown(rs))
	assert.False(t, mustHand(t, "Ac5c", 1).CanDoubleDown(rs))
}

func TestDoubleDownRequiresTwoCards(t *testing.T) {
	rs := mustRules(t, func(c *rules.Config) { c.DoubleDownTotals = nil })
	h := mustHand(t, "2c3d", 1)
	require.NoError(t, h.Hit(card("4h")))

	assert.False(t, h.CanDoubleDown(rs))
	assert.ErrorIs(t, h.DoubleDown(rs, card("Tc")), ErrIllegalTransition)
	assert.Equal(t, 1.0, h.Bet())
}

func TestDoubleDownBustKeepsDoubledState(t *testing.T) {
	rs := mustRules(t, func(c *rules.Config) { c.DoubleDownTotals = nil })
	h := mustHand(t, "Tc6d", 1)
	require.NoError(t, h.DoubleDown(rs, card("Ks")))
	assert.Equal(t, DoubledDown, h.State())
	assert.True(t, h.IsBust())
}

func TestSplitAces(t *testing.T) {
	t.Run("locked", func(t *testing.T) {
		rs := mustRules(t, func(c *rules.Config) {
			c.SplitAcesPlayable = false
			c.DoubleDownTotals = nil
		})
		h := mustHand(t, "AcAd", 1)
		other, err := h.Split(rs, 1, card("9h"), card("As"))
		require.NoError(t, err)

		for _, x := range []*Hand{h, other} {
			assert.Equal(t, SplitAcesLocked, x.State())
			assert.True(t, x.IsTerminal())
			assert.False(t, x.CanHit())
			assert.False(t, x.CanDoubleDown(rs))
			assert.False(t, x.CanSplit(rs, 2), "locked aces cannot be re-split")
		}
	})

	t.Run("playable", func(t *testing.T) {
		rs := mustRules(t, func(c *rules.Config) { c.SplitAcesPlayable = true })
		h := mustHand(t, "AcAd", 1)
		other, err := h.Split(rs, 1, card("9h"), card("As"))
		require.NoError(t, err)

		assert.Equal(t, SplitState, h.State())
		assert.Equal(t, SplitState, other.State())
		assert.True(t, h.CanHit())
		assert.True(t, other.CanSplit(rs, 2), "A+A again")
	})
}

func TestSplitMaxHands(t *testing.T) {
	rs := mustRules(t, func(c *rules.Config) { c.MaxHands = 2 })
	h := mustHand(t, "8c8d", 1)
	assert.True(t, h.CanSplit(rs, 1))
	assert.False(t, h.CanSplit(rs, 2))

	_, err := h.Split(rs, 2, card("8h"), card("2c"))
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, deck.MustParseCards("8c8d"), h.Cards())
}

func TestSplitRequiresPair(t *testing.T) {
	rs := rules.Default()
	// ten-value cards of different rank are not a pair
	h := mustHand(t, "KcQd", 1)
	assert.False(t, h.IsPair())
	assert.False(t, h.CanSplit(rs, 1))

	_, err := h.Split(rs, 1, card("2c"), card("3c"))
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestStand(t *testing.T) {
	h := mustHand(t, "Tc7d", 1)
	require.True(t, h.CanStand())
	require.NoError(t, h.Stand())
	assert.Equal(t, Stood, h.State())
	assert.Equal(t, 1.0, h.Bet())
}

func TestTerminalHandsRejectEverything(t *testing.T) {
	rs := mustRules(t, func(c *rules.Config) {
		c.DoubleDownTotals = nil
		c.Surrender = rules.SurrenderLate
	})

	terminal := map[string]func(*Hand) error{
		"stood":       func(h *Hand) error { return h.Stand() },
		"busted":      func(h *Hand) error { return h.Hit(card("Ks")) },
		"doubled":     func(h *Hand) error { return h.DoubleDown(rs, card("2s")) },
		"surrendered": func(h *Hand) error { return h.Surrender(rs) },
	}

	for name, finish := range terminal {
		t.Run(name, func(t *testing.T) {
			h := mustHand(t, "TcTd", 1)
			require.NoError(t, finish(h))
			require.True(t, h.IsTerminal())

			cards, bet, state := h.Cards(), h.Bet(), h.State()
			assert.Empty(t, h.LegalActions(rs, 1))
			assert.ErrorIs(t, h.Hit(card("2c")), ErrIllegalTransition)
			assert.ErrorIs(t, h.Stand(), ErrIllegalTransition)
			assert.ErrorIs(t, h.DoubleDown(rs, card("2c")), ErrIllegalTransition)
			assert.ErrorIs(t, h.Surrender(rs), ErrIllegalTransition)
			_, err := h.Split(rs, 1, card("2c"), card("3c"))
			assert.ErrorIs(t, err, ErrIllegalTransition)

			assert.Equal(t, cards, h.Cards())
			assert.Equal(t, bet, h.Bet())
			assert.Equal(t, state, h.State())
		})
	}
}

func TestLegalActions(t *testing.T) {
	rs := mustRules(t, func(c *rules.Config) {
		c.DoubleDownTotals = []int{16}
		c.Surrender = rules.SurrenderLate
	})
	h := mustHand(t, "8c8d", 1)
	assert.Equal(t, []Action{Hit, Stand, DoubleDown, Split, Surrender}, h.LegalActions(rs, 1))

	require.NoError(t, h.Hit(card("2c")))
	assert.Equal(t, []Action{Hit, Stand, Surrender}, h.LegalActions(rs, 1))
}

func TestApplyCardCount(t *testing.T) {
	rs := rules.Default()
	h := mustHand(t, "8c8d", 1)

	_, err := h.Apply(Hit, rs, 1)
	assert.Error(t, err)
	_, err = h.Apply(Split, rs, 1, card("2c"))
	assert.Error(t, err)
	assert.Equal(t, Fresh, h.State())

	other, err := h.Apply(Split, rs, 1, card("2c"), card("3c"))
	require.NoError(t, err)
	require.NotNil(t, other)
}

func TestIllegalTransitionMessage(t *testing.T) {
	h := mustHand(t, "Tc7d", 1)
	require.NoError(t, h.Stand())
	err := h.Hit(card("2c"))
	assert.EqualError(t, err, "hit on Stood hand: illegal transition")
}

func TestActionParseRoundTrip(t *testing.T) {
	for _, a := range Actions {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := ParseAction("fold")
	assert.Error(t, err)
}

func TestSplitStateAndSplitAction(t *testing.T) {
	assert.Equal(t, "Split", SplitState.String())
	assert.False(t, SplitState.IsTerminal())
	assert.Equal(t, "split", Split.String())

	a, err := ParseAction("split")
	require.NoError(t, err)
	assert.Equal(t, Split, a)

	h := mustHand(t, "8c8d", 1)
	other, err := h.Apply(Split, rules.Default(), 1, card("3c"), card("Kd"))
	require.NoError(t, err)
	for _, x := range []*Hand{h, other} {
		assert.Equal(t, SplitState, x.State())
	}
}
