// Package rules holds the validated table rules that gate every hand action.
//
// A RuleSet is built once with New and never changes afterwards, so a single
// *RuleSet can be shared by any number of goroutines without locking.
package rules

import (
	"fmt"
	"slices"
	"strings"
)

// DealerSoft17 says whether the dealer draws to a soft 17
type DealerSoft17 int

const (
	DealerStandsSoft17 DealerSoft17 = iota
	DealerHitsSoft17
)

func (d DealerSoft17) String() string {
	if d == DealerHitsSoft17 {
		return "H17"
	}
	return "S17"
}

// SurrenderPolicy controls whether and when a player may surrender
type SurrenderPolicy int

const (
	SurrenderNone SurrenderPolicy = iota
	SurrenderEarly
	SurrenderLate
)

func (s SurrenderPolicy) String() string {
	switch s {
	case SurrenderNone:
		return "none"
	case SurrenderEarly:
		return "early"
	case SurrenderLate:
		return "late"
	default:
		return fmt.Sprintf("SurrenderPolicy(%d)", int(s))
	}
}

// ParseSurrender parses "none", "early" or "late"
func ParseSurrender(s string) (SurrenderPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return SurrenderNone, nil
	case "early":
		return SurrenderEarly, nil
	case "late":
		return SurrenderLate, nil
	default:
		return SurrenderNone, fmt.Errorf("unknown surrender policy %q", s)
	}
}

// ShuffleKind describes when the shoe goes back through the shuffler.
// Continuous shuffles after every round; otherwise the shoe is reshuffled
// once Threshold or fewer cards remain.
type ShuffleKind struct {
	Continuous bool
	Threshold  int
}

// Due reports whether a shoe with remaining cards must be reshuffled before
// the next round.
func (k ShuffleKind) Due(remaining int) bool {
	return k.Continuous || remaining <= k.Threshold
}

func (k ShuffleKind) String() string {
	if k.Continuous {
		return "continuous"
	}
	return fmt.Sprintf("at %d cards", k.Threshold)
}

// Config carries the raw rule values. DoubleDownTotals nil means doubling is
// allowed on any two-card total; a non-nil empty slice forbids doubling.
type Config struct {
	Decks             int
	Players           int
	MinBet            float64
	MaxBet            float64
	DealerSoft17      DealerSoft17
	BlackjackPayout   float64
	DoubleDownTotals  []int
	MaxHands          int
	SplitAcesPlayable bool
	DoubleAfterSplit  bool
	Surrender         SurrenderPolicy
	Shuffle           ShuffleKind
}

// DefaultConfig returns a common six-deck shoe game
func DefaultConfig() Config {
	return Config{
		Decks:             6,
		Players:           1,
		MinBet:            10,
		MaxBet:            500,
		DealerSoft17:      DealerStandsSoft17,
		BlackjackPayout:   1.5,
		DoubleDownTotals:  []int{9, 10, 11},
		MaxHands:          4,
		SplitAcesPlayable: false,
		DoubleAfterSplit:  true,
		Surrender:         SurrenderLate,
		Shuffle:           ShuffleKind{Threshold: 78},
	}
}

// RuleSet is an immutable, validated set of table rules
type RuleSet struct {
	decks             int
	players           int
	minBet            float64
	maxBet            float64
	dealerSoft17      DealerSoft17
	blackjackPayout   float64
	ddUnrestricted    bool
	ddTotals          []int
	maxHands          int
	splitAcesPlayable bool
	doubleAfterSplit  bool
	surrender         SurrenderPolicy
	shuffle           ShuffleKind
}

// New validates cfg and returns the resulting RuleSet. Checks run in a fixed
// order and the first violation is returned as an *Error.
func New(cfg Config) (*RuleSet, error) {
	if cfg.Decks < 1 {
		return nil, invalid(InvalidDeckCount, "decks=%d", cfg.Decks)
	}
	if cfg.Players < 1 {
		return nil, invalid(InvalidPlayerCount, "players=%d", cfg.Players)
	}
	if !(cfg.MinBet > 0) || !(cfg.MinBet <= cfg.MaxBet) {
		return nil, invalid(InvalidBetRange, "min=%g max=%g", cfg.MinBet, cfg.MaxBet)
	}
	if cfg.MaxHands < 2 {
		return nil, invalid(InvalidMaxHands, "max_hands=%d", cfg.MaxHands)
	}
	for _, total := range cfg.DoubleDownTotals {
		if total < 3 || total > 20 {
			return nil, invalid(InvalidDoubleDownWhitelist, "total=%d", total)
		}
	}
	if !cfg.Shuffle.Continuous && cfg.Shuffle.Threshold < 0 {
		return nil, invalid(InvalidShuffleThreshold, "threshold=%d", cfg.Shuffle.Threshold)
	}

	rs := &RuleSet{
		decks:             cfg.Decks,
		players:           cfg.Players,
		minBet:            cfg.MinBet,
		maxBet:            cfg.MaxBet,
		dealerSoft17:      cfg.DealerSoft17,
		blackjackPayout:   cfg.BlackjackPayout,
		ddUnrestricted:    cfg.DoubleDownTotals == nil,
		maxHands:          cfg.MaxHands,
		splitAcesPlayable: cfg.SplitAcesPlayable,
		doubleAfterSplit:  cfg.DoubleAfterSplit,
		surrender:         cfg.Surrender,
		shuffle:           cfg.Shuffle,
	}
	if !rs.ddUnrestricted {
		rs.ddTotals = slices.Clone(cfg.DoubleDownTotals)
		slices.Sort(rs.ddTotals)
		rs.ddTotals = slices.Compact(rs.ddTotals)
	}
	return rs, nil
}

// Default returns the validated DefaultConfig rule-set
func Default() *RuleSet {
	rs, err := New(DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("default rules are invalid: %v", err))
	}
	return rs
}

func (r *RuleSet) Decks() int                   { return r.decks }
func (r *RuleSet) Players() int                 { return r.players }
func (r *RuleSet) MinBet() float64              { return r.minBet }
func (r *RuleSet) MaxBet() float64              { return r.maxBet }
func (r *RuleSet) DealerSoft17() DealerSoft17   { return r.dealerSoft17 }
func (r *RuleSet) BlackjackPayout() float64     { return r.blackjackPayout }
func (r *RuleSet) MaxHands() int                { return r.maxHands }
func (r *RuleSet) SplitAcesPlayable() bool      { return r.splitAcesPlayable }
func (r *RuleSet) DoubleAfterSplit() bool       { return r.doubleAfterSplit }
func (r *RuleSet) Surrender() SurrenderPolicy   { return r.surrender }
func (r *RuleSet) Shuffle() ShuffleKind         { return r.shuffle }
func (r *RuleSet) DoubleDownUnrestricted() bool { return r.ddUnrestricted }

// DoubleDownAllowed reports whether a hand totalling total may double down
func (r *RuleSet) DoubleDownAllowed(total int) bool {
	if r.ddUnrestricted {
		return true
	}
	_, found := slices.BinarySearch(r.ddTotals, total)
	return found
}

// DoubleDownTotals returns a sorted copy of the allow-list, or nil when
// doubling is unrestricted.
func (r *RuleSet) DoubleDownTotals() []int {
	if r.ddUnrestricted {
		return nil
	}
	return slices.Clone(r.ddTotals)
}

// Config returns the configuration that reproduces this rule-set
func (r *RuleSet) Config() Config {
	return Config{
		Decks:             r.decks,
		Players:           r.players,
		MinBet:            r.minBet,
		MaxBet:            r.maxBet,
		DealerSoft17:      r.dealerSoft17,
		BlackjackPayout:   r.blackjackPayout,
		DoubleDownTotals:  r.DoubleDownTotals(),
		MaxHands:          r.maxHands,
		SplitAcesPlayable: r.splitAcesPlayable,
		DoubleAfterSplit:  r.doubleAfterSplit,
		Surrender:         r.surrender,
		Shuffle:           r.shuffle,
	}
}
