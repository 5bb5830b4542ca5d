// Package report writes simulation results to disk as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/rules"
	"github.com/lox/blackjack/internal/simulator"
)

// Report is the on-disk form of a simulation run
type Report struct {
	Strategy string        `json:"strategy"`
	Seed     int64         `json:"seed"`
	Workers  int           `json:"workers"`
	Bet      float64       `json:"bet"`
	Rules    Rules         `json:"rules"`
	Results  Results       `json:"results"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

// Rules mirrors the rule-set the run was played under
type Rules struct {
	Decks             int     `json:"decks"`
	MinBet            float64 `json:"min_bet"`
	MaxBet            float64 `json:"max_bet"`
	Dealer            string  `json:"dealer"`
	BlackjackPayout   float64 `json:"blackjack_payout"`
	DoubleDownTotals  []int   `json:"double_down_totals"` // null means any total
	MaxHands          int     `json:"max_hands"`
	SplitAcesPlayable bool    `json:"split_aces_playable"`
	DoubleAfterSplit  bool    `json:"double_after_split"`
	Surrender         string  `json:"surrender"`
	Shuffle           string  `json:"shuffle"`
}

// Results holds the aggregate counters and derived rates
type Results struct {
	Rounds        int            `json:"rounds"`
	Abandoned     int            `json:"abandoned"`
	Reshuffles    int            `json:"reshuffles"`
	Hands         int            `json:"hands"`
	Naturals      int            `json:"naturals"`
	Splits        int            `json:"splits"`
	Stood         int            `json:"stood"`
	Busted        int            `json:"busted"`
	Doubled       int            `json:"doubled"`
	DoubledBusted int            `json:"doubled_busted"`
	Surrendered   int            `json:"surrendered"`
	LockedAces    int            `json:"locked_aces"`
	Wagered       float64        `json:"wagered"`
	FinalBets     float64        `json:"final_bets"`
	BustRate      float64        `json:"bust_rate"`
	NaturalRate   float64        `json:"natural_rate"`
	MeanExposure  float64        `json:"mean_exposure"`
	ExposureCI95  [2]float64     `json:"exposure_ci95"`
	Totals        map[string]int `json:"totals"`
}

// New assembles a report from a finished run
func New(strategy string, cfg simulator.Config, rs *rules.RuleSet, s *simulator.Stats) Report {
	lo, hi := s.ExposureCI95()
	totals := make(map[string]int)
	for total, n := range s.Totals {
		if n > 0 {
			totals[fmt.Sprint(total)] = n
		}
	}

	return Report{
		Strategy: strategy,
		Seed:     cfg.Seed,
		Workers:  cfg.Workers,
		Bet:      cfg.Bet,
		Rules: Rules{
			Decks:             rs.Decks(),
			MinBet:            rs.MinBet(),
			MaxBet:            rs.MaxBet(),
			Dealer:            rs.DealerSoft17().String(),
			BlackjackPayout:   rs.BlackjackPayout(),
			DoubleDownTotals:  rs.DoubleDownTotals(),
			MaxHands:          rs.MaxHands(),
			SplitAcesPlayable: rs.SplitAcesPlayable(),
			DoubleAfterSplit:  rs.DoubleAfterSplit(),
			Surrender:         rs.Surrender().String(),
			Shuffle:           rs.Shuffle().String(),
		},
		Results: Results{
			Rounds:        s.Rounds,
			Abandoned:     s.Abandoned,
			Reshuffles:    s.Reshuffles,
			Hands:         s.Hands,
			Naturals:      s.Naturals,
			Splits:        s.Splits,
			Stood:         s.Stood,
			Busted:        s.Busted,
			Doubled:       s.Doubled,
			DoubledBusted: s.DoubledBusted,
			Surrendered:   s.Surrendered,
			LockedAces:    s.LockedAces,
			Wagered:       s.Wagered,
			FinalBets:     s.FinalBets,
			BustRate:      s.BustRate(),
			NaturalRate:   s.NaturalRate(),
			MeanExposure:  s.MeanExposure(),
			ExposureCI95:  [2]float64{lo, hi},
			Totals:        totals,
		},
		Elapsed: s.Elapsed,
	}
}

// Write encodes r as indented JSON and writes it to filename atomically
func Write(filename string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return fileutil.WriteFileAtomic(filename, append(data, '\n'), 0o644)
}

// Read loads a report written by Write
func Read(filename string) (Report, error) {
	var r Report
	data, err := os.ReadFile(filename)
	if err != nil {
		return r, err
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("failed to decode report %s: %w", filename, err)
	}
	return r, nil
}
