package rules

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// FileConfig is the HCL layout of a rules file. The table block and every
// attribute in it are optional; absent attributes keep their DefaultConfig
// value.
type FileConfig struct {
	Table *TableBlock `hcl:"table,block"`
}

// TableBlock holds the attributes of the table block
type TableBlock struct {
	Decks             *int     `hcl:"decks,optional"`
	Players           *int     `hcl:"players,optional"`
	MinBet            *float64 `hcl:"min_bet,optional"`
	MaxBet            *float64 `hcl:"max_bet,optional"`
	DealerHitsSoft17  *bool    `hcl:"dealer_hits_soft_17,optional"`
	BlackjackPayout   *float64 `hcl:"blackjack_payout,optional"`
	DoubleDownTotals  []int    `hcl:"double_down_totals,optional"`
	DoubleDownAny     *bool    `hcl:"double_down_any,optional"`
	MaxHands          *int     `hcl:"max_hands,optional"`
	SplitAcesPlayable *bool    `hcl:"split_aces_playable,optional"`
	DoubleAfterSplit  *bool    `hcl:"double_after_split,optional"`
	Surrender         *string  `hcl:"surrender,optional"`
	ContinuousShuffle *bool    `hcl:"continuous_shuffle,optional"`
	ReshuffleAt       *int     `hcl:"reshuffle_at,optional"`
}

// LoadFile loads and validates a rules file. A missing file yields the
// default rules.
func LoadFile(filename string) (*RuleSet, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source into a validated RuleSet
func Parse(src []byte, filename string) (*RuleSet, error) {
	cfg, err := ParseConfig(src, filename)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// ParseConfig decodes HCL source over DefaultConfig without validating it
func ParseConfig(src []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc FileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if fc.Table == nil {
		return DefaultConfig(), nil
	}
	return fc.Table.apply(DefaultConfig())
}

func (t *TableBlock) apply(cfg Config) (Config, error) {
	if t.Decks != nil {
		cfg.Decks = *t.Decks
	}
	if t.Players != nil {
		cfg.Players = *t.Players
	}
	if t.MinBet != nil {
		cfg.MinBet = *t.MinBet
	}
	if t.MaxBet != nil {
		cfg.MaxBet = *t.MaxBet
	}
	if t.DealerHitsSoft17 != nil {
		cfg.DealerSoft17 = DealerStandsSoft17
		if *t.DealerHitsSoft17 {
			cfg.DealerSoft17 = DealerHitsSoft17
		}
	}
	if t.BlackjackPayout != nil {
		cfg.BlackjackPayout = *t.BlackjackPayout
	}
	if t.DoubleDownTotals != nil {
		cfg.DoubleDownTotals = append([]int{}, t.DoubleDownTotals...)
	}
	if t.DoubleDownAny != nil && *t.DoubleDownAny {
		if t.DoubleDownTotals != nil {
			return cfg, errors.New("double_down_any and double_down_totals are mutually exclusive")
		}
		cfg.DoubleDownTotals = nil
	}
	if t.MaxHands != nil {
		cfg.MaxHands = *t.MaxHands
	}
	if t.SplitAcesPlayable != nil {
		cfg.SplitAcesPlayable = *t.SplitAcesPlayable
	}
	if t.DoubleAfterSplit != nil {
		cfg.DoubleAfterSplit = *t.DoubleAfterSplit
	}
	if t.Surrender != nil {
		policy, err := ParseSurrender(*t.Surrender)
		if err != nil {
			return cfg, err
		}
		cfg.Surrender = policy
	}
	if t.ContinuousShuffle != nil {
		cfg.Shuffle.Continuous = *t.ContinuousShuffle
	}
	if t.ReshuffleAt != nil {
		cfg.Shuffle.Threshold = *t.ReshuffleAt
	}
	return cfg, nil
}
