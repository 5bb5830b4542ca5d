// Package simulator plays many independent rounds in parallel and reports
// aggregate statistics.
//
// Each worker owns its own shoe, table and hands, seeded from the master seed,
// so results are reproducible for a given seed and worker count. The rule-set
// and strategy are shared read-only between workers.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/rules"
	"github.com/lox/blackjack/internal/strategy"
	"github.com/lox/blackjack/internal/table"
)

// Config controls a simulation run
type Config struct {
	Rounds  int
	Workers int // defaults to GOMAXPROCS
	Seed    int64
	Bet     float64 // defaults to the table minimum
}

// Simulator runs batches of rounds
type Simulator struct {
	rules    *rules.RuleSet
	strategy strategy.Strategy
	cfg      Config
	logger   *log.Logger
	clock    quartz.Clock
}

// New creates a simulator. strat must be safe for concurrent use. A nil
// logger discards output and a nil clock uses the real clock.
func New(rs *rules.RuleSet, strat strategy.Strategy, cfg Config, logger *log.Logger, clock quartz.Clock) *Simulator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Workers > cfg.Rounds && cfg.Rounds > 0 {
		cfg.Workers = cfg.Rounds
	}
	if cfg.Bet <= 0 {
		cfg.Bet = rs.MinBet()
	}
	return &Simulator{
		rules:    rs,
		strategy: strat,
		cfg:      cfg,
		logger:   logger,
		clock:    clock,
	}
}

// Config returns the effective configuration after defaults
func (s *Simulator) Config() Config {
	return s.cfg
}

// Run plays cfg.Rounds rounds split across the workers. It stops early with
// the context's error if ctx is cancelled.
func (s *Simulator) Run(ctx context.Context) (*Stats, error) {
	if s.cfg.Rounds <= 0 {
		return &Stats{}, nil
	}

	start := s.clock.Now()
	results := make([]*Stats, s.cfg.Workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range s.cfg.Workers {
		rounds := s.cfg.Rounds / s.cfg.Workers
		if w < s.cfg.Rounds%s.cfg.Workers {
			rounds++
		}
		g.Go(func() error {
			stats, err := s.work(ctx, w, rounds)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results[w] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &Stats{}
	for _, r := range results {
		total.Merge(r)
	}
	total.Elapsed = s.clock.Since(start)

	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("simulation complete",
		"rounds", total.Rounds,
		"hands", total.Hands,
		"workers", s.cfg.Workers,
		"elapsed", total.Elapsed)
	return total, nil
}

func (s *Simulator) work(ctx context.Context, worker, rounds int) (*Stats, error) {
	logger := s.logger.With("worker", worker)
	shoe := deck.NewShoe(s.rules.Decks(), randutil.New(randutil.Derive(s.cfg.Seed, worker)))
	tbl := table.New(s.rules, shoe, s.strategy, logger)
	stats := &Stats{}

	fresh := true
	for stats.Rounds < rounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !fresh && s.rules.Shuffle().Due(shoe.CardsRemaining()) {
			shoe.Reset()
			stats.Reshuffles++
			fresh = true
		}

		res, err := tbl.PlayRound(s.cfg.Bet)
		if errors.Is(err, table.ErrShoeExhausted) {
			if fresh {
				return nil, fmt.Errorf("a full shoe of %d cards cannot finish a round: %w", shoe.Decks()*deck.CardsPerDeck, err)
			}
			stats.Abandoned++
			shoe.Reset()
			stats.Reshuffles++
			fresh = true
			continue
		}
		if err != nil {
			return nil, err
		}
		fresh = false
		stats.Add(s.cfg.Bet, res)
	}

	logger.Debug("worker done", "rounds", stats.Rounds, "running_count", shoe.RunningCount())
	return stats, nil
}
