package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/report"
	"github.com/lox/blackjack/internal/simulator"
	"github.com/lox/blackjack/internal/strategy"
)

// SimulateCmd runs the multi-worker simulator
type SimulateCmd struct {
	Rounds   int     `short:"n" default:"100000" help:"Number of rounds to play"`
	Workers  int     `short:"w" help:"Parallel workers (0 = GOMAXPROCS)"`
	Seed     int64   `env:"BLACKJACK_SEED" help:"RNG seed (0 for random)"`
	Strategy string  `short:"s" default:"basic" help:"Strategy: basic, dealer, stand"`
	Bet      float64 `help:"Initial bet per round (0 = table minimum)"`
	Report   string  `type:"path" help:"Also write the results as JSON to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	logger := g.Logger()

	rs, err := g.RuleSet()
	if err != nil {
		return err
	}
	strat, err := strategy.Lookup(c.Strategy)
	if err != nil {
		return err
	}
	if c.Bet != 0 && (c.Bet < rs.MinBet() || c.Bet > rs.MaxBet()) {
		return fmt.Errorf("bet %g outside table limits %g-%g", c.Bet, rs.MinBet(), rs.MaxBet())
	}

	seed := randutil.Seed(c.Seed)
	logger.Info("starting simulation",
		"rounds", c.Rounds,
		"strategy", c.Strategy,
		"seed", seed,
		"rules", g.RulesFile)

	sim := simulator.New(rs, strat, simulator.Config{
		Rounds:  c.Rounds,
		Workers: c.Workers,
		Seed:    seed,
		Bet:     c.Bet,
	}, logger, nil)

	ctx, cancel := signalContext(logger)
	defer cancel()

	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("throughput",
		"elapsed", stats.Elapsed.Round(time.Millisecond),
		"rounds_per_sec", int(stats.RoundsPerSecond()))
	printStats(g, sim.Config(), seed, stats)

	if c.Report != "" {
		if err := report.Write(c.Report, report.New(c.Strategy, sim.Config(), rs, stats)); err != nil {
			return err
		}
		logger.Info("report written", "file", c.Report)
	}
	return nil
}

func printStats(g *Globals, cfg simulator.Config, seed int64, s *simulator.Stats) {
	w := tabwriter.NewWriter(g.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	pct := func(n int) string {
		if s.Hands == 0 {
			return "-"
		}
		return fmt.Sprintf("%.2f%%", 100*float64(n)/float64(s.Hands))
	}

	fmt.Fprintf(w, "Rounds\t%d\t(%d workers, seed %d)\n", s.Rounds, cfg.Workers, seed)
	fmt.Fprintf(w, "Abandoned\t%d\n", s.Abandoned)
	fmt.Fprintf(w, "Reshuffles\t%d\n", s.Reshuffles)
	fmt.Fprintf(w, "Hands\t%d\t%.3f per round\n", s.Hands, s.HandsPerRound())
	fmt.Fprintf(w, "Naturals\t%d\t%.2f%% of rounds\n", s.Naturals, 100*s.NaturalRate())
	fmt.Fprintf(w, "Splits\t%d\n", s.Splits)
	fmt.Fprintf(w, "Stood\t%d\t%s\n", s.Stood, pct(s.Stood))
	fmt.Fprintf(w, "Busted\t%d\t%s\n", s.Busted, pct(s.Busted))
	fmt.Fprintf(w, "Doubled\t%d\t%s (%d busted)\n", s.Doubled, pct(s.Doubled), s.DoubledBusted)
	fmt.Fprintf(w, "Surrendered\t%d\t%s\n", s.Surrendered, pct(s.Surrendered))
	fmt.Fprintf(w, "Locked aces\t%d\t%s\n", s.LockedAces, pct(s.LockedAces))
	fmt.Fprintf(w, "Bust rate\t%.2f%%\n", 100*s.BustRate())
	fmt.Fprintf(w, "Wagered\t%.2f\tfinal bets %.2f\n", s.Wagered, s.FinalBets)
	lo, hi := s.ExposureCI95()
	fmt.Fprintf(w, "Exposure\t%.4f\t95%% CI [%.4f, %.4f]\n", s.MeanExposure(), lo, hi)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Total\tHands\tShare")
	for total, n := range s.Totals {
		if n == 0 {
			continue
		}
		label := fmt.Sprint(total)
		if total == simulator.MaxTotal {
			label += "+"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", label, n, pct(n))
	}
}
