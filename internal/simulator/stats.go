package simulator

import (
	"fmt"
	"math"
	"time"

	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/table"
)

// MaxTotal bounds the final-total histogram; anything above lands in the last bucket
const MaxTotal = 31

// Stats aggregates the outcome of many rounds. All counters are plain sums so
// worker results can be merged in any order.
type Stats struct {
	Rounds     int
	Abandoned  int // rounds cut short by an empty shoe
	Reshuffles int

	Hands         int
	Naturals      int
	Splits        int
	Stood         int
	Busted        int
	Doubled       int
	DoubledBusted int // doubled hands whose one card busted them, also counted in Doubled
	Surrendered   int
	LockedAces    int

	Wagered   float64 // initial bets placed
	FinalBets float64 // bets after doubles, splits and surrenders

	// Exposure is the final bets of a round divided by its initial bet
	SumExposure  float64
	SumExposure2 float64 // sum of squares for variance

	// Totals counts the best final total of every hand that was not
	// surrendered, indexed by total
	Totals [MaxTotal + 1]int

	Elapsed time.Duration
}

// Add records a finished round
func (s *Stats) Add(bet float64, r *table.RoundResult) {
	s.Rounds++
	s.Wagered += bet
	s.FinalBets += r.TotalBet()
	exposure := r.TotalBet() / bet
	s.SumExposure += exposure
	s.SumExposure2 += exposure * exposure
	s.Splits += r.Splits()
	if r.Natural {
		s.Naturals++
	}

	for _, h := range r.Hands {
		s.Hands++
		switch h.State() {
		case hand.Stood:
			s.Stood++
		case hand.Busted:
			s.Busted++
		case hand.DoubledDown:
			s.Doubled++
			if h.IsBust() {
				s.DoubledBusted++
			}
		case hand.Surrendered:
			s.Surrendered++
			continue
		case hand.SplitAcesLocked:
			s.LockedAces++
		}
		s.Totals[min(h.Value().Best(), MaxTotal)]++
	}
}

// Merge adds the counters of o into s. Elapsed is left alone; it belongs to
// the whole run, not to a worker.
func (s *Stats) Merge(o *Stats) {
	s.Rounds += o.Rounds
	s.Abandoned += o.Abandoned
	s.Reshuffles += o.Reshuffles
	s.Hands += o.Hands
	s.Naturals += o.Naturals
	s.Splits += o.Splits
	s.Stood += o.Stood
	s.Busted += o.Busted
	s.Doubled += o.Doubled
	s.DoubledBusted += o.DoubledBusted
	s.Surrendered += o.Surrendered
	s.LockedAces += o.LockedAces
	s.Wagered += o.Wagered
	s.FinalBets += o.FinalBets
	s.SumExposure += o.SumExposure
	s.SumExposure2 += o.SumExposure2
	for i := range s.Totals {
		s.Totals[i] += o.Totals[i]
	}
}

func rate(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// BustRate is the share of hands whose lower total passed 21, doubles included
func (s *Stats) BustRate() float64 { return rate(s.Busted+s.DoubledBusted, s.Hands) }

// NaturalRate is the share of rounds dealt a natural
func (s *Stats) NaturalRate() float64 { return rate(s.Naturals, s.Rounds) }

// HandsPerRound is the average number of hands per round after splits
func (s *Stats) HandsPerRound() float64 { return rate(s.Hands, s.Rounds) }

// MeanExposure is the average number of initial bets at risk per round
func (s *Stats) MeanExposure() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumExposure / float64(s.Rounds)
}

// ExposureVariance is the sample variance of the per-round exposure
func (s *Stats) ExposureVariance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.MeanExposure()
	return max(0, (s.SumExposure2-float64(s.Rounds)*mean*mean)/float64(s.Rounds-1))
}

// ExposureCI95 returns the 95% confidence interval for MeanExposure
func (s *Stats) ExposureCI95() (float64, float64) {
	if s.Rounds == 0 {
		return 0, 0
	}
	margin := 1.96 * math.Sqrt(s.ExposureVariance()/float64(s.Rounds))
	mean := s.MeanExposure()
	return mean - margin, mean + margin
}

// RoundsPerSecond is the throughput of the run, zero if no time was measured
func (s *Stats) RoundsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Rounds) / s.Elapsed.Seconds()
}

// Validate checks that the counters are consistent with each other
func (s *Stats) Validate() error {
	if s.Hands != s.Rounds+s.Splits {
		return fmt.Errorf("hands (%d) does not match rounds (%d) plus splits (%d)", s.Hands, s.Rounds, s.Splits)
	}

	finished := s.Stood + s.Busted + s.Doubled + s.Surrendered + s.LockedAces
	if finished != s.Hands {
		return fmt.Errorf("terminal states total (%d) does not match hands (%d)", finished, s.Hands)
	}

	if s.DoubledBusted > s.Doubled {
		return fmt.Errorf("doubled busts (%d) exceed doubles (%d)", s.DoubledBusted, s.Doubled)
	}
	if s.Naturals > s.Rounds {
		return fmt.Errorf("naturals (%d) exceed rounds (%d)", s.Naturals, s.Rounds)
	}

	counted := 0
	for _, n := range s.Totals {
		counted += n
	}
	if counted != s.Hands-s.Surrendered {
		return fmt.Errorf("totals histogram (%d) does not match unsurrendered hands (%d)", counted, s.Hands-s.Surrendered)
	}

	return nil
}
