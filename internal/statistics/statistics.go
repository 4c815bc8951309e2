// Package statistics accumulates per-player results over a session,
// measured in big blinds per round.
package statistics

import (
	"fmt"
	"math"
	"slices"
)

// MaxSeats is the largest table the position breakdown covers
const MaxSeats = 4

// bigPotBB is the pot size, in big blinds, counted as a big pot
const bigPotBB = 50

// RoundResult is one player's outcome for a single round
type RoundResult struct {
	NetBB    float64 // chips won or lost, in big blinds
	Position int     // seats after the dealer, 0 for the dealer
	Showdown bool    // the round was decided by comparing hands
	Won      bool    // the player took part of the pot
	PotSize  int     // final pot in chips
}

// PositionStats tracks results from one seat relative to the dealer
type PositionStats struct {
	Rounds int
	SumBB  float64
}

// Statistics tracks a single player's results
type Statistics struct {
	BigBlind int

	Rounds int
	SumBB  float64
	SumBB2 float64
	Values []float64

	ShowdownWins    int
	UncontestedWins int
	ShowdownBB      float64
	UncontestedBB   float64
	AllBB           float64

	PositionResults [MaxSeats]PositionStats

	MaxPotChips int
	MaxPotBB    float64
	BigPots     int
	BigPotsBB   float64
}

// Mean returns the average result in big blinds per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumBB / float64(s.Rounds)
}

// Variance returns the sample variance
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Wins returns the number of rounds in which the player took chips
func (s *Statistics) Wins() int {
	return s.ShowdownWins + s.UncontestedWins
}

// Add records one round
func (s *Statistics) Add(r RoundResult) {
	s.Rounds++
	s.SumBB += r.NetBB
	s.SumBB2 += r.NetBB * r.NetBB
	s.Values = append(s.Values, r.NetBB)
	s.AllBB += r.NetBB

	if r.Showdown {
		s.ShowdownBB += r.NetBB
		if r.Won {
			s.ShowdownWins++
		}
	} else {
		s.UncontestedBB += r.NetBB
		if r.Won {
			s.UncontestedWins++
		}
	}

	if r.Position >= 0 && r.Position < MaxSeats {
		s.PositionResults[r.Position].Rounds++
		s.PositionResults[r.Position].SumBB += r.NetBB
	}

	potBB := s.toBB(r.PotSize)
	if r.PotSize > s.MaxPotChips {
		s.MaxPotChips = r.PotSize
		s.MaxPotBB = potBB
	}
	if potBB >= bigPotBB {
		s.BigPots++
		s.BigPotsBB += r.NetBB
	}
}

func (s *Statistics) toBB(chips int) float64 {
	if s.BigBlind <= 0 {
		return float64(chips)
	}
	return float64(chips) / float64(s.BigBlind)
}

// Median returns the median result
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the interpolated result at p, from 0 to 1
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	if lower+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[lower+1]*weight
}

// PositionMean returns the mean result from a seat relative to the dealer
func (s *Statistics) PositionMean(position int) float64 {
	if position < 0 || position >= MaxSeats {
		return 0
	}
	ps := s.PositionResults[position]
	if ps.Rounds == 0 {
		return 0
	}
	return ps.SumBB / float64(ps.Rounds)
}

// IsLedgerBalanced reports whether showdown and uncontested results add up
// to the total
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.UncontestedBB) <= 1e-6
}

// Validate checks the counters are consistent with each other
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: all=%.6f showdown=%.6f uncontested=%.6f",
			s.AllBB, s.ShowdownBB, s.UncontestedBB)
	}
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid round count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("recorded %d values for %d rounds", len(s.Values), s.Rounds)
	}
	if s.Wins() > s.Rounds {
		return fmt.Errorf("%d wins exceed %d rounds", s.Wins(), s.Rounds)
	}

	positions := 0
	for _, ps := range s.PositionResults {
		positions += ps.Rounds
	}
	if positions != s.Rounds {
		return fmt.Errorf("position rounds total %d does not match %d rounds", positions, s.Rounds)
	}
	return nil
}
