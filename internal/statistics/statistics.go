package statistics

import (
	"fmt"
	"math"
	"sort"
)

// GameResult is the outcome of one simulated game
type GameResult struct {
	Seed         int64 `json:"seed"`         // RNG seed for this game (for replay)
	Players      int   `json:"players"`      // Table size
	Winner       int   `json:"winner"`       // Winning seat, 0-based
	Turns        int   `json:"turns"`        // Turns taken, including zero-dice turns
	Rolls        int   `json:"rolls"`        // Dice rolled across all turns
	Center       int   `json:"center"`       // Chips retired when the game ended
	Eliminations int   `json:"eliminations"` // Times any player dropped to zero chips
}

// Statistics aggregates game results. Turn counts are the sample for the
// mean, spread and percentile helpers.
type Statistics struct {
	Games     int       `json:"games"`
	SumTurns  float64   `json:"sum_turns"`
	SumTurns2 float64   `json:"sum_turns_squared"` // for variance
	Values    []float64 `json:"-"`                 // every game's turn count for median/percentiles

	Wins       []int `json:"wins"` // indexed by seat
	TotalRolls int   `json:"total_rolls"`
	SumCenter  int   `json:"sum_center"`
	MaxCenter  int   `json:"max_center"`
	MinTurns   int   `json:"min_turns"`
	MaxTurns   int   `json:"max_turns"`

	Eliminations int `json:"eliminations"`
	ChipsInPlay  int `json:"chips_in_play"` // sum over games of 3×players
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	turns := float64(result.Turns)
	s.Games++
	s.SumTurns += turns
	s.SumTurns2 += turns * turns
	s.Values = append(s.Values, turns)

	if result.Winner >= 0 {
		for len(s.Wins) <= result.Winner {
			s.Wins = append(s.Wins, 0)
		}
		s.Wins[result.Winner]++
	}

	s.TotalRolls += result.Rolls
	s.SumCenter += result.Center
	if result.Center > s.MaxCenter {
		s.MaxCenter = result.Center
	}
	if s.Games == 1 || result.Turns < s.MinTurns {
		s.MinTurns = result.Turns
	}
	if result.Turns > s.MaxTurns {
		s.MaxTurns = result.Turns
	}
	s.Eliminations += result.Eliminations
	s.ChipsInPlay += 3 * result.Players
}

// Mean returns the mean number of turns per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumTurns / float64(s.Games)
}

// Variance returns the sample variance of turns per game
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumTurns2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of turns per game
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median turns per game
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the turn count at the given percentile (0.0 to 1.0),
// interpolating between neighbouring values.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the fraction of games won from seat (0-based)
func (s *Statistics) WinRate(seat int) float64 {
	if s.Games == 0 || seat < 0 || seat >= len(s.Wins) {
		return 0
	}
	return float64(s.Wins[seat]) / float64(s.Games)
}

// CenterMean returns the mean chips retired per game
func (s *Statistics) CenterMean() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SumCenter) / float64(s.Games)
}

// RollsPerTurn returns the mean dice rolled per turn
func (s *Statistics) RollsPerTurn() float64 {
	if s.SumTurns == 0 {
		return 0
	}
	return float64(s.TotalRolls) / s.SumTurns
}

// Validate checks the aggregate is internally consistent
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)", len(s.Values), s.Games)
	}

	totalWins := 0
	for _, w := range s.Wins {
		totalWins += w
	}
	if totalWins != s.Games {
		return fmt.Errorf("total wins (%d) does not match games (%d)", totalWins, s.Games)
	}

	// The winner always keeps at least one chip.
	if s.SumCenter > s.ChipsInPlay-s.Games {
		return fmt.Errorf("center pool (%d) leaves no chips for %d winners out of %d", s.SumCenter, s.Games, s.ChipsInPlay)
	}
	return nil
}
