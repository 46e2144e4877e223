package engine

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned when a caller breaks the scoreline contract
var ErrInvalidArgument = errors.New("invalid argument")

// Scoreline is an exact predicted score, side A first
type Scoreline struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// String formats the scoreline as "h - a"
func (s Scoreline) String() string {
	return fmt.Sprintf("%d - %d", s.Home, s.Away)
}

// maxDirectK is the largest k whose factorial fits in a float64
const maxDirectK = 170

// tieTolerance is the relative gap under which two split probabilities are equal
const tieTolerance = 1e-12

// PoissonPMF returns P(X=k) for X ~ Poisson(lambda), and 0 for k < 0.
// It uses lambda^k * e^-lambda / k! and only switches to log space once
// the direct terms would overflow.
func PoissonPMF(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}
	if lambda <= 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	if k <= maxDirectK {
		num := math.Pow(lambda, float64(k))
		if !math.IsInf(num, 0) {
			return num * math.Exp(-lambda) / factorial(k)
		}
	}
	lgamma, _ := math.Lgamma(float64(k) + 1)
	return math.Exp(float64(k)*math.Log(lambda) - lambda - lgamma)
}

func factorial(k int) float64 {
	f := 1.0
	for i := 2; i <= k; i++ {
		f *= float64(i)
	}
	return f
}

// sameProbability reports whether p and q differ only by rounding noise
func sameProbability(p, q float64) bool {
	return math.Abs(p-q) <= tieTolerance*math.Max(math.Abs(p), math.Abs(q))
}

// MostProbableScore returns the split of totalGoals consistent with outcome
// that maximises PoissonPMF(a; avgA) * PoissonPMF(b; avgB). Ties go to the
// split with the smaller goal difference.
//
// An odd total with a draw is first moved to an even total: 1 becomes 2,
// anything else drops by one.
func MostProbableScore(totalGoals int, avgA, avgB float64, outcome Outcome) (Scoreline, error) {
	if outcome == Draw && totalGoals%2 != 0 {
		if totalGoals == 1 {
			totalGoals = 2
		} else {
			totalGoals--
		}
	}
	if totalGoals < 0 {
		return Scoreline{}, fmt.Errorf("total goals %d must be non-negative: %w", totalGoals, ErrInvalidArgument)
	}
	if !outcome.Valid() {
		return Scoreline{}, fmt.Errorf("unknown outcome %d: %w", int(outcome), ErrInvalidArgument)
	}

	best := Scoreline{Home: -1, Away: -1}
	bestProb := -1.0
	for a := 0; a <= totalGoals; a++ {
		b := totalGoals - a
		if !consistent(a, b, outcome) {
			continue
		}

		p := PoissonPMF(a, avgA) * PoissonPMF(b, avgB)
		switch {
		case sameProbability(p, bestProb):
			if absInt(a-b) < absInt(best.Home-best.Away) {
				best = Scoreline{Home: a, Away: b}
			}
		case p > bestProb:
			bestProb = p
			best = Scoreline{Home: a, Away: b}
		}
	}

	if best.Home < 0 {
		return fallbackScore(totalGoals, outcome), nil
	}
	return best, nil
}

// fallbackScore is used when no split fits the outcome
func fallbackScore(total int, outcome Outcome) Scoreline {
	switch {
	case outcome == Draw && total%2 == 0:
		return Scoreline{Home: total / 2, Away: total / 2}
	case outcome == HomeWin:
		return Scoreline{Home: total}
	case outcome == AwayWin:
		return Scoreline{Away: total}
	}
	return Scoreline{}
}

func consistent(a, b int, outcome Outcome) bool {
	switch outcome {
	case Draw:
		return a == b
	case HomeWin:
		return a > b
	case AwayWin:
		return b > a
	}
	return false
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
