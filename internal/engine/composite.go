package engine

import "fmt"

// Outcome is the predicted result category
type Outcome int

const (
	Draw Outcome = iota
	HomeWin
	AwayWin
)

// String returns the outcome label
func (o Outcome) String() string {
	switch o {
	case Draw:
		return "draw"
	case HomeWin:
		return "home_win"
	case AwayWin:
		return "away_win"
	}
	return "unknown"
}

// MarshalText encodes the outcome by name
func (o Outcome) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("unknown outcome %d: %w", int(o), ErrInvalidArgument)
	}
	return []byte(o.String()), nil
}

// UnmarshalText decodes an outcome name
func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "draw":
		*o = Draw
	case "home_win":
		*o = HomeWin
	case "away_win":
		*o = AwayWin
	default:
		return fmt.Errorf("unknown outcome %q: %w", string(b), ErrInvalidArgument)
	}
	return nil
}

// Valid reports whether o is one of the three outcomes
func (o Outcome) Valid() bool {
	return o == Draw || o == HomeWin || o == AwayWin
}

// CompositeScore is the strength of each side of a fixture
type CompositeScore struct {
	HomeBase  float64 `json:"home_base"`
	AwayBase  float64 `json:"away_base"`
	HomeScore float64 `json:"home_score"`
	AwayScore float64 `json:"away_score"`
	Outcome   Outcome `json:"outcome"`
}

// Composite combines form, head-to-head and indirect weights into one
// score per side.
//
// A side's base is MaxScore times its win rate in its fixture role times its
// win rate in the other role, so a strong home record is discounted by weak
// away form and the other way round.
func (w Weights) Composite(home, away TeamForm, h2h HeadToHeadResult, ind IndirectResult) CompositeScore {
	c := CompositeScore{
		HomeBase: w.MaxScore * home.HomeWinRate * home.AwayWinRate,
		AwayBase: w.MaxScore * away.AwayWinRate * away.HomeWinRate,
	}
	c.HomeScore = c.HomeBase * h2h.WeightA * ind.WeightA
	c.AwayScore = c.AwayBase * h2h.WeightB * ind.WeightB
	c.Outcome = Decide(c.HomeScore, c.AwayScore)
	return c
}

// Decide picks the outcome from two composite scores
func Decide(homeScore, awayScore float64) Outcome {
	switch {
	case homeScore > awayScore:
		return HomeWin
	case awayScore > homeScore:
		return AwayWin
	}
	return Draw
}
