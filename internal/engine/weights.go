package engine

// Weights holds the scoring constants of the heuristic model
type Weights struct {
	// MaxScore scales the composite strength score
	MaxScore float64 `json:"max_score"`

	// Head-to-head point table
	WinValue  int `json:"win_value"`
	DrawValue int `json:"draw_value"`
	LoseValue int `json:"lose_value"`

	// AwayWinMultiplier scales the win value for a win away from home
	AwayWinMultiplier int `json:"away_win_multiplier"`
	// HomeLossMultiplier scales the loss value for a loss at home
	HomeLossMultiplier int `json:"home_loss_multiplier"`
}

// DefaultWeights returns the stock weights table
func DefaultWeights() Weights {
	return Weights{
		MaxScore:           100,
		WinValue:           2,
		DrawValue:          1,
		LoseValue:          -1,
		AwayWinMultiplier:  2,
		HomeLossMultiplier: 2,
	}
}
