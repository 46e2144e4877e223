package engine

// HeadToHeadResult summarises the direct fixtures between two teams.
// Side A is the first team passed to HeadToHead.
type HeadToHeadResult struct {
	PointsA int     `json:"points_a"`
	PointsB int     `json:"points_b"`
	WinsA   int     `json:"wins_a"`
	WinsB   int     `json:"wins_b"`
	Total   int     `json:"total"`
	WeightA float64 `json:"weight_a"`
	WeightB float64 `json:"weight_b"`
}

// neutralHeadToHead leaves the composite score unchanged
func neutralHeadToHead() HeadToHeadResult {
	return HeadToHeadResult{WeightA: 1, WeightB: 1}
}

// HeadToHead scores the played fixtures between a and b using the default
// point table.
func HeadToHead(matches []Match, a, b string) HeadToHeadResult {
	return DefaultWeights().HeadToHead(matches, a, b)
}

// HeadToHead scores the played fixtures between a and b. Wins away from home
// are worth AwayWinMultiplier times the win value and losses at home cost
// HomeLossMultiplier times the loss value. Weights are each side's share of
// wins; with no fixtures both are 1.
func (w Weights) HeadToHead(matches []Match, a, b string) HeadToHeadResult {
	res := neutralHeadToHead()
	if a == "" || b == "" || a == b {
		return res
	}

	for _, m := range matches {
		if !m.Played() {
			continue
		}
		if !(m.HomeTeam == a && m.AwayTeam == b) && !(m.HomeTeam == b && m.AwayTeam == a) {
			continue
		}
		res.Total++

		home, away := m.Score.Home, m.Score.Away
		switch {
		case home == away:
			res.PointsA += w.DrawValue
			res.PointsB += w.DrawValue
		case home > away && m.HomeTeam == a:
			res.PointsA += w.WinValue
			res.PointsB += w.LoseValue
			res.WinsA++
		case home > away:
			res.PointsB += w.WinValue
			res.PointsA += w.LoseValue
			res.WinsB++
		case m.AwayTeam == a:
			res.PointsA += w.WinValue * w.AwayWinMultiplier
			res.PointsB += w.LoseValue * w.HomeLossMultiplier
			res.WinsA++
		default:
			res.PointsB += w.WinValue * w.AwayWinMultiplier
			res.PointsA += w.LoseValue * w.HomeLossMultiplier
			res.WinsB++
		}
	}

	if res.Total > 0 {
		res.WeightA = ratio(res.WinsA, res.Total)
		res.WeightB = ratio(res.WinsB, res.Total)
	}
	return res
}
