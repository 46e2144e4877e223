package engine

// IndirectResult compares two teams through opponents both have faced.
// Side A is the first team passed to CompareIndirect.
type IndirectResult struct {
	Links     int `json:"links"`
	HomeLinks int `json:"home_links"`
	AwayLinks int `json:"away_links"`

	WinsA     int `json:"wins_a"`
	HomeWinsA int `json:"home_wins_a"`
	WinsB     int `json:"wins_b"`
	AwayWinsB int `json:"away_wins_b"`

	WeightA float64 `json:"weight_a"`
	WeightB float64 `json:"weight_b"`
}

// CompareIndirect links every played match of a against some opponent X
// (other than b) to the first played match between b and X that does not
// involve a. Only one link is used per fixture of a, even when several
// exist.
//
// Each side's weight is its overall win rate over the links multiplied by a
// role rate: a's win rate in links where a was at home, b's win rate in
// links where b was away. A rate with no qualifying links counts as 1. When
// nothing links the teams, or neither side won a linked match, both
// weights are 1.
func CompareIndirect(matches []Match, a, b string) IndirectResult {
	res := IndirectResult{WeightA: 1, WeightB: 1}
	if a == "" || b == "" || a == b {
		return res
	}

	for _, ma := range matches {
		if !ma.Played() || !ma.Involves(a) {
			continue
		}
		opponent := ma.Opponent(a)
		if opponent == b {
			continue
		}

		for _, mb := range matches {
			if !mb.Played() || mb.Involves(a) {
				continue
			}
			if !mb.Involves(b) || !mb.Involves(opponent) {
				continue
			}

			if ma.HomeTeam == a {
				res.HomeLinks++
				if ma.Won(a) {
					res.WinsA++
					res.HomeWinsA++
				}
			} else if ma.Won(a) {
				res.WinsA++
			}

			if mb.HomeTeam == b {
				if mb.Won(b) {
					res.WinsB++
				}
			} else {
				res.AwayLinks++
				if mb.Won(b) {
					res.WinsB++
					res.AwayWinsB++
				}
			}

			res.Links++
			break
		}
	}

	if res.Links == 0 || (res.WinsA == 0 && res.WinsB == 0) {
		return res
	}

	res.WeightA = rateOrOne(res.WinsA, res.Links) * rateOrOne(res.HomeWinsA, res.HomeLinks)
	res.WeightB = rateOrOne(res.WinsB, res.Links) * rateOrOne(res.AwayWinsB, res.AwayLinks)
	return res
}

// rateOrOne returns n/d, or 1 when d is 0
func rateOrOne(n, d int) float64 {
	if d == 0 {
		return 1
	}
	return float64(n) / float64(d)
}
