package engine

// TeamForm is a team's aggregated record over a set of played matches
type TeamForm struct {
	Team string `json:"team"`

	HomeWins   int `json:"home_wins"`
	HomeDraws  int `json:"home_draws"`
	HomeLosses int `json:"home_losses"`
	HomeTotal  int `json:"home_total"`

	AwayWins   int `json:"away_wins"`
	AwayDraws  int `json:"away_draws"`
	AwayLosses int `json:"away_losses"`
	AwayTotal  int `json:"away_total"`

	// Goals from the team's perspective regardless of role
	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
	// Total goals in the team's matches, both sides
	MatchGoals int `json:"match_goals"`

	HomeGoalsFor int `json:"home_goals_for"`
	AwayGoalsFor int `json:"away_goals_for"`

	HomeWinRate       float64 `json:"home_win_rate"`
	AwayWinRate       float64 `json:"away_win_rate"`
	HomeWinOrDrawRate float64 `json:"home_win_or_draw_rate"`
	AwayWinOrDrawRate float64 `json:"away_win_or_draw_rate"`

	AverageGoals     float64 `json:"average_goals"`
	HomeAverageGoals float64 `json:"home_average_goals"`
	AwayAverageGoals float64 `json:"away_average_goals"`
}

// Total returns the number of matches counted
func (f TeamForm) Total() int {
	return f.HomeTotal + f.AwayTotal
}

// AverageGoalsAs returns the goals scored per match in the given role,
// falling back to the overall average when the team has not played in it.
func (f TeamForm) AverageGoalsAs(role Role) float64 {
	switch {
	case role == Home && f.HomeTotal > 0:
		return f.HomeAverageGoals
	case role == Away && f.AwayTotal > 0:
		return f.AwayAverageGoals
	}
	return f.AverageGoals
}

// CalculateForm aggregates every played match of team in matches.
// Unplayed or malformed records are skipped. A team without history gets a
// zero-valued form.
func CalculateForm(matches []Match, team string) TeamForm {
	f := TeamForm{Team: team}
	if team == "" {
		return f
	}

	for _, m := range matches {
		if !m.Played() || !m.Involves(team) {
			continue
		}

		home, away := m.Score.Home, m.Score.Away
		f.MatchGoals += home + away

		if m.HomeTeam == team {
			f.HomeTotal++
			f.GoalsFor += home
			f.GoalsAgainst += away
			f.HomeGoalsFor += home
			switch {
			case home > away:
				f.HomeWins++
			case home < away:
				f.HomeLosses++
			default:
				f.HomeDraws++
			}
			continue
		}

		f.AwayTotal++
		f.GoalsFor += away
		f.GoalsAgainst += home
		f.AwayGoalsFor += away
		switch {
		case away > home:
			f.AwayWins++
		case away < home:
			f.AwayLosses++
		default:
			f.AwayDraws++
		}
	}

	f.HomeWinRate = ratio(f.HomeWins, f.HomeTotal)
	f.AwayWinRate = ratio(f.AwayWins, f.AwayTotal)
	f.HomeWinOrDrawRate = ratio(f.HomeWins+f.HomeDraws, f.HomeTotal)
	f.AwayWinOrDrawRate = ratio(f.AwayWins+f.AwayDraws, f.AwayTotal)

	f.AverageGoals = ratio(f.GoalsFor, f.Total())
	f.HomeAverageGoals = ratio(f.HomeGoalsFor, f.HomeTotal)
	f.AwayAverageGoals = ratio(f.AwayGoalsFor, f.AwayTotal)

	return f
}

// ratio returns n/d, or 0 when d is 0
func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
