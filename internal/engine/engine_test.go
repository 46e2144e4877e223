package engine

import (
	"time"
)

var baseKickoff = time.Date(2025, 8, 16, 14, 0, 0, 0, time.UTC)

// played builds a finished match with a final score
func played(home, away string, homeGoals, awayGoals int) Match {
	return Match{
		HomeTeam: home,
		AwayTeam: away,
		Score:    &Score{Home: homeGoals, Away: awayGoals},
		Kickoff:  baseKickoff,
		Status:   StatusFinished,
	}
}

// fixture builds a scheduled match kicking off offset after baseKickoff
func fixture(home, away string, offset time.Duration) Match {
	return Match{
		HomeTeam: home,
		AwayTeam: away,
		Kickoff:  baseKickoff.Add(offset),
		Status:   StatusScheduled,
	}
}
