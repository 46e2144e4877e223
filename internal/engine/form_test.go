package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateForm_NoHistory(t *testing.T) {
	f := CalculateForm([]Match{played("B", "C", 1, 0)}, "A")

	assert.Equal(t, 0, f.Total())
	assert.Zero(t, f.HomeWinRate)
	assert.Zero(t, f.AwayWinRate)
	assert.Zero(t, f.HomeWinOrDrawRate)
	assert.Zero(t, f.AwayWinOrDrawRate)
	assert.Zero(t, f.AverageGoals)
	assert.Zero(t, f.AverageGoalsAs(Home))
	assert.Zero(t, f.AverageGoalsAs(Away))
}

func TestCalculateForm_Counts(t *testing.T) {
	matches := []Match{
		played("A", "B", 2, 0), // home win
		played("C", "A", 1, 1), // away draw
		played("A", "D", 0, 3), // home loss
		played("E", "A", 0, 2), // away win
		played("B", "C", 4, 4), // not involving A
		fixture("A", "B", 0),   // scheduled
		{HomeTeam: "A", AwayTeam: "C", Status: StatusFinished}, // no score
		{HomeTeam: "", AwayTeam: "A", Score: &Score{Home: 1}, Status: StatusFinished},
	}

	f := CalculateForm(matches, "A")

	assert.Equal(t, 1, f.HomeWins)
	assert.Equal(t, 0, f.HomeDraws)
	assert.Equal(t, 1, f.HomeLosses)
	assert.Equal(t, 2, f.HomeTotal)
	assert.Equal(t, 1, f.AwayWins)
	assert.Equal(t, 1, f.AwayDraws)
	assert.Equal(t, 0, f.AwayLosses)
	assert.Equal(t, 2, f.AwayTotal)
	assert.Equal(t, 4, f.Total(), "home_total + away_total must equal played matches")

	assert.Equal(t, 5, f.GoalsFor)
	assert.Equal(t, 4, f.GoalsAgainst)
	assert.Equal(t, 9, f.MatchGoals)

	assert.InDelta(t, 0.5, f.HomeWinRate, 1e-12)
	assert.InDelta(t, 0.5, f.AwayWinRate, 1e-12)
	assert.InDelta(t, 0.5, f.HomeWinOrDrawRate, 1e-12)
	assert.InDelta(t, 1.0, f.AwayWinOrDrawRate, 1e-12)

	assert.InDelta(t, 1.25, f.AverageGoals, 1e-12)
	assert.InDelta(t, 1.0, f.AverageGoalsAs(Home), 1e-12)
	assert.InDelta(t, 1.5, f.AverageGoalsAs(Away), 1e-12)
}

func TestCalculateForm_RoleFallsBackToOverall(t *testing.T) {
	// A has only played at home
	matches := []Match{
		played("A", "B", 3, 0),
		played("A", "C", 1, 0),
	}

	f := CalculateForm(matches, "A")

	assert.Equal(t, 0, f.AwayTotal)
	assert.InDelta(t, 2.0, f.AverageGoalsAs(Home), 1e-12)
	assert.InDelta(t, 2.0, f.AverageGoalsAs(Away), 1e-12, "no away games: overall average")
}

func TestCalculateForm_Idempotent(t *testing.T) {
	matches := []Match{
		played("A", "B", 2, 1),
		played("B", "A", 0, 0),
		played("C", "A", 3, 1),
	}

	first := CalculateForm(matches, "A")
	second := CalculateForm(matches, "A")

	assert.Equal(t, first, second)
}
