package models

import (
	"time"

	"soccer_v1/predictor/internal/engine"
)

// MatchesResponse is the /competitions/{id}/matches envelope
type MatchesResponse struct {
	ResultSet struct {
		Count  int    `json:"count"`
		First  string `json:"first"`
		Last   string `json:"last"`
		Played int    `json:"played"`
	} `json:"resultSet"`
	Competition Competition  `json:"competition"`
	Matches     []MatchInput `json:"matches"`
}

// ScoreInput is the score block of a match record
type ScoreInput struct {
	Winner   string    `json:"winner"`
	Duration string    `json:"duration"`
	FullTime GoalsPair `json:"fullTime"`
	HalfTime GoalsPair `json:"halfTime"`
}

// GoalsPair holds nullable goal counts; null until the period is played
type GoalsPair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// MatchInput is a match record as returned by the API
type MatchInput struct {
	ID          int        `json:"id"`
	UTCDate     string     `json:"utcDate"` // ISO 8601 format
	Status      string     `json:"status"`
	Matchday    *int       `json:"matchday,omitempty"`
	Stage       string     `json:"stage"`
	LastUpdated string     `json:"lastUpdated"`
	HomeTeam    TeamRef    `json:"homeTeam"`
	AwayTeam    TeamRef    `json:"awayTeam"`
	Score       ScoreInput `json:"score"`
}

// ToMatch converts MatchInput (from API) to the engine's match record.
// A missing full-time score leaves Score nil; an unparsable date leaves
// Kickoff zero.
func (mi *MatchInput) ToMatch() engine.Match {
	m := engine.Match{
		HomeTeam: mi.HomeTeam.DisplayName(),
		AwayTeam: mi.AwayTeam.DisplayName(),
		Status:   engine.Status(mi.Status),
	}

	if kickoff, err := time.Parse(time.RFC3339, mi.UTCDate); err == nil {
		m.Kickoff = kickoff.UTC()
	}

	if mi.Score.FullTime.Home != nil && mi.Score.FullTime.Away != nil {
		m.Score = &engine.Score{
			Home: *mi.Score.FullTime.Home,
			Away: *mi.Score.FullTime.Away,
		}
	}

	return m
}

// ToMatches converts every record in the response
func (r *MatchesResponse) ToMatches() []engine.Match {
	out := make([]engine.Match, 0, len(r.Matches))
	for i := range r.Matches {
		out = append(out, r.Matches[i].ToMatch())
	}
	return out
}
