package engine

import "time"

// Status mirrors the match status values reported by the data provider
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusTimed     Status = "TIMED"
	StatusLive      Status = "LIVE"
	StatusInPlay    Status = "IN_PLAY"
	StatusPaused    Status = "PAUSED"
	StatusFinished  Status = "FINISHED"
	StatusPostponed Status = "POSTPONED"
	StatusSuspended Status = "SUSPENDED"
	StatusCancelled Status = "CANCELLED"
)

// Role is the side a team plays on in a fixture
type Role int

const (
	Home Role = iota
	Away
)

// String returns "home" or "away"
func (r Role) String() string {
	if r == Home {
		return "home"
	}
	return "away"
}

// Score is a full-time result
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Match is one played or scheduled fixture
type Match struct {
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	Score    *Score    `json:"score,omitempty"`
	Kickoff  time.Time `json:"kickoff"`
	Status   Status    `json:"status"`
}

// Played reports whether the match can feed statistics: finished, both
// team names present and a non-negative final score.
func (m Match) Played() bool {
	if m.Status != StatusFinished || m.Score == nil {
		return false
	}
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return false
	}
	return m.Score.Home >= 0 && m.Score.Away >= 0
}

// Upcoming reports whether the match is a prediction target
func (m Match) Upcoming() bool {
	switch m.Status {
	case StatusScheduled, StatusTimed, StatusLive, StatusInPlay, StatusPaused:
		return m.HomeTeam != "" && m.AwayTeam != ""
	}
	return false
}

// Involves reports whether team plays on either side
func (m Match) Involves(team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

// Opponent returns the other side of the fixture for team
func (m Match) Opponent(team string) string {
	if m.HomeTeam == team {
		return m.AwayTeam
	}
	return m.HomeTeam
}

// Won reports whether team won the match. Callers must check Played first.
func (m Match) Won(team string) bool {
	if m.HomeTeam == team {
		return m.Score.Home > m.Score.Away
	}
	return m.Score.Away > m.Score.Home
}
