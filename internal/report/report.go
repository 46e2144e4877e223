package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"soccer_v1/predictor/internal/engine"
	"soccer_v1/predictor/internal/models"
)

const (
	timeLayout = "2006-01-02 15:04"
	ruleWidth  = 94
)

// GoalBand classifies an average goals value into an over/under band
func GoalBand(avg float64) string {
	switch {
	case avg > 3.5 && avg <= 4.5:
		return "> 3.5"
	case avg > 2.5 && avg <= 3.5:
		return "> 2.5"
	case avg > 1.5 && avg <= 2.5:
		return "> 1.5"
	}
	return "< 1.5"
}

// LocalTime formats t in loc, or "N/A" for a zero time
func LocalTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "N/A"
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(timeLayout)
}

// PredictionText renders the prediction column, e.g. "2 - 1(1W X) > 2.5"
func PredictionText(p engine.Prediction) string {
	return fmt.Sprintf("%s%s %s", p.Score, p.Label, GoalBand(p.AverageGoals))
}

// Print writes the prediction table for one competition
func Print(w io.Writer, title string, preds []engine.Prediction, loc *time.Location) error {
	fmt.Fprintf(w, "\n--- FINAL PREDICTIONS, %s ---\n", title)
	if len(preds) == 0 {
		_, err := fmt.Fprintln(w, "No predictions to display.")
		return err
	}

	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintln(tw, "Date\t| Home Team\t| Away Team\t| Prediction")
	for _, p := range preds {
		fmt.Fprintf(tw, "%s\t| %s\t| %s\t| %s\n",
			LocalTime(p.Kickoff, loc),
			p.HomeTeam,
			p.AwayTeam,
			PredictionText(p),
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write predictions: %w", err)
	}

	_, err := fmt.Fprintln(w, strings.Repeat("=", 46))
	return err
}

// PrintMatches writes a results/fixtures table. Scores of matches in
// progress are suffixed with L; matches without a score show "X - X".
func PrintMatches(w io.Writer, matches []engine.Match, loc *time.Location) error {
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, "No matches to display.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintln(tw, "DATE\t| HOME TEAM\t| SCORE\t| AWAY TEAM")
	for _, m := range matches {
		fmt.Fprintf(tw, "%s\t| %s\t| %s\t| %s\n",
			LocalTime(m.Kickoff, loc),
			orNA(m.HomeTeam),
			matchScore(m),
			orNA(m.AwayTeam),
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write matches: %w", err)
	}
	return nil
}

// PrintTeams writes a competition's team list
func PrintTeams(w io.Writer, teams []models.Team) error {
	if len(teams) == 0 {
		_, err := fmt.Fprintln(w, "No teams to display.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintln(tw, "TLA\t| SHORT NAME\t| NAME")
	for _, t := range teams {
		fmt.Fprintf(tw, "%s\t| %s\t| %s\n", t.TLA, orNA(t.ShortName), t.Name)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write teams: %w", err)
	}
	return nil
}

func matchScore(m engine.Match) string {
	score := "X - X"
	if m.Score != nil {
		score = fmt.Sprintf("%d - %d", m.Score.Home, m.Score.Away)
	}
	if m.Status == engine.StatusLive || m.Status == engine.StatusInPlay {
		score += " L"
	}
	return score
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
