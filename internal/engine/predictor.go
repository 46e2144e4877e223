package engine

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Prediction is the engine's output for one fixture
type Prediction struct {
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	Kickoff      time.Time `json:"kickoff"`
	Outcome      Outcome   `json:"outcome"`
	Score        Scoreline `json:"score"`
	AverageGoals float64   `json:"average_goals"`
	TotalGoals   int       `json:"total_goals"`
	HomeScore    float64   `json:"home_score"`
	AwayScore    float64   `json:"away_score"`
	Label        string    `json:"label"`
}

// Predictor runs the full pipeline for scheduled fixtures
type Predictor struct {
	weights Weights
	workers int
}

// Option configures a Predictor
type Option func(*Predictor)

// WithWorkers bounds the number of fixtures predicted concurrently
func WithWorkers(n int) Option {
	return func(p *Predictor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// New creates a Predictor with the given weights
func New(weights Weights, opts ...Option) *Predictor {
	p := &Predictor{weights: weights, workers: 4}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Weights returns the predictor's weights table
func (p *Predictor) Weights() Weights {
	return p.weights
}

// Predict builds the prediction for fixture from the played matches in
// history. Teams without history get neutral values, so a prediction is
// always produced.
func (p *Predictor) Predict(history []Match, fixture Match) Prediction {
	home := CalculateForm(history, fixture.HomeTeam)
	away := CalculateForm(history, fixture.AwayTeam)
	h2h := p.weights.HeadToHead(history, fixture.HomeTeam, fixture.AwayTeam)
	ind := CompareIndirect(history, fixture.HomeTeam, fixture.AwayTeam)
	c := p.weights.Composite(home, away, h2h, ind)

	avgHome := home.AverageGoalsAs(Home)
	avgAway := away.AverageGoalsAs(Away)
	avg := (avgHome + avgAway) / 2
	total := int(math.RoundToEven(avg))

	score, err := MostProbableScore(total, avgHome, avgAway, c.Outcome)
	if err != nil {
		log.Warn().
			Err(err).
			Str("home", fixture.HomeTeam).
			Str("away", fixture.AwayTeam).
			Int("total_goals", total).
			Msg("Scoreline search rejected arguments, using fallback")
		score = fallbackScore(0, c.Outcome)
	}

	log.Debug().
		Str("home", fixture.HomeTeam).
		Str("away", fixture.AwayTeam).
		Float64("home_score", c.HomeScore).
		Float64("away_score", c.AwayScore).
		Float64("h2h_weight_home", h2h.WeightA).
		Float64("h2h_weight_away", h2h.WeightB).
		Float64("indirect_weight_home", ind.WeightA).
		Float64("indirect_weight_away", ind.WeightB).
		Str("outcome", c.Outcome.String()).
		Msg("Fixture scored")

	return Prediction{
		HomeTeam:     fixture.HomeTeam,
		AwayTeam:     fixture.AwayTeam,
		Kickoff:      fixture.Kickoff,
		Outcome:      c.Outcome,
		Score:        score,
		AverageGoals: avg,
		TotalGoals:   total,
		HomeScore:    c.HomeScore,
		AwayScore:    c.AwayScore,
		Label:        Label(c.HomeScore, c.AwayScore),
	}
}

// PredictAll predicts every fixture concurrently and returns the results
// ordered by kickoff. Output has one entry per fixture.
func (p *Predictor) PredictAll(history []Match, fixtures []Match) []Prediction {
	out := make([]Prediction, len(fixtures))

	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup
	for i, fx := range fixtures {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, fx Match) {
			defer wg.Done()
			defer func() { <-sem }()
			out[i] = p.Predict(history, fx)
		}(i, fx)
	}
	wg.Wait()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Kickoff.Before(out[j].Kickoff)
	})
	return out
}
