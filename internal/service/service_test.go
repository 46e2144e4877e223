package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"soccer_v1/predictor/internal/cache"
	"soccer_v1/predictor/internal/client"
	"soccer_v1/predictor/internal/config"
	"soccer_v1/predictor/internal/engine"
	"soccer_v1/predictor/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	mu           sync.Mutex
	competitions map[string]int
	finished     map[int][]engine.Match
	upcoming     map[int][]engine.Match
	failFor      map[int]error
	fetchCalls   int
	windows      []string
}

func (f *fakeSource) FindCompetition(_ context.Context, country, name string) (models.Competition, error) {
	id, ok := f.competitions[country+"/"+name]
	if !ok {
		return models.Competition{}, fmt.Errorf("competition %q: %w", name, client.ErrNotFound)
	}
	return models.Competition{ID: id, Name: name}, nil
}

func (f *fakeSource) FetchMatches(_ context.Context, id int, from, to time.Time, statuses string) ([]engine.Match, error) {
	f.mu.Lock()
	f.fetchCalls++
	f.windows = append(f.windows, fmt.Sprintf("%s %s..%s", statuses, from.Format("2006-01-02"), to.Format("2006-01-02")))
	f.mu.Unlock()

	if err := f.failFor[id]; err != nil {
		return nil, err
	}
	if statuses == client.FinishedStatuses {
		return f.finished[id], nil
	}
	return f.upcoming[id], nil
}

func played(home, away string, hg, ag int) engine.Match {
	return engine.Match{
		HomeTeam: home, AwayTeam: away,
		Score:   &engine.Score{Home: hg, Away: ag},
		Kickoff: now.AddDate(0, -1, 0),
		Status:  engine.StatusFinished,
	}
}

func scheduled(home, away string, days int) engine.Match {
	return engine.Match{
		HomeTeam: home, AwayTeam: away,
		Kickoff: now.AddDate(0, 0, days),
		Status:  engine.StatusScheduled,
	}
}

func testConfig(comps map[string]string) *config.Config {
	return &config.Config{
		Competitions:        comps,
		DaysPast:            365,
		DaysAhead:           30,
		LocalTimezone:       "UTC",
		CacheTTLMatches:     3600,
		CacheTTLPredictions: 600,
	}
}

func newSource() *fakeSource {
	return &fakeSource{
		competitions: map[string]int{
			"England/Premier League": 2021,
			"Spain/Primera Division": 2014,
			"Italy/Serie A":          2019,
		},
		finished: map[int][]engine.Match{
			2021: {
				played("Arsenal", "Everton", 2, 0),
				played("Fulham", "Arsenal", 0, 1),
				played("Chelsea", "Everton", 0, 1),
				{HomeTeam: "Arsenal", AwayTeam: "Chelsea", Status: engine.StatusCancelled},
			},
			2014: {played("Betis", "Girona", 1, 1)},
		},
		upcoming: map[int][]engine.Match{
			2021: {
				scheduled("Everton", "Fulham", 9),
				scheduled("Arsenal", "Chelsea", 2),
				{HomeTeam: "", AwayTeam: "TBD", Status: engine.StatusScheduled},
			},
			2019: {scheduled("Inter", "Milan", 3)},
		},
		failFor: map[int]error{},
	}
}

func newService(src Source, c Cache, comps map[string]string) *Service {
	s := New(testConfig(comps), src, c, engine.New(engine.DefaultWeights()))
	s.now = func() time.Time { return now }
	return s
}

func TestRunCompetition(t *testing.T) {
	src := newSource()
	s := newService(src, nil, map[string]string{"England": "Premier League"})

	report, err := s.RunCompetition(context.Background(), config.Competition{Country: "England", Name: "Premier League"})
	require.NoError(t, err)

	assert.Equal(t, 2021, report.CompetitionID)
	assert.Equal(t, 3, report.History, "unplayed records are dropped")
	require.Len(t, report.Predictions, 2, "unnamed fixtures are dropped")
	assert.Equal(t, "Arsenal", report.Predictions[0].HomeTeam, "ordered by kickoff")
	assert.Equal(t, engine.HomeWin, report.Predictions[0].Outcome)
	assert.Equal(t, "Everton", report.Predictions[1].HomeTeam)

	assert.Equal(t, []string{
		"SCHEDULED,TIMED,LIVE,IN_PLAY,PAUSED 2025-08-10..2025-09-09",
		"FINISHED 2024-08-10..2025-08-10",
	}, src.windows)
}

func TestRunCompetition_Skips(t *testing.T) {
	src := newSource()
	s := newService(src, nil, nil)
	ctx := context.Background()

	_, err := s.RunCompetition(ctx, config.Competition{Country: "Spain", Name: "Primera Division"})
	assert.ErrorIs(t, err, ErrNoFixtures)

	_, err = s.RunCompetition(ctx, config.Competition{Country: "Italy", Name: "Serie A"})
	assert.ErrorIs(t, err, ErrNoHistory)

	_, err = s.RunCompetition(ctx, config.Competition{Country: "France", Name: "Ligue 1"})
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestRunAll_ContinuesPastFailures(t *testing.T) {
	src := newSource()
	src.failFor[2014] = errors.New("boom")
	s := newService(src, nil, map[string]string{
		"England": "Premier League",
		"Spain":   "Primera Division",
		"Italy":   "Serie A",
		"France":  "Ligue 1",
	})

	reports := s.RunAll(context.Background())

	require.Len(t, reports, 1)
	assert.Equal(t, "Premier League", reports[0].Competition)

	latest, ok, err := s.Latest(context.Background(), "Premier League")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, latest, 2)

	_, ok, err = s.Latest(context.Background(), "Serie A")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRunAll_Cancelled(t *testing.T) {
	src := newSource()
	s := newService(src, nil, map[string]string{"England": "Premier League"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Empty(t, s.RunAll(ctx))
	assert.Zero(t, src.fetchCalls)
}

func TestRunCompetition_ReadsThroughCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rc := cache.NewFromClient(rdb)
	defer rc.Close()

	src := newSource()
	comp := config.Competition{Country: "England", Name: "Premier League"}
	s := newService(src, rc, map[string]string{"England": "Premier League"})

	first, err := s.RunCompetition(context.Background(), comp)
	require.NoError(t, err)
	assert.Equal(t, 2, src.fetchCalls)

	// A fresh service shares only the cache
	s2 := newService(src, rc, map[string]string{"England": "Premier League"})
	second, err := s2.RunCompetition(context.Background(), comp)
	require.NoError(t, err)
	assert.Equal(t, 2, src.fetchCalls, "second run is served from the cache")
	assert.Equal(t, first.Predictions, second.Predictions)

	s3 := newService(src, rc, nil)
	cached, ok, err := s3.Latest(context.Background(), "Premier League")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first.Predictions, cached)
}
