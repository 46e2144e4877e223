package main

import (
	"testing"

	"soccer_v1/predictor/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompetition(t *testing.T) {
	comp, err := parseCompetition("England: Premier League")
	require.NoError(t, err)
	assert.Equal(t, config.Competition{Country: "England", Name: "Premier League"}, comp)

	for _, bad := range []string{"", "England", ":Premier League", "England:"} {
		_, err := parseCompetition(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
