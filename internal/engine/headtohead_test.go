package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadToHead_NoFixtures(t *testing.T) {
	matches := []Match{
		played("A", "C", 1, 0),
		played("B", "C", 0, 1),
	}

	res := HeadToHead(matches, "A", "B")

	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, res.PointsA)
	assert.Equal(t, 0, res.PointsB)
	assert.Equal(t, 1.0, res.WeightA)
	assert.Equal(t, 1.0, res.WeightB)
}

func TestHeadToHead_PointTable(t *testing.T) {
	matches := []Match{
		played("A", "B", 2, 1), // A home win: A +2, B -1
		played("B", "A", 0, 1), // A away win: A +4, B -2
		played("B", "A", 1, 1), // draw: +1 each
		played("A", "C", 5, 0), // not a direct fixture
		fixture("A", "B", 0),   // not played
	}

	res := HeadToHead(matches, "A", "B")

	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 7, res.PointsA)
	assert.Equal(t, -2, res.PointsB)
	assert.Equal(t, 2, res.WinsA)
	assert.Equal(t, 0, res.WinsB)
	assert.InDelta(t, 2.0/3.0, res.WeightA, 1e-12)
	assert.InDelta(t, 0.0, res.WeightB, 1e-12)
}

func TestHeadToHead_HomeLossPenalty(t *testing.T) {
	matches := []Match{
		played("B", "A", 2, 0), // B home win: B +2, A -1
		played("A", "B", 0, 1), // B away win: B +4, A -2
	}

	res := HeadToHead(matches, "A", "B")

	assert.Equal(t, -3, res.PointsA)
	assert.Equal(t, 6, res.PointsB)
	assert.Equal(t, 0.0, res.WeightA)
	assert.Equal(t, 1.0, res.WeightB)
}

func TestHeadToHead_CustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.WinValue = 3
	w.AwayWinMultiplier = 1

	res := w.HeadToHead([]Match{played("B", "A", 0, 1)}, "A", "B")

	assert.Equal(t, 3, res.PointsA)
	assert.Equal(t, -2, res.PointsB)
}
