package services

import (
	"testing"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDominanceSingleFall(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	winner := env.createWrestler(t, season.ID, "Jake Miller", 157)
	loser := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	env.createMatch(t, season.ID, "2025-11-15", winner.ID, loser.ID, winner.ID, models.WinMethodFall)

	assert.InDelta(t, 6.0, env.reload(t, winner.ID).DominanceScore, 1e-9)
	assert.Zero(t, env.reload(t, loser.ID).DominanceScore)
}

func TestDominanceLossDilutesAverage(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	// A fall and a decision win, then a loss: (6 + 3 + 0) / 3.
	env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodFall)
	env.createMatch(t, season.ID, "2025-11-22", a.ID, b.ID, a.ID, models.WinMethodDecision)
	env.createMatch(t, season.ID, "2025-11-29", a.ID, b.ID, b.ID, models.WinMethodDecision)

	assert.InDelta(t, 3.0, env.reload(t, a.ID).DominanceScore, 1e-9)
}

func TestDominanceRounding(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	// (6 + 5 + 0) / 3 = 3.666..., stored rounded to two decimals.
	env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodFall)
	env.createMatch(t, season.ID, "2025-11-22", a.ID, b.ID, a.ID, models.WinMethodTechnicalFall)
	env.createMatch(t, season.ID, "2025-11-29", a.ID, b.ID, b.ID, models.WinMethodDecision)

	assert.InDelta(t, 3.67, env.reload(t, a.ID).DominanceScore, 1e-9)
}

func TestDominanceUnscoredWinMethods(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodForfeit)
	env.createMatch(t, season.ID, "2025-11-22", a.ID, b.ID, a.ID, models.WinMethodSuddenVictory)

	assert.Zero(t, env.reload(t, a.ID).DominanceScore)
}

func TestDominanceBounds(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	methods := []string{
		models.WinMethodFall,
		models.WinMethodTechnicalFall,
		models.WinMethodMajorDecision,
		models.WinMethodDecision,
	}
	dates := []string{"2025-11-15", "2025-11-16", "2025-11-17", "2025-11-18"}

	for i, method := range methods {
		env.createMatch(t, season.ID, dates[i], a.ID, b.ID, a.ID, method)
	}

	score, err := env.dominance.CalculateDominance(a.ID, season.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 6.0)
	assert.InDelta(t, 4.5, score, 1e-9)
}

func TestDominanceNoMatches(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)

	score, err := env.dominance.CalculateDominance(a.ID, season.ID)
	require.NoError(t, err)
	assert.Zero(t, score)
}
