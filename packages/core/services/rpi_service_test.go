package services

import (
	"testing"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRPIBelowThreshold(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)
	c := env.createWrestler(t, season.ID, "Gavin Reed", 157)

	// Two matches: one win, one loss. Still below the three-match minimum.
	env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodDecision)
	env.createMatch(t, season.ID, "2025-11-22", a.ID, c.ID, c.ID, models.WinMethodDecision)

	breakdown, err := env.rpi.CalculateRPI(a.ID, season.ID)
	require.NoError(t, err)

	assert.Zero(t, breakdown.RPI)
	assert.Zero(t, breakdown.OwnWinPct)
	assert.Zero(t, breakdown.OpponentWinPct)
	assert.Zero(t, breakdown.OppOpponentWinPct)
}

func TestRPIWeights(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)
	c := env.createWrestler(t, season.ID, "Gavin Reed", 157)
	d := env.createWrestler(t, season.ID, "Wyatt Hansen", 157)
	e := env.createWrestler(t, season.ID, "Luke Berg", 157)

	// A beats B, C, D and loses to E.
	env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodDecision)
	env.createMatch(t, season.ID, "2025-11-16", a.ID, c.ID, a.ID, models.WinMethodDecision)
	env.createMatch(t, season.ID, "2025-11-17", a.ID, d.ID, a.ID, models.WinMethodDecision)
	env.createMatch(t, season.ID, "2025-11-18", a.ID, e.ID, e.ID, models.WinMethodDecision)

	breakdown, err := env.rpi.CalculateRPI(a.ID, season.ID)
	require.NoError(t, err)

	// Own: 3 of 4. Opponents: B, C, D at 0.0 and E at 1.0, mean 0.25.
	// Opponents' opponents: everyone only faced A, so the combined set is
	// {A} and the mean is A's own 0.75. Weighted: .25*.75+.5*.25+.25*.75.
	assert.InDelta(t, 0.75, breakdown.OwnWinPct, 1e-9)
	assert.InDelta(t, 0.25, breakdown.OpponentWinPct, 1e-9)
	assert.InDelta(t, 0.75, breakdown.OppOpponentWinPct, 1e-9)
	assert.InDelta(t, 0.5, breakdown.RPI, 1e-9)
}

func TestRPIOpponentsDeduplicated(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	// Three wins over the same opponent count that opponent once.
	env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodDecision)
	env.createMatch(t, season.ID, "2025-11-22", a.ID, b.ID, a.ID, models.WinMethodDecision)
	env.createMatch(t, season.ID, "2025-11-29", a.ID, b.ID, a.ID, models.WinMethodDecision)

	breakdown, err := env.rpi.CalculateRPI(a.ID, season.ID)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, breakdown.OwnWinPct, 1e-9)
	assert.InDelta(t, 0.0, breakdown.OpponentWinPct, 1e-9)
	// B's only opponent is A, so A appears in its own second-level set.
	assert.InDelta(t, 1.0, breakdown.OppOpponentWinPct, 1e-9)
	assert.InDelta(t, 0.5, breakdown.RPI, 1e-9)
}

func TestRPIBounds(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)
	c := env.createWrestler(t, season.ID, "Gavin Reed", 157)
	d := env.createWrestler(t, season.ID, "Wyatt Hansen", 157)

	env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, b.ID, models.WinMethodFall)
	env.createMatch(t, season.ID, "2025-11-16", a.ID, c.ID, a.ID, models.WinMethodDecision)
	env.createMatch(t, season.ID, "2025-11-17", a.ID, d.ID, d.ID, models.WinMethodMajorDecision)
	env.createMatch(t, season.ID, "2025-11-18", b.ID, c.ID, b.ID, models.WinMethodDecision)

	for _, wrestler := range []*models.Wrestler{a, b, c, d} {
		breakdown, err := env.rpi.CalculateRPI(wrestler.ID, season.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, breakdown.RPI, 0.0)
		assert.LessOrEqual(t, breakdown.RPI, 1.0)
	}
}

func TestRecalculateRPIPersists(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodDecision)
	env.createMatch(t, season.ID, "2025-11-22", a.ID, b.ID, a.ID, models.WinMethodDecision)
	env.createMatch(t, season.ID, "2025-11-29", a.ID, b.ID, a.ID, models.WinMethodDecision)

	rpi, err := env.rpi.RecalculateRPI(a.ID, season.ID)
	require.NoError(t, err)

	assert.InDelta(t, rpi, env.reload(t, a.ID).RPI, 1e-9)
	assert.Greater(t, rpi, 0.0)
}
