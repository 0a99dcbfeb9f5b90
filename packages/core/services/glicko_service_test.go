package services

import (
	"testing"
	"time"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func glickoWindow() (time.Time, time.Time) {
	start := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 7)
}

func TestGlickoWeeklyUpdateEmptyWindow(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)

	start, end := glickoWindow()
	updated, err := env.glicko.WeeklyUpdate(season.ID, start, end)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestGlickoWeeklyUpdateMovesRatings(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	winner := env.createWrestler(t, season.ID, "Jake Miller", 157)
	loser := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	env.createMatch(t, season.ID, "2025-11-12", winner.ID, loser.ID, winner.ID, models.WinMethodDecision)

	start, end := glickoWindow()
	updated, err := env.glicko.WeeklyUpdate(season.ID, start, end)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	w := env.reload(t, winner.ID)
	assert.Greater(t, w.GlickoRating, models.DefaultGlicko)
	// A rated period shrinks the deviation.
	assert.Less(t, w.GlickoRD, models.DefaultGlickoRD)

	l := env.reload(t, loser.ID)
	assert.Less(t, l.GlickoRating, models.DefaultGlicko)
	assert.Less(t, l.GlickoRD, models.DefaultGlickoRD)
}

func TestGlickoWeeklyUpdateWindowBounds(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	// One match before the window, one exactly at the exclusive end.
	env.createMatch(t, season.ID, "2025-11-09", a.ID, b.ID, a.ID, models.WinMethodDecision)
	env.createMatch(t, season.ID, "2025-11-17", a.ID, b.ID, a.ID, models.WinMethodDecision)

	start, end := glickoWindow()
	updated, err := env.glicko.WeeklyUpdate(season.ID, start, end)
	require.NoError(t, err)
	assert.Zero(t, updated)

	assert.Equal(t, models.DefaultGlicko, env.reload(t, a.ID).GlickoRating)
}

func TestGlickoSnapshotSymmetry(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	// A and B trade wins within the period. Both started identical and saw
	// the same outcomes against the same snapshot, so both must land on the
	// same rating.
	env.createMatch(t, season.ID, "2025-11-12", a.ID, b.ID, a.ID, models.WinMethodDecision)
	env.createMatch(t, season.ID, "2025-11-13", a.ID, b.ID, b.ID, models.WinMethodDecision)

	start, end := glickoWindow()
	_, err := env.glicko.WeeklyUpdate(season.ID, start, end)
	require.NoError(t, err)

	assert.InDelta(t, env.reload(t, a.ID).GlickoRating, env.reload(t, b.ID).GlickoRating, 1e-9)
	assert.InDelta(t, env.reload(t, a.ID).GlickoRD, env.reload(t, b.ID).GlickoRD, 1e-9)
}
