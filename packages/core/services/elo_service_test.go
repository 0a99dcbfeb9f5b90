package services

import (
	"testing"
	"time"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEloBaseline(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	wrestler := env.createWrestler(t, season.ID, "Jake Miller", 157)

	require.NoError(t, env.elo.RecalculateElo(wrestler.ID, season.ID))

	assert.Equal(t, models.DefaultElo, env.reload(t, wrestler.ID).EloRating)

	history, err := env.elo.GetRatingHistory(wrestler.ID, season.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestEloSingleWin(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	winner := env.createWrestler(t, season.ID, "Jake Miller", 157)
	loser := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	env.createMatch(t, season.ID, "2025-11-15", winner.ID, loser.ID, winner.ID, models.WinMethodFall)

	// The winner is recalculated first, against the loser's untouched 1500.
	assert.InDelta(t, 1516.0, env.reload(t, winner.ID).EloRating, 1e-9)

	// The loser's replay then reads the winner's already-updated rating, so
	// the result lands near 1484 but not exactly on it.
	loserElo := env.reload(t, loser.ID).EloRating
	assert.Less(t, loserElo, 1500.0)
	assert.InDelta(t, 1484.0, loserElo, 1.0)
}

func TestEloRecordsAndCounters(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	winner := env.createWrestler(t, season.ID, "Jake Miller", 157)
	loser := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	env.createMatch(t, season.ID, "2025-11-15", winner.ID, loser.ID, winner.ID, models.WinMethodFall)

	w := env.reload(t, winner.ID)
	assert.Equal(t, 1, w.Wins)
	assert.Equal(t, 0, w.Losses)
	assert.Equal(t, 1, w.Falls)

	l := env.reload(t, loser.ID)
	assert.Equal(t, 0, l.Wins)
	assert.Equal(t, 1, l.Losses)
	assert.Equal(t, 0, l.Falls)
}

func TestEloIdempotence(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)
	c := env.createWrestler(t, season.ID, "Gavin Reed", 157)

	env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodDecision)
	env.createMatch(t, season.ID, "2025-11-22", a.ID, c.ID, c.ID, models.WinMethodFall)

	require.NoError(t, env.elo.RecalculateElo(a.ID, season.ID))
	first := env.reload(t, a.ID).EloRating

	require.NoError(t, env.elo.RecalculateElo(a.ID, season.ID))
	second := env.reload(t, a.ID).EloRating

	assert.Equal(t, first, second)
}

func TestEloOrderInsensitivity(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	// Insert the later match first; the replay must still run in date order.
	later := &models.Match{
		SeasonID:    season.ID,
		Date:        time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC),
		Wrestler1ID: a.ID,
		Wrestler2ID: b.ID,
		WinnerID:    b.ID,
		WinMethod:   models.WinMethodDecision,
	}
	require.NoError(t, env.db.Create(later).Error)

	earlier := &models.Match{
		SeasonID:    season.ID,
		Date:        time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC),
		Wrestler1ID: a.ID,
		Wrestler2ID: b.ID,
		WinnerID:    a.ID,
		WinMethod:   models.WinMethodDecision,
	}
	require.NoError(t, env.db.Create(earlier).Error)

	require.NoError(t, env.elo.RecalculateElo(a.ID, season.ID))

	history, err := env.elo.GetRatingHistory(a.ID, season.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.True(t, history[0].MatchDate.Before(history[1].MatchDate))
	assert.Equal(t, earlier.ID, history[0].MatchID)
	assert.InDelta(t, models.DefaultElo, history[0].EloBefore, 1e-9)
	assert.Positive(t, history[0].EloChange)
	assert.Negative(t, history[1].EloChange)
}

func TestEloHistoryRewrittenOnRecalculation(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodDecision)

	require.NoError(t, env.elo.RecalculateElo(a.ID, season.ID))
	require.NoError(t, env.elo.RecalculateElo(a.ID, season.ID))

	var count int64
	require.NoError(t, env.db.Model(&models.RatingHistory{}).
		Where("wrestler_id = ?", a.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// Deleting the only match between two wrestlers must restore both to exactly
// the state they would have had without it.
func TestEloDeleteRestoresBaseline(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	winner := env.createWrestler(t, season.ID, "Jake Miller", 157)
	loser := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	match := env.createMatch(t, season.ID, "2025-11-15", winner.ID, loser.ID, winner.ID, models.WinMethodFall)
	require.NoError(t, env.matches.DeleteMatch(match.ID))

	for _, id := range []uint{winner.ID, loser.ID} {
		w := env.reload(t, id)
		assert.Equal(t, models.DefaultElo, w.EloRating)
		assert.Zero(t, w.RPI)
		assert.Zero(t, w.DominanceScore)
		assert.Zero(t, w.Wins)
		assert.Zero(t, w.Losses)

		history, err := env.elo.GetRatingHistory(id, season.ID)
		require.NoError(t, err)
		assert.Empty(t, history)
	}
}
