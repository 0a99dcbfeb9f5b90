package services

import (
	"testing"
	"time"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatsWindows(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	now := time.Now()
	dates := []time.Time{
		now.AddDate(0, 0, -2),  // current week
		now.AddDate(0, 0, -10), // previous week
		now.AddDate(0, 0, -30), // older than both windows
	}
	for _, date := range dates {
		match := &models.Match{
			SeasonID:    season.ID,
			Date:        date,
			Wrestler1ID: a.ID,
			Wrestler2ID: b.ID,
			WinnerID:    a.ID,
			WinMethod:   models.WinMethodDecision,
		}
		require.NoError(t, env.db.Create(match).Error)
	}

	stats, err := env.stats.GetStats()
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalWrestlers)
	assert.Equal(t, int64(3), stats.TotalMatches)
	assert.Equal(t, int64(1), stats.MatchesLast7Days)
	assert.Equal(t, int64(1), stats.MatchesPrevious7Days)
}
