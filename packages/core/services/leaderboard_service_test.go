package services

import (
	"testing"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortByStatMissingSortLast(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)
	idle := env.createWrestler(t, season.ID, "Gavin Reed", 157)

	env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodFall)

	sorted, err := env.leaderboard.SortByStat(CohortFilter{SeasonID: season.ID, WeightClass: 157}, StatElo)
	require.NoError(t, err)
	require.Len(t, sorted, 3)

	// The loser carries a real (lowered) rating; the idle wrestler still
	// holds the 1500 default but has no matches, so they sort last.
	assert.Equal(t, a.ID, sorted[0].ID)
	assert.Equal(t, b.ID, sorted[1].ID)
	assert.Equal(t, idle.ID, sorted[2].ID)
}

func TestRankConsistency(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)
	c := env.createWrestler(t, season.ID, "Gavin Reed", 157)

	env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodFall)
	env.createMatch(t, season.ID, "2025-11-16", a.ID, c.ID, a.ID, models.WinMethodFall)
	env.createMatch(t, season.ID, "2025-11-17", b.ID, c.ID, b.ID, models.WinMethodDecision)

	filter := CohortFilter{SeasonID: season.ID, WeightClass: 157}

	sorted, err := env.leaderboard.SortByStat(filter, StatElo)
	require.NoError(t, err)

	for i := range sorted {
		rank, err := env.leaderboard.Rank(sorted[i].ID, filter, StatElo)
		require.NoError(t, err)
		assert.Equal(t, i+1, rank)
	}

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].EloRating > sorted[i].EloRating {
			rankPrev, _ := env.leaderboard.Rank(sorted[i-1].ID, filter, StatElo)
			rankCur, _ := env.leaderboard.Rank(sorted[i].ID, filter, StatElo)
			assert.Less(t, rankPrev, rankCur)
		}
	}
}

func TestRankWrestlerNotInCohort(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)

	_, err := env.leaderboard.Rank(a.ID, CohortFilter{SeasonID: season.ID, WeightClass: 125}, StatElo)
	assert.EqualError(t, err, "wrestler not in cohort")
}

func TestSortByStatInvalidStat(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)

	_, err := env.leaderboard.SortByStat(CohortFilter{SeasonID: season.ID}, "takedowns")
	assert.EqualError(t, err, "invalid stat")
}

func TestGetStatLeaders(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)
	c := env.createWrestler(t, season.ID, "Gavin Reed", 157)

	// A pins twice, B pins once, C never.
	env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodFall)
	env.createMatch(t, season.ID, "2025-11-16", a.ID, c.ID, a.ID, models.WinMethodFall)
	env.createMatch(t, season.ID, "2025-11-17", b.ID, c.ID, b.ID, models.WinMethodFall)

	leaders, err := env.leaderboard.GetStatLeaders(LeaderStatFalls, season.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, leaders, 3)

	assert.Equal(t, a.ID, leaders[0].Wrestler.ID)
	assert.Equal(t, 2, leaders[0].Count)
	assert.Equal(t, b.ID, leaders[1].Wrestler.ID)
	assert.Equal(t, 1, leaders[1].Count)
	assert.Equal(t, c.ID, leaders[2].Wrestler.ID)
	assert.Equal(t, 0, leaders[2].Count)
}

func TestGetStatLeadersTiesKeepInsertionOrder(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodFall)
	env.createMatch(t, season.ID, "2025-11-16", a.ID, b.ID, b.ID, models.WinMethodFall)

	leaders, err := env.leaderboard.GetStatLeaders(LeaderStatFalls, season.ID, 10, 157)
	require.NoError(t, err)
	require.Len(t, leaders, 2)

	// Both have one fall; the earlier-created wrestler comes first.
	assert.Equal(t, a.ID, leaders[0].Wrestler.ID)
	assert.Equal(t, b.ID, leaders[1].Wrestler.ID)
}

func TestCohortRegionFilter(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)

	central := &models.Wrestler{
		Name: "Jake Miller", School: "Wartburg College",
		WeightClass: 157, SeasonID: season.ID, EloRating: models.DefaultElo,
	}
	require.NoError(t, env.db.Create(central).Error)

	northeast := &models.Wrestler{
		Name: "Cole Brooks", School: "Ithaca",
		WeightClass: 157, SeasonID: season.ID, EloRating: models.DefaultElo,
	}
	require.NoError(t, env.db.Create(northeast).Error)

	unknown := &models.Wrestler{
		Name: "Gavin Reed", School: "Hogwarts",
		WeightClass: 157, SeasonID: season.ID, EloRating: models.DefaultElo,
	}
	require.NoError(t, env.db.Create(unknown).Error)

	sorted, err := env.leaderboard.SortByStat(
		CohortFilter{SeasonID: season.ID, WeightClass: 157, Region: "Central"}, StatElo)
	require.NoError(t, err)

	require.Len(t, sorted, 1)
	assert.Equal(t, central.ID, sorted[0].ID)
}

func TestSortByConferencePutsUnknownLast(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)

	known := &models.Wrestler{
		Name: "Jake Miller", School: "Wartburg College",
		WeightClass: 157, SeasonID: season.ID, EloRating: models.DefaultElo,
	}
	require.NoError(t, env.db.Create(known).Error)

	unknown := &models.Wrestler{
		Name: "Cole Brooks", School: "Hogwarts",
		WeightClass: 157, SeasonID: season.ID, EloRating: models.DefaultElo,
	}
	require.NoError(t, env.db.Create(unknown).Error)

	sorted, err := env.leaderboard.SortByStat(
		CohortFilter{SeasonID: season.ID, WeightClass: 157}, StatConference)
	require.NoError(t, err)

	require.Len(t, sorted, 2)
	assert.Equal(t, known.ID, sorted[0].ID)
	assert.Equal(t, unknown.ID, sorted[1].ID)
}
