package services

import (
	"testing"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSeasonValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name    string
		req     models.CreateSeasonRequest
		wantErr string
	}{
		{
			name:    "BadStartDate",
			req:     models.CreateSeasonRequest{Name: "2025-2026", StartDate: "11/01/2025", EndDate: "2026-03-15"},
			wantErr: "invalid start date format",
		},
		{
			name:    "BadEndDate",
			req:     models.CreateSeasonRequest{Name: "2025-2026", StartDate: "2025-11-01", EndDate: "soon"},
			wantErr: "invalid end date format",
		},
		{
			name:    "EndBeforeStart",
			req:     models.CreateSeasonRequest{Name: "2025-2026", StartDate: "2026-03-15", EndDate: "2025-11-01"},
			wantErr: "end date must be after start date",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.seasons.CreateSeason(tc.req)
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestCreateSeasonActiveExclusivity(t *testing.T) {
	env := newTestEnv(t)
	first := env.createSeason(t)
	require.True(t, first.Active)

	second, err := env.seasons.CreateSeason(models.CreateSeasonRequest{
		Name:      "2026-2027",
		StartDate: "2026-11-01",
		EndDate:   "2027-03-15",
		Active:    true,
	})
	require.NoError(t, err)
	assert.True(t, second.Active)

	// Activating the new season deactivates the previous one.
	previous, err := env.seasons.GetSeasonByID(first.ID)
	require.NoError(t, err)
	assert.False(t, previous.Active)

	active, err := env.seasons.GetActiveSeason()
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
}

func TestCreateInactiveSeasonLeavesActiveAlone(t *testing.T) {
	env := newTestEnv(t)
	first := env.createSeason(t)

	_, err := env.seasons.CreateSeason(models.CreateSeasonRequest{
		Name:      "2024-2025",
		StartDate: "2024-11-01",
		EndDate:   "2025-03-15",
		Active:    false,
	})
	require.NoError(t, err)

	active, err := env.seasons.GetActiveSeason()
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)
}

func TestGetActiveSeasonNone(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.seasons.GetActiveSeason()
	assert.EqualError(t, err, "no active season")
}

func TestGetSeasonsNewestFirst(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.seasons.CreateSeason(models.CreateSeasonRequest{
		Name: "2024-2025", StartDate: "2024-11-01", EndDate: "2025-03-15",
	})
	require.NoError(t, err)
	_, err = env.seasons.CreateSeason(models.CreateSeasonRequest{
		Name: "2025-2026", StartDate: "2025-11-01", EndDate: "2026-03-15",
	})
	require.NoError(t, err)

	seasons, err := env.seasons.GetSeasons()
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.Equal(t, "2025-2026", seasons[0].Name)
	assert.Equal(t, "2024-2025", seasons[1].Name)
}

func TestCarryForwardSeedsByNameAndSchool(t *testing.T) {
	env := newTestEnv(t)
	previous := env.createSeason(t)
	a := env.createWrestler(t, previous.ID, "Jake Miller", 157)
	b := env.createWrestler(t, previous.ID, "Cole Brooks", 157)

	env.createMatch(t, previous.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodFall)
	finalElo := env.reload(t, a.ID).EloRating

	next, err := env.seasons.CreateSeason(models.CreateSeasonRequest{
		Name: "2026-2027", StartDate: "2026-11-01", EndDate: "2027-03-15", Active: true,
	})
	require.NoError(t, err)

	// Same person, different casing; plus a newcomer with no prior record.
	returning, _, err := env.wrestlers.FindOrCreateWrestler("JAKE miller", "Wartburg College", 157, next.ID)
	require.NoError(t, err)
	newcomer, _, err := env.wrestlers.FindOrCreateWrestler("Gavin Reed", "Wartburg College", 157, next.ID)
	require.NoError(t, err)

	seeded, err := env.seasons.CarryForward(previous.ID, next.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, seeded)

	carried := env.reload(t, returning.ID)
	require.NotNil(t, carried.SeasonStartElo)
	assert.InDelta(t, finalElo, *carried.SeasonStartElo, 1e-9)
	// The working rating still starts fresh.
	assert.Equal(t, models.DefaultElo, carried.EloRating)

	assert.Nil(t, env.reload(t, newcomer.ID).SeasonStartElo)
}

func TestCarryForwardUnknownSeason(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)

	_, err := env.seasons.CarryForward(9999, season.ID)
	assert.EqualError(t, err, "season not found")

	_, err = env.seasons.CarryForward(season.ID, 9999)
	assert.EqualError(t, err, "season not found")
}
