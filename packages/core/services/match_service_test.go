package services

import (
	"testing"

	"github.com/kbrat32c1/wrestling-rankings-app/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMatchValidation(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)
	heavy := env.createWrestler(t, season.ID, "Wyatt Hansen", 285)

	cases := []struct {
		name    string
		req     models.CreateMatchRequest
		wantErr string
	}{
		{
			name: "SelfMatch",
			req: models.CreateMatchRequest{
				SeasonID: season.ID, Date: "2025-11-15",
				Wrestler1ID: a.ID, Wrestler2ID: a.ID, WinnerID: a.ID,
				WinMethod: models.WinMethodDecision,
			},
			wantErr: "a wrestler cannot compete against themselves",
		},
		{
			name: "DifferentWeightClasses",
			req: models.CreateMatchRequest{
				SeasonID: season.ID, Date: "2025-11-15",
				Wrestler1ID: a.ID, Wrestler2ID: heavy.ID, WinnerID: a.ID,
				WinMethod: models.WinMethodDecision,
			},
			wantErr: "wrestlers must be in the same weight class",
		},
		{
			name: "WinnerNotParticipant",
			req: models.CreateMatchRequest{
				SeasonID: season.ID, Date: "2025-11-15",
				Wrestler1ID: a.ID, Wrestler2ID: b.ID, WinnerID: heavy.ID,
				WinMethod: models.WinMethodDecision,
			},
			wantErr: "winner must be either wrestler1 or wrestler2",
		},
		{
			name: "InvalidWinMethod",
			req: models.CreateMatchRequest{
				SeasonID: season.ID, Date: "2025-11-15",
				Wrestler1ID: a.ID, Wrestler2ID: b.ID, WinnerID: a.ID,
				WinMethod: "Pinfall",
			},
			wantErr: "invalid win method",
		},
		{
			name: "BadDate",
			req: models.CreateMatchRequest{
				SeasonID: season.ID, Date: "11/15/2025",
				Wrestler1ID: a.ID, Wrestler2ID: b.ID, WinnerID: a.ID,
				WinMethod: models.WinMethodDecision,
			},
			wantErr: "invalid date format",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.matches.CreateMatch(tc.req)
			assert.EqualError(t, err, tc.wantErr)
		})
	}

	// A rejected match leaves no trace: no rows, no score movement.
	var count int64
	require.NoError(t, env.db.Model(&models.Match{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, models.DefaultElo, env.reload(t, a.ID).EloRating)
	assert.Equal(t, models.DefaultElo, env.reload(t, b.ID).EloRating)
}

func TestCreateMatchRunsCascade(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	match := env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodFall)
	require.NotNil(t, match.Wrestler1)
	require.NotNil(t, match.Winner)

	winner := env.reload(t, a.ID)
	assert.Greater(t, winner.EloRating, models.DefaultElo)
	assert.Equal(t, 1, winner.Wins)
	assert.InDelta(t, 6.0, winner.DominanceScore, 1e-9)

	// Hybrid is refreshed in the same cascade.
	assert.InDelta(t, 0.5*winner.EloRating+0.5*winner.RPI, winner.HybridScore, 1e-9)

	loser := env.reload(t, b.ID)
	assert.Less(t, loser.EloRating, models.DefaultElo)
	assert.Equal(t, 1, loser.Losses)
}

func TestUpdateMatchFlipsWinner(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)

	match := env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodFall)

	newWinner := b.ID
	_, err := env.matches.UpdateMatch(match.ID, models.UpdateMatchRequest{WinnerID: &newWinner})
	require.NoError(t, err)

	assert.Equal(t, 0, env.reload(t, a.ID).Wins)
	assert.Equal(t, 1, env.reload(t, a.ID).Losses)
	assert.Equal(t, 1, env.reload(t, b.ID).Wins)
	assert.Greater(t, env.reload(t, b.ID).EloRating, models.DefaultElo)
	assert.InDelta(t, 6.0, env.reload(t, b.ID).DominanceScore, 1e-9)
}

func TestUpdateMatchSwapsParticipant(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)
	c := env.createWrestler(t, season.ID, "Gavin Reed", 157)

	match := env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodDecision)

	// Replace B with C. B must be recalculated back to a clean slate even
	// though they are no longer on the match.
	newOpponent := c.ID
	_, err := env.matches.UpdateMatch(match.ID, models.UpdateMatchRequest{Wrestler2ID: &newOpponent})
	require.NoError(t, err)

	old := env.reload(t, b.ID)
	assert.Equal(t, models.DefaultElo, old.EloRating)
	assert.Zero(t, old.Wins)
	assert.Zero(t, old.Losses)

	assert.Equal(t, 1, env.reload(t, c.ID).Losses)
}

func TestUpdateMatchRejectsInvalidEdit(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)
	heavy := env.createWrestler(t, season.ID, "Wyatt Hansen", 285)

	match := env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodDecision)

	badOpponent := heavy.ID
	_, err := env.matches.UpdateMatch(match.ID, models.UpdateMatchRequest{Wrestler2ID: &badOpponent})
	assert.EqualError(t, err, "wrestlers must be in the same weight class")

	// The stored match is unchanged.
	stored, err := env.matches.GetMatch(match.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, stored.Wrestler2ID)
}

func TestDeleteMatchNotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.matches.DeleteMatch(9999)
	assert.EqualError(t, err, "match not found")
}

func TestGetMatchesFilters(t *testing.T) {
	env := newTestEnv(t)
	season := env.createSeason(t)
	a := env.createWrestler(t, season.ID, "Jake Miller", 157)
	b := env.createWrestler(t, season.ID, "Cole Brooks", 157)
	c := env.createWrestler(t, season.ID, "Gavin Reed", 157)

	env.createMatch(t, season.ID, "2025-11-15", a.ID, b.ID, a.ID, models.WinMethodDecision)
	env.createMatch(t, season.ID, "2025-11-22", b.ID, c.ID, b.ID, models.WinMethodDecision)

	result, err := env.matches.GetMatches(MatchFilters{Page: 1, PerPage: 10, WrestlerID: &a.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	result, err = env.matches.GetMatches(MatchFilters{Page: 1, PerPage: 10, SeasonID: &season.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
}
