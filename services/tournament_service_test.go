package services

import (
	"context"
	"strings"
	"testing"

	"github.com/Dosada05/swiss-system/brackets"
	"github.com/Dosada05/swiss-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterPlayer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.tournament.RegisterPlayer(ctx, "  Chandra Nalaar ")
	require.NoError(t, err)
	assert.Positive(t, p.ID)
	assert.Equal(t, "Chandra Nalaar", p.Name)

	_, err = env.tournament.RegisterPlayer(ctx, "   ")
	assert.ErrorIs(t, err, ErrPlayerNameRequired)

	_, err = env.tournament.RegisterPlayer(ctx, strings.Repeat("x", maxPlayerNameLength+1))
	assert.ErrorIs(t, err, ErrValidationFailed)

	// Postgres rejects NUL in text columns with SQLSTATE 22021.
	_, err = env.tournament.RegisterPlayer(ctx, "Chandra\x00Nalaar")
	assert.ErrorIs(t, err, ErrValidationFailed)

	// Имена не обязаны быть уникальными.
	_, err = env.tournament.RegisterPlayer(ctx, "Chandra Nalaar")
	require.NoError(t, err)

	n, err := env.tournament.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{brackets.EventPlayerRegistered, brackets.EventPlayerRegistered}, env.publisher.types())
}

func TestStandingsBeforeMatches(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	standings, err := env.tournament.PlayerStandings(ctx)
	require.NoError(t, err)
	assert.Empty(t, standings)

	env.register(t, "Melpomene Murray", "Randy Schwartz", "Ann", "Bo")
	standings, err = env.tournament.PlayerStandings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 4)
	for _, e := range standings {
		assert.Zero(t, e.Wins)
		assert.Zero(t, e.Matches)
	}
}

func TestReportMatchAndPairings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ids := env.register(t, "A", "B", "C", "D")

	_, err := env.tournament.ReportMatch(ctx, ids[0], ids[1])
	require.NoError(t, err)
	_, err = env.tournament.ReportMatch(ctx, ids[2], ids[3])
	require.NoError(t, err)

	standings, err := env.tournament.PlayerStandings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.StandingEntry{
		{PlayerID: ids[0], Name: "A", Wins: 1, Matches: 1},
		{PlayerID: ids[2], Name: "C", Wins: 1, Matches: 1},
		{PlayerID: ids[1], Name: "B", Wins: 0, Matches: 1},
		{PlayerID: ids[3], Name: "D", Wins: 0, Matches: 1},
	}, standings)

	pairings, err := env.tournament.SwissPairings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Pairing{
		{Player1ID: ids[0], Player1Name: "A", Player2ID: ids[2], Player2Name: "C"},
		{Player1ID: ids[1], Player1Name: "B", Player2ID: ids[3], Player2Name: "D"},
	}, pairings)
}

func TestReportMatchValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ids := env.register(t, "A", "B")

	tests := []struct {
		name    string
		winner  int
		loser   int
		wantErr error
	}{
		{"same player", ids[0], ids[0], ErrSamePlayer},
		{"non positive id", 0, ids[1], ErrValidationFailed},
		{"winner beyond int4", maxPlayerID + 1, ids[1], ErrValidationFailed},
		{"loser beyond int4", ids[0], maxPlayerID + 1, ErrValidationFailed},
		{"unknown loser", ids[0], ids[1] + 100, ErrPlayerNotFound},
		{"unknown winner", ids[1] + 100, ids[0], ErrPlayerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.tournament.ReportMatch(ctx, tt.winner, tt.loser)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := env.tournament.ReportMatch(ctx, ids[0], ids[1]+100)
	assert.ErrorIs(t, err, ErrIntegrity, "unknown player is also an integrity violation")

	matches, err := env.tournament.ListMatches(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, matches, "rejected reports must not leave records")
}

func TestReportMatchRounds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ids := env.register(t, "A", "B", "C", "D")

	status, err := env.tournament.CurrentRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, &models.RoundStatus{Round: models.FirstRound, MatchesPerRound: 2}, status)

	m1, err := env.tournament.ReportMatch(ctx, ids[0], ids[1])
	require.NoError(t, err)
	m2, err := env.tournament.ReportMatch(ctx, ids[2], ids[3])
	require.NoError(t, err)
	assert.Equal(t, 1, m1.Round)
	assert.Equal(t, 1, m2.Round)

	status, err = env.tournament.CurrentRound(ctx)
	require.NoError(t, err)
	assert.True(t, status.Complete)

	m3, err := env.tournament.ReportMatch(ctx, ids[0], ids[2])
	require.NoError(t, err)
	assert.Equal(t, 2, m3.Round)

	round := 2
	second, err := env.tournament.ListMatches(ctx, &round)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, m3.ID, second[0].ID)

	round = 0
	_, err = env.tournament.ListMatches(ctx, &round)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestDeleteMatchesKeepsPlayers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ids := env.register(t, "A", "B", "C", "D")
	_, err := env.tournament.ReportMatch(ctx, ids[0], ids[1])
	require.NoError(t, err)

	require.NoError(t, env.tournament.DeleteMatches(ctx))

	n, err := env.tournament.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	standings, err := env.tournament.PlayerStandings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 4)
	for _, e := range standings {
		assert.Zero(t, e.Wins, "wins of %s", e.Name)
		assert.Zero(t, e.Matches, "matches of %s", e.Name)
	}
	assert.Contains(t, env.publisher.types(), brackets.EventMatchesCleared)
}

func TestDeletePlayers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ids := env.register(t, "A", "B")
	_, err := env.tournament.ReportMatch(ctx, ids[0], ids[1])
	require.NoError(t, err)

	require.NoError(t, env.tournament.DeletePlayers(ctx))

	n, err := env.tournament.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	matches, err := env.tournament.ListMatches(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Contains(t, env.publisher.types(), brackets.EventPlayersCleared)
}

func TestSwissPairingsOddCount(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "A", "B", "C")

	_, err := env.tournament.SwissPairings(context.Background())
	assert.ErrorIs(t, err, ErrOddPlayerCount)
}

func TestSwissPairingsEmpty(t *testing.T) {
	env := newTestEnv(t)

	pairings, err := env.tournament.SwissPairings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pairings)
}

func TestStorageUnavailable(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.conn.Close())
	ctx := context.Background()

	_, err := env.tournament.RegisterPlayer(ctx, "A")
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = env.tournament.CountPlayers(ctx)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = env.tournament.PlayerStandings(ctx)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = env.tournament.SwissPairings(ctx)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = env.tournament.ReportMatch(ctx, 1, 2)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Empty(t, env.publisher.types())
}

func TestGetPlayer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ids := env.register(t, "Bruno Walrus")

	p, err := env.tournament.GetPlayer(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "Bruno Walrus", p.Name)

	_, err = env.tournament.GetPlayer(ctx, ids[0]+1)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = env.tournament.GetPlayer(ctx, -1)
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = env.tournament.GetPlayer(ctx, maxPlayerID+1)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestStandingsSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ids := env.register(t, "A", "B", "C", "D")
	_, err := env.tournament.ReportMatch(ctx, ids[0], ids[1])
	require.NoError(t, err)

	status, standings, err := env.tournament.StandingsSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.RoundStatus{Round: 1, MatchesPlayed: 1, MatchesPerRound: 2}, *status)
	require.Len(t, standings, 4)
	assert.Equal(t, ids[0], standings[0].PlayerID)
	assert.Equal(t, 1, standings[0].Wins)

	require.NoError(t, env.conn.Close())
	_, _, err = env.tournament.StandingsSnapshot(ctx)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
