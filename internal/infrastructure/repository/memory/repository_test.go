package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/domain/player"
	"github.com/pitchside/fantasy-cricket/internal/domain/userteam"
)

func TestMatchRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository([]match.Match{
		{ID: "m1", Status: match.StatusUpcoming, StartAt: time.Now()},
		{ID: "m2", Status: match.StatusLive, StartAt: time.Now()},
	})

	got, ok, err := repo.GetByID(ctx, "m1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "m1", got.ID)

	_, ok, err = repo.GetByID(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	got.Status = match.StatusLive
	got.StatusNote = "play underway"
	require.NoError(t, repo.Update(ctx, got))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "m1", all[0].ID, "list keeps insertion order")
	require.Equal(t, match.StatusLive, all[0].Status)
	require.Equal(t, "play underway", all[0].StatusNote)
}

func TestPlayerRepositoryMarkPlayingXI(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository([]player.Player{
		{ID: "p1", MatchID: "m1", Name: "Virat Kohli", IsPlayingXI: true},
		{ID: "p2", MatchID: "m1", Name: "Rohit Sharma"},
		{ID: "p3", MatchID: "m1", Name: "Jasprit Bumrah"},
		{ID: "p9", MatchID: "m2", Name: "Steve Smith", IsPlayingXI: true},
	})

	require.NoError(t, repo.MarkPlayingXI(ctx, "m1", []string{"p2", "p3"}))

	roster, err := repo.ListByMatch(ctx, "m1")
	require.NoError(t, err)
	flags := make(map[string]bool, len(roster))
	for _, p := range roster {
		flags[p.ID] = p.IsPlayingXI
	}
	require.Equal(t, map[string]bool{"p1": false, "p2": true, "p3": true}, flags,
		"marking resets flags not in the new eleven")

	other, err := repo.ListByMatch(ctx, "m2")
	require.NoError(t, err)
	require.True(t, other[0].IsPlayingXI, "other matches are untouched")
}

func TestPlayerRepositoryUpsertForMatch(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository([]player.Player{
		{ID: "p1", MatchID: "m1", Name: "Virat Kohli"},
	})

	require.NoError(t, repo.UpsertForMatch(ctx, "m1", []player.Player{
		{ID: "p1", MatchID: "m1", Name: "Virat Kohli", ExternalID: "ck-1"},
		{ID: "p2", MatchID: "m1", Name: "Rohit Sharma"},
	}))

	roster, err := repo.ListByMatch(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, roster, 2)
	require.Equal(t, "ck-1", roster[0].ExternalID, "existing row updated in place")
}

func TestUserTeamRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserTeamRepository([]userteam.UserTeam{
		{ID: "t1", MatchID: "m1", PlayerIDs: []string{"p1", "p2"}},
	})

	teams, err := repo.ListByMatch(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, teams, 1)

	// Listed teams are copies; mutating one must not leak into the store.
	teams[0].PlayerIDs[0] = "tampered"
	again, err := repo.ListByMatch(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, "p1", again[0].PlayerIDs[0])

	require.NoError(t, repo.UpdatePoints(ctx, "t1", 125.5))
	again, err = repo.ListByMatch(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, 125.5, again[0].TotalPoints)
}
