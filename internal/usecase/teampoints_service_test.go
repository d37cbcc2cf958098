package usecase

import (
	"context"
	"testing"

	"github.com/pitchside/fantasy-cricket/internal/domain/player"
	"github.com/pitchside/fantasy-cricket/internal/domain/userteam"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
)

func elevenIDs(prefix string) []string {
	ids := make([]string, 11)
	for i := range ids {
		ids[i] = prefix + string(rune('a'+i))
	}
	return ids
}

func TestRecomputeForMatchAppliesMultipliers(t *testing.T) {
	ids := elevenIDs("p-")
	roster := make([]player.Player, len(ids))
	for i, id := range ids {
		roster[i] = player.Player{ID: id, MatchID: "m1", Points: 10}
	}
	players := newStubPlayerRepo("m1", roster...)

	team := userteam.UserTeam{
		ID:            "t1",
		MatchID:       "m1",
		PlayerIDs:     ids,
		CaptainID:     ids[0],
		ViceCaptainID: ids[1],
	}
	teams := newStubTeamRepo("m1", team)

	svc := NewTeamPointsService(players, teams, logging.NewNop(), 4)
	if err := svc.RecomputeForMatch(context.Background(), "m1"); err != nil {
		t.Fatalf("RecomputeForMatch() error = %v", err)
	}

	// 9 x 10 + captain 20 + vice 15 = 125.
	if got := teams.writes["t1"]; got != 125 {
		t.Errorf("total = %v, want 125", got)
	}
}

func TestRecomputeForMatchMissingPlayerContributesZero(t *testing.T) {
	ids := elevenIDs("p-")
	roster := make([]player.Player, 0, len(ids)-1)
	for _, id := range ids[1:] { // ids[0], the captain, has no player row
		roster = append(roster, player.Player{ID: id, MatchID: "m1", Points: 10})
	}
	players := newStubPlayerRepo("m1", roster...)

	team := userteam.UserTeam{
		ID:            "t1",
		MatchID:       "m1",
		PlayerIDs:     ids,
		CaptainID:     ids[0],
		ViceCaptainID: ids[1],
	}
	teams := newStubTeamRepo("m1", team)

	svc := NewTeamPointsService(players, teams, logging.NewNop(), 4)
	if err := svc.RecomputeForMatch(context.Background(), "m1"); err != nil {
		t.Fatalf("RecomputeForMatch() error = %v", err)
	}

	// Orphaned captain contributes 0: vice 15 + 9 x 10 = 105.
	if got := teams.writes["t1"]; got != 105 {
		t.Errorf("total = %v, want 105 with orphaned captain", got)
	}
}

func TestRecomputeForMatchSkipsUnchangedTotals(t *testing.T) {
	ids := elevenIDs("p-")
	roster := make([]player.Player, len(ids))
	for i, id := range ids {
		roster[i] = player.Player{ID: id, MatchID: "m1", Points: 10}
	}
	players := newStubPlayerRepo("m1", roster...)

	team := userteam.UserTeam{
		ID:            "t1",
		MatchID:       "m1",
		PlayerIDs:     ids,
		CaptainID:     ids[0],
		ViceCaptainID: ids[1],
		TotalPoints:   125, // already correct
	}
	teams := newStubTeamRepo("m1", team)

	svc := NewTeamPointsService(players, teams, logging.NewNop(), 4)
	if err := svc.RecomputeForMatch(context.Background(), "m1"); err != nil {
		t.Fatalf("RecomputeForMatch() error = %v", err)
	}
	if _, wrote := teams.writes["t1"]; wrote {
		t.Error("an unchanged total must not be rewritten")
	}
}

func TestTotalPointsRebuildNeverDrifts(t *testing.T) {
	ids := elevenIDs("p-")
	team := userteam.UserTeam{
		ID:            "t1",
		MatchID:       "m1",
		PlayerIDs:     ids,
		CaptainID:     ids[2],
		ViceCaptainID: ids[5],
	}
	pointsByID := map[string]int{}
	for i, id := range ids {
		pointsByID[id] = i * 7
	}

	first := TotalPoints(team, pointsByID)
	second := TotalPoints(team, pointsByID)
	if first != second {
		t.Fatalf("recomputation drifted: %v vs %v", first, second)
	}

	want := 0.0
	for i, id := range ids {
		want += float64(i*7) * team.Multiplier(id)
	}
	if first != want {
		t.Errorf("total = %v, want %v", first, want)
	}
}
