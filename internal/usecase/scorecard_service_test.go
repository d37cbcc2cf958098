package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/domain/scorecard"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
)

// fixtureSnapshot is a two-innings scorecard with every scoring path
// exercised: milestones, strike rate, a duck, an lbw bowler credit, a catch
// and an economy bonus.
func fixtureSnapshot() scorecard.Snapshot {
	return scorecard.Snapshot{
		MatchKey: "ext-m1",
		Innings: []scorecard.Innings{
			{
				Label: "India Inning 1",
				Batting: []scorecard.BattingRow{
					{PlayerName: "V Kohli", Runs: 55, Balls: 32, Fours: 6, Sixes: 2, Dismissal: "c Smith b Starc", Out: true},
				},
				Bowling: []scorecard.BowlingRow{
					{PlayerName: "M Starc", Overs: 4, Runs: 35, Wickets: 1},
				},
			},
			{
				Label: "Australia Inning 1",
				Batting: []scorecard.BattingRow{
					{PlayerName: "S Smith", Runs: 0, Balls: 3, Dismissal: "lbw b J Bumrah", Out: true},
				},
				Bowling: []scorecard.BowlingRow{
					{PlayerName: "J Bumrah", Overs: 4, Maidens: 1, Runs: 20, Wickets: 3},
				},
			},
		},
	}
}

func TestSyncPointsComputesExactTotals(t *testing.T) {
	m := testMatch("m1")
	m.Status = match.StatusLive
	matches := newStubMatchRepo(m)
	players := newStubPlayerRepo("m1", testRoster("m1")...)
	scorecards := &stubScorecardProvider{snapshot: fixtureSnapshot()}
	recomputer := &stubRecomputer{}

	svc := NewScorecardService(matches, players, scorecards, nil, recomputer, logging.NewNop())
	result, err := svc.SyncPoints(context.Background(), "m1")
	if err != nil {
		t.Fatalf("SyncPoints() error = %v", err)
	}

	current, _ := players.ListByMatch(context.Background(), "m1")
	got := make(map[string]int)
	for _, item := range current {
		got[item.Name] = item.Points
	}

	// Kohli: 55 runs + 6 four bonuses + 4 six bonuses + 30/50 milestones
	// (+4+8) + strike-rate 171.9 (+6) = 83.
	if got["Virat Kohli"] != 83 {
		t.Errorf("Kohli points = %d, want 83", got["Virat Kohli"])
	}
	// Bumrah: 3x30 wickets + 3w bonus (+4) + maiden (+12) + economy 5.0
	// (+4) + lbw credit (+8) = 118.
	if got["Jasprit Bumrah"] != 118 {
		t.Errorf("Bumrah points = %d, want 118", got["Jasprit Bumrah"])
	}
	// Smith: duck (-2) + catch (+8) = 6.
	if got["Steve Smith"] != 6 {
		t.Errorf("Smith points = %d, want 6", got["Steve Smith"])
	}
	// Rohit never appears, stays at zero with no write.
	if got["Rohit Sharma"] != 0 {
		t.Errorf("Rohit points = %d, want 0", got["Rohit Sharma"])
	}
	if result.PlayersChanged != 3 {
		t.Errorf("players changed = %d, want 3", result.PlayersChanged)
	}
	if len(recomputer.calls) != 1 || recomputer.calls[0] != "m1" {
		t.Errorf("recompute calls = %v, want one for m1", recomputer.calls)
	}
}

func TestSyncPointsIsIdempotent(t *testing.T) {
	m := testMatch("m1")
	m.Status = match.StatusLive
	matches := newStubMatchRepo(m)
	players := newStubPlayerRepo("m1", testRoster("m1")...)
	scorecards := &stubScorecardProvider{snapshot: fixtureSnapshot()}
	recomputer := &stubRecomputer{}

	svc := NewScorecardService(matches, players, scorecards, nil, recomputer, logging.NewNop())
	if _, err := svc.SyncPoints(context.Background(), "m1"); err != nil {
		t.Fatalf("first sync error = %v", err)
	}
	second, err := svc.SyncPoints(context.Background(), "m1")
	if err != nil {
		t.Fatalf("second sync error = %v", err)
	}
	if second.PlayersChanged != 0 {
		t.Errorf("second sync changed %d players, want 0 on identical input", second.PlayersChanged)
	}
	if len(recomputer.calls) != 1 {
		t.Errorf("recompute calls = %d, want 1; unchanged points must not re-aggregate", len(recomputer.calls))
	}
}

func TestSyncPointsEmptySnapshotIsNoOp(t *testing.T) {
	matches := newStubMatchRepo(testMatch("m1"))
	roster := testRoster("m1")
	roster[0].Points = 42
	players := newStubPlayerRepo("m1", roster...)
	recomputer := &stubRecomputer{}

	svc := NewScorecardService(matches, players, &stubScorecardProvider{}, nil, recomputer, logging.NewNop())
	result, err := svc.SyncPoints(context.Background(), "m1")
	if err != nil {
		t.Fatalf("SyncPoints() error = %v", err)
	}
	if result.PlayersChanged != 0 {
		t.Errorf("players changed = %d, want 0", result.PlayersChanged)
	}

	current, _ := players.ListByMatch(context.Background(), "m1")
	if current[0].Points != 42 {
		t.Error("missing provider data must never clear prior points")
	}
	if len(recomputer.calls) != 0 {
		t.Error("no aggregation should run on an empty snapshot")
	}
}

func TestRefreshStatusDropsRegressiveTransition(t *testing.T) {
	m := testMatch("m1")
	m.Status = match.StatusLive
	matches := newStubMatchRepo(m)
	statuses := &stubStatusProvider{status: MatchStatus{Status: match.StatusUpcoming, Note: "glitch"}}

	svc := NewScorecardService(matches, newStubPlayerRepo("m1"), &stubScorecardProvider{}, statuses, nil, logging.NewNop())
	if err := svc.RefreshStatus(context.Background(), "m1"); err != nil {
		t.Fatalf("RefreshStatus() error = %v", err)
	}
	current, _, _ := matches.GetByID(context.Background(), "m1")
	if current.Status != match.StatusLive {
		t.Errorf("status = %v, regressive transition must be dropped", current.Status)
	}
}

func TestRefreshStatusAdvancesAndStamps(t *testing.T) {
	m := testMatch("m1")
	m.Status = match.StatusLive
	matches := newStubMatchRepo(m)
	statuses := &stubStatusProvider{status: MatchStatus{Status: match.StatusCompleted, Note: "India won by 5 wkts"}}

	at := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	svc := NewScorecardService(matches, newStubPlayerRepo("m1"), &stubScorecardProvider{}, statuses, nil, logging.NewNop()).
		WithClock(func() time.Time { return at })
	if err := svc.RefreshStatus(context.Background(), "m1"); err != nil {
		t.Fatalf("RefreshStatus() error = %v", err)
	}

	current, _, _ := matches.GetByID(context.Background(), "m1")
	if current.Status != match.StatusCompleted {
		t.Errorf("status = %v, want COMPLETED", current.Status)
	}
	if current.StatusNote != "India won by 5 wkts" {
		t.Errorf("note = %q", current.StatusNote)
	}
	if current.LastSyncAt == nil || !current.LastSyncAt.Equal(at) {
		t.Errorf("last sync = %v, want %v", current.LastSyncAt, at)
	}
}

func TestRefreshStatusUpcomingDelayedFlipFlops(t *testing.T) {
	m := testMatch("m1")
	matches := newStubMatchRepo(m)
	statuses := &stubStatusProvider{status: MatchStatus{Status: match.StatusDelayed, Note: "rain"}}

	svc := NewScorecardService(matches, newStubPlayerRepo("m1"), &stubScorecardProvider{}, statuses, nil, logging.NewNop())
	if err := svc.RefreshStatus(context.Background(), "m1"); err != nil {
		t.Fatalf("RefreshStatus() error = %v", err)
	}
	current, _, _ := matches.GetByID(context.Background(), "m1")
	if current.Status != match.StatusDelayed {
		t.Fatalf("status = %v, want DELAYED", current.Status)
	}

	statuses.status = MatchStatus{Status: match.StatusUpcoming, Note: "covers off"}
	if err := svc.RefreshStatus(context.Background(), "m1"); err != nil {
		t.Fatalf("RefreshStatus() error = %v", err)
	}
	current, _, _ = matches.GetByID(context.Background(), "m1")
	if current.Status != match.StatusUpcoming {
		t.Errorf("status = %v, DELAYED back to UPCOMING must be allowed", current.Status)
	}
}
