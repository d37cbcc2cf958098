package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/domain/player"
	"github.com/pitchside/fantasy-cricket/internal/domain/scorecard"
	"github.com/pitchside/fantasy-cricket/internal/domain/userteam"
)

type stubMatchRepo struct {
	mu      sync.Mutex
	items   map[string]match.Match
	updates []match.Match
}

func newStubMatchRepo(items ...match.Match) *stubMatchRepo {
	repo := &stubMatchRepo{items: make(map[string]match.Match)}
	for _, item := range items {
		repo.items[item.ID] = item
	}
	return repo
}

func (r *stubMatchRepo) GetByID(_ context.Context, id string) (match.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	return item, ok, nil
}

func (r *stubMatchRepo) List(_ context.Context) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]match.Match, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *stubMatchRepo) Update(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	r.updates = append(r.updates, item)
	return nil
}

type stubPlayerRepo struct {
	mu        sync.Mutex
	byMatch   map[string][]player.Player
	updates   []player.Player
	markCalls [][]string
}

func newStubPlayerRepo(matchID string, roster ...player.Player) *stubPlayerRepo {
	return &stubPlayerRepo{byMatch: map[string][]player.Player{matchID: roster}}
}

func (r *stubPlayerRepo) ListByMatch(_ context.Context, matchID string) ([]player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]player.Player(nil), r.byMatch[matchID]...), nil
}

func (r *stubPlayerRepo) Update(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, item)
	roster := r.byMatch[item.MatchID]
	for i := range roster {
		if roster[i].ID == item.ID {
			roster[i] = item
		}
	}
	return nil
}

func (r *stubPlayerRepo) UpsertForMatch(_ context.Context, matchID string, items []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byMatch[matchID] = append([]player.Player(nil), items...)
	return nil
}

func (r *stubPlayerRepo) MarkPlayingXI(_ context.Context, matchID string, playerIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markCalls = append(r.markCalls, append([]string(nil), playerIDs...))
	set := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		set[id] = struct{}{}
	}
	roster := r.byMatch[matchID]
	for i := range roster {
		_, in := set[roster[i].ID]
		roster[i].IsPlayingXI = in
	}
	return nil
}

type stubTeamRepo struct {
	mu      sync.Mutex
	byMatch map[string][]userteam.UserTeam
	writes  map[string]float64
}

func newStubTeamRepo(matchID string, teams ...userteam.UserTeam) *stubTeamRepo {
	return &stubTeamRepo{
		byMatch: map[string][]userteam.UserTeam{matchID: teams},
		writes:  make(map[string]float64),
	}
}

func (r *stubTeamRepo) ListByMatch(_ context.Context, matchID string) ([]userteam.UserTeam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]userteam.UserTeam(nil), r.byMatch[matchID]...), nil
}

func (r *stubTeamRepo) UpdatePoints(_ context.Context, teamID string, totalPoints float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes[teamID] = totalPoints
	return nil
}

type stubScorecardProvider struct {
	snapshot scorecard.Snapshot
	err      error
	calls    int
}

func (p *stubScorecardProvider) Name() string { return "stub-scorecard" }

func (p *stubScorecardProvider) FetchScorecard(context.Context, string) (scorecard.Snapshot, error) {
	p.calls++
	return p.snapshot, p.err
}

type stubStatusProvider struct {
	status MatchStatus
	err    error
	calls  int
}

func (p *stubStatusProvider) Name() string { return "stub-status" }

func (p *stubStatusProvider) FetchMatchStatus(context.Context, string) (MatchStatus, error) {
	p.calls++
	return p.status, p.err
}

type stubLineupProvider struct {
	lineup Lineup
	err    error
	calls  int
}

func (p *stubLineupProvider) Name() string { return "stub-lineup" }

func (p *stubLineupProvider) FetchLineup(context.Context, string, string, time.Time) (Lineup, error) {
	p.calls++
	return p.lineup, p.err
}

type stubRecomputer struct {
	calls []string
	err   error
}

func (r *stubRecomputer) RecomputeForMatch(_ context.Context, matchID string) error {
	r.calls = append(r.calls, matchID)
	return r.err
}
