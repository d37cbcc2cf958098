package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/domain/scorecard"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
)

func TestDebounceMapWindow(t *testing.T) {
	seen := newDebounceMap()
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	if !seen.shouldRun("m1", base, 5*time.Minute) {
		t.Fatal("first run must be allowed")
	}
	if seen.shouldRun("m1", base.Add(2*time.Minute), 5*time.Minute) {
		t.Error("run inside the debounce window must be suppressed")
	}
	if !seen.shouldRun("m2", base.Add(time.Second), 5*time.Minute) {
		t.Error("debounce is per match id")
	}
	if !seen.shouldRun("m1", base.Add(5*time.Minute), 5*time.Minute) {
		t.Error("run after the window elapses must be allowed")
	}
}

func TestSchedulerConfigNormalize(t *testing.T) {
	got := SchedulerConfig{}.normalize()
	want := DefaultSchedulerConfig()
	if got != want {
		t.Errorf("normalize() = %+v, want defaults %+v", got, want)
	}

	partial := SchedulerConfig{Workers: 2, ScoreDebounce: time.Minute}.normalize()
	if partial.Workers != 2 || partial.ScoreDebounce != time.Minute {
		t.Errorf("explicit values must survive normalize: %+v", partial)
	}
	if partial.XIDebounce != want.XIDebounce {
		t.Errorf("unset values must fall to defaults: %+v", partial)
	}
}

func TestTickScoreSyncOnlyTouchesLiveAndDelayed(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)

	live := testMatch("live")
	live.Status = match.StatusLive
	delayed := testMatch("delayed")
	delayed.Status = match.StatusDelayed
	upcoming := testMatch("upcoming")
	completed := testMatch("completed")
	completed.Status = match.StatusCompleted

	matches := newStubMatchRepo(live, delayed, upcoming, completed)
	players := newStubPlayerRepo("live")

	var mu sync.Mutex
	synced := map[string]int{}
	scorecards := &countingScorecardProvider{onFetch: func(key string) {
		mu.Lock()
		synced[key]++
		mu.Unlock()
	}}

	score := NewScorecardService(matches, players, scorecards, nil, nil, logging.NewNop())
	scheduler := NewSchedulerService(matches, nil, score, DefaultSchedulerConfig(), logging.NewNop()).
		WithClock(func() time.Time { return now })

	workers, err := ants.NewPool(2)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	defer workers.Release()

	scheduler.tickScoreSync(context.Background(), workers)

	mu.Lock()
	defer mu.Unlock()
	if synced["ext-live"] != 1 || synced["ext-delayed"] != 1 {
		t.Errorf("synced = %v, want live and delayed once each", synced)
	}
	if synced["ext-upcoming"] != 0 || synced["ext-completed"] != 0 {
		t.Errorf("synced = %v, upcoming/completed must be skipped", synced)
	}
}

func TestTickScoreSyncDebouncesPerMatch(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)
	live := testMatch("live")
	live.Status = match.StatusLive
	matches := newStubMatchRepo(live)

	var mu sync.Mutex
	calls := 0
	scorecards := &countingScorecardProvider{onFetch: func(string) {
		mu.Lock()
		calls++
		mu.Unlock()
	}}

	score := NewScorecardService(matches, newStubPlayerRepo("live"), scorecards, nil, nil, logging.NewNop())
	scheduler := NewSchedulerService(matches, nil, score, DefaultSchedulerConfig(), logging.NewNop()).
		WithClock(func() time.Time { return now })

	workers, err := ants.NewPool(2)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	defer workers.Release()

	scheduler.tickScoreSync(context.Background(), workers)
	scheduler.tickScoreSync(context.Background(), workers)

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("fetches = %d, want 1 inside the debounce window", calls)
	}
}

func TestTickXIRefreshUsesLeadWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 13, 45, 0, 0, time.UTC)

	soon := testMatch("soon") // starts 14:00, inside 20m lead
	farOff := testMatch("far")
	farOff.StartAt = now.Add(3 * time.Hour)

	matches := newStubMatchRepo(soon, farOff)
	players := newStubPlayerRepo("soon", testRoster("soon")...)

	var mu sync.Mutex
	resolved := map[string]int{}
	scorecards := &countingScorecardProvider{onFetch: func(key string) {
		mu.Lock()
		resolved[key]++
		mu.Unlock()
	}}

	xi := NewPlayingXIService(matches, players, scorecards, nil, nil, logging.NewNop())
	score := NewScorecardService(matches, players, scorecards, nil, nil, logging.NewNop())
	scheduler := NewSchedulerService(matches, xi, score, DefaultSchedulerConfig(), logging.NewNop()).
		WithClock(func() time.Time { return now })

	workers, err := ants.NewPool(2)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	defer workers.Release()

	scheduler.tickXIRefresh(context.Background(), workers)

	mu.Lock()
	defer mu.Unlock()
	if resolved["ext-soon"] == 0 {
		t.Error("a match inside the lead window must be refreshed")
	}
	if resolved["ext-far"] != 0 {
		t.Error("a match outside the lead window must be skipped")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	matches := newStubMatchRepo()
	players := newStubPlayerRepo("none")
	score := NewScorecardService(matches, players, &stubScorecardProvider{}, nil, nil, logging.NewNop())
	xi := NewPlayingXIService(matches, players, &stubScorecardProvider{}, nil, nil, logging.NewNop())

	cfg := DefaultSchedulerConfig()
	cfg.TickInterval = 10 * time.Millisecond
	scheduler := NewSchedulerService(matches, xi, score, cfg, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- scheduler.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not stop after cancellation")
	}
}

// countingScorecardProvider records fetches by match key and always returns
// an empty snapshot.
type countingScorecardProvider struct {
	onFetch func(matchKey string)
}

func (p *countingScorecardProvider) Name() string { return "counting" }

func (p *countingScorecardProvider) FetchScorecard(_ context.Context, matchKey string) (scorecard.Snapshot, error) {
	if p.onFetch != nil {
		p.onFetch(matchKey)
	}
	return scorecard.Snapshot{}, nil
}
