package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
	"golang.org/x/sync/errgroup"
)

// SchedulerConfig sets the cadences of the three reconciliation loops.
type SchedulerConfig struct {
	// TickInterval is how often each loop scans for eligible matches. The
	// per-match debounce windows below decide whether a scan acts.
	TickInterval time.Duration

	XILeadWindow     time.Duration
	XIDebounce       time.Duration
	LineupLeadWindow time.Duration
	LineupDebounce   time.Duration
	ScoreDebounce    time.Duration

	// Workers bounds concurrent match reconciliations across all loops, to
	// stay inside per-provider rate limits.
	Workers int
}

func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		TickInterval:     30 * time.Second,
		XILeadWindow:     20 * time.Minute,
		XIDebounce:       5 * time.Minute,
		LineupLeadWindow: 10 * time.Minute,
		LineupDebounce:   5 * time.Minute,
		ScoreDebounce:    2 * time.Minute,
		Workers:          6,
	}
}

func (c SchedulerConfig) normalize() SchedulerConfig {
	defaults := DefaultSchedulerConfig()
	if c.TickInterval <= 0 {
		c.TickInterval = defaults.TickInterval
	}
	if c.XILeadWindow <= 0 {
		c.XILeadWindow = defaults.XILeadWindow
	}
	if c.XIDebounce <= 0 {
		c.XIDebounce = defaults.XIDebounce
	}
	if c.LineupLeadWindow <= 0 {
		c.LineupLeadWindow = defaults.LineupLeadWindow
	}
	if c.LineupDebounce <= 0 {
		c.LineupDebounce = defaults.LineupDebounce
	}
	if c.ScoreDebounce <= 0 {
		c.ScoreDebounce = defaults.ScoreDebounce
	}
	if c.Workers < 1 {
		c.Workers = defaults.Workers
	}
	return c
}

// SchedulerService drives the three periodic reconciliation loops. Loops are
// stateless per tick beyond their debounce maps, idempotent, and safe to
// overlap: a match leaving its time window is simply skipped on the next
// tick.
type SchedulerService struct {
	matches    match.Repository
	xi         *PlayingXIService
	scorecards *ScorecardService
	cfg        SchedulerConfig
	logger     *logging.Logger
	now        func() time.Time

	xiSeen     *debounceMap
	lineupSeen *debounceMap
	scoreSeen  *debounceMap
}

func NewSchedulerService(
	matches match.Repository,
	xi *PlayingXIService,
	scorecards *ScorecardService,
	cfg SchedulerConfig,
	logger *logging.Logger,
) *SchedulerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SchedulerService{
		matches:    matches,
		xi:         xi,
		scorecards: scorecards,
		cfg:        cfg.normalize(),
		logger:     logger,
		now:        time.Now,
		xiSeen:     newDebounceMap(),
		lineupSeen: newDebounceMap(),
		scoreSeen:  newDebounceMap(),
	}
}

// WithClock replaces the time source. Test use only.
func (s *SchedulerService) WithClock(now func() time.Time) *SchedulerService {
	if now != nil {
		s.now = now
	}
	return s
}

// Run blocks until the context is cancelled, driving all three loops over a
// shared bounded worker pool.
func (s *SchedulerService) Run(ctx context.Context) error {
	workers, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return err
	}
	defer workers.Release()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error { return s.loop(ctx, workers, "xi-refresh", s.tickXIRefresh) })
	group.Go(func() error { return s.loop(ctx, workers, "lineup-verify", s.tickLineupVerify) })
	group.Go(func() error { return s.loop(ctx, workers, "score-sync", s.tickScoreSync) })
	return group.Wait()
}

func (s *SchedulerService) loop(ctx context.Context, workers *ants.Pool, name string, tick func(ctx context.Context, workers *ants.Pool)) error {
	s.logger.Info("scheduler loop started", "loop", name, "tick", s.cfg.TickInterval)
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler loop stopped", "loop", name)
			return ctx.Err()
		case <-ticker.C:
			tick(ctx, workers)
		}
	}
}

// tickXIRefresh resolves the Playing XI for matches starting inside the lead
// window or already in play. A status refresh runs first so matches going
// live are caught by this loop rather than waiting for an operator.
func (s *SchedulerService) tickXIRefresh(ctx context.Context, workers *ants.Pool) {
	s.forEligible(ctx, workers, s.xiSeen, s.cfg.XIDebounce, func(m match.Match) bool {
		return m.IsLiveOrDelayed() || m.StartsWithin(s.now(), s.cfg.XILeadWindow)
	}, func(ctx context.Context, m match.Match) {
		if err := s.scorecards.RefreshStatus(ctx, m.ID); err != nil {
			s.logger.WarnContext(ctx, "status refresh failed", "match_id", m.ID, "error", err)
		}
		if _, err := s.xi.Resolve(ctx, m.ID); err != nil {
			s.logger.WarnContext(ctx, "xi refresh failed", "match_id", m.ID, "error", err)
		}
	})
}

// tickLineupVerify corroborates the marked XI against the regional provider
// shortly before and during play.
func (s *SchedulerService) tickLineupVerify(ctx context.Context, workers *ants.Pool) {
	s.forEligible(ctx, workers, s.lineupSeen, s.cfg.LineupDebounce, func(m match.Match) bool {
		return m.Status == match.StatusLive || m.StartsWithin(s.now(), s.cfg.LineupLeadWindow)
	}, func(ctx context.Context, m match.Match) {
		if err := s.xi.Corroborate(ctx, m.ID); err != nil {
			s.logger.WarnContext(ctx, "lineup verification failed", "match_id", m.ID, "error", err)
		}
	})
}

// tickScoreSync runs the full fetch-score-write-aggregate pipeline for
// matches in play.
func (s *SchedulerService) tickScoreSync(ctx context.Context, workers *ants.Pool) {
	s.forEligible(ctx, workers, s.scoreSeen, s.cfg.ScoreDebounce, func(m match.Match) bool {
		return m.IsLiveOrDelayed()
	}, func(ctx context.Context, m match.Match) {
		if _, err := s.scorecards.SyncPoints(ctx, m.ID); err != nil {
			s.logger.WarnContext(ctx, "points sync failed", "match_id", m.ID, "error", err)
		}
	})
}

// forEligible fans eligible matches out over the worker pool and waits for
// the tick's work to finish. Debounce is recorded at submission so a slow
// action cannot be re-queued by the next tick.
func (s *SchedulerService) forEligible(
	ctx context.Context,
	workers *ants.Pool,
	seen *debounceMap,
	debounce time.Duration,
	eligible func(match.Match) bool,
	action func(ctx context.Context, m match.Match),
) {
	items, err := s.matches.List(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "match listing failed", "error", err)
		return
	}

	now := s.now()
	var wg sync.WaitGroup
	for _, item := range items {
		if !eligible(item) {
			continue
		}
		if !seen.shouldRun(item.ID, now, debounce) {
			continue
		}

		item := item
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			action(ctx, item)
		}); err != nil {
			wg.Done()
			s.logger.WarnContext(ctx, "worker submission failed", "match_id", item.ID, "error", err)
		}
	}
	wg.Wait()
}

// debounceMap tracks last-run timestamps per match id. Entries for matches
// that leave their window just sit unused; the map is tiny and process-local.
type debounceMap struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func newDebounceMap() *debounceMap {
	return &debounceMap{last: make(map[string]time.Time)}
}

func (d *debounceMap) shouldRun(matchID string, now time.Time, window time.Duration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if at, ok := d.last[matchID]; ok && now.Sub(at) < window {
		return false
	}
	d.last[matchID] = now
	return true
}
