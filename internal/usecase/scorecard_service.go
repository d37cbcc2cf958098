package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/domain/player"
	"github.com/pitchside/fantasy-cricket/internal/domain/reconcile"
	"github.com/pitchside/fantasy-cricket/internal/domain/scorecard"
	"github.com/pitchside/fantasy-cricket/internal/domain/scoring"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
)

// TeamPointsRecomputer is the downstream aggregation hook a points sync
// triggers after player points change.
type TeamPointsRecomputer interface {
	RecomputeForMatch(ctx context.Context, matchID string) error
}

// ScorecardService turns provider scorecards into stored player points. Every
// sync recomputes each player's total from the full scorecard available this
// cycle; points are never incremented, so overlapping or repeated syncs are
// idempotent and late provider corrections self-heal.
type ScorecardService struct {
	matches    match.Repository
	players    player.Repository
	scorecards ScorecardProvider
	statuses   StatusProvider
	teams      TeamPointsRecomputer
	logger     *logging.Logger
	now        func() time.Time
}

func NewScorecardService(
	matches match.Repository,
	players player.Repository,
	scorecards ScorecardProvider,
	statuses StatusProvider,
	teams TeamPointsRecomputer,
	logger *logging.Logger,
) *ScorecardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScorecardService{
		matches:    matches,
		players:    players,
		scorecards: scorecards,
		statuses:   statuses,
		teams:      teams,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the time source. Test use only.
func (s *ScorecardService) WithClock(now func() time.Time) *ScorecardService {
	if now != nil {
		s.now = now
	}
	return s
}

// SyncResult reports what a points sync changed.
type SyncResult struct {
	PlayersScored  int
	PlayersChanged int
}

// SyncPoints fetches the freshest scorecard and rewrites player points from
// it. An empty snapshot means the provider has nothing yet and the cycle is a
// no-op; prior points are never cleared on missing data.
func (s *ScorecardService) SyncPoints(ctx context.Context, matchID string) (SyncResult, error) {
	ctx, span := startSpan(ctx, "ScorecardService.SyncPoints")
	defer span.End()

	if strings.TrimSpace(matchID) == "" {
		return SyncResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, found, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return SyncResult{}, fmt.Errorf("load match: %w", err)
	}
	if !found {
		return SyncResult{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	snapshot, err := s.scorecards.FetchScorecard(ctx, m.ExternalID)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch scorecard: %w", err)
	}
	if len(snapshot.Innings) == 0 {
		s.logger.DebugContext(ctx, "no scorecard yet", "match_id", matchID)
		return SyncResult{}, nil
	}

	roster, err := s.players.ListByMatch(ctx, matchID)
	if err != nil {
		return SyncResult{}, fmt.Errorf("load roster: %w", err)
	}
	if len(roster) == 0 {
		return SyncResult{}, nil
	}

	stats := aggregateStats(snapshot, roster)

	result := SyncResult{PlayersScored: len(stats)}
	for _, current := range roster {
		points := scoring.Points(stats[current.ID])
		if points == current.Points {
			continue
		}
		updated := current
		updated.Points = points
		if err := s.players.Update(ctx, updated); err != nil {
			return result, fmt.Errorf("update player points: %w", err)
		}
		result.PlayersChanged++
	}

	if result.PlayersChanged > 0 && s.teams != nil {
		if err := s.teams.RecomputeForMatch(ctx, matchID); err != nil {
			return result, fmt.Errorf("recompute team points: %w", err)
		}
	}

	s.touchLastSync(ctx, m)
	s.logger.InfoContext(ctx, "points sync complete",
		"match_id", matchID,
		"players_scored", result.PlayersScored,
		"players_changed", result.PlayersChanged,
	)
	return result, nil
}

// RefreshStatus pulls the lightweight match-info view and advances the
// lifecycle. Transitions that would move backwards are dropped; COMPLETED is
// terminal.
func (s *ScorecardService) RefreshStatus(ctx context.Context, matchID string) error {
	ctx, span := startSpan(ctx, "ScorecardService.RefreshStatus")
	defer span.End()

	m, found, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("load match: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	if s.statuses == nil {
		return nil
	}

	status, err := s.statuses.FetchMatchStatus(ctx, m.ExternalID)
	if err != nil {
		return fmt.Errorf("fetch match status: %w", err)
	}
	if status.Status == m.Status && status.Note == m.StatusNote {
		return nil
	}
	if !match.CanTransition(m.Status, status.Status) {
		s.logger.WarnContext(ctx, "dropping regressive status transition",
			"match_id", matchID,
			"from", m.Status,
			"to", status.Status,
		)
		return nil
	}

	m.Status = status.Status
	if status.Note != "" {
		m.StatusNote = status.Note
	}
	now := s.now()
	m.LastSyncAt = &now
	if err := s.matches.Update(ctx, m); err != nil {
		return fmt.Errorf("update match status: %w", err)
	}
	s.logger.InfoContext(ctx, "match status updated",
		"match_id", matchID,
		"status", m.Status,
		"note", m.StatusNote,
	)
	return nil
}

func (s *ScorecardService) touchLastSync(ctx context.Context, m match.Match) {
	now := s.now()
	m.LastSyncAt = &now
	if err := s.matches.Update(ctx, m); err != nil {
		s.logger.WarnContext(ctx, "last sync stamp failed", "match_id", m.ID, "error", err)
	}
}

// aggregateStats folds every innings into per-player statistics keyed by
// roster player id. Names that fail reconciliation drop their statistic and
// nothing else; a bad name must never poison the rest of the innings.
func aggregateStats(snapshot scorecard.Snapshot, roster []player.Player) map[string]scoring.PlayerStats {
	finder := newRosterFinder(roster)
	stats := make(map[string]scoring.PlayerStats)

	for _, innings := range snapshot.Innings {
		for _, row := range innings.Batting {
			batterID := finder.resolve(row.PlayerName)
			if batterID != "" {
				entry := stats[batterID]
				entry.Batting.Runs += row.Runs
				entry.Batting.Balls += row.Balls
				entry.Batting.Fours += row.Fours
				entry.Batting.Sixes += row.Sixes
				entry.Batting.Out = entry.Batting.Out || row.Out
				stats[batterID] = entry
			}

			// Fielding and bowler-credit come from the dismissal text; the
			// dismissed batter's identity is irrelevant for those credits.
			dismissal := scorecard.ParseDismissal(row.Dismissal)
			if dismissal.BowlerCredited() {
				if bowlerID := finder.resolve(dismissal.Bowler); bowlerID != "" {
					entry := stats[bowlerID]
					entry.Bowling.LBWBowled++
					stats[bowlerID] = entry
				}
			}
			for _, credit := range dismissal.FieldingCredits() {
				fielderID := finder.resolve(credit.PlayerName)
				if fielderID == "" {
					continue
				}
				entry := stats[fielderID]
				switch credit.Kind {
				case scorecard.FieldingCatch:
					entry.Fielding.Catches++
				case scorecard.FieldingStumping:
					entry.Fielding.Stumpings++
				case scorecard.FieldingRunOutDirect:
					entry.Fielding.RunOutDirect++
				case scorecard.FieldingRunOutThrower:
					entry.Fielding.RunOutThrower++
				case scorecard.FieldingRunOutReceiver:
					entry.Fielding.RunOutReceiver++
				}
				stats[fielderID] = entry
			}
		}

		for _, row := range innings.Bowling {
			bowlerID := finder.resolve(row.PlayerName)
			if bowlerID == "" {
				continue
			}
			entry := stats[bowlerID]
			entry.Bowling.Balls += scorecard.BallsFromOvers(row.Overs)
			entry.Bowling.Maidens += row.Maidens
			entry.Bowling.Runs += row.Runs
			entry.Bowling.Wickets += row.Wickets
			stats[bowlerID] = entry
		}
	}
	return stats
}

// rosterFinder memoizes name resolution; dismissal texts repeat the same few
// fielder names across an innings.
type rosterFinder struct {
	roster []player.Player
	cache  map[string]string
}

func newRosterFinder(roster []player.Player) *rosterFinder {
	return &rosterFinder{roster: roster, cache: make(map[string]string)}
}

func (f *rosterFinder) resolve(externalName string) string {
	normalized := reconcile.Normalize(externalName)
	if normalized == "" {
		return ""
	}
	if id, ok := f.cache[normalized]; ok {
		return id
	}
	id := ""
	for _, candidate := range f.roster {
		if reconcile.Names(externalName, candidate.Name) {
			id = candidate.ID
			break
		}
	}
	f.cache[normalized] = id
	return id
}
