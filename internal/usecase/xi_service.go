package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/domain/player"
	"github.com/pitchside/fantasy-cricket/internal/domain/reconcile"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
)

// minResolvedPlayers is the floor for a strategy result to count as usable.
// One matched name is as likely a coincidence as a signal.
const minResolvedPlayers = 2

// PlayingXIService resolves which roster players are actively fielding for a
// match. Sources are tried in strict priority order and the first usable
// result wins; a cycle where every source comes back empty leaves the
// previously resolved XI untouched.
type PlayingXIService struct {
	matches    match.Repository
	players    player.Repository
	scorecards ScorecardProvider
	elevens    StatusProvider
	lineups    LineupProvider
	logger     *logging.Logger
}

func NewPlayingXIService(
	matches match.Repository,
	players player.Repository,
	scorecards ScorecardProvider,
	elevens StatusProvider,
	lineups LineupProvider,
	logger *logging.Logger,
) *PlayingXIService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayingXIService{
		matches:    matches,
		players:    players,
		scorecards: scorecards,
		elevens:    elevens,
		lineups:    lineups,
		logger:     logger,
	}
}

// XIResolution reports how a resolution cycle ended.
type XIResolution struct {
	// Strategy names the source that produced the XI; empty when no source
	// yielded a usable result this cycle.
	Strategy string
	Resolved int
	// Skipped is set for manual-override matches, which the resolver must
	// never touch.
	Skipped bool
}

type xiStrategy struct {
	name string
	// primaryKeyed marks entries whose provider ids belong to the primary
	// provider's keyspace and are safe to backfill onto the roster.
	primaryKeyed bool
	fetch        func(ctx context.Context, m match.Match) ([]LineupEntry, error)
}

// Resolve runs the strategy chain for one match and marks the resolved set.
func (s *PlayingXIService) Resolve(ctx context.Context, matchID string) (XIResolution, error) {
	ctx, span := startSpan(ctx, "PlayingXIService.Resolve")
	defer span.End()

	if strings.TrimSpace(matchID) == "" {
		return XIResolution{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, found, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return XIResolution{}, fmt.Errorf("load match: %w", err)
	}
	if !found {
		return XIResolution{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	if m.ManualXI {
		return XIResolution{Skipped: true, Strategy: "manual-override"}, nil
	}

	roster, err := s.players.ListByMatch(ctx, matchID)
	if err != nil {
		return XIResolution{}, fmt.Errorf("load roster: %w", err)
	}
	if len(roster) == 0 {
		s.logger.DebugContext(ctx, "xi resolution skipped, empty roster", "match_id", matchID)
		return XIResolution{}, nil
	}

	for _, strategy := range s.strategies() {
		entries, err := strategy.fetch(ctx, m)
		if err != nil {
			s.logger.WarnContext(ctx, "xi source failed, trying next",
				"match_id", matchID,
				"strategy", strategy.name,
				"error", err,
			)
			continue
		}
		matched := matchEntriesToRoster(entries, roster)
		if len(matched) < minResolvedPlayers {
			continue
		}

		ids := make([]string, 0, len(matched))
		for _, hit := range matched {
			ids = append(ids, hit.rosterPlayer.ID)
		}
		if err := s.players.MarkPlayingXI(ctx, matchID, ids); err != nil {
			return XIResolution{}, fmt.Errorf("mark playing xi: %w", err)
		}
		if strategy.primaryKeyed {
			s.backfillExternalIDs(ctx, matched)
		}

		s.logger.InfoContext(ctx, "playing xi resolved",
			"match_id", matchID,
			"strategy", strategy.name,
			"resolved", len(matched),
		)
		return XIResolution{Strategy: strategy.name, Resolved: len(matched)}, nil
	}

	// Every source came back empty or unusable. Prior state stays as is.
	s.logger.DebugContext(ctx, "no xi source usable this cycle", "match_id", matchID)
	return XIResolution{}, nil
}

// Corroborate cross-checks the currently marked XI against the regional
// provider. Disagreements are logged, never auto-applied: the regional feed
// ranks below every source that could have produced the marked set. When
// nothing is marked yet the usable lineup is applied as a late resolution.
func (s *PlayingXIService) Corroborate(ctx context.Context, matchID string) error {
	ctx, span := startSpan(ctx, "PlayingXIService.Corroborate")
	defer span.End()

	m, found, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("load match: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	if m.ManualXI || s.lineups == nil {
		return nil
	}

	roster, err := s.players.ListByMatch(ctx, matchID)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	entries, err := s.fetchRegionalLineup(ctx, m)
	if err != nil {
		return err
	}
	matched := matchEntriesToRoster(entries, roster)
	if len(matched) < minResolvedPlayers {
		return nil
	}

	markedCount := 0
	marked := make(map[string]struct{})
	for _, item := range roster {
		if item.IsPlayingXI {
			markedCount++
			marked[item.ID] = struct{}{}
		}
	}
	if markedCount == 0 {
		ids := make([]string, 0, len(matched))
		for _, hit := range matched {
			ids = append(ids, hit.rosterPlayer.ID)
		}
		if err := s.players.MarkPlayingXI(ctx, matchID, ids); err != nil {
			return fmt.Errorf("mark playing xi: %w", err)
		}
		s.logger.InfoContext(ctx, "playing xi resolved",
			"match_id", matchID,
			"strategy", "regional-lineup",
			"resolved", len(matched),
		)
		return nil
	}

	disagreements := 0
	for _, hit := range matched {
		if _, ok := marked[hit.rosterPlayer.ID]; !ok {
			disagreements++
		}
	}
	if disagreements > 0 {
		s.logger.WarnContext(ctx, "regional lineup disagrees with marked xi",
			"match_id", matchID,
			"disagreements", disagreements,
			"regional_resolved", len(matched),
			"marked", markedCount,
		)
	}
	return nil
}

func (s *PlayingXIService) strategies() []xiStrategy {
	return []xiStrategy{
		{
			name:         "scorecard-appearance",
			primaryKeyed: true,
			fetch:        s.fetchAppearances,
		},
		{
			name:  "reported-elevens",
			fetch: s.fetchReportedElevens,
		},
		{
			name:  "regional-lineup",
			fetch: s.fetchRegionalLineup,
		},
	}
}

// fetchAppearances derives the active set from the primary scorecard: a
// player only shows up in a batting, bowling or fielding row once play has
// begun, which makes appearance the most trustworthy signal of all.
func (s *PlayingXIService) fetchAppearances(ctx context.Context, m match.Match) ([]LineupEntry, error) {
	if s.scorecards == nil {
		return nil, nil
	}
	snapshot, err := s.scorecards.FetchScorecard(ctx, m.ExternalID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var entries []LineupEntry
	add := func(name, key string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		normalized := reconcile.Normalize(name)
		if _, dup := seen[normalized]; dup {
			return
		}
		seen[normalized] = struct{}{}
		entries = append(entries, LineupEntry{PlayerName: name, ProviderPlayerID: key})
	}

	for _, innings := range snapshot.Innings {
		for _, row := range innings.Batting {
			add(row.PlayerName, row.PlayerKey)
		}
		for _, row := range innings.Bowling {
			add(row.PlayerName, row.PlayerKey)
		}
		for _, event := range innings.Fielding {
			add(event.PlayerName, "")
		}
	}
	return entries, nil
}

func (s *PlayingXIService) fetchReportedElevens(ctx context.Context, m match.Match) ([]LineupEntry, error) {
	if s.elevens == nil {
		return nil, nil
	}
	status, err := s.elevens.FetchMatchStatus(ctx, m.ExternalID)
	if err != nil {
		return nil, err
	}
	var entries []LineupEntry
	for _, side := range status.StartingElevens {
		entries = append(entries, side.Players...)
	}
	return entries, nil
}

// fetchRegionalLineup is the last resort. A side with more than eleven names
// is an unconfirmed full squad and gets discarded whole; marking a touring
// squad as playing is worse than marking nobody.
func (s *PlayingXIService) fetchRegionalLineup(ctx context.Context, m match.Match) ([]LineupEntry, error) {
	if s.lineups == nil {
		return nil, nil
	}
	lineup, err := s.lineups.FetchLineup(ctx, m.TeamA.Name, m.TeamB.Name, m.StartAt)
	if err != nil {
		return nil, err
	}
	var entries []LineupEntry
	for _, side := range lineup.Sides {
		if len(side.Players) > 11 {
			s.logger.DebugContext(ctx, "discarding unconfirmed oversized squad",
				"match_id", m.ID,
				"team", side.TeamName,
				"size", len(side.Players),
			)
			continue
		}
		entries = append(entries, side.Players...)
	}
	return entries, nil
}

type rosterHit struct {
	rosterPlayer player.Player
	providerKey  string
}

// matchEntriesToRoster reconciles provider names against the roster. Only
// names that resolve count; a roster player resolves at most once no matter
// how many provider entries point at them.
func matchEntriesToRoster(entries []LineupEntry, roster []player.Player) []rosterHit {
	taken := make(map[string]struct{}, len(roster))
	var hits []rosterHit
	for _, entry := range entries {
		for _, candidate := range roster {
			if _, dup := taken[candidate.ID]; dup {
				continue
			}
			if reconcile.Names(entry.PlayerName, candidate.Name) {
				taken[candidate.ID] = struct{}{}
				hits = append(hits, rosterHit{rosterPlayer: candidate, providerKey: entry.ProviderPlayerID})
				break
			}
		}
	}
	return hits
}

// backfillExternalIDs stores primary-provider player keys onto roster rows
// that have none yet. The key is the cheap join for later scoring cycles.
func (s *PlayingXIService) backfillExternalIDs(ctx context.Context, matched []rosterHit) {
	for _, hit := range matched {
		if hit.providerKey == "" || hit.rosterPlayer.ExternalID != "" {
			continue
		}
		updated := hit.rosterPlayer
		updated.ExternalID = hit.providerKey
		if err := s.players.Update(ctx, updated); err != nil {
			s.logger.WarnContext(ctx, "external id backfill failed",
				"player_id", hit.rosterPlayer.ID,
				"error", err,
			)
		}
	}
}
