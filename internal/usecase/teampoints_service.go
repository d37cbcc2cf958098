package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchside/fantasy-cricket/internal/domain/player"
	"github.com/pitchside/fantasy-cricket/internal/domain/userteam"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const defaultTeamFanOut = 8

// TeamPointsService recomputes user-team totals after player points move.
// Totals are always rebuilt from scratch from the current player rows, never
// adjusted incrementally, so they cannot drift.
type TeamPointsService struct {
	players player.Repository
	teams   userteam.Repository
	logger  *logging.Logger
	fanOut  int
}

func NewTeamPointsService(players player.Repository, teams userteam.Repository, logger *logging.Logger, fanOut int) *TeamPointsService {
	if logger == nil {
		logger = logging.Default()
	}
	if fanOut < 1 {
		fanOut = defaultTeamFanOut
	}
	return &TeamPointsService{
		players: players,
		teams:   teams,
		logger:  logger,
		fanOut:  fanOut,
	}
}

// RecomputeForMatch rebuilds totalPoints for every team of the match. A team
// member whose player row no longer exists contributes zero; one broken team
// reference must not block the rest of the match's teams.
func (s *TeamPointsService) RecomputeForMatch(ctx context.Context, matchID string) error {
	ctx, span := startSpan(ctx, "TeamPointsService.RecomputeForMatch")
	defer span.End()

	if strings.TrimSpace(matchID) == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	teams, err := s.teams.ListByMatch(ctx, matchID)
	if err != nil {
		return fmt.Errorf("load teams: %w", err)
	}
	if len(teams) == 0 {
		return nil
	}

	roster, err := s.players.ListByMatch(ctx, matchID)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	pointsByID := make(map[string]int, len(roster))
	for _, item := range roster {
		pointsByID[item.ID] = item.Points
	}

	workers := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(s.fanOut)
	for _, team := range teams {
		team := team
		workers.Go(func(ctx context.Context) error {
			total := TotalPoints(team, pointsByID)
			if total == team.TotalPoints {
				return nil
			}
			if err := s.teams.UpdatePoints(ctx, team.ID, total); err != nil {
				return fmt.Errorf("update team %s: %w", team.ID, err)
			}
			s.logger.DebugContext(ctx, "team total recomputed",
				"team_id", team.ID,
				"total", total,
			)
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return fmt.Errorf("recompute totals: %w", err)
	}
	return nil
}

// TotalPoints sums a team's player points under captain and vice-captain
// multipliers. Missing player ids contribute zero.
func TotalPoints(team userteam.UserTeam, pointsByID map[string]int) float64 {
	total := 0.0
	for _, playerID := range team.PlayerIDs {
		points, ok := pointsByID[playerID]
		if !ok {
			continue
		}
		total += float64(points) * team.Multiplier(playerID)
	}
	return total
}
