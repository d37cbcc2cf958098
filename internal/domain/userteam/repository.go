package userteam

import "context"

// Repository reads user teams and writes recomputed totals.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]UserTeam, error)
	UpdatePoints(ctx context.Context, teamID string, totalPoints float64) error
}
