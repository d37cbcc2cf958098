package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchside/fantasy-cricket/internal/domain/userteam"
)

type UserTeamRepository struct {
	db *sqlx.DB
}

func NewUserTeamRepository(db *sqlx.DB) *UserTeamRepository {
	return &UserTeamRepository{db: db}
}

func (r *UserTeamRepository) ListByMatch(ctx context.Context, matchID string) ([]userteam.UserTeam, error) {
	var rows []userTeamTableModel
	query := `
		SELECT id, user_id, match_id, player_ids, captain_id, vice_captain_id, total_points, created_at, updated_at
		FROM user_teams
		WHERE match_id = $1
		ORDER BY id`
	if err := r.db.SelectContext(ctx, &rows, query, matchID); err != nil {
		return nil, fmt.Errorf("select teams by match: %w", err)
	}

	out := make([]userteam.UserTeam, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *UserTeamRepository) UpdatePoints(ctx context.Context, teamID string, totalPoints float64) error {
	query := `UPDATE user_teams SET total_points = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, teamID, totalPoints)
	if err != nil {
		return fmt.Errorf("update team points: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update team points: no row for id %s", teamID)
	}
	return nil
}
