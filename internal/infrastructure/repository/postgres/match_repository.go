// Package postgres persists engine state behind the domain repository
// interfaces.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchside/fantasy-cricket/internal/domain/match"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

const matchSelectColumns = `
	id, external_id, series_id,
	team_a_name, team_a_short, team_a_color,
	team_b_name, team_b_short, team_b_color,
	venue, start_at, status, status_note, manual_xi, last_sync_at,
	created_at, updated_at`

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Match, bool, error) {
	var row matchTableModel
	query := `SELECT` + matchSelectColumns + ` FROM matches WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	var rows []matchTableModel
	query := `SELECT` + matchSelectColumns + ` FROM matches ORDER BY start_at`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	query := `
		UPDATE matches SET
			status = $2,
			status_note = $3,
			manual_xi = $4,
			last_sync_at = $5,
			updated_at = NOW()
		WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, item.ID, string(item.Status), item.StatusNote, item.ManualXI, item.LastSyncAt)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update match: no row for id %s", item.ID)
	}
	return nil
}
