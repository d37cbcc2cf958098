package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pitchside/fantasy-cricket/internal/domain/player"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerSelectColumns = `
	id, match_id, name, team, team_short, role,
	credits, points, is_playing_xi, external_id,
	created_at, updated_at`

func (r *PlayerRepository) ListByMatch(ctx context.Context, matchID string) ([]player.Player, error) {
	var rows []playerTableModel
	query := `SELECT` + playerSelectColumns + ` FROM players WHERE match_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &rows, query, matchID); err != nil {
		return nil, fmt.Errorf("select players by match: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	query := `
		UPDATE players SET
			points = $2,
			is_playing_xi = $3,
			external_id = $4,
			updated_at = NOW()
		WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, item.ID, item.Points, item.IsPlayingXI, nullString(item.ExternalID))
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update player: no row for id %s", item.ID)
	}
	return nil
}

func (r *PlayerRepository) UpsertForMatch(ctx context.Context, matchID string, items []player.Player) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert players: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO players (id, match_id, name, team, team_short, role, credits, points, is_playing_xi, external_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			team = EXCLUDED.team,
			team_short = EXCLUDED.team_short,
			role = EXCLUDED.role,
			external_id = COALESCE(players.external_id, EXCLUDED.external_id),
			updated_at = NOW()`
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, query,
			item.ID, matchID, item.Name, item.Team, item.TeamShort, string(item.Role),
			item.Credits, item.Points, item.IsPlayingXI, nullString(item.ExternalID),
		); err != nil {
			return fmt.Errorf("upsert player %s: %w", item.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert players: %w", err)
	}
	return nil
}

// MarkPlayingXI clears and re-sets the flags in one statement so readers
// never observe a half-marked roster.
func (r *PlayerRepository) MarkPlayingXI(ctx context.Context, matchID string, playerIDs []string) error {
	query := `
		UPDATE players SET
			is_playing_xi = (id = ANY($2)),
			updated_at = NOW()
		WHERE match_id = $1`
	if _, err := r.db.ExecContext(ctx, query, matchID, pq.Array(playerIDs)); err != nil {
		return fmt.Errorf("mark playing xi: %w", err)
	}
	return nil
}
