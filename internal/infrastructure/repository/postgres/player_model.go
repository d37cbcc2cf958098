package postgres

import (
	"database/sql"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/player"
)

type playerTableModel struct {
	ID          string         `db:"id"`
	MatchID     string         `db:"match_id"`
	Name        string         `db:"name"`
	Team        string         `db:"team"`
	TeamShort   string         `db:"team_short"`
	Role        string         `db:"role"`
	Credits     float64        `db:"credits"`
	Points      int            `db:"points"`
	IsPlayingXI bool           `db:"is_playing_xi"`
	ExternalID  sql.NullString `db:"external_id"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:          m.ID,
		MatchID:     m.MatchID,
		Name:        m.Name,
		Team:        m.Team,
		TeamShort:   m.TeamShort,
		Role:        player.Role(m.Role),
		Credits:     m.Credits,
		Points:      m.Points,
		IsPlayingXI: m.IsPlayingXI,
		ExternalID:  m.ExternalID.String,
	}
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
