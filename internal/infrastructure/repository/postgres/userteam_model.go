package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/pitchside/fantasy-cricket/internal/domain/userteam"
)

type userTeamTableModel struct {
	ID            string         `db:"id"`
	UserID        string         `db:"user_id"`
	MatchID       string         `db:"match_id"`
	PlayerIDs     pq.StringArray `db:"player_ids"`
	CaptainID     string         `db:"captain_id"`
	ViceCaptainID string         `db:"vice_captain_id"`
	TotalPoints   float64        `db:"total_points"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (m userTeamTableModel) toDomain() userteam.UserTeam {
	return userteam.UserTeam{
		ID:            m.ID,
		UserID:        m.UserID,
		MatchID:       m.MatchID,
		PlayerIDs:     append([]string(nil), m.PlayerIDs...),
		CaptainID:     m.CaptainID,
		ViceCaptainID: m.ViceCaptainID,
		TotalPoints:   m.TotalPoints,
	}
}
