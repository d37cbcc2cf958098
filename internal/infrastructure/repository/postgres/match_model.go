package postgres

import (
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/match"
)

type matchTableModel struct {
	ID          string     `db:"id"`
	ExternalID  string     `db:"external_id"`
	SeriesID    string     `db:"series_id"`
	TeamAName   string     `db:"team_a_name"`
	TeamAShort  string     `db:"team_a_short"`
	TeamAColor  string     `db:"team_a_color"`
	TeamBName   string     `db:"team_b_name"`
	TeamBShort  string     `db:"team_b_short"`
	TeamBColor  string     `db:"team_b_color"`
	Venue       string     `db:"venue"`
	StartAt     time.Time  `db:"start_at"`
	Status      string     `db:"status"`
	StatusNote  string     `db:"status_note"`
	ManualXI    bool       `db:"manual_xi"`
	LastSyncAt  *time.Time `db:"last_sync_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:         m.ID,
		ExternalID: m.ExternalID,
		SeriesID:   m.SeriesID,
		TeamA:      match.TeamInfo{Name: m.TeamAName, Short: m.TeamAShort, Color: m.TeamAColor},
		TeamB:      match.TeamInfo{Name: m.TeamBName, Short: m.TeamBShort, Color: m.TeamBColor},
		Venue:      m.Venue,
		StartAt:    m.StartAt,
		Status:     match.Status(m.Status),
		StatusNote: m.StatusNote,
		ManualXI:   m.ManualXI,
		LastSyncAt: m.LastSyncAt,
	}
}
