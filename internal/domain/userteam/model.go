package userteam

import "fmt"

const (
	CaptainMultiplier     = 2.0
	ViceCaptainMultiplier = 1.5
	DefaultMultiplier     = 1.0
)

// UserTeam is one user's fantasy eleven for a match.
type UserTeam struct {
	ID            string
	UserID        string
	MatchID       string
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
	TotalPoints   float64
}

func (t UserTeam) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.MatchID == "" {
		return fmt.Errorf("team match id is required")
	}
	if len(t.PlayerIDs) != 11 {
		return fmt.Errorf("team must have exactly 11 players, got %d", len(t.PlayerIDs))
	}
	seen := make(map[string]struct{}, len(t.PlayerIDs))
	for _, id := range t.PlayerIDs {
		if id == "" {
			return fmt.Errorf("player id is required")
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate player in team: %s", id)
		}
		seen[id] = struct{}{}
	}
	if _, ok := seen[t.CaptainID]; !ok {
		return fmt.Errorf("captain must be one of the 11 players")
	}
	if _, ok := seen[t.ViceCaptainID]; !ok {
		return fmt.Errorf("vice-captain must be one of the 11 players")
	}
	if t.CaptainID == t.ViceCaptainID {
		return fmt.Errorf("captain and vice-captain must differ")
	}
	return nil
}

// Multiplier resolves the scoring weight for a member of this team.
func (t UserTeam) Multiplier(playerID string) float64 {
	switch playerID {
	case t.CaptainID:
		return CaptainMultiplier
	case t.ViceCaptainID:
		return ViceCaptainMultiplier
	default:
		return DefaultMultiplier
	}
}
