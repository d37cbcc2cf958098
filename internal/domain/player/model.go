package player

import "fmt"

// Role represents cricket role categories used in fantasy rules.
type Role string

const (
	RoleWicketkeeper Role = "WK"
	RoleBatter       Role = "BAT"
	RoleAllRounder   Role = "AR"
	RoleBowler       Role = "BOWL"
)

var AllRoles = map[Role]struct{}{
	RoleWicketkeeper: {},
	RoleBatter:       {},
	RoleAllRounder:   {},
	RoleBowler:       {},
}

// Player is one roster entry for a match. ExternalID is the provider-side
// player key and the join key for scorecard reconciliation; it may be empty
// until a provider first reports the player.
type Player struct {
	ID          string
	MatchID     string
	Name        string
	Team        string
	TeamShort   string
	Role        Role
	Credits     float64
	Points      int
	IsPlayingXI bool
	ExternalID  string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.MatchID == "" {
		return fmt.Errorf("player match id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("invalid player role: %s", p.Role)
	}
	if p.Credits <= 0 {
		return fmt.Errorf("player credits must be greater than zero")
	}
	return nil
}
