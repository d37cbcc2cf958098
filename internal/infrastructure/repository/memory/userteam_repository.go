package memory

import (
	"context"
	"sync"

	"github.com/pitchside/fantasy-cricket/internal/domain/userteam"
)

type UserTeamRepository struct {
	mu      sync.RWMutex
	byMatch map[string][]userteam.UserTeam
}

func NewUserTeamRepository(teams []userteam.UserTeam) *UserTeamRepository {
	byMatch := make(map[string][]userteam.UserTeam)
	for _, t := range teams {
		byMatch[t.MatchID] = append(byMatch[t.MatchID], t)
	}
	return &UserTeamRepository{byMatch: byMatch}
}

func (r *UserTeamRepository) ListByMatch(_ context.Context, matchID string) ([]userteam.UserTeam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byMatch[matchID]
	out := make([]userteam.UserTeam, 0, len(items))
	for _, item := range items {
		out = append(out, cloneTeam(item))
	}
	return out, nil
}

func (r *UserTeamRepository) UpdatePoints(_ context.Context, teamID string, totalPoints float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for matchID := range r.byMatch {
		for i := range r.byMatch[matchID] {
			if r.byMatch[matchID][i].ID == teamID {
				r.byMatch[matchID][i].TotalPoints = totalPoints
				return nil
			}
		}
	}
	return nil
}

func cloneTeam(t userteam.UserTeam) userteam.UserTeam {
	out := t
	out.PlayerIDs = append([]string(nil), t.PlayerIDs...)
	return out
}
