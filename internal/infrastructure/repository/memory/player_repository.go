package memory

import (
	"context"
	"sync"

	"github.com/pitchside/fantasy-cricket/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	byMatch map[string][]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	byMatch := make(map[string][]player.Player)
	for _, p := range players {
		byMatch[p.MatchID] = append(byMatch[p.MatchID], p)
	}
	return &PlayerRepository{byMatch: byMatch}
}

func (r *PlayerRepository) ListByMatch(_ context.Context, matchID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byMatch[matchID]
	out := make([]player.Player, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	roster := r.byMatch[item.MatchID]
	for i := range roster {
		if roster[i].ID == item.ID {
			roster[i] = item
			return nil
		}
	}
	r.byMatch[item.MatchID] = append(roster, item)
	return nil
}

func (r *PlayerRepository) UpsertForMatch(_ context.Context, matchID string, items []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := make(map[string]int, len(r.byMatch[matchID]))
	for i, p := range r.byMatch[matchID] {
		existing[p.ID] = i
	}
	for _, item := range items {
		if i, ok := existing[item.ID]; ok {
			r.byMatch[matchID][i] = item
			continue
		}
		r.byMatch[matchID] = append(r.byMatch[matchID], item)
	}
	return nil
}

func (r *PlayerRepository) MarkPlayingXI(_ context.Context, matchID string, playerIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		set[id] = struct{}{}
	}
	roster := r.byMatch[matchID]
	for i := range roster {
		_, in := set[roster[i].ID]
		roster[i].IsPlayingXI = in
	}
	return nil
}
