package player

import "context"

// Repository reads and writes the per-match roster.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Player, error)
	Update(ctx context.Context, item Player) error
	UpsertForMatch(ctx context.Context, matchID string, items []Player) error
	// MarkPlayingXI resets isPlayingXI for every player of the match, then
	// sets it for exactly the given player ids, in one write. Marking by
	// canonical id rather than provider key keeps the write correct even for
	// roster rows no provider has keyed yet.
	MarkPlayingXI(ctx context.Context, matchID string, playerIDs []string) error
}
