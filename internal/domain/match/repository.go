package match

import "context"

// Repository is the narrow persistence surface the engine consumes. Reads are
// eventually consistent; writes are atomic per row.
type Repository interface {
	GetByID(ctx context.Context, id string) (Match, bool, error)
	List(ctx context.Context) ([]Match, error)
	Update(ctx context.Context, item Match) error
}
