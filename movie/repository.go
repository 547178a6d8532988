package movie

import "context"

// DefaultLimit caps GetByTitle results when callers do not say otherwise.
const DefaultLimit = 1000

// Repository stores movies keyed by their id. Every implementation honours
// the same contract:
//
//   - Create upserts: an existing movie with the same id is replaced.
//   - GetByID returns nil, nil when the id is unknown.
//   - GetByTitle matches titles exactly; skip drops the first matches and a
//     limit of 0 returns everything after skip.
//   - Update fails with a repository error when the id is unknown or the
//     changes try to rewrite the id, and then nothing is written.
//   - Delete of an unknown id is a no-op.
type Repository interface {
	Create(ctx context.Context, m Movie) error
	GetByID(ctx context.Context, id string) (*Movie, error)
	GetByTitle(ctx context.Context, title string, skip, limit int) ([]Movie, error)
	Update(ctx context.Context, id string, changes Changes) error
	Delete(ctx context.Context, id string) error
}
