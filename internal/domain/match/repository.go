package match

import "context"

// Repository defines persistence behavior for finalized matches.
type Repository interface {
	// List returns all matches ordered by date descending.
	List(ctx context.Context) ([]Match, error)
	GetByID(ctx context.Context, id string) (Match, bool, error)
	Create(ctx context.Context, m Match) error
	Update(ctx context.Context, m Match) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	// Subscribe returns a channel that receives the full match list on every
	// committed change, and a function that cancels the subscription.
	Subscribe(ctx context.Context) (<-chan []Match, func(), error)
}
