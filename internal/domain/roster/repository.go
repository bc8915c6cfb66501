package roster

import "context"

// Repository defines persistence behavior for roster players.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, id string) (Player, bool, error)
	Create(ctx context.Context, p Player) error
	Update(ctx context.Context, p Player) error
	Delete(ctx context.Context, id string) error
	// UpsertBatch applies the whole batch or none of it.
	UpsertBatch(ctx context.Context, players []Player) error
	DeleteAll(ctx context.Context) error
	// Subscribe returns a channel that receives the full roster snapshot on
	// every committed change, and a function that cancels the subscription.
	Subscribe(ctx context.Context) (<-chan []Player, func(), error)
}
