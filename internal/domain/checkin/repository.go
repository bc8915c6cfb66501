package checkin

import "context"

// Repository defines persistence behavior for the check-in queue.
type Repository interface {
	// List returns all check-ins ordered by timestamp ascending.
	List(ctx context.Context) ([]Checkin, error)
	Create(ctx context.Context, c Checkin) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	// Subscribe returns a channel that receives the ordered queue on every
	// committed change, and a function that cancels the subscription.
	Subscribe(ctx context.Context) (<-chan []Checkin, func(), error)
}
