package settings

import "context"

// Repository defines persistence behavior for group settings and the
// published team sheet.
type Repository interface {
	GetConfig(ctx context.Context) (Config, bool, error)
	SetConfig(ctx context.Context, c Config) error
	GetCurrentTeams(ctx context.Context) (PublishedTeams, bool, error)
	SetCurrentTeams(ctx context.Context, t PublishedTeams) error
	ClearCurrentTeams(ctx context.Context) error
	// Subscribe returns a channel that receives the published team sheet on
	// every committed change (nil when cleared), and a cancel function.
	Subscribe(ctx context.Context) (<-chan *PublishedTeams, func(), error)
}
