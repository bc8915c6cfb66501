package settings

import (
	"fmt"
	"time"
)

// Config holds group-wide knobs. UnlockTime gates non-admin check-ins: unset
// means the queue is open.
type Config struct {
	UnlockTime *time.Time
}

// Unlocked reports whether a regular player may check in at the given time.
func (c Config) Unlocked(now time.Time) bool {
	if c.UnlockTime == nil {
		return true
	}
	return !now.Before(*c.UnlockTime)
}

// PublishedTeams is the team sheet shared with the group: player ID lists
// only, plus when it was published.
type PublishedTeams struct {
	Blue        []string
	White       []string
	PublishedAt time.Time
}

func (p PublishedTeams) Validate() error {
	if len(p.Blue) == 0 && len(p.White) == 0 {
		return fmt.Errorf("published teams cannot both be empty")
	}
	if p.PublishedAt.IsZero() {
		return fmt.Errorf("published-at timestamp is required")
	}

	return nil
}
