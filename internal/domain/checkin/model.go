package checkin

import (
	"fmt"
	"time"
)

// StartingSize is how many check-ins make the starting roster; everyone after
// position StartingSize-1 is on the waitlist.
const StartingSize = 12

// Status is where a check-in currently sits in the queue.
type Status string

const (
	StatusStarting Status = "starting"
	StatusWaitlist Status = "waitlist"
)

// Checkin is one player's spot in the queue for the upcoming session. The
// queue is ordered by Timestamp ascending and position alone decides whether
// a player starts or waits.
type Checkin struct {
	ID        string
	PlayerID  string
	Name      string
	Timestamp time.Time
}

func (c Checkin) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("checkin id is required")
	}
	if c.PlayerID == "" {
		return fmt.Errorf("checkin player id is required")
	}
	if c.Timestamp.IsZero() {
		return fmt.Errorf("checkin timestamp is required")
	}

	return nil
}

// Split divides a timestamp-ordered queue into the starting roster and the
// waitlist.
func Split(queue []Checkin) (starting, waitlist []Checkin) {
	if len(queue) <= StartingSize {
		return queue, nil
	}
	return queue[:StartingSize], queue[StartingSize:]
}

// StatusOf reports the player's queue status, if checked in at all.
func StatusOf(queue []Checkin, playerID string) (Status, bool) {
	for i, c := range queue {
		if c.PlayerID == playerID {
			if i < StartingSize {
				return StatusStarting, true
			}
			return StatusWaitlist, true
		}
	}
	return "", false
}
