package checkin

import (
	"fmt"
	"testing"
	"time"
)

func queueOf(n int) []Checkin {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	queue := make([]Checkin, 0, n)
	for i := 0; i < n; i++ {
		queue = append(queue, Checkin{
			ID:        fmt.Sprintf("c%d", i),
			PlayerID:  fmt.Sprintf("p%d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return queue
}

func TestSplitUnderCapacity(t *testing.T) {
	t.Parallel()

	starting, waitlist := Split(queueOf(7))
	if len(starting) != 7 || len(waitlist) != 0 {
		t.Fatalf("expected 7 starting and empty waitlist, got %d/%d", len(starting), len(waitlist))
	}
}

func TestSplitOverCapacity(t *testing.T) {
	t.Parallel()

	starting, waitlist := Split(queueOf(13))
	if len(starting) != StartingSize {
		t.Fatalf("expected %d starting, got %d", StartingSize, len(starting))
	}
	if len(waitlist) != 1 {
		t.Fatalf("expected one waitlisted, got %d", len(waitlist))
	}
	if waitlist[0].PlayerID != "p12" {
		t.Fatalf("the thirteenth check-in waits, got %s", waitlist[0].PlayerID)
	}
}

func TestStatusOf(t *testing.T) {
	t.Parallel()

	queue := queueOf(13)

	if st, ok := StatusOf(queue, "p0"); !ok || st != StatusStarting {
		t.Fatalf("expected starting for p0, got %q %v", st, ok)
	}
	if st, ok := StatusOf(queue, "p12"); !ok || st != StatusWaitlist {
		t.Fatalf("expected waitlist for p12, got %q %v", st, ok)
	}
	if _, ok := StatusOf(queue, "ghost"); ok {
		t.Fatalf("expected not checked in")
	}
}

func TestRemovalPromotesByPosition(t *testing.T) {
	t.Parallel()

	queue := queueOf(13)
	// drop a starter; the queue is purely positional so the head of the
	// waitlist moves up
	remaining := append(append([]Checkin{}, queue[:3]...), queue[4:]...)

	if st, ok := StatusOf(remaining, "p12"); !ok || st != StatusStarting {
		t.Fatalf("expected p12 promoted into the starting roster, got %q %v", st, ok)
	}
}
